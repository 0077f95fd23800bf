package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":5000", config.HTTPAddress)
	assert.Equal(t, "https://api.fivetran.com/v1", config.FivetranAPIURL)
	assert.Equal(t, 30*time.Second, config.UpstreamTimeout)
	assert.Equal(t, 10*time.Second, config.IdentityTimeout)
	assert.Equal(t, "file", config.CertificateBackend)
	assert.Equal(t, "certs", config.CertificateDir)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":8099")
	t.Setenv("FIVETRAN_API_KEY", "key1")
	t.Setenv("FIVETRAN_API_SECRET", "secret1")
	t.Setenv("FIVETRAN_GROUP_ID", "grp_1")
	t.Setenv("IDENTITY_API_URL", "https://id.example.com")
	t.Setenv("UPSTREAM_TIMEOUT", "5s")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8099", config.HTTPAddress)
	assert.Equal(t, "key1", config.FivetranAPIKey)
	assert.Equal(t, "secret1", config.FivetranAPISecret)
	assert.Equal(t, "grp_1", config.FivetranGroupID)
	assert.Equal(t, "https://id.example.com", config.IdentityAPIURL)
	assert.Equal(t, 5*time.Second, config.UpstreamTimeout)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	t.Setenv("CERT_BACKEND", "redis")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CERT_BACKEND")
}

func TestLoadConfigS3BackendRequiresBucketAndRegion(t *testing.T) {
	t.Setenv("CERT_BACKEND", "s3")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CERT_S3_BUCKET")
	assert.Contains(t, err.Error(), "CERT_S3_REGION")
}

func TestLoadConfigS3BackendComplete(t *testing.T) {
	t.Setenv("CERT_BACKEND", "s3")
	t.Setenv("CERT_S3_BUCKET", "certs-bucket")
	t.Setenv("CERT_S3_REGION", "eu-west-1")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "s3", config.CertificateBackend)
	assert.Equal(t, "certs-bucket", config.CertificateS3Bucket)
	assert.Equal(t, "eu-west-1", config.CertificateS3Region)
	assert.Equal(t, "certificates/", config.CertificateS3Prefix)
}

func TestMissingRequestSettings(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		missing []string
	}{
		{
			name:    "nothing configured",
			config:  Config{},
			missing: []string{"FIVETRAN_API_KEY", "FIVETRAN_API_SECRET", "FIVETRAN_GROUP_ID", "IDENTITY_API_URL"},
		},
		{
			name: "fully configured",
			config: Config{
				FivetranAPIKey:    "k",
				FivetranAPISecret: "s",
				FivetranGroupID:   "g",
				IdentityAPIURL:    "https://id.example.com",
			},
			missing: nil,
		},
		{
			name: "secret missing",
			config: Config{
				FivetranAPIKey:  "k",
				FivetranGroupID: "g",
				IdentityAPIURL:  "https://id.example.com",
			},
			missing: []string{"FIVETRAN_API_SECRET"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.missing, MissingRequestSettings(&tt.config))
		})
	}
}
