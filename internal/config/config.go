package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all service configuration
type Config struct {
	// Server settings
	HTTPAddress string

	// Upstream platform credentials and destination
	FivetranAPIURL    string
	FivetranAPIKey    string
	FivetranAPISecret string
	FivetranGroupID   string

	// Identity provider
	IdentityAPIURL string

	// Outbound call timeouts
	UpstreamTimeout time.Duration
	IdentityTimeout time.Duration

	// Certificate storage
	CertificateBackend           string // "file" or "s3"
	CertificateDir               string
	CertificateS3Bucket          string
	CertificateS3Region          string
	CertificateS3Prefix          string
	CertificateS3AccessKeyID     string
	CertificateS3SecretAccessKey string
}

// LoadConfig loads configuration from files and environment variables
func LoadConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Configure environment variables - do this BEFORE reading config
	v.AutomaticEnv()
	v.SetEnvPrefix("")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envMappings := map[string]string{
		"HTTPAddress":                  "HTTP_ADDRESS",
		"FivetranAPIURL":               "FIVETRAN_API_URL",
		"FivetranAPIKey":               "FIVETRAN_API_KEY",
		"FivetranAPISecret":            "FIVETRAN_API_SECRET",
		"FivetranGroupID":              "FIVETRAN_GROUP_ID",
		"IdentityAPIURL":               "IDENTITY_API_URL",
		"UpstreamTimeout":              "UPSTREAM_TIMEOUT",
		"IdentityTimeout":              "IDENTITY_TIMEOUT",
		"CertificateBackend":           "CERT_BACKEND",
		"CertificateDir":               "CERT_DIR",
		"CertificateS3Bucket":          "CERT_S3_BUCKET",
		"CertificateS3Region":          "CERT_S3_REGION",
		"CertificateS3Prefix":          "CERT_S3_PREFIX",
		"CertificateS3AccessKeyID":     "CERT_S3_ACCESS_KEY_ID",
		"CertificateS3SecretAccessKey": "CERT_S3_SECRET_ACCESS_KEY",
	}

	for configKey, envVar := range envMappings {
		if err := v.BindEnv(configKey, envVar); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", envVar, configKey)
		}
	}

	v.SetConfigName("connector_config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.fivetran-universal-connector")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Info().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	// Upstream and identity settings are checked per request, not at startup,
	// so the health endpoint works on an unconfigured process.
	if missing := MissingRequestSettings(&config); len(missing) > 0 {
		log.Warn().Msgf("Missing environment variables: %s (protected routes will fail until set)",
			strings.Join(missing, ", "))
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTPAddress", ":5000")
	v.SetDefault("FivetranAPIURL", "https://api.fivetran.com/v1")
	v.SetDefault("UpstreamTimeout", "30s")
	v.SetDefault("IdentityTimeout", "10s")
	v.SetDefault("CertificateBackend", "file")
	v.SetDefault("CertificateDir", "certs")
	v.SetDefault("CertificateS3Prefix", "certificates/")
}

// validateConfig validates settings that must be usable at startup
func validateConfig(config *Config) error {
	switch config.CertificateBackend {
	case "file", "s3":
	default:
		return fmt.Errorf("invalid CERT_BACKEND %q: must be \"file\" or \"s3\"", config.CertificateBackend)
	}

	if config.CertificateBackend == "s3" {
		var missingVars []string

		if config.CertificateS3Bucket == "" {
			missingVars = append(missingVars, "CERT_S3_BUCKET")
		}

		if config.CertificateS3Region == "" {
			missingVars = append(missingVars, "CERT_S3_REGION")
		}

		if len(missingVars) > 0 {
			return fmt.Errorf("missing required environment variables for s3 certificate backend: %s",
				strings.Join(missingVars, ", "))
		}
	}

	return nil
}

// MissingRequestSettings lists settings that protected routes need per
// request. Startup tolerates their absence so the health endpoint stays up.
func MissingRequestSettings(config *Config) []string {
	var missing []string

	if config.FivetranAPIKey == "" {
		missing = append(missing, "FIVETRAN_API_KEY")
	}

	if config.FivetranAPISecret == "" {
		missing = append(missing, "FIVETRAN_API_SECRET")
	}

	if config.FivetranGroupID == "" {
		missing = append(missing, "FIVETRAN_GROUP_ID")
	}

	if config.IdentityAPIURL == "" {
		missing = append(missing, "IDENTITY_API_URL")
	}

	return missing
}
