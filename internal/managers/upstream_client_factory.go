package managers

import (
	"time"

	"github.com/connectorhq/fivetran-universal-connector/internal/domain"
	"github.com/connectorhq/fivetran-universal-connector/pkg/clients/fivetran"
)

type upstreamClientFactory struct {
	apiURL    string
	apiKey    string
	apiSecret string
	timeout   time.Duration
}

type UpstreamClientFactoryDependencies struct {
	APIURL    string
	APIKey    string
	APISecret string
	Timeout   time.Duration // Optional
}

// NewUpstreamClientFactory creates a factory bound to the configured
// Fivetran credentials
func NewUpstreamClientFactory(deps UpstreamClientFactoryDependencies) domain.UpstreamClientFactory {
	return &upstreamClientFactory{
		apiURL:    deps.APIURL,
		apiKey:    deps.APIKey,
		apiSecret: deps.APISecret,
		timeout:   deps.Timeout,
	}
}

// NewClient constructs a fresh upstream client. Called once per request so
// no client state is shared across requests.
func (f *upstreamClientFactory) NewClient() (*fivetran.Client, error) {
	if f.apiKey == "" || f.apiSecret == "" {
		return nil, domain.NewConfigError("fivetran api credentials are not configured")
	}

	options := []fivetran.ClientOption{
		fivetran.WithAPIKey(f.apiKey),
		fivetran.WithAPISecret(f.apiSecret),
	}

	if f.apiURL != "" {
		options = append(options, fivetran.WithBaseURL(f.apiURL))
	}

	if f.timeout > 0 {
		options = append(options, fivetran.WithTimeout(f.timeout))
	}

	return fivetran.NewClient(options...), nil
}

// translateUpstreamError maps a failed upstream call into a kinded service
// error. Upstream detail stays inside the wrapped error for logging; the
// message is safe to return to callers.
func translateUpstreamError(resource string, err error) error {
	if fivetran.IsNotFoundError(err) {
		return domain.NewNotFoundError(resource + " not found")
	}
	return domain.NewUpstreamError("upstream request failed", err)
}
