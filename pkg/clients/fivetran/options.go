package fivetran

import (
	"net/http"
	"time"
)

// ClientOption represents an option for configuring the Fivetran client
type ClientOption func(*ClientConfig)

// ClientConfig holds the configuration for the Fivetran client
type ClientConfig struct {
	BaseURL        string
	APIKey         string
	APISecret      string
	Timeout        time.Duration
	DefaultHeaders map[string]string
	HTTPClient     *http.Client
	UserAgent      string
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "https://api.fivetran.com/v1",
		Timeout: 30 * time.Second,
		DefaultHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		UserAgent: "fivetran-universal-connector/1.0.0",
	}
}

// WithBaseURL sets the base URL for the Fivetran Management API
func WithBaseURL(baseURL string) ClientOption {
	return func(c *ClientConfig) {
		c.BaseURL = baseURL
	}
}

// WithAPIKey sets the API key used for HTTP basic authentication
func WithAPIKey(apiKey string) ClientOption {
	return func(c *ClientConfig) {
		c.APIKey = apiKey
	}
}

// WithAPISecret sets the API secret used for HTTP basic authentication
func WithAPISecret(apiSecret string) ClientOption {
	return func(c *ClientConfig) {
		c.APISecret = apiSecret
	}
}

// WithTimeout sets the request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithHeader adds a default header to all requests
func WithHeader(key, value string) ClientOption {
	return func(c *ClientConfig) {
		if c.DefaultHeaders == nil {
			c.DefaultHeaders = make(map[string]string)
		}
		c.DefaultHeaders[key] = value
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *ClientConfig) {
		c.HTTPClient = httpClient
	}
}

// WithUserAgent sets a custom user agent
func WithUserAgent(userAgent string) ClientOption {
	return func(c *ClientConfig) {
		c.UserAgent = userAgent
	}
}
