package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/connectorhq/fivetran-universal-connector/internal/domain"
)

// IdentityClient verifies bearer credentials against the identity provider.
// The credential is treated as opaque: it is forwarded, never parsed.
type IdentityClient struct {
	baseURL    string
	httpClient *http.Client
}

type IdentityClientDependencies struct {
	BaseURL    string
	Timeout    time.Duration // Optional - defaults to 10s
	HTTPClient *http.Client  // Optional
}

// NewIdentityClient creates a verifier bound to the identity provider base URL
func NewIdentityClient(deps IdentityClientDependencies) *IdentityClient {
	httpClient := deps.HTTPClient
	if httpClient == nil {
		timeout := deps.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{
			Timeout: timeout,
		}
	}

	return &IdentityClient{
		baseURL:    strings.TrimRight(deps.BaseURL, "/"),
		httpClient: httpClient,
	}
}

var _ domain.IdentityVerifier = (*IdentityClient)(nil)

// Verify exchanges a bearer credential for a verified username. Any failure
// along the way invalidates the request with an auth-kind error.
func (c *IdentityClient) Verify(ctx context.Context, credential string) (domain.VerifiedIdentity, error) {
	if credential == "" {
		return domain.VerifiedIdentity{}, domain.NewAuthError("missing bearer credential", nil)
	}

	if c.baseURL == "" {
		return domain.VerifiedIdentity{}, domain.NewConfigError("identity provider URL is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/userinfo", nil)
	if err != nil {
		return domain.VerifiedIdentity{}, domain.NewAuthError("identity verification failed", err)
	}

	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.VerifiedIdentity{}, domain.NewAuthError("identity verification failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.VerifiedIdentity{}, domain.NewAuthError("identity verification failed", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Debug().
			Int("status_code", resp.StatusCode).
			Msg("identity provider rejected credential")

		return domain.VerifiedIdentity{}, domain.NewAuthError("credential rejected by identity provider",
			fmt.Errorf("identity provider returned status %d", resp.StatusCode))
	}

	var userInfo struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(body, &userInfo); err != nil {
		return domain.VerifiedIdentity{}, domain.NewAuthError("identity verification failed",
			fmt.Errorf("failed to parse identity response: %w", err))
	}

	if userInfo.Username == "" {
		return domain.VerifiedIdentity{}, domain.NewAuthError("identity provider returned no username", nil)
	}

	return domain.VerifiedIdentity{Username: userInfo.Username}, nil
}
