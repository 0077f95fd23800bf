package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectorhq/fivetran-universal-connector/internal/domain"
	"github.com/connectorhq/fivetran-universal-connector/internal/middlewares"
	"github.com/connectorhq/fivetran-universal-connector/internal/server"
)

var testConfig = fiber.TestConfig{Timeout: 5 * time.Second, FailOnTimeout: true}

type stubVerifier struct {
	identity      domain.VerifiedIdentity
	err           error
	gotCredential string
	calls         int
}

func (s *stubVerifier) Verify(ctx context.Context, credential string) (domain.VerifiedIdentity, error) {
	s.calls++
	s.gotCredential = credential

	if s.err != nil {
		return domain.VerifiedIdentity{}, s.err
	}
	return s.identity, nil
}

func newProtectedApp(verifier domain.IdentityVerifier, handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: server.HandleError})

	app.Use(middlewares.RequestIDMiddleware())
	app.Use(middlewares.BearerAuthMiddleware(verifier))
	app.Get("/protected", handler)

	return app
}

func TestBearerAuthMiddlewarePassesIdentity(t *testing.T) {
	verifier := &stubVerifier{identity: domain.VerifiedIdentity{Username: "ops"}}

	handlerReached := false
	app := newProtectedApp(verifier, func(c fiber.Ctx) error {
		handlerReached = true

		identity, ok := middlewares.IdentityFrom(c)
		assert.True(t, ok)
		assert.Equal(t, "ops", identity.Username)

		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer tok-123")

	resp, err := app.Test(req, testConfig)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, handlerReached)
	assert.Equal(t, "tok-123", verifier.gotCredential)
}

func TestBearerAuthMiddlewareSchemeIsCaseInsensitive(t *testing.T) {
	verifier := &stubVerifier{identity: domain.VerifiedIdentity{Username: "ops"}}

	app := newProtectedApp(verifier, func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer tok-123")

	resp, err := app.Test(req, testConfig)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "tok-123", verifier.gotCredential)
}

func TestBearerAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	tests := []struct {
		name          string
		authorization string
	}{
		{name: "missing header", authorization: ""},
		{name: "bearer without token", authorization: "Bearer "},
		{name: "wrong scheme", authorization: "Basic Zm9vOmJhcg=="},
		{name: "token without scheme", authorization: "tok-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &stubVerifier{identity: domain.VerifiedIdentity{Username: "ops"}}

			handlerReached := false
			app := newProtectedApp(verifier, func(c fiber.Ctx) error {
				handlerReached = true
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}

			resp, err := app.Test(req, testConfig)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.False(t, handlerReached)

			// A request without a credential never reaches the verifier.
			assert.Equal(t, 0, verifier.calls)
		})
	}
}

func TestBearerAuthMiddlewareVerifierFailure(t *testing.T) {
	verifier := &stubVerifier{err: domain.NewAuthError("identity provider rejected the credential", nil)}

	handlerReached := false
	app := newProtectedApp(verifier, func(c fiber.Ctx) error {
		handlerReached = true
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer expired")

	resp, err := app.Test(req, testConfig)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, handlerReached)
	assert.Equal(t, 1, verifier.calls)
}

func TestRequestIDMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middlewares.RequestIDMiddleware())

	app.Get("/ping", func(c fiber.Ctx) error {
		assert.NotEmpty(t, middlewares.RequestIDFrom(c))
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), testConfig)
	require.NoError(t, err)
	resp.Body.Close()

	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "trace-7")

	resp, err = app.Test(req, testConfig)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "trace-7", resp.Header.Get("X-Request-Id"))
}
