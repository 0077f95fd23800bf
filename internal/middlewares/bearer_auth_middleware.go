package middlewares

import (
	"strings"

	"github.com/connectorhq/fivetran-universal-connector/internal/domain"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

const identityLocalsKey = "verifiedIdentity"

// BearerAuthMiddleware verifies the Authorization bearer credential against
// the identity provider before any upstream work happens. Requests without a
// verifiable credential never reach the route handlers.
func BearerAuthMiddleware(verifier domain.IdentityVerifier) fiber.Handler {
	return func(c fiber.Ctx) error {
		credential := bearerCredential(c.Get("Authorization"))
		if credential == "" {
			log.Debug().
				Str("path", c.Path()).
				Str("method", c.Method()).
				Msg("Request rejected without bearer credential")

			return domain.NewAuthError("missing bearer credential", nil)
		}

		identity, err := verifier.Verify(c.RequestCtx(), credential)
		if err != nil {
			log.Warn().
				Err(err).
				Str("path", c.Path()).
				Str("method", c.Method()).
				Str("request_id", RequestIDFrom(c)).
				Msg("Bearer credential verification failed")

			return err
		}

		c.Locals(identityLocalsKey, identity)

		log.Debug().
			Str("path", c.Path()).
			Str("method", c.Method()).
			Str("username", identity.Username).
			Msg("Bearer credential verified")

		return c.Next()
	}
}

// bearerCredential extracts the token from an "Authorization: Bearer ..."
// header value. The scheme match is case-insensitive.
func bearerCredential(header string) string {
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// IdentityFrom returns the identity stored by BearerAuthMiddleware.
func IdentityFrom(c fiber.Ctx) (domain.VerifiedIdentity, bool) {
	identity, ok := c.Locals(identityLocalsKey).(domain.VerifiedIdentity)
	return identity, ok
}
