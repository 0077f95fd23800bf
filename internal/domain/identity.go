package domain

import (
	"context"
)

// VerifiedIdentity is a username confirmed by the identity provider.
// It is valid only for the lifetime of the request that produced it and is
// used for logging context, not authorization decisions.
type VerifiedIdentity struct {
	Username string
}

// IdentityVerifier exchanges an opaque bearer credential for a verified
// identity by calling the external identity provider.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (VerifiedIdentity, error)
}
