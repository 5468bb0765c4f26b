package auth

import (
	"context"

	"github.com/google/uuid"
)

// Claims holds the validated identity extracted from a token.
type Claims struct {
	UserID uuid.UUID
}

// JWTService issues and validates the access tokens that carry a caller's
// identity. The rest of the system never parses credentials itself; it
// consumes the owner ID this service resolves.
type JWTService interface {
	// GenerateToken creates a signed access token for the given user.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken verifies a token and returns its claims.
	// Returns ErrExpiredToken or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}
