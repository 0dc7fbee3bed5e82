package auth

import "yogablocks/internal/domain/models"

// JWTVerifier validates bearer tokens issued by the identity provider.
type JWTVerifier interface {
	// VerifyToken validates a JWT and returns its claims.
	// Invalid, expired, anonymous or wrongly signed tokens return domain.ErrUnauthorized.
	VerifyToken(tokenString string) (*models.SupabaseClaims, error)

	// Close releases resources held by the verifier.
	Close() error
}
