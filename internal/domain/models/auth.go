package models

import "github.com/golang-jwt/jwt/v5"

// AuthenticatedRole is the Supabase role carried by signed-in users.
const AuthenticatedRole = "authenticated"

// SupabaseClaims represents the JWT claims structure from Supabase Auth.
// See: https://supabase.com/docs/guides/auth/jwts
type SupabaseClaims struct {
	jwt.RegisteredClaims
	Email        string                 `json:"email"`
	Role         string                 `json:"role"` // "authenticated" or "anon"
	AAL          string                 `json:"aal"`
	SessionID    string                 `json:"session_id"`
	IsAnonymous  bool                   `json:"is_anonymous"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *SupabaseClaims) GetUserID() string {
	return c.Subject
}

// IsAuthenticated reports whether the claims belong to a signed-in, non-anonymous user.
func (c *SupabaseClaims) IsAuthenticated() bool {
	return c.Subject != "" && c.Role == AuthenticatedRole && !c.IsAnonymous
}
