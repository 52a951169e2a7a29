package auth

import (
	"time" // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// Claims carried by a session cookie token
type Claims struct {
	UserID               uint   `json:"user_id"`    // Custom claim for user ID
	SessionID            string `json:"session_id"` // Custom claim binding the token to a server-side session
	jwt.RegisteredClaims        // Standard JWT claims
}

// GenerateToken creates a signed session token for a given user and session ID
func GenerateToken(userID uint, sessionID, secret string, ttl time.Duration) (string, error) {
	// Set token claims
	claims := Claims{
		UserID:    userID,    // Custom claim for user ID
		SessionID: sessionID, // Server-side session this token is bound to
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)), // Token expires with the session
			IssuedAt:  jwt.NewNumericDate(time.Now()),          // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseToken parses and validates a session token string
func ParseToken(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	})
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}

// ParseTokenAllowExpired parses a session token checking the signature but
// not the expiry claim. Logout uses it so the session record behind an
// already-expired token is still deleted rather than lingering until TTL.
func ParseTokenAllowExpired(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithoutClaimsValidation())
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate signature and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if the signature is valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}
