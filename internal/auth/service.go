package auth

import (
	"context" // Context for store and session calls
	"errors"  // Sentinel errors
	"time"    // Session lifetime

	"plant_journal/internal/domain"  // Importing domain models
	"plant_journal/internal/session" // Session records
	"plant_journal/internal/store"   // Persistence contract

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// Sentinel errors surfaced by the authentication service
var (
	ErrInvalidCredentials = errors.New("auth: invalid username or password") // Unknown user or wrong password
	ErrUnauthenticated    = errors.New("auth: unauthenticated")              // No valid session behind the token
)

// Service implements login, logout and session resolution. A session moves
// Anonymous -> Authenticated on Login and back on Logout; there are no other
// states.
type Service struct {
	store    store.Store     // User lookups
	sessions session.Manager // Server-side session records
	secret   string          // Token signing secret
	ttl      time.Duration   // Session and token lifetime
}

// NewService returns an authentication Service
func NewService(st store.Store, sessions session.Manager, secret string, ttl time.Duration) *Service {
	return &Service{store: st, sessions: sessions, secret: secret, ttl: ttl}
}

// Login checks credentials and establishes a session, returning the signed
// session token. Unknown users and wrong passwords are indistinguishable to
// the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials // Do not disclose which field was wrong
		}
		return "", err
	}
	// Constant-time comparison against the stored bcrypt hash
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	sessionID, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return "", err
	}
	return GenerateToken(user.ID, sessionID, s.secret, s.ttl)
}

// CurrentUser resolves a session token to the authenticated user. Any
// failure (bad signature, expired token, logged-out session, vanished user)
// collapses to ErrUnauthenticated.
func (s *Service) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := ParseToken(token, s.secret)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	userID, err := s.sessions.UserID(ctx, claims.SessionID)
	if err != nil || userID != claims.UserID {
		return nil, ErrUnauthenticated // Session gone or token/session mismatch
	}
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// Logout invalidates the session behind the token. Subsequent requests with
// the same token fail with ErrUnauthenticated. An expired token with a valid
// signature still identifies its session, which is deleted anyway.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := ParseTokenAllowExpired(token, s.secret)
	if err != nil {
		return ErrUnauthenticated
	}
	return s.sessions.Delete(ctx, claims.SessionID)
}
