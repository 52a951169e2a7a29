package auth

import (
	"context"
	"strconv"
	"testing"
	"time"

	"plant_journal/internal/domain"
	"plant_journal/internal/session"
	"plant_journal/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserStore implements store.Store with a fixed set of users; the plant
// and entry methods are never reached by the auth service.
type fakeUserStore struct {
	users map[string]*domain.User
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *domain.User) error {
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserStore) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) FindUserByID(ctx context.Context, id uint) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) CreatePlant(ctx context.Context, plant *domain.Plant) error { return nil }
func (f *fakeUserStore) ListPlantsForUser(ctx context.Context, userID uint) ([]domain.Plant, error) {
	return nil, nil
}
func (f *fakeUserStore) FindPlantByID(ctx context.Context, id uint) (*domain.Plant, error) {
	return nil, store.ErrNotFound
}
func (f *fakeUserStore) CreateEntry(ctx context.Context, entry *domain.Entry) error { return nil }
func (f *fakeUserStore) ListEntriesForPlant(ctx context.Context, plantID uint) ([]domain.Entry, error) {
	return nil, nil
}

// fakeSessions implements session.Manager in memory
type fakeSessions struct {
	next     int
	sessions map[string]uint
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]uint)}
}

func (f *fakeSessions) Create(ctx context.Context, userID uint) (string, error) {
	f.next++
	id := "sess-" + strconv.Itoa(f.next)
	f.sessions[id] = userID
	return id, nil
}

func (f *fakeSessions) UserID(ctx context.Context, id string) (uint, error) {
	if uid, ok := f.sessions[id]; ok {
		return uid, nil
	}
	return 0, session.ErrNotFound
}

func (f *fakeSessions) Delete(ctx context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeSessions) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	st := &fakeUserStore{users: map[string]*domain.User{
		"alice": {ID: 1, Username: "alice", Email: "alice@example.com", Password: string(hash)},
	}}
	sessions := newFakeSessions()
	return NewService(st, sessions, "test-secret", time.Hour), sessions
}

func TestLoginSuccess(t *testing.T) {
	svc, sessions := newTestService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Len(t, sessions.sessions, 1)

	user, err := svc.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, sessions := newTestService(t)

	token, err := svc.Login(context.Background(), "alice", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Empty(t, sessions.sessions, "no session may be issued on failure")
}

func TestLoginUnknownUser(t *testing.T) {
	svc, sessions := newTestService(t)

	token, err := svc.Login(context.Background(), "mallory", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Empty(t, sessions.sessions)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	_, err = svc.CurrentUser(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLogoutExpiredTokenDeletesSession(t *testing.T) {
	svc, sessions := newTestService(t)
	ctx := context.Background()

	sid, err := sessions.Create(ctx, 1)
	require.NoError(t, err)
	expired, err := GenerateToken(1, sid, "test-secret", -time.Minute)
	require.NoError(t, err)

	// The token no longer authenticates, but logout still clears the session
	_, err = svc.CurrentUser(ctx, expired)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	require.NoError(t, svc.Logout(ctx, expired))
	assert.Empty(t, sessions.sessions)
}

func TestCurrentUserTamperedToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)

	_, err = svc.CurrentUser(ctx, token+"x")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.CurrentUser(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
