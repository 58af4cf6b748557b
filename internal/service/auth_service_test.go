package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"elderguard-data/internal/domain"
)

type fakeUsersStore struct {
	byEmail map[string]*domain.User
	created []*domain.User
}

func newFakeUsersStore() *fakeUsersStore {
	return &fakeUsersStore{byEmail: make(map[string]*domain.User)}
}

func (f *fakeUsersStore) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.UserID == userID {
			return u, nil
		}
	}
	return nil, assert.AnError
}

func (f *fakeUsersStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errUserNotFound
	}
	return u, nil
}

func (f *fakeUsersStore) CreateUser(ctx context.Context, user *domain.User) (string, error) {
	user.UserID = "user-" + user.Email
	f.byEmail[user.Email] = user
	f.created = append(f.created, user)
	return user.UserID, nil
}

func (f *fakeUsersStore) UpdateProfile(ctx context.Context, userID string, user *domain.User) error {
	return nil
}

var errUserNotFound = &notFoundError{}

type notFoundError struct{}

func (e *notFoundError) Error() string { return "user not found" }

func newTestAuthService(users *fakeUsersStore, demoLogin bool) AuthService {
	return NewAuthService(users, "test-secret", 30, demoLogin, zap.NewNop())
}

func TestSignup_Success(t *testing.T) {
	users := newFakeUsersStore()
	svc := newTestAuthService(users, false)

	user, err := svc.Signup(context.Background(), SignupRequest{
		Email:    "Mary@Example.com",
		Password: "secret123",
		FullName: "Mary",
	})

	require.NoError(t, err)
	assert.Equal(t, "mary@example.com", user.Email)
	assert.Equal(t, domain.RoleElder, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	users := newFakeUsersStore()
	svc := newTestAuthService(users, false)

	_, err := svc.Signup(context.Background(), SignupRequest{Email: "mary@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), SignupRequest{Email: "mary@example.com", Password: "other456"})
	assert.ErrorIs(t, err, ErrEmailRegistered)
}

func TestSignup_InvalidRole(t *testing.T) {
	svc := newTestAuthService(newFakeUsersStore(), false)

	_, err := svc.Signup(context.Background(), SignupRequest{
		Email:    "mary@example.com",
		Password: "secret123",
		Role:     "superuser",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid role")
}

func TestLogin_IssuesTokenAcceptedByAuthenticate(t *testing.T) {
	users := newFakeUsersStore()
	svc := newTestAuthService(users, false)

	_, err := svc.Signup(context.Background(), SignupRequest{
		Email:    "mary@example.com",
		Password: "secret123",
		Role:     domain.RoleCaregiver,
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "mary@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, domain.RoleCaregiver, resp.Role)
	assert.NotEmpty(t, resp.AccessToken)

	user, err := svc.Authenticate(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "mary@example.com", user.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := newFakeUsersStore()
	svc := newTestAuthService(users, false)

	_, err := svc.Signup(context.Background(), SignupRequest{Email: "mary@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "mary@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidLogin)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUsersStore(), false)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "secret123"})

	assert.ErrorIs(t, err, ErrInvalidLogin)
}

func TestAuthenticate_DemoTokenEnabled(t *testing.T) {
	svc := newTestAuthService(newFakeUsersStore(), true)

	user, err := svc.Authenticate(context.Background(), "demo-token")

	require.NoError(t, err)
	assert.Equal(t, "demo@elder.com", user.Email)
	assert.Equal(t, domain.RoleElder, user.Role)

	contacts, ok := domain.ParseContacts(user.EmergencyContacts.String)
	require.True(t, ok)
	require.Len(t, contacts, 1)
	assert.Equal(t, "1234567890", contacts[0].Phone)
}

func TestAuthenticate_DemoTokenDisabled(t *testing.T) {
	svc := newTestAuthService(newFakeUsersStore(), false)

	_, err := svc.Authenticate(context.Background(), "demo-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	svc := newTestAuthService(newFakeUsersStore(), true)

	_, err := svc.Authenticate(context.Background(), "not-a-jwt")

	assert.ErrorIs(t, err, ErrInvalidToken)
}
