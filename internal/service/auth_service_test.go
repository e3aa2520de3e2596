package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songboard/internal/apperrors"
	"songboard/internal/config"
	"songboard/internal/models"
	"songboard/internal/repository"
)

type fakeUserRepo struct {
	users map[string]*models.User

	failQuery error
}

func newFakeUserRepo(seed ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*models.User{}}
	for _, user := range seed {
		clone := *user
		repo.users[user.ItemID] = &clone
	}
	return repo
}

func (f *fakeUserRepo) PutUser(_ context.Context, user *models.User) error {
	clone := *user
	f.users[user.ItemID] = &clone
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, userID string) (*models.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) QueryByUsername(_ context.Context, username string) (*models.User, error) {
	if f.failQuery != nil {
		return nil, f.failQuery
	}
	for _, user := range f.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, userID string, attrs repository.ProfileAttributes) error {
	user := f.users[userID]
	user.Username = attrs.Username
	user.Bio = attrs.Bio
	user.Genres = attrs.Genres
	user.ProfileImage = attrs.ProfileImage
	return nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, userID, role string) error {
	f.users[userID].Role = role
	return nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, userID string) error {
	delete(f.users, userID)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:  "test-secret",
		TokenDuration: time.Hour,
	}
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testConfig())
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "alice", "hunter2!")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ItemID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "user", user.Role)
	assert.Empty(t, user.Password)
	assert.NotEmpty(t, token)

	// The stored record keeps the hash, never the plaintext.
	stored := repo.users[user.ItemID]
	assert.NotEmpty(t, stored.Password)
	assert.NotEqual(t, "hunter2!", stored.Password)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ItemID: "u1", Username: "alice"})
	svc := NewAuthService(repo, testConfig())

	_, _, err := svc.Register(context.Background(), "alice", "hunter2!")
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.Equal(t, "Username already taken", apperrors.MessageOf(err))
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testConfig())
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "alice", "hunter2!")
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, "alice", "hunter2!")
	require.NoError(t, err)
	assert.Equal(t, registered.ItemID, user.ItemID)
	assert.Empty(t, user.Password)
	assert.NotEmpty(t, token)
}

func TestLoginBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testConfig())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice", "hunter2!")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice", "wrong-password")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, _, err = svc.Login(ctx, "nobody", "hunter2!")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testConfig())

	original := &models.User{ItemID: "u1", Username: "alice", Role: "admin"}
	token, err := svc.CreateToken(original)
	require.NoError(t, err)

	user, err := svc.GetUserFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ItemID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "admin", user.Role)
}

func TestGetUserFromTokenRejectsBadToken(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testConfig())

	_, err := svc.GetUserFromToken("not-a-token")
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))

	// Token signed with a different key.
	other := NewAuthService(newFakeUserRepo(), &config.Config{JWTSecretKey: "other-secret", TokenDuration: time.Hour})
	token, err := other.CreateToken(&models.User{ItemID: "u1", Username: "alice", Role: "user"})
	require.NoError(t, err)

	_, err = svc.GetUserFromToken(token)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}
