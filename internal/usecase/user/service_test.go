package user

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkopp/mysite-backend/domain"
)

type fakeUserRepo struct {
	byUsername map[string]domain.User
	byID       map[uuid.UUID]domain.User
	inserted   []domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byUsername: make(map[string]domain.User),
		byID:       make(map[uuid.UUID]domain.User),
	}
}

func (f *fakeUserRepo) add(u domain.User) {
	f.byUsername[u.Username] = u
	f.byID[u.ID] = u
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Insert(_ context.Context, u *domain.User) error {
	u.ID = uuid.New()
	f.inserted = append(f.inserted, *u)
	f.add(*u)
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return domain.ErrNotFound
	}
	f.add(*u)
	return nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (domain.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]domain.User, error) {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

const testSecret = "test-secret"

func TestRegister_HashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, []byte(testSecret), time.Hour)

	err := svc.Register(context.Background(), "alice", "alice@example.com", "hunter2")
	require.NoError(t, err)

	require.Len(t, repo.inserted, 1)
	stored := repo.inserted[0]
	assert.Equal(t, "alice", stored.Username)
	assert.NotEqual(t, "hunter2", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("hunter2")))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(domain.User{ID: uuid.New(), Username: "alice"})
	svc := NewService(repo, []byte(testSecret), time.Hour)

	err := svc.Register(context.Background(), "alice", "other@example.com", "hunter2")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, repo.inserted)
}

func TestLogin_IssuesParsableToken(t *testing.T) {
	repo := newFakeUserRepo()
	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	userID := uuid.New()
	repo.add(domain.User{ID: userID, Username: "alice", Password: string(hashed)})
	svc := NewService(repo, []byte(testSecret), time.Hour)

	tokenStr, err := svc.Login(context.Background(), "alice", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	token, err := jwt.Parse(tokenStr, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, userID.String(), claims["sub"])
	assert.Equal(t, "alice", claims["username"])
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.add(domain.User{ID: uuid.New(), Username: "alice", Password: string(hashed)})
	svc := NewService(repo, []byte(testSecret), time.Hour)

	_, err = svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewService(newFakeUserRepo(), []byte(testSecret), time.Hour)

	_, err := svc.Login(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByID_ProjectsIdentityOnly(t *testing.T) {
	repo := newFakeUserRepo()
	userID := uuid.New()
	repo.add(domain.User{ID: userID, Username: "alice", Email: "alice@example.com", Password: "secret-hash"})
	svc := NewService(repo, []byte(testSecret), time.Hour)

	info, err := svc.GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, "alice@example.com", info.Email)
}
