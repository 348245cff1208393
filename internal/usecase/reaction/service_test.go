package reaction

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkopp/mysite-backend/domain"
)

// fakeLikeRepo is an in-memory LikeRepository with the same uniqueness
// contract a real table with a unique index gives.
type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[string]struct{}

	storeErr error
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[string]struct{})}
}

func key(targetID, userID uuid.UUID) string {
	return targetID.String() + "/" + userID.String()
}

func (f *fakeLikeRepo) Store(_ context.Context, like *domain.Like) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.storeErr != nil {
		return f.storeErr
	}
	k := key(like.TargetID, like.UserID)
	if _, ok := f.likes[k]; ok {
		return domain.ErrConflict
	}
	f.likes[k] = struct{}{}
	return nil
}

func (f *fakeLikeRepo) Delete(_ context.Context, targetID, userID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key(targetID, userID)
	if _, ok := f.likes[k]; !ok {
		return false, nil
	}
	delete(f.likes, k)
	return true, nil
}

func (f *fakeLikeRepo) Count(_ context.Context, targetID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.likes {
		if len(k) > 36 && k[:36] == targetID.String() {
			n++
		}
	}
	return n, nil
}

func (f *fakeLikeRepo) Exists(_ context.Context, targetID, userID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.likes[key(targetID, userID)]
	return ok, nil
}

func TestToggle_CreatesThenRemoves(t *testing.T) {
	postLikes := newFakeLikeRepo()
	commentLikes := newFakeLikeRepo()
	svc := NewService(postLikes, commentLikes)
	ctx := context.Background()

	targetID := uuid.New()
	userID := uuid.New()

	status, err := svc.Toggle(ctx, domain.TargetPost, targetID, userID)
	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, int64(1), status.Count)

	status, err = svc.Toggle(ctx, domain.TargetPost, targetID, userID)
	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, int64(0), status.Count)
}

func TestToggle_IndependentPerKind(t *testing.T) {
	postLikes := newFakeLikeRepo()
	commentLikes := newFakeLikeRepo()
	svc := NewService(postLikes, commentLikes)
	ctx := context.Background()

	// 同一个 ID 在两个 kind 下互不影响
	targetID := uuid.New()
	userID := uuid.New()

	_, err := svc.Toggle(ctx, domain.TargetPost, targetID, userID)
	require.NoError(t, err)

	count, err := svc.Count(ctx, domain.TargetComment, targetID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	count, err = svc.Count(ctx, domain.TargetPost, targetID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestToggle_AbsorbsLostRace(t *testing.T) {
	postLikes := newFakeLikeRepo()
	svc := NewService(postLikes, newFakeLikeRepo())
	ctx := context.Background()

	targetID := uuid.New()
	userID := uuid.New()

	// Simulate the race: another toggle slipped its insert in between
	// our delete (miss) and our store.
	postLikes.storeErr = domain.ErrConflict
	postLikes.likes[key(targetID, userID)] = struct{}{}

	status, err := svc.Toggle(ctx, domain.TargetPost, targetID, userID)
	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, int64(1), status.Count)
}

func TestToggle_ManyUsersOneTarget(t *testing.T) {
	postLikes := newFakeLikeRepo()
	svc := NewService(postLikes, newFakeLikeRepo())
	ctx := context.Background()

	targetID := uuid.New()
	users := make([]uuid.UUID, 5)
	for i := range users {
		users[i] = uuid.New()
		_, err := svc.Toggle(ctx, domain.TargetPost, targetID, users[i])
		require.NoError(t, err)
	}

	count, err := svc.Count(ctx, domain.TargetPost, targetID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	// one of them untoggles
	status, err := svc.Toggle(ctx, domain.TargetPost, targetID, users[0])
	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, int64(4), status.Count)

	liked, err := svc.IsLikedBy(ctx, domain.TargetPost, targetID, users[1])
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestStatus_AnonymousCaller(t *testing.T) {
	postLikes := newFakeLikeRepo()
	svc := NewService(postLikes, newFakeLikeRepo())
	ctx := context.Background()

	targetID := uuid.New()
	_, err := svc.Toggle(ctx, domain.TargetPost, targetID, uuid.New())
	require.NoError(t, err)

	status, err := svc.Status(ctx, domain.TargetPost, targetID, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.Count)
	assert.False(t, status.Liked)
}

func TestToggle_UnknownKind(t *testing.T) {
	svc := NewService(newFakeLikeRepo(), newFakeLikeRepo())

	_, err := svc.Toggle(context.Background(), domain.TargetKind("page"), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}
