package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkopp/mysite-backend/domain"
)

func TestPostCache_GetPost(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewPostCache(client)
	ctx := context.Background()

	post := domain.Post{
		ID:    uuid.New(),
		Slug:  "cached-post",
		Title: faker.Sentence(),
	}
	data, err := json.Marshal(&post)
	require.NoError(t, err)

	t.Run("Hit", func(t *testing.T) {
		mock.ExpectGet(fmt.Sprintf(KeyPost, post.ID)).SetVal(string(data))

		got, err := cache.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.ID, got.ID)
		assert.Equal(t, "cached-post", got.Slug)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Miss", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectGet(fmt.Sprintf(KeyPost, id)).RedisNil()

		_, err := cache.GetPost(ctx, id)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostCache_SetPost(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewPostCache(client)
	ctx := context.Background()

	post := domain.Post{
		ID:        uuid.New(),
		Slug:      "to-cache",
		Title:     faker.Sentence(),
		CreatedAt: time.Now().Truncate(time.Second),
	}
	data, err := json.Marshal(&post)
	require.NoError(t, err)

	mock.ExpectSet(fmt.Sprintf(KeyPost, post.ID), data, postCacheTTL).SetVal("OK")

	require.NoError(t, cache.SetPost(ctx, &post))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostCache_DeletePost(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewPostCache(client)
	ctx := context.Background()

	id := uuid.New()
	mock.ExpectDel(fmt.Sprintf(KeyPost, id)).SetVal(1)

	require.NoError(t, cache.DeletePost(ctx, id))
	assert.NoError(t, mock.ExpectationsWereMet())
}
