package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkopp/mysite-backend/domain"
)

func TestRedisExternalizer_PublishesOnTopicChannel(t *testing.T) {
	client, mock := redismock.NewClientMock()
	sub := NewRedisExternalizer(client)

	event := domain.CommentAddedEvent{
		ID:        uuid.New(),
		PostID:    uuid.New(),
		AuthorID:  uuid.New(),
		Content:   "hello",
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	mock.ExpectPublish(domain.TopicCommentAdded, payload).SetVal(1)

	sub(context.Background(), event)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisExternalizer_PublishFailureIsSwallowed(t *testing.T) {
	client, mock := redismock.NewClientMock()
	sub := NewRedisExternalizer(client)

	event := domain.PostPublishedEvent{ID: uuid.New(), Slug: "hello"}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	mock.ExpectPublish(domain.TopicPostPublished, payload).SetErr(assert.AnError)

	// must not panic or surface the error
	sub(context.Background(), event)
	assert.NoError(t, mock.ExpectationsWereMet())
}
