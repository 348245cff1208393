package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event topics, also used as the external pub/sub channel names.
const (
	TopicCommentAdded  = "blog.comment.added"
	TopicPostPublished = "blog.post.published"
)

// Event is an append-only fact announced by the blog core.
// Delivery is best effort and must never block or fail the mutation
// that produced the event.
type Event interface {
	Topic() string
}

// CommentAddedEvent is emitted once per successfully created comment.
type CommentAddedEvent struct {
	ID        uuid.UUID  `json:"id"`
	PostID    uuid.UUID  `json:"post_id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
}

func (CommentAddedEvent) Topic() string { return TopicCommentAdded }

// PostPublishedEvent is emitted once per newly published post.
type PostPublishedEvent struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	AuthorID    uuid.UUID `json:"author_id"`
	PublishedAt time.Time `json:"published_at"`
}

func (PostPublishedEvent) Topic() string { return TopicPostPublished }

// EventPublisher is the outbound side of the event bus.
// Publish must not block the caller's success path.
type EventPublisher interface {
	Publish(event Event)
}
