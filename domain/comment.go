package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Comment domain model. A nil ParentID means the comment sits directly
// under the post; otherwise it is a reply to another comment.
type Comment struct {
	ID        uuid.UUID  `json:"id"`
	PostID    uuid.UUID  `json:"post_id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CommentWithStats decorates a comment with the aggregates a listing
// needs. Counts are fetched alongside the comment, never denormalized
// into the comment row.
type CommentWithStats struct {
	Comment
	Author     *UserInfo `json:"author,omitempty"`
	ReplyCount int64     `json:"reply_count"`
	LikeCount  int64     `json:"like_count"`
}

// CommentPage is one page of a comment listing.
type CommentPage struct {
	Items []CommentWithStats `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
}

// CommentUsecase 业务逻辑接口
type CommentUsecase interface {
	// Create persists the comment and announces it on the event bus.
	// ID and timestamps are assigned here; the caller provides
	// PostID, AuthorID, Content and the optional ParentID.
	Create(ctx context.Context, c *Comment) error

	// ListTopLevel lists comments without a parent, newest first.
	ListTopLevel(ctx context.Context, postID uuid.UUID, page, size int) (CommentPage, error)

	// ListReplies lists the direct replies of a comment, oldest first.
	ListReplies(ctx context.Context, parentID uuid.UUID, page, size int) (CommentPage, error)

	CountForPost(ctx context.Context, postID uuid.UUID) (int64, error)
	CountReplies(ctx context.Context, parentID uuid.UUID) (int64, error)

	// Update replaces the content of a comment.
	// Returns ErrNotFound if the comment doesn't exist and ErrForbidden
	// if the caller is not its author.
	Update(ctx context.Context, commentID, callerID uuid.UUID, content string) (Comment, error)

	// Delete removes a comment. Same failure contract as Update.
	// Replies of the deleted comment are kept (no cascade).
	Delete(ctx context.Context, commentID, callerID uuid.UUID) error
}

// CommentRepository 数据存取接口
type CommentRepository interface {
	Store(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (Comment, error)
	Update(ctx context.Context, c *Comment) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FetchTopLevel 获取一级评论, created_at DESC
	FetchTopLevel(ctx context.Context, postID uuid.UUID, offset, limit int) ([]Comment, error)
	// FetchReplies 获取指定父评论的直接回复, created_at ASC
	FetchReplies(ctx context.Context, parentID uuid.UUID, offset, limit int) ([]Comment, error)

	// CountByPost counts every comment of a post, replies included.
	CountByPost(ctx context.Context, postID uuid.UUID) (int64, error)
	// CountTopLevel counts only the comments without a parent.
	CountTopLevel(ctx context.Context, postID uuid.UUID) (int64, error)
	CountByParent(ctx context.Context, parentID uuid.UUID) (int64, error)
}
