package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/mkopp/mysite-backend/domain"
)

// PostLike and CommentLike are two structurally identical tables.
// Keeping them separate preserves a per-kind uniqueness constraint,
// which is what makes concurrent like toggles safe.

type PostLike struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	PostID    uuid.UUID `gorm:"type:char(36);column:post_id;not null;uniqueIndex:idx_post_user_like"`
	UserID    uuid.UUID `gorm:"type:char(36);column:user_id;not null;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (PostLike) TableName() string {
	return "post_likes"
}

func NewPostLikeFromDomain(l *domain.Like) *PostLike {
	return &PostLike{
		ID:        l.ID,
		PostID:    l.TargetID,
		UserID:    l.UserID,
		CreatedAt: l.CreatedAt,
	}
}

func (m *PostLike) ToDomain() domain.Like {
	return domain.Like{
		ID:        m.ID,
		TargetID:  m.PostID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
}

type CommentLike struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	CommentID uuid.UUID `gorm:"type:char(36);column:comment_id;not null;uniqueIndex:idx_comment_user_like"`
	UserID    uuid.UUID `gorm:"type:char(36);column:user_id;not null;uniqueIndex:idx_comment_user_like"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}

func NewCommentLikeFromDomain(l *domain.Like) *CommentLike {
	return &CommentLike{
		ID:        l.ID,
		CommentID: l.TargetID,
		UserID:    l.UserID,
		CreatedAt: l.CreatedAt,
	}
}

func (m *CommentLike) ToDomain() domain.Like {
	return domain.Like{
		ID:        m.ID,
		TargetID:  m.CommentID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
}
