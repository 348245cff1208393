package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/mkopp/mysite-backend/domain"
)

type Comment struct {
	ID        uuid.UUID  `gorm:"type:char(36);primaryKey"`
	PostID    uuid.UUID  `gorm:"type:char(36);column:post_id;not null;index"`
	AuthorID  uuid.UUID  `gorm:"type:char(36);column:author_id;not null"`
	ParentID  *uuid.UUID `gorm:"type:char(36);column:parent_id;index"`
	Content   string     `gorm:"type:text;not null"`
	CreatedAt time.Time  `gorm:"type:datetime"`
	UpdatedAt time.Time  `gorm:"type:datetime"`
}

func (Comment) TableName() string {
	return "comment"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	return &Comment{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		ID:        m.ID,
		PostID:    m.PostID,
		AuthorID:  m.AuthorID,
		ParentID:  m.ParentID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
