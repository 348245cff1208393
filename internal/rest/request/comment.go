package request

import (
	"github.com/google/uuid"
	"github.com/mkopp/mysite-backend/domain"
)

type Comment struct {
	Content  string     `json:"content" binding:"required"` // for CREATE
	ParentID *uuid.UUID `json:"parent_id"`                  // nil means top-level
}

// ToDomain: Request -> Domain
func (r *Comment) ToDomain(postID, authorID uuid.UUID) domain.Comment {
	return domain.Comment{
		PostID:   postID,
		AuthorID: authorID,
		ParentID: r.ParentID,
		Content:  r.Content,
	}
}

type CommentUpdate struct {
	Content string `json:"content" binding:"required"`
}
