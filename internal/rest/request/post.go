package request

import (
	"github.com/google/uuid"
	"github.com/mkopp/mysite-backend/domain"
)

type Post struct {
	Slug         string   `json:"slug" binding:"required,slug"`
	Title        string   `json:"title" binding:"required,max=200"`
	Description  string   `json:"description" binding:"max=500"`
	Content      string   `json:"content" binding:"required"`
	Tags         []string `json:"tags"`
	ThumbnailURL string   `json:"thumbnail_url"`
}

// ToDomain: Request -> Domain
func (r *Post) ToDomain(authorID uuid.UUID) domain.Post {
	return domain.Post{
		Slug:         r.Slug,
		Title:        r.Title,
		Description:  r.Description,
		Content:      r.Content,
		Author:       domain.UserInfo{ID: authorID},
		Tags:         r.Tags,
		ThumbnailURL: r.ThumbnailURL,
	}
}

type PostUpdate struct {
	Title        string   `json:"title" binding:"required,max=200"`
	Description  string   `json:"description" binding:"max=500"`
	Content      string   `json:"content" binding:"required"`
	Tags         []string `json:"tags"`
	ThumbnailURL string   `json:"thumbnail_url"`
}
