package response

import (
	"github.com/mkopp/mysite-backend/domain"
)

const DateTimeFormat = "2006-01-02 15:04:05"

type Post struct {
	ID           string   `json:"id"`
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Content      string   `json:"content"`
	Author       *User    `json:"author,omitempty"`
	Tags         []string `json:"tags"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	PublishedAt  string   `json:"published_at"`
	UpdatedAt    string   `json:"updated_at"`
	CreatedAt    string   `json:"created_at"`
}

// NewPostFromDomain: Domain -> Response
func NewPostFromDomain(p *domain.Post) Post {
	author := p.Author
	return Post{
		ID:           p.ID.String(),
		Slug:         p.Slug,
		Title:        p.Title,
		Description:  p.Description,
		Content:      p.Content,
		Author:       NewUserFromDomain(&author),
		Tags:         p.Tags,
		ThumbnailURL: p.ThumbnailURL,
		PublishedAt:  p.PublishedAt.Format(DateTimeFormat),
		UpdatedAt:    p.UpdatedAt.Format(DateTimeFormat),
		CreatedAt:    p.CreatedAt.Format(DateTimeFormat),
	}
}
