package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/mkopp/mysite-backend/domain"
)

type Post struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Slug         string    `gorm:"type:varchar(120);uniqueIndex;not null"`
	Title        string    `gorm:"type:varchar(200);not null"`
	Description  string    `gorm:"type:varchar(500)"`
	Content      string    `gorm:"type:longtext;not null"`
	AuthorID     uuid.UUID `gorm:"type:char(36);column:author_id;not null;index"`
	ThumbnailURL string    `gorm:"type:varchar(500)"`
	PublishedAt  time.Time `gorm:"type:datetime"`
	UpdatedAt    time.Time `gorm:"type:datetime"`
	CreatedAt    time.Time `gorm:"type:datetime"`
	Tags         []Tag     `gorm:"many2many:post_tags"`
}

func (Post) TableName() string {
	return "post"
}

func NewPostFromDomain(p *domain.Post) *Post {
	tags := make([]Tag, len(p.Tags))
	for i, name := range p.Tags {
		tags[i] = Tag{Name: name}
	}
	return &Post{
		ID:           p.ID,
		Slug:         p.Slug,
		Title:        p.Title,
		Description:  p.Description,
		Content:      p.Content,
		AuthorID:     p.Author.ID,
		ThumbnailURL: p.ThumbnailURL,
		PublishedAt:  p.PublishedAt,
		UpdatedAt:    p.UpdatedAt,
		CreatedAt:    p.CreatedAt,
		Tags:         tags,
	}
}

func (m *Post) ToDomain() domain.Post {
	tags := make([]string, len(m.Tags))
	for i := range m.Tags {
		tags[i] = m.Tags[i].Name
	}
	return domain.Post{
		ID:           m.ID,
		Slug:         m.Slug,
		Title:        m.Title,
		Description:  m.Description,
		Content:      m.Content,
		Author:       domain.UserInfo{ID: m.AuthorID},
		Tags:         tags,
		ThumbnailURL: m.ThumbnailURL,
		PublishedAt:  m.PublishedAt,
		UpdatedAt:    m.UpdatedAt,
		CreatedAt:    m.CreatedAt,
	}
}
