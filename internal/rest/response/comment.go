package response

import "github.com/mkopp/mysite-backend/domain"

type Comment struct {
	ID         string `json:"id"`
	PostID     string `json:"post_id"`
	AuthorID   string `json:"author_id"`
	ParentID   string `json:"parent_id,omitempty"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
	Author     *User  `json:"author,omitempty"`
	ReplyCount int64  `json:"reply_count"`
	LikeCount  int64  `json:"like_count"`
}

type CommentPage struct {
	Items []Comment `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Size  int       `json:"size"`
}

// NewCommentFromDomain: Domain -> Response
func NewCommentFromDomain(c *domain.CommentWithStats) Comment {
	parentID := ""
	if c.ParentID != nil {
		parentID = c.ParentID.String()
	}
	return Comment{
		ID:         c.ID.String(),
		PostID:     c.PostID.String(),
		AuthorID:   c.AuthorID.String(),
		ParentID:   parentID,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt.Format(DateTimeFormat),
		UpdatedAt:  c.UpdatedAt.Format(DateTimeFormat),
		Author:     NewUserFromDomain(c.Author),
		ReplyCount: c.ReplyCount,
		LikeCount:  c.LikeCount,
	}
}

// NewCommentPageFromDomain: Domain -> Response
func NewCommentPageFromDomain(p *domain.CommentPage) CommentPage {
	items := make([]Comment, len(p.Items))
	for i := range p.Items {
		items[i] = NewCommentFromDomain(&p.Items[i])
	}
	return CommentPage{
		Items: items,
		Total: p.Total,
		Page:  p.Page,
		Size:  p.Size,
	}
}
