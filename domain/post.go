package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Post is representing the blog Post data struct
type Post struct {
	ID           uuid.UUID // Unique identifier for the post
	Slug         string    // URL-friendly unique name
	Title        string    // Post title
	Description  string    // Short summary shown in listings
	Content      string    // Post body content
	Author       UserInfo  // Author information
	Tags         []string  // Tag names attached to the post
	ThumbnailURL string    // Optional thumbnail image
	PublishedAt  time.Time // When the post went public
	UpdatedAt    time.Time // Last update timestamp
	CreatedAt    time.Time // Creation timestamp
}

// PostRepository defines the contract for post data persistence
type PostRepository interface {
	// Fetch retrieves a paginated list of posts, newest first.
	// cursor: pass the cursor from the previous page or empty string for the first page.
	// num: number of posts to fetch per page.
	Fetch(ctx context.Context, cursor string, num int64) ([]Post, error)

	// GetByID retrieves a single post by its ID.
	// Returns ErrNotFound if the post doesn't exist.
	GetByID(ctx context.Context, id uuid.UUID) (Post, error)

	// GetBySlug retrieves a post by its slug.
	// Returns ErrNotFound if the post doesn't exist.
	GetBySlug(ctx context.Context, slug string) (Post, error)

	// FetchByTag retrieves posts carrying the given tag, newest first.
	FetchByTag(ctx context.Context, tag string, cursor string, num int64) ([]Post, error)

	// Store creates a new post. Tags are created on demand.
	Store(ctx context.Context, p *Post) error

	// Update modifies an existing post.
	Update(ctx context.Context, p *Post) error

	// Delete removes a post by its ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// FetchIDs lists all post IDs, used to warm the bloom filter.
	FetchIDs(ctx context.Context) ([]uuid.UUID, error)
}

// PostCache caches rendered posts to keep hot reads off the database.
type PostCache interface {
	// GetPost returns ErrCacheMiss when the post is not cached.
	GetPost(ctx context.Context, id uuid.UUID) (Post, error)
	SetPost(ctx context.Context, p *Post) error
	DeletePost(ctx context.Context, id uuid.UUID) error
}

type PostUsecase interface {
	Fetch(ctx context.Context, cursor string, num int64) ([]Post, string, error)
	GetByID(ctx context.Context, id uuid.UUID) (Post, error)
	GetBySlug(ctx context.Context, slug string) (Post, error)
	FetchByTag(ctx context.Context, tag string, cursor string, num int64) ([]Post, string, error)
	Store(ctx context.Context, p *Post) error
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	InitBloomFilter(ctx context.Context) error
}
