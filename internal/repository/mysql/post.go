package mysql

import (
	"context"

	"github.com/google/uuid"
	"github.com/mkopp/mysite-backend/domain"
	"github.com/mkopp/mysite-backend/internal/repository"
	"github.com/mkopp/mysite-backend/internal/repository/mysql/model"
	"gorm.io/gorm"
)

type postRepository struct {
	DB *gorm.DB
}

var _ domain.PostRepository = (*postRepository)(nil)

func NewPostRepository(db *gorm.DB) *postRepository {
	return &postRepository{
		DB: db,
	}
}

func (r *postRepository) Fetch(ctx context.Context, cursor string, num int64) ([]domain.Post, error) {
	query := r.DB.WithContext(ctx).Preload("Tags")
	if cursor != "" {
		decodedCursor, err := repository.DecodeCursor(cursor)
		if err != nil {
			return nil, domain.ErrBadParamInput
		}
		query = query.Where("created_at < ?", decodedCursor)
	}

	var posts []model.Post
	err := query.
		Order("created_at DESC").
		Limit(int(num)).
		Find(&posts).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainPosts(posts), nil
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).Preload("Tags").First(&post, "id = ?", id).Error
	if err != nil {
		return domain.Post{}, translateError(err)
	}
	return post.ToDomain(), nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (domain.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).Preload("Tags").First(&post, "slug = ?", slug).Error
	if err != nil {
		return domain.Post{}, translateError(err)
	}
	return post.ToDomain(), nil
}

func (r *postRepository) FetchByTag(ctx context.Context, tag string, cursor string, num int64) ([]domain.Post, error) {
	query := r.DB.WithContext(ctx).Preload("Tags").
		Joins("JOIN post_tags ON post_tags.post_id = post.id").
		Joins("JOIN blog_tags ON blog_tags.id = post_tags.tag_id").
		Where("blog_tags.name = ?", tag)
	if cursor != "" {
		decodedCursor, err := repository.DecodeCursor(cursor)
		if err != nil {
			return nil, domain.ErrBadParamInput
		}
		query = query.Where("post.created_at < ?", decodedCursor)
	}

	var posts []model.Post
	err := query.
		Order("post.created_at DESC").
		Limit(int(num)).
		Find(&posts).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainPosts(posts), nil
}

func (r *postRepository) Store(ctx context.Context, p *domain.Post) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		postModel := model.NewPostFromDomain(p)
		tags, err := resolveTags(tx, p.Tags)
		if err != nil {
			return translateError(err)
		}
		postModel.Tags = tags

		// Omit("Tags.*") 只写关联表, 不重复插入标签行
		if err := tx.Omit("Tags.*").Create(postModel).Error; err != nil {
			return translateError(err)
		}
		return nil
	})
}

func (r *postRepository) Update(ctx context.Context, p *domain.Post) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Post{}).
			Where("id = ?", p.ID).
			Updates(map[string]any{
				"title":         p.Title,
				"description":   p.Description,
				"content":       p.Content,
				"thumbnail_url": p.ThumbnailURL,
				"updated_at":    p.UpdatedAt,
			})
		if result.Error != nil {
			return translateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		tags, err := resolveTags(tx, p.Tags)
		if err != nil {
			return translateError(err)
		}
		postModel := model.Post{ID: p.ID}
		if err := tx.Model(&postModel).Omit("Tags.*").Association("Tags").Replace(tags); err != nil {
			return translateError(err)
		}
		return nil
	})
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.Post{})
		if result.Error != nil {
			return translateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return translateError(tx.Exec("DELETE FROM post_tags WHERE post_id = ?", id).Error)
	})
}

func (r *postRepository) FetchIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.DB.WithContext(ctx).Model(&model.Post{}).Pluck("id", &ids).Error
	return ids, translateError(err)
}

// resolveTags finds or creates the tag rows for the given names.
func resolveTags(tx *gorm.DB, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		var t model.Tag
		err := tx.Where(model.Tag{Name: name}).
			Attrs(model.Tag{ID: uuid.New()}).
			FirstOrCreate(&t).Error
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func toDomainPosts(posts []model.Post) []domain.Post {
	res := make([]domain.Post, len(posts))
	for i := range posts {
		res[i] = posts[i].ToDomain()
	}
	return res
}
