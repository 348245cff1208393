package mysql

import (
	"context"

	"github.com/google/uuid"
	"github.com/mkopp/mysite-backend/domain"
	"github.com/mkopp/mysite-backend/internal/repository/mysql/model"
	"gorm.io/gorm"
)

// postLikeRepository persists likes on posts. The (post_id, user_id)
// unique index is the backstop that turns a toggle race into
// domain.ErrConflict instead of a duplicate row.
type postLikeRepository struct {
	DB *gorm.DB
}

var _ domain.LikeRepository = (*postLikeRepository)(nil)

func NewPostLikeRepository(db *gorm.DB) *postLikeRepository {
	return &postLikeRepository{
		DB: db,
	}
}

func (r *postLikeRepository) Store(ctx context.Context, like *domain.Like) error {
	if like.ID == uuid.Nil {
		like.ID = uuid.New()
	}
	err := r.DB.WithContext(ctx).Create(model.NewPostLikeFromDomain(like)).Error
	return translateError(err)
}

func (r *postLikeRepository) Delete(ctx context.Context, targetID, userID uuid.UUID) (bool, error) {
	result := r.DB.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", targetID, userID).
		Delete(&model.PostLike{})
	if result.Error != nil {
		return false, translateError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *postLikeRepository) Count(ctx context.Context, targetID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("post_id = ?", targetID).
		Count(&count).Error
	return count, translateError(err)
}

func (r *postLikeRepository) Exists(ctx context.Context, targetID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("post_id = ? AND user_id = ?", targetID, userID).
		Count(&count).Error
	return count > 0, translateError(err)
}

// commentLikeRepository mirrors postLikeRepository for the
// comment_likes table.
type commentLikeRepository struct {
	DB *gorm.DB
}

var _ domain.LikeRepository = (*commentLikeRepository)(nil)

func NewCommentLikeRepository(db *gorm.DB) *commentLikeRepository {
	return &commentLikeRepository{
		DB: db,
	}
}

func (r *commentLikeRepository) Store(ctx context.Context, like *domain.Like) error {
	if like.ID == uuid.Nil {
		like.ID = uuid.New()
	}
	err := r.DB.WithContext(ctx).Create(model.NewCommentLikeFromDomain(like)).Error
	return translateError(err)
}

func (r *commentLikeRepository) Delete(ctx context.Context, targetID, userID uuid.UUID) (bool, error) {
	result := r.DB.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", targetID, userID).
		Delete(&model.CommentLike{})
	if result.Error != nil {
		return false, translateError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *commentLikeRepository) Count(ctx context.Context, targetID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.CommentLike{}).
		Where("comment_id = ?", targetID).
		Count(&count).Error
	return count, translateError(err)
}

func (r *commentLikeRepository) Exists(ctx context.Context, targetID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.CommentLike{}).
		Where("comment_id = ? AND user_id = ?", targetID, userID).
		Count(&count).Error
	return count > 0, translateError(err)
}
