package reaction

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mkopp/mysite-backend/domain"
)

// service applies like semantics uniformly to posts and comments by
// dispatching on the target kind. Toggle correctness leans on the
// storage-level uniqueness constraint, not on read-then-act.
type service struct {
	repos map[domain.TargetKind]domain.LikeRepository
}

var _ domain.ReactionUsecase = (*service)(nil)

func NewService(postLikes, commentLikes domain.LikeRepository) *service {
	return &service{
		repos: map[domain.TargetKind]domain.LikeRepository{
			domain.TargetPost:    postLikes,
			domain.TargetComment: commentLikes,
		},
	}
}

func (s *service) repo(kind domain.TargetKind) (domain.LikeRepository, error) {
	repo, ok := s.repos[kind]
	if !ok {
		return nil, domain.ErrBadParamInput
	}
	return repo, nil
}

// Toggle removes the caller's like if one exists, otherwise creates
// one. Two concurrent toggles can both reach the create: the unique
// index turns the loser into ErrConflict, which is absorbed here by
// reading back the current state instead of failing the caller.
func (s *service) Toggle(ctx context.Context, kind domain.TargetKind, targetID, userID uuid.UUID) (domain.LikeStatus, error) {
	repo, err := s.repo(kind)
	if err != nil {
		return domain.LikeStatus{}, err
	}

	removed, err := repo.Delete(ctx, targetID, userID)
	if err != nil {
		return domain.LikeStatus{}, err
	}
	if !removed {
		like := &domain.Like{
			TargetID:  targetID,
			UserID:    userID,
			CreatedAt: time.Now(),
		}
		if err := repo.Store(ctx, like); err != nil {
			if !errors.Is(err, domain.ErrConflict) {
				return domain.LikeStatus{}, err
			}
			logrus.Debugf("lost toggle race on %s %s for user %s, reading back state", kind, targetID, userID)
		}
	}

	return s.status(ctx, repo, targetID, userID)
}

func (s *service) Count(ctx context.Context, kind domain.TargetKind, targetID uuid.UUID) (int64, error) {
	repo, err := s.repo(kind)
	if err != nil {
		return 0, err
	}
	return repo.Count(ctx, targetID)
}

func (s *service) IsLikedBy(ctx context.Context, kind domain.TargetKind, targetID, userID uuid.UUID) (bool, error) {
	repo, err := s.repo(kind)
	if err != nil {
		return false, err
	}
	return repo.Exists(ctx, targetID, userID)
}

func (s *service) Status(ctx context.Context, kind domain.TargetKind, targetID, userID uuid.UUID) (domain.LikeStatus, error) {
	repo, err := s.repo(kind)
	if err != nil {
		return domain.LikeStatus{}, err
	}
	return s.status(ctx, repo, targetID, userID)
}

func (s *service) status(ctx context.Context, repo domain.LikeRepository, targetID, userID uuid.UUID) (domain.LikeStatus, error) {
	count, err := repo.Count(ctx, targetID)
	if err != nil {
		return domain.LikeStatus{}, err
	}
	liked := false
	if userID != uuid.Nil {
		liked, err = repo.Exists(ctx, targetID, userID)
		if err != nil {
			return domain.LikeStatus{}, err
		}
	}
	return domain.LikeStatus{Count: count, Liked: liked}, nil
}
