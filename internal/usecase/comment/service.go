package comment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mkopp/mysite-backend/domain"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type service struct {
	commentRepo  domain.CommentRepository
	likeRepo     domain.LikeRepository
	userResolver domain.UserResolver
	publisher    domain.EventPublisher
}

var _ domain.CommentUsecase = (*service)(nil)

// NewService wires the comment lifecycle. likeRepo must be the
// comment-like repository; post likes never show up in comment stats.
func NewService(commentRepo domain.CommentRepository, likeRepo domain.LikeRepository, userResolver domain.UserResolver, publisher domain.EventPublisher) *service {
	return &service{
		commentRepo:  commentRepo,
		likeRepo:     likeRepo,
		userResolver: userResolver,
		publisher:    publisher,
	}
}

// Create persists the comment and announces it. The parent, when set,
// is trusted to belong to the same post: callers obtain it from a
// prior listing, and the storage indices are the only check applied.
func (s *service) Create(ctx context.Context, c *domain.Comment) error {
	now := time.Now()
	c.ID = uuid.New()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.commentRepo.Store(ctx, c); err != nil {
		return err
	}

	s.publisher.Publish(domain.CommentAddedEvent{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		ParentID:  c.ParentID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	})
	return nil
}

func (s *service) ListTopLevel(ctx context.Context, postID uuid.UUID, page, size int) (domain.CommentPage, error) {
	page, size = normalizePage(page, size)

	total, err := s.commentRepo.CountTopLevel(ctx, postID)
	if err != nil {
		return domain.CommentPage{}, err
	}

	comments, err := s.commentRepo.FetchTopLevel(ctx, postID, (page-1)*size, size)
	if err != nil {
		return domain.CommentPage{}, err
	}

	items, err := s.withStats(ctx, comments)
	if err != nil {
		return domain.CommentPage{}, err
	}
	return domain.CommentPage{Items: items, Total: total, Page: page, Size: size}, nil
}

func (s *service) ListReplies(ctx context.Context, parentID uuid.UUID, page, size int) (domain.CommentPage, error) {
	page, size = normalizePage(page, size)

	total, err := s.commentRepo.CountByParent(ctx, parentID)
	if err != nil {
		return domain.CommentPage{}, err
	}

	comments, err := s.commentRepo.FetchReplies(ctx, parentID, (page-1)*size, size)
	if err != nil {
		return domain.CommentPage{}, err
	}

	items, err := s.withStats(ctx, comments)
	if err != nil {
		return domain.CommentPage{}, err
	}
	return domain.CommentPage{Items: items, Total: total, Page: page, Size: size}, nil
}

func (s *service) CountForPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	return s.commentRepo.CountByPost(ctx, postID)
}

func (s *service) CountReplies(ctx context.Context, parentID uuid.UUID) (int64, error) {
	return s.commentRepo.CountByParent(ctx, parentID)
}

func (s *service) Update(ctx context.Context, commentID, callerID uuid.UUID, content string) (domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return domain.Comment{}, err
	}
	if comment.AuthorID != callerID {
		return domain.Comment{}, domain.ErrForbidden
	}

	comment.Content = content
	comment.UpdatedAt = time.Now()
	if err := s.commentRepo.Update(ctx, &comment); err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}

func (s *service) Delete(ctx context.Context, commentID, callerID uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != callerID {
		return domain.ErrForbidden
	}
	// Hard delete of this comment only. Replies keep their rows and
	// simply stop being reachable through their parent's listing.
	return s.commentRepo.Delete(ctx, commentID)
}

// withStats fans out the reply count, like count and author lookup of
// every listed comment.
func (s *service) withStats(ctx context.Context, comments []domain.Comment) ([]domain.CommentWithStats, error) {
	items := make([]domain.CommentWithStats, len(comments))
	g, ctx := errgroup.WithContext(ctx)

	for i := range comments {
		i := i
		items[i].Comment = comments[i]
		g.Go(func() error {
			replies, err := s.commentRepo.CountByParent(ctx, comments[i].ID)
			if err != nil {
				return err
			}
			items[i].ReplyCount = replies
			return nil
		})
		g.Go(func() error {
			likes, err := s.likeRepo.Count(ctx, comments[i].ID)
			if err != nil {
				return err
			}
			items[i].LikeCount = likes
			return nil
		})
		g.Go(func() error {
			author, err := s.userResolver.Resolve(ctx, comments[i].AuthorID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					logrus.Warnf("comment %s references unknown author %s", comments[i].ID, comments[i].AuthorID)
					return nil
				}
				return err
			}
			items[i].Author = &author
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}
