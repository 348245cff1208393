package post

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mkopp/mysite-backend/domain"
	"github.com/mkopp/mysite-backend/internal/repository"
)

type Service struct {
	postRepo  domain.PostRepository
	userRepo  domain.UserRepository
	postCache domain.PostCache
	bloomRepo domain.BloomRepository
	publisher domain.EventPublisher
}

var _ domain.PostUsecase = (*Service)(nil)

// NewService will create a new post service object
func NewService(p domain.PostRepository, u domain.UserRepository, pc domain.PostCache, b domain.BloomRepository, pub domain.EventPublisher) *Service {
	return &Service{
		postRepo:  p,
		userRepo:  u,
		postCache: pc,
		bloomRepo: b,
		publisher: pub,
	}
}

func (s *Service) Fetch(ctx context.Context, cursor string, num int64) ([]domain.Post, string, error) {
	res, err := s.postRepo.Fetch(ctx, cursor, num)
	if err != nil {
		return nil, "", err
	}

	res, err = s.fillAuthorDetails(ctx, res)
	if err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(res) > 0 {
		nextCursor = repository.EncodeCursor(res[len(res)-1].CreatedAt)
	}
	return res, nextCursor, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (domain.Post, error) {
	exists, err := s.bloomRepo.Exists(ctx, id)
	if err == nil && !exists {
		logrus.Warnf("bloom filter says post %s does not exist", id)
		return domain.Post{}, domain.ErrNotFound
	}

	res, err := s.postCache.GetPost(ctx, id)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("cache get error: %v", err)
	}

	res, err = s.postRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}

	author, err := s.userRepo.GetByID(ctx, res.Author.ID)
	if err != nil {
		return domain.Post{}, err
	}
	res.Author = author.Info()

	go func(p domain.Post) {
		if err := s.postCache.SetPost(context.Background(), &p); err != nil {
			logrus.Warnf("failed to set cache: %v", err)
		}
	}(res)

	return res, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (domain.Post, error) {
	res, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return domain.Post{}, err
	}

	author, err := s.userRepo.GetByID(ctx, res.Author.ID)
	if err != nil {
		return domain.Post{}, err
	}
	res.Author = author.Info()
	return res, nil
}

func (s *Service) FetchByTag(ctx context.Context, tag string, cursor string, num int64) ([]domain.Post, string, error) {
	res, err := s.postRepo.FetchByTag(ctx, tag, cursor, num)
	if err != nil {
		return nil, "", err
	}

	res, err = s.fillAuthorDetails(ctx, res)
	if err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(res) > 0 {
		nextCursor = repository.EncodeCursor(res[len(res)-1].CreatedAt)
	}
	return res, nextCursor, nil
}

func (s *Service) Store(ctx context.Context, p *domain.Post) error {
	_, err := s.postRepo.GetBySlug(ctx, p.Slug)
	if err == nil {
		return domain.ErrConflict
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	author, err := s.userRepo.GetByID(ctx, p.Author.ID)
	if err != nil {
		return err
	}
	p.Author = author.Info()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.PublishedAt.IsZero() {
		p.PublishedAt = now
	}

	if err := s.postRepo.Store(ctx, p); err != nil {
		return err
	}

	if err := s.bloomRepo.Add(ctx, p.ID); err != nil {
		logrus.Warnf("failed to add post %s to bloom filter: %v", p.ID, err)
	}

	s.publisher.Publish(domain.PostPublishedEvent{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		AuthorID:    p.Author.ID,
		PublishedAt: p.PublishedAt,
	})
	return nil
}

func (s *Service) Update(ctx context.Context, p *domain.Post) error {
	existing, err := s.postRepo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}

	p.Slug = existing.Slug // slug is immutable once published
	p.UpdatedAt = time.Now()
	if err := s.postRepo.Update(ctx, p); err != nil {
		return err
	}

	go func(id uuid.UUID) {
		_ = s.postCache.DeletePost(context.Background(), id)
	}(p.ID)

	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}

	go func(id uuid.UUID) {
		_ = s.postCache.DeletePost(context.Background(), id)
	}(id)

	return nil
}

// InitBloomFilter warms the filter with every known post ID.
func (s *Service) InitBloomFilter(ctx context.Context) error {
	ids, err := s.postRepo.FetchIDs(ctx)
	if err != nil {
		return err
	}
	return s.bloomRepo.BulkAdd(ctx, ids)
}

// fillAuthorDetails 批量填充作者信息
func (s *Service) fillAuthorDetails(ctx context.Context, posts []domain.Post) ([]domain.Post, error) {
	if len(posts) == 0 {
		return posts, nil
	}

	authorIDs := make([]uuid.UUID, 0, len(posts))
	existMap := make(map[uuid.UUID]bool)
	for _, p := range posts {
		if !existMap[p.Author.ID] {
			authorIDs = append(authorIDs, p.Author.ID)
			existMap[p.Author.ID] = true
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]domain.UserInfo, len(users))
	for _, u := range users {
		byID[u.ID] = u.Info()
	}
	for i := range posts {
		if info, ok := byID[posts[i].Author.ID]; ok {
			posts[i].Author = info
		}
	}
	return posts, nil
}
