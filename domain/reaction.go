package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TargetKind selects which likeable entity a reaction applies to.
// Post likes and comment likes are stored as two independent tables
// sharing one toggle/count contract.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// Like is representing a like record on a single target.
// A like is never updated in place: it is created on the first toggle
// and deleted on the next one.
type Like struct {
	ID        uuid.UUID
	TargetID  uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
}

// LikeStatus is the state of a target as seen by one user.
type LikeStatus struct {
	Count int64 `json:"count"`
	Liked bool  `json:"liked"`
}

// LikeRepository defines the persistence contract for one target kind.
// The storage layer must enforce a uniqueness constraint on
// (target_id, user_id); a violating Store returns ErrConflict so the
// service can recover from concurrent toggles.
type LikeRepository interface {
	// Store creates a like record. Returns ErrConflict when a record
	// for the same (target, user) already exists.
	Store(ctx context.Context, like *Like) error

	// Delete removes the like of a user on a target. The bool reports
	// whether a record was actually removed.
	Delete(ctx context.Context, targetID, userID uuid.UUID) (bool, error)

	Count(ctx context.Context, targetID uuid.UUID) (int64, error)
	Exists(ctx context.Context, targetID, userID uuid.UUID) (bool, error)
}

// ReactionUsecase applies like semantics uniformly to posts and comments.
type ReactionUsecase interface {
	// Toggle creates the like if absent and removes it if present,
	// then reports the resulting state. A storage-level duplicate from
	// a concurrent toggle is absorbed, never surfaced.
	Toggle(ctx context.Context, kind TargetKind, targetID, userID uuid.UUID) (LikeStatus, error)

	Count(ctx context.Context, kind TargetKind, targetID uuid.UUID) (int64, error)
	IsLikedBy(ctx context.Context, kind TargetKind, targetID, userID uuid.UUID) (bool, error)

	// Status bundles Count and IsLikedBy for read endpoints.
	Status(ctx context.Context, kind TargetKind, targetID, userID uuid.UUID) (LikeStatus, error)
}
