package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User represents a user entity in the system.
// A user can register, login, and perform actions like writing posts and comments.
type User struct {
	ID        uuid.UUID // Unique identifier
	Username  string    // Login username (unique)
	Email     string    // Contact email
	FirstName string    // Given name
	LastName  string    // Family name
	Password  string    // Bcrypt hashed password
	CreatedAt time.Time // Account creation timestamp
	UpdatedAt time.Time // Last profile update timestamp
}

// UserInfo is the read-only identity projection the blog core consumes.
// The core never touches credentials or provisioning, only this value.
type UserInfo struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// Info projects the identity fields of a User.
func (u User) Info() UserInfo {
	return UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// UserResolver resolves an opaque user id to its identity facts.
// Comment and reaction services depend on this contract only, never on
// how the user was authenticated or provisioned.
type UserResolver interface {
	// Resolve returns ErrNotFound if no user exists for the given id.
	Resolve(ctx context.Context, id uuid.UUID) (UserInfo, error)
}

// UserRepository defines the contract for user data persistence.
type UserRepository interface {
	// GetByID retrieves a user by their ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetByID(ctx context.Context, id uuid.UUID) (User, error)

	// Insert creates a new user account.
	// Backfills the ID in the provided User object upon success.
	Insert(ctx context.Context, u *User) error

	// Update modifies an existing user's information.
	Update(ctx context.Context, u *User) error

	// GetByUsername retrieves a user by their username.
	// Used during login to verify credentials.
	GetByUsername(ctx context.Context, username string) (User, error)

	GetByIDs(ctx context.Context, userIDs []uuid.UUID) ([]User, error)
}

// UserUsecase defines the business logic contract for user operations.
// Handles authentication, registration, and user management.
type UserUsecase interface {
	// Register creates a new user account.
	// Returns ErrConflict if the username already exists.
	Register(ctx context.Context, username, email, password string) error

	// Login verifies user credentials and returns a JWT token.
	// Returns ErrNotFound if the user doesn't exist.
	// Returns ErrBadParamInput if the password is incorrect.
	Login(ctx context.Context, username, password string) (string, error)

	// GetByID returns the public identity of a user.
	GetByID(ctx context.Context, id uuid.UUID) (UserInfo, error)
}
