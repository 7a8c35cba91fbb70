package hruser

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("hr user not found")
	ErrDuplicate = errors.New("username or email already exists")
)

type Repository interface {
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context) ([]User, error)
	CountActiveAdmins(ctx context.Context) (int, error)
}
