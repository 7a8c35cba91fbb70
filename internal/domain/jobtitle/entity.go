package jobtitle

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("job title not found")
	ErrDuplicate = errors.New("job title already exists")
)

type JobTitle struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Repository interface {
	ListActive(ctx context.Context) ([]JobTitle, error)
	ListAll(ctx context.Context) ([]JobTitle, error)
	GetByID(ctx context.Context, id uuid.UUID) (JobTitle, error)
	Create(ctx context.Context, j JobTitle) error
	Update(ctx context.Context, j JobTitle) error
	Delete(ctx context.Context, id uuid.UUID) error
}
