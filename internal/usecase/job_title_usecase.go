package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"hr-recruitment/internal/domain/jobtitle"

	"github.com/google/uuid"
)

type JobTitleUsecase interface {
	ListActive(ctx context.Context) ([]jobtitle.JobTitle, error)
	ListAll(ctx context.Context) ([]jobtitle.JobTitle, error)
	Create(ctx context.Context, title string, isActive *bool) (jobtitle.JobTitle, error)
	Update(ctx context.Context, id uuid.UUID, title *string, isActive *bool) (jobtitle.JobTitle, error)
	SetActive(ctx context.Context, id uuid.UUID, isActive bool) (jobtitle.JobTitle, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type JobTitles struct {
	repo   jobtitle.Repository
	logger *log.Logger
	now    func() time.Time
}

func NewJobTitleUsecase(repo jobtitle.Repository, logger *log.Logger) *JobTitles {
	return &JobTitles{repo: repo, logger: logger, now: time.Now}
}

func (u *JobTitles) ListActive(ctx context.Context) ([]jobtitle.JobTitle, error) {
	items, err := u.repo.ListActive(ctx)
	if err != nil {
		u.logf("[JobTitles] list active failed | err=%v", err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *JobTitles) ListAll(ctx context.Context) ([]jobtitle.JobTitle, error) {
	items, err := u.repo.ListAll(ctx)
	if err != nil {
		u.logf("[JobTitles] list all failed | err=%v", err)
		return nil, ErrInternal
	}
	return items, nil
}

func (u *JobTitles) Create(ctx context.Context, title string, isActive *bool) (jobtitle.JobTitle, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return jobtitle.JobTitle{}, fieldErr("title", "is required")
	}

	now := u.now().UTC()
	j := jobtitle.JobTitle{
		ID:        uuid.New(),
		Title:     title,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if isActive != nil {
		j.IsActive = *isActive
	}

	if err := u.repo.Create(ctx, j); err != nil {
		return jobtitle.JobTitle{}, u.mapErr("create", err)
	}
	return j, nil
}

func (u *JobTitles) Update(ctx context.Context, id uuid.UUID, title *string, isActive *bool) (jobtitle.JobTitle, error) {
	j, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return jobtitle.JobTitle{}, u.mapErr("get", err)
	}

	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return jobtitle.JobTitle{}, fieldErr("title", "is required")
		}
		j.Title = t
	}
	if isActive != nil {
		j.IsActive = *isActive
	}
	j.UpdatedAt = u.now().UTC()

	if err := u.repo.Update(ctx, j); err != nil {
		return jobtitle.JobTitle{}, u.mapErr("update", err)
	}
	return j, nil
}

func (u *JobTitles) SetActive(ctx context.Context, id uuid.UUID, isActive bool) (jobtitle.JobTitle, error) {
	return u.Update(ctx, id, nil, &isActive)
}

func (u *JobTitles) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return u.mapErr("delete", err)
	}
	return nil
}

func (u *JobTitles) mapErr(op string, err error) error {
	switch {
	case errors.Is(err, jobtitle.ErrNotFound):
		return ErrJobTitleNotFound
	case errors.Is(err, jobtitle.ErrDuplicate):
		return ErrJobTitleExists
	}
	u.logf("[JobTitles] %s failed | err=%v", op, err)
	return ErrInternal
}

func (u *JobTitles) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
