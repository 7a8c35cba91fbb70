package usecase

import (
	"context"
	"errors"
	"log"

	"hr-recruitment/internal/domain/application"
	"hr-recruitment/internal/repository"

	"github.com/google/uuid"
)

type ApplicationStatusUsecase interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (application.StatusChange, error)
}

type ApplicationStatus struct {
	repo   repository.ApplicationStatusRepository
	hooks  []StatusHook
	logger *log.Logger
}

func NewApplicationStatusUsecase(repo repository.ApplicationStatusRepository, logger *log.Logger, hooks ...StatusHook) *ApplicationStatus {
	return &ApplicationStatus{repo: repo, hooks: hooks, logger: logger}
}

func (u *ApplicationStatus) UpdateStatus(ctx context.Context, id uuid.UUID, raw string) (application.StatusChange, error) {
	st, ok := application.ParseStatus(raw)
	if !ok {
		return application.StatusChange{}, ErrInvalidStatus
	}

	change, err := u.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return application.StatusChange{}, ErrApplicationNotFound
		}
		u.logf("[Applications] update status failed | application_id=%s err=%v", id, err)
		return application.StatusChange{}, ErrInternal
	}

	u.logf("[Applications] status changed | application_id=%s from=%s to=%s", id, change.Previous, change.Status)
	for _, h := range u.hooks {
		if err := h.AfterStatusChange(ctx, change); err != nil {
			u.logf("[Applications] status hook failed | application_id=%s err=%v", id, err)
		}
	}
	return change, nil
}

func (u *ApplicationStatus) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
