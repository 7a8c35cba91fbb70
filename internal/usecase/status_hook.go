package usecase

import (
	"context"
	"log"

	"hr-recruitment/internal/domain/application"
)

// StatusHook runs after a status change has been committed. Returned errors
// are logged and never undo the change.
type StatusHook interface {
	AfterStatusChange(ctx context.Context, change application.StatusChange) error
}

type StatusHookFunc func(ctx context.Context, change application.StatusChange) error

func (f StatusHookFunc) AfterStatusChange(ctx context.Context, change application.StatusChange) error {
	return f(ctx, change)
}

// OnboardingHook is the accepted-to-join extension point. It only logs.
type OnboardingHook struct {
	Logger *log.Logger
}

func (h OnboardingHook) AfterStatusChange(_ context.Context, change application.StatusChange) error {
	if change.Status != application.StatusAcceptedToJoin || h.Logger == nil {
		return nil
	}
	h.Logger.Printf("[Onboarding] application accepted to join, no onboarding configured | application_id=%s", change.ApplicationID)
	return nil
}
