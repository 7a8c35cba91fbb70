package ws

import (
	"context"
	"encoding/json"
	"time"

	"hr-recruitment/internal/domain/application"
)

type StatusChangedEvent struct {
	Type           string             `json:"type"`
	ApplicationID  string             `json:"applicationId"`
	PreviousStatus application.Status `json:"previousStatus"`
	Status         application.Status `json:"status"`
	Timestamp      string             `json:"timestamp"`
}

// StatusBroadcaster publishes every status transition to connected staff.
type StatusBroadcaster struct {
	hub *Hub
}

func NewStatusBroadcaster(hub *Hub) *StatusBroadcaster {
	return &StatusBroadcaster{hub: hub}
}

func (b *StatusBroadcaster) AfterStatusChange(_ context.Context, change application.StatusChange) error {
	if b == nil || b.hub == nil {
		return nil
	}

	ts := change.UpdatedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	msg, err := json.Marshal(StatusChangedEvent{
		Type:           "application_status_changed",
		ApplicationID:  change.ApplicationID.String(),
		PreviousStatus: change.Previous,
		Status:         change.Status,
		Timestamp:      ts.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	b.hub.Broadcast(msg)
	return nil
}
