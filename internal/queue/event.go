// Package queue defines message payloads exchanged over the message broker.
package queue

// NotificationEvent is published whenever a flow wants to surface a
// user-visible outcome. Severity is "success" or "error"; downstream
// consumers log, toast, or alert without querying the portal.
type NotificationEvent struct {
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	OccurredAt string `json:"occurred_at"`
}

// UserUpdatedEvent is published when a dashboard edit is accepted by
// the directory. It carries the resulting record fields so consumers
// do not need a follow-up read.
type UserUpdatedEvent struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
	UpdatedBy   string `json:"updated_by"`
	UpdatedAt   string `json:"updated_at"`
}
