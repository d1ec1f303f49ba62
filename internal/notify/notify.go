// Package notify delivers user-visible outcome notifications from
// the flows. The dashboard shows them as toasts; operationally they
// also land on the message broker for the audit consumer.
package notify

import (
	"context"
	"log"
	"time"

	q "github.com/iliyamo/user-admin-portal/internal/queue"
	queue_publisher "github.com/iliyamo/user-admin-portal/internal/service"
)

// Notifier receives success and error notifications. Implementations
// must never fail the calling flow: delivery problems are their own
// to log and swallow.
type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}

// Log writes notifications to the process log. Used in development
// and as the fallback when no broker is configured.
type Log struct{}

func (Log) Success(_ context.Context, message string) { log.Printf("notify: success: %s", message) }
func (Log) Error(_ context.Context, message string)   { log.Printf("notify: error: %s", message) }

// Queue publishes notifications to RabbitMQ as durable JSON messages.
// Publish failures are logged by the publisher and otherwise ignored:
// a lost toast must not fail a completed update.
type Queue struct{}

func (Queue) Success(ctx context.Context, message string) { publishEvent(ctx, "success", message) }
func (Queue) Error(ctx context.Context, message string)   { publishEvent(ctx, "error", message) }

func publishEvent(ctx context.Context, severity, message string) {
	_ = queue_publisher.PublishNotification(ctx, q.NotificationEvent{
		Severity:   severity,
		Message:    message,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
