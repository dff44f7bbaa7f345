// Package service holds the application's business rules.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/gosh00/FitnessApp/internal/middleware"
	"github.com/gosh00/FitnessApp/internal/notifications"
)

// EventPublisher delivers live feed events. Implemented by the Redis
// notifier and, for single-instance setups, by the feed hub itself.
type EventPublisher interface {
	PublishFeedEvent(ctx context.Context, event notifications.FeedEvent) error
}

// Clock returns the current time. Tests pin it.
type Clock func() time.Time

func (c Clock) orNow() Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// today returns the calendar day of now in loc.
func today(now Clock, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return now.orNow()().In(loc)
}

// publish emits an event after a committed write. Failures are logged and
// never fail the request.
func publish(ctx context.Context, events EventPublisher, eventType string, payload interface{}) {
	if events == nil {
		return
	}
	if err := events.PublishFeedEvent(ctx, notifications.NewFeedEvent(eventType, payload)); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish feed event",
			slog.String("event", eventType),
			slog.String("error", err.Error()),
		)
	}
}
