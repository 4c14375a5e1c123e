package worker

import (
	"github.com/spec-kit/church-cms/internal/events"
	"github.com/spec-kit/church-cms/internal/service"
)

// StartSubscribers wires event consumers: cache invalidation on content
// changes and notifications on submitted needs.
func StartSubscribers(dispatcher events.Dispatcher, invalidator *service.CacheInvalidator, notifications *service.NotificationService) {
	if invalidator != nil {
		invalidator.RegisterHandlers(dispatcher)
	}
	if notifications != nil {
		notifications.RegisterHandlers()
	}
}
