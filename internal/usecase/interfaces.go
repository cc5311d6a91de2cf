package usecase

import (
	"context"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/infra/queue"
)

type RowStore = entity.RowStore

type DocumentStore = entity.DocumentStore

// NotificationDispatcher renders template for lead and delivers it to recipient.
type NotificationDispatcher interface {
	Send(ctx context.Context, template, recipient string, lead *entity.Lead) error
}

type EventPublisher interface {
	PublishLeadCaptured(ctx context.Context, event queue.LeadCapturedEvent) error
}
