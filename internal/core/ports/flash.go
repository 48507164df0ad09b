package ports

import (
	"context"

	"github.com/foodforms/questionnaire/internal/core/domain"
)

// FlashStore keeps one-shot messages per visitor until the next rendered page.
type FlashStore interface {
	Push(ctx context.Context, visitorID string, msg domain.FlashMessage) error
	// Drain returns every queued message and clears the queue.
	Drain(ctx context.Context, visitorID string) ([]domain.FlashMessage, error)
}
