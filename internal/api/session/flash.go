package session

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodforms/questionnaire/internal/core/domain"
	"github.com/foodforms/questionnaire/internal/core/ports"
)

// Flashes is the one-shot message queue of a single visitor. Messages pushed
// while handling one request are drained by the next rendered page.
type Flashes struct {
	store     ports.FlashStore
	visitorID string
	log       zerolog.Logger
}

func NewFlashes(store ports.FlashStore, visitorID string, log zerolog.Logger) *Flashes {
	return &Flashes{store: store, visitorID: visitorID, log: log}
}

func (f *Flashes) Success(ctx context.Context, text string) {
	f.push(ctx, domain.FlashMessage{Level: domain.FlashSuccess, Text: text})
}

func (f *Flashes) Error(ctx context.Context, text string) {
	f.push(ctx, domain.FlashMessage{Level: domain.FlashError, Text: text})
}

// Drain returns and clears the queued messages. Store failures only cost the
// messages, never the page.
func (f *Flashes) Drain(ctx context.Context) []domain.FlashMessage {
	if f == nil || f.store == nil {
		return nil
	}
	msgs, err := f.store.Drain(ctx, f.visitorID)
	if err != nil {
		f.log.Warn().Err(err).Str("visitor", f.visitorID).Msg("flash drain failed")
		return nil
	}
	return msgs
}

func (f *Flashes) push(ctx context.Context, msg domain.FlashMessage) {
	if f == nil || f.store == nil {
		return
	}
	if err := f.store.Push(ctx, f.visitorID, msg); err != nil {
		f.log.Warn().Err(err).Str("visitor", f.visitorID).Msg("flash push failed")
	}
}

func SetFlashes(c echo.Context, f *Flashes) {
	c.Set(flashesKey, f)
}

// FlashesFrom returns the visitor's queue; without the session middleware it
// returns a queue that drops everything.
func FlashesFrom(c echo.Context) *Flashes {
	f, ok := c.Get(flashesKey).(*Flashes)
	if !ok {
		return &Flashes{log: zerolog.Nop()}
	}
	return f
}
