package tui

import (
	"context"
	"sync"

	"github.com/runoshun/hourlog/internal/domain"
	"github.com/runoshun/hourlog/internal/usecase"
)

// Ensure Presenter implements domain.Presenter interface.
var _ domain.Presenter = (*Presenter)(nil)

// Presenter buffers replies produced during a console turn.
type Presenter struct {
	replies []domain.Reply
	mu      sync.Mutex
}

// NewPresenter creates an empty Presenter.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Present queues reply for the next drain.
func (p *Presenter) Present(ctx context.Context, _ string, reply domain.Reply) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.replies = append(p.replies, reply)
	return nil
}

// Drain returns and clears the queued replies.
func (p *Presenter) Drain() []domain.Reply {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.replies
	p.replies = nil
	return out
}

// TurnFunc runs one dialog turn for ev and returns the replies it produced.
type TurnFunc func(ctx context.Context, ev domain.Event) ([]domain.Reply, error)

// DialogTurns binds a dialog to a single console user.
// The dialog must present through presenter.
func DialogTurns(dialog *usecase.Dialog, presenter *Presenter, userID, username string) TurnFunc {
	return func(ctx context.Context, ev domain.Event) ([]domain.Reply, error) {
		_, err := dialog.Execute(ctx, usecase.DialogInput{
			UserID:   userID,
			Username: username,
			Event:    ev,
		})
		return presenter.Drain(), err
	}
}
