package httpapi

import (
	"context"
	"errors"
	"sync"

	"github.com/runoshun/hourlog/internal/domain"
)

// ErrNoSink is returned when a reply is presented outside an HTTP request.
var ErrNoSink = errors.New("no reply sink in context")

// Ensure Collector implements domain.Presenter.
var _ domain.Presenter = (*Collector)(nil)

// Collector is a Presenter that buffers replies in the request context,
// so each webhook call returns the replies produced by its own turn.
type Collector struct{}

// sink accumulates the replies of one request.
type sink struct {
	replies []domain.Reply
	mu      sync.Mutex
}

type sinkKey struct{}

// withSink returns a context carrying a fresh reply sink.
func withSink(ctx context.Context) (context.Context, *sink) {
	s := &sink{}
	return context.WithValue(ctx, sinkKey{}, s), s
}

// Present appends reply to the request's sink.
func (Collector) Present(ctx context.Context, _ string, reply domain.Reply) error {
	s, ok := ctx.Value(sinkKey{}).(*sink)
	if !ok {
		return ErrNoSink
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, reply)
	return nil
}

func (s *sink) drain() []domain.Reply {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.replies
	s.replies = nil
	return out
}
