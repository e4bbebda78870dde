package tui

import "github.com/runoshun/hourlog/internal/domain"

// turnDoneMsg is sent when a dialog turn finishes.
type turnDoneMsg struct {
	err     error
	replies []domain.Reply
}
