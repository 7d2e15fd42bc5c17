// Package notify carries toast messages from the core state entities
// to the rendering layer over a channel.
package notify

import "log/slog"

// Level classifies a toast.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

// Toast is one user-facing notification.
type Toast struct {
	Level Level
	Text  string
}

// Hub implements domain.Notifier over a buffered channel for Bubble
// Tea. Sends never block: if the rendering layer has fallen behind, the
// toast is dropped after logging it, since a toast is informational and
// must not stall core operations.
type Hub struct {
	ch     chan Toast
	logger *slog.Logger
}

// NewHub creates a toast hub with a small delivery buffer.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		ch:     make(chan Toast, 16),
		logger: logger,
	}
}

// Toasts exposes the delivery channel for the rendering layer to
// receive from.
func (h *Hub) Toasts() <-chan Toast {
	return h.ch
}

func (h *Hub) NotifySuccess(text string) {
	h.send(Toast{Level: LevelSuccess, Text: text})
}

func (h *Hub) NotifyError(text string) {
	h.send(Toast{Level: LevelError, Text: text})
}

func (h *Hub) send(t Toast) {
	h.logger.Debug("toast", "level", t.Level, "text", t.Text)
	select {
	case h.ch <- t:
	default: // Non-blocking if channel full
		h.logger.Warn("toast dropped, channel full", "text", t.Text)
	}
}
