// Package notify carries user-facing notifications from the HTTP adapter
// (and other emitters) to whatever surface displays them. Emission is
// fire-and-forget: no emitter ever blocks on, or reads a result from, a
// notification.
package notify

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notification for display.
type Kind string

const (
	// KindConnectivity: a call received no response at all.
	KindConnectivity Kind = "connectivity"
	// KindSessionExpired: a 401 forced the session down.
	KindSessionExpired Kind = "session_expired"
	// KindAccessDenied: a 403; the session is intact, the action was not
	// allowed.
	KindAccessDenied Kind = "access_denied"
	// KindServerError: a 5xx.
	KindServerError Kind = "server_error"
	// KindInfo is free-form, used by consumers rather than the core.
	KindInfo Kind = "info"
)

// Notification is one user-facing message.
type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// New creates a Notification with a fresh id and the current time.
func New(kind Kind, message string) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Notifier receives notifications. Implementations must not block for long;
// slow surfaces belong behind a [Dispatcher].
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NoOpNotifier drops notifications.
type NoOpNotifier struct{}

func (NoOpNotifier) Notify(context.Context, Notification) {}

// ChannelNotifier writes notifications into a buffered channel.
type ChannelNotifier struct {
	ch chan Notification
}

func NewChannelNotifier(buffer int) *ChannelNotifier {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelNotifier{ch: make(chan Notification, buffer)}
}

func (s *ChannelNotifier) Notify(ctx context.Context, n Notification) {
	select {
	case s.ch <- n:
	case <-ctx.Done():
	}
}

func (s *ChannelNotifier) Notifications() <-chan Notification {
	return s.ch
}

// JSONWriterNotifier writes one JSON object per line.
type JSONWriterNotifier struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewJSONWriterNotifier(w io.Writer) *JSONWriterNotifier {
	return &JSONWriterNotifier{writer: w}
}

func (s *JSONWriterNotifier) Notify(_ context.Context, n Notification) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(n)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}
