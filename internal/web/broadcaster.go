package web

import (
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// LogEvent is one entry on the booth activity feed, delivered over SSE.
type LogEvent struct {
	Time  string `json:"t"`
	Level string `json:"l,omitempty"`
	Msg   string `json:"msg"`
}

// EventStream fans activity messages out to any number of SSE clients.
type EventStream struct {
	mu      sync.RWMutex
	clients map[chan string]struct{}
}

func NewEventStream() *EventStream {
	return &EventStream{
		clients: make(map[chan string]struct{}),
	}
}

// Subscribe returns a channel of serialized events and a cleanup function
// the caller must invoke on disconnect.
func (s *EventStream) Subscribe() (<-chan string, func()) {
	ch := make(chan string, 64)
	s.mu.Lock()
	s.clients[ch] = struct{}{}
	s.mu.Unlock()

	unsub := func() {
		s.mu.Lock()
		delete(s.clients, ch)
		s.mu.Unlock()
		close(ch)
	}
	return ch, unsub
}

// Publish sends an event to every subscriber. Slow clients with a full
// buffer miss the event rather than stalling the booth.
func (s *EventStream) Publish(level, msg string) {
	data, err := json.Marshal(LogEvent{
		Time:  time.Now().Format(time.RFC3339),
		Level: level,
		Msg:   msg,
	})
	if err != nil {
		return
	}
	payload := string(data)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.clients {
		select {
		case ch <- payload:
		default:
		}
	}
}

// Writer adapts the stream as an io.Writer so the booth log can be teed
// into the activity feed.
func (s *EventStream) Writer() *streamWriter {
	return &streamWriter{s: s}
}

type streamWriter struct {
	s *EventStream
}

func (w *streamWriter) Write(p []byte) (int, error) {
	if msg := strings.TrimSpace(string(p)); msg != "" {
		w.s.Publish("info", msg)
	}
	return len(p), nil
}
