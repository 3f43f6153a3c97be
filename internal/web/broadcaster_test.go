package web

import (
	"encoding/json"
	"testing"
	"time"
)

func receiveEvent(t *testing.T, ch <-chan string) LogEvent {
	t.Helper()
	select {
	case msg := <-ch:
		var evt LogEvent
		if err := json.Unmarshal([]byte(msg), &evt); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return evt
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
		return LogEvent{}
	}
}

func TestEventStream_PublishAndReceive(t *testing.T) {
	s := NewEventStream()
	ch, unsub := s.Subscribe()
	defer unsub()

	s.Publish("info", "hello")

	evt := receiveEvent(t, ch)
	if evt.Msg != "hello" {
		t.Errorf("msg = %q, want \"hello\"", evt.Msg)
	}
	if evt.Level != "info" {
		t.Errorf("level = %q, want \"info\"", evt.Level)
	}
	if evt.Time == "" {
		t.Error("event should have a timestamp")
	}
}

func TestEventStream_MultipleSubscribers(t *testing.T) {
	s := NewEventStream()
	ch1, unsub1 := s.Subscribe()
	defer unsub1()
	ch2, unsub2 := s.Subscribe()
	defer unsub2()

	s.Publish("info", "multi")

	for i, ch := range []<-chan string{ch1, ch2} {
		evt := receiveEvent(t, ch)
		if evt.Msg != "multi" {
			t.Errorf("subscriber %d: msg = %q, want \"multi\"", i, evt.Msg)
		}
	}
}

func TestEventStream_UnsubscribeClosesChannel(t *testing.T) {
	s := NewEventStream()
	ch, unsub := s.Subscribe()
	unsub()

	if _, ok := <-ch; ok {
		t.Error("expected channel to be closed after unsubscribe")
	}

	// Publishing with no subscribers must not panic.
	s.Publish("info", "after unsub")
}

func TestEventStream_FullChannelDropsEvent(t *testing.T) {
	s := NewEventStream()
	ch, unsub := s.Subscribe()
	defer unsub()

	for i := 0; i < 64; i++ {
		s.Publish("info", "fill")
	}
	s.Publish("info", "overflow")

	count := 0
drain:
	for {
		select {
		case <-ch:
			count++
		default:
			break drain
		}
	}
	if count != 64 {
		t.Errorf("expected 64 buffered events, got %d", count)
	}
}

func TestStreamWriter_Write(t *testing.T) {
	s := NewEventStream()
	ch, unsub := s.Subscribe()
	defer unsub()

	line := "  capture 3/10  \n"
	n, err := s.Writer().Write([]byte(line))
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if n != len(line) {
		t.Errorf("n = %d, want %d", n, len(line))
	}

	evt := receiveEvent(t, ch)
	if evt.Msg != "capture 3/10" {
		t.Errorf("msg = %q, want trimmed line", evt.Msg)
	}
}

func TestStreamWriter_WhitespaceIgnored(t *testing.T) {
	s := NewEventStream()
	ch, unsub := s.Subscribe()
	defer unsub()

	s.Writer().Write([]byte("   \n"))

	select {
	case <-ch:
		t.Error("expected no event for whitespace-only write")
	case <-time.After(50 * time.Millisecond):
	}
}
