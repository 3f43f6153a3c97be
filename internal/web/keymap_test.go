package web

import (
	"testing"

	"gobooth/internal/logic/filter"
	"gobooth/internal/logic/session"
)

func TestEventForKey(t *testing.T) {
	tests := []struct {
		key  string
		want session.Event
	}{
		{" ", session.PrimaryPressed{}},
		{"Enter", session.PrimaryPressed{}},
		{"Backspace", session.UndoRequested{}},
		{"Delete", session.UndoRequested{}},
		{"Escape", session.ResetRequested{}},
		{"a", session.AutoToggled{}},
		{"A", session.AutoToggled{}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := EventForKey(tt.key)
			if !ok {
				t.Fatalf("EventForKey(%q) not handled", tt.key)
			}
			if got != tt.want {
				t.Errorf("EventForKey(%q) = %T, want %T", tt.key, got, tt.want)
			}
		})
	}
}

func TestEventForKey_UnhandledKeys(t *testing.T) {
	for _, key := range []string{"q", "Tab", "ArrowLeft", "F5", ""} {
		if ev, ok := EventForKey(key); ok {
			t.Errorf("EventForKey(%q) = %T, want unhandled", key, ev)
		}
	}
}

func TestEventForMessage_Actions(t *testing.T) {
	tests := []struct {
		name string
		msg  clientMessage
		want session.Event
	}{
		{"primary", clientMessage{Type: "action", Action: "primary"}, session.PrimaryPressed{}},
		{"undo", clientMessage{Type: "action", Action: "undo"}, session.UndoRequested{}},
		{"reset", clientMessage{Type: "action", Action: "reset"}, session.ResetRequested{}},
		{"auto", clientMessage{Type: "action", Action: "auto"}, session.AutoToggled{}},
		{"mirror", clientMessage{Type: "action", Action: "mirror"}, session.MirrorToggled{}},
		{"timer", clientMessage{Type: "action", Action: "timer"}, session.TimerCycled{}},
		{"proceed", clientMessage{Type: "action", Action: "proceed"}, session.ProceedRequested{}},
		{"filter", clientMessage{Type: "action", Action: "filter", Filter: "sepia"}, session.FilterToggled{ID: filter.Sepia}},
		{"key passthrough", clientMessage{Type: "key", Key: "Escape"}, session.ResetRequested{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := eventForMessage(tt.msg)
			if !ok {
				t.Fatal("message not handled")
			}
			if got != tt.want {
				t.Errorf("got %T, want %T", got, tt.want)
			}
		})
	}
}

func TestEventForMessage_Rejected(t *testing.T) {
	tests := []struct {
		name string
		msg  clientMessage
	}{
		{"unknown type", clientMessage{Type: "ping"}},
		{"unknown action", clientMessage{Type: "action", Action: "explode"}},
		{"unknown filter", clientMessage{Type: "action", Action: "filter", Filter: "vignette"}},
		{"unhandled key", clientMessage{Type: "key", Key: "q"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ev, ok := eventForMessage(tt.msg); ok {
				t.Errorf("got %T, want rejected", ev)
			}
		})
	}
}
