package web

import (
	"gobooth/internal/logic/filter"
	"gobooth/internal/logic/session"
)

// EventForKey maps a DOM key name onto a session event. The second return
// is false for keys the booth does not handle.
func EventForKey(key string) (session.Event, bool) {
	switch key {
	case " ", "Enter":
		return session.PrimaryPressed{}, true
	case "Backspace", "Delete":
		return session.UndoRequested{}, true
	case "Escape":
		return session.ResetRequested{}, true
	case "a", "A":
		return session.AutoToggled{}, true
	}
	return nil, false
}

// eventForMessage decodes one browser message into a session event.
func eventForMessage(msg clientMessage) (session.Event, bool) {
	switch msg.Type {
	case "key":
		return EventForKey(msg.Key)
	case "action":
		switch msg.Action {
		case "primary":
			return session.PrimaryPressed{}, true
		case "undo":
			return session.UndoRequested{}, true
		case "reset":
			return session.ResetRequested{}, true
		case "auto":
			return session.AutoToggled{}, true
		case "mirror":
			return session.MirrorToggled{}, true
		case "timer":
			return session.TimerCycled{}, true
		case "proceed":
			return session.ProceedRequested{}, true
		case "filter":
			if id, ok := filterID(msg.Filter); ok {
				return session.FilterToggled{ID: id}, true
			}
		}
	}
	return nil, false
}

func filterID(name string) (filter.ID, bool) {
	switch filter.ID(name) {
	case filter.Brightness, filter.Contrast, filter.Grayscale, filter.Sepia, filter.Saturate:
		return filter.ID(name), true
	}
	return "", false
}
