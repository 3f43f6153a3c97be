package web

import (
	"gobooth/internal/logic/session"
)

// clientMessage is what the browser sends over the websocket. Keyboard
// input arrives as type "key" with the DOM key name; the on-screen buttons
// send their action directly.
type clientMessage struct {
	Type   string `json:"type"`
	Key    string `json:"key,omitempty"`
	Action string `json:"action,omitempty"`
	Filter string `json:"filter,omitempty"`
}

// serverMessage is the envelope for everything pushed to the browser.
type serverMessage struct {
	Type     string            `json:"type"`
	State    *session.Snapshot `json:"state,omitempty"`
	Frame    string            `json:"frame,omitempty"`
	Captures []session.Capture `json:"captures,omitempty"`
}

func stateMessage(snap session.Snapshot) serverMessage {
	return serverMessage{Type: "state", State: &snap}
}

func frameMessage(dataURI string) serverMessage {
	return serverMessage{Type: "frame", Frame: dataURI}
}

func layoutMessage(strip []session.Capture) serverMessage {
	return serverMessage{Type: "layout", Captures: strip}
}
