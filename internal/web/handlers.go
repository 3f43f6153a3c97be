package web

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"gobooth/internal/debug"
	"gobooth/internal/logic/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// BoothInfo is the static booth configuration exposed to the browser.
type BoothInfo struct {
	MaxCaptures       int       `json:"max_captures"`
	TimerOptionsSec   []int     `json:"timer_options_sec"`
	DefaultTimerIndex int       `json:"default_timer_index"`
	CapturePauseMs    int       `json:"capture_pause_ms"`
	MirrorDefault     bool      `json:"mirror_default"`
	Boosts            BoostInfo `json:"boosts"`
}

// BoostInfo lists the value each filter toggle switches to.
type BoostInfo struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Saturate   float64 `json:"saturate"`
	Grayscale  float64 `json:"grayscale"`
	Sepia      float64 `json:"sepia"`
}

// SubmitFunc feeds one event into the session loop.
type SubmitFunc func(session.Event)

// SnapshotFunc returns the current session snapshot.
type SnapshotFunc func() session.Snapshot

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	Hub      *Hub
	Stream   *EventStream
	Submit   SubmitFunc
	Snapshot SnapshotFunc
	Info     BoothInfo
	staticFS fs.FS
}

// NewHandlers creates handlers with the given dependencies.
func NewHandlers(hub *Hub, stream *EventStream, submit SubmitFunc, snapshot SnapshotFunc, info BoothInfo, staticFS fs.FS) *Handlers {
	return &Handlers{
		Hub:      hub,
		Stream:   stream,
		Submit:   submit,
		Snapshot: snapshot,
		Info:     info,
		staticFS: staticFS,
	}
}

// HandleConfig returns the booth configuration as JSON.
func (h *Handlers) HandleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Info)
}

// HandleCaptures returns the current strip as JSON.
func (h *Handlers) HandleCaptures(w http.ResponseWriter, r *http.Request) {
	snap := h.Snapshot()
	strip := snap.Strip
	if strip == nil {
		strip = []session.Capture{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(strip)
}

// ServeIndex serves the main HTML page (root path only).
func (h *Handlers) ServeIndex(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(h.staticFS, "index.html")
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// HandleWS upgrades the connection and runs the view's read loop. Every
// message from the browser is decoded into a session event; unknown keys
// and actions are dropped silently.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		debug.Error(err)
		return
	}
	conn.SetReadLimit(512)

	h.Hub.Add(conn)
	defer h.Hub.Remove(conn)

	// Seed the fresh view with the current state.
	if err := h.Hub.SendTo(conn, stateMessage(h.Snapshot())); err != nil {
		debug.Error(err)
		return
	}

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type == "key" {
			debug.Key(msg.Key)
		}
		if ev, ok := eventForMessage(msg); ok {
			h.Submit(ev)
		}
	}
}

// HandleStatusStream handles GET /status/stream for SSE.
func (h *Handlers) HandleStatusStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // nginx

	ch, unsub := h.Stream.Subscribe()
	defer unsub()

	w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			w.Write([]byte("data: " + msg + "\n\n"))
			flusher.Flush()

		case <-ticker.C:
			w.Write([]byte(": heartbeat\n\n"))
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
