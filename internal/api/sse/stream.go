// Package sse writes server-sent event streams.
package sse

import (
	"net/http"
	"strings"
	"time"
)

// Time between keepalive comments
const pingPeriod = 30 * time.Second

// Event is one server-sent event
type Event struct {
	Name string
	Data string
}

// Serve streams events from in until it closes or the client disconnects.
// toEvent converts each value; a "connected" event is sent first.
func Serve[T any](w http.ResponseWriter, r *http.Request, in <-chan T, toEvent func(T) Event) {
	// Check if SSE is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Countdowns outlive the server write timeout
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	_, _ = w.Write(FormatMessage("connected", `{"status":"connected"}`))
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case v, ok := <-in:
			if !ok {
				return
			}
			ev := toEvent(v)
			if _, err := w.Write(FormatMessage(ev.Name, ev.Data)); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// FormatMessage formats an SSE message. Each line of data gets its own
// "data: " prefix.
func FormatMessage(name, data string) []byte {
	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(name)
	b.WriteByte('\n')
	data = strings.ReplaceAll(data, "\r\n", "\n")
	for _, line := range strings.Split(data, "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return []byte(b.String())
}
