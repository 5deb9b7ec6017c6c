package logger

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Logger emits structured, leveled diagnostic records. eventID carries the
// inbound webhook event id so swallowed failures stay traceable.
type Logger interface {
	Info(action, message, eventID string, details map[string]any)
	Debug(action, message, eventID string, details map[string]any)
	Error(action, message, eventID string, details map[string]any, err error)
}

type jsonLogger struct {
	service  string
	hostname string
	mu       sync.Mutex
	out      io.Writer
}

func New(service string) Logger {
	hostname, _ := os.Hostname()
	return &jsonLogger{
		service:  service,
		hostname: hostname,
		out:      os.Stdout,
	}
}

// Nop returns a logger that discards all records. Used in tests.
func Nop() Logger {
	return &jsonLogger{service: "test", out: io.Discard}
}

func (l *jsonLogger) Info(action, message, eventID string, details map[string]any) {
	l.log("INFO", action, message, eventID, details, nil)
}

func (l *jsonLogger) Debug(action, message, eventID string, details map[string]any) {
	l.log("DEBUG", action, message, eventID, details, nil)
}

func (l *jsonLogger) Error(action, message, eventID string, details map[string]any, err error) {
	l.log("ERROR", action, message, eventID, details, err)
}

func (l *jsonLogger) log(level, action, message, eventID string, details map[string]any, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Service:   l.service,
		Hostname:  l.hostname,
		EventID:   eventID,
		Action:    action,
		Message:   message,
		Details:   details,
	}

	if err != nil {
		entry.Error = &ErrorInfo{Msg: err.Error()}
	}

	json.NewEncoder(l.out).Encode(entry)
}
