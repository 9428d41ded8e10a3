// Package audit records the history of devtriage invocations.
// Events are stored as JSON Lines (JSONL) in a single file under the
// capture base directory.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// EventType classifies a history event.
type EventType string

const (
	EventRun   EventType = "run"
	EventFocus EventType = "focus"
	EventAbort EventType = "abort"
	EventError EventType = "error"
)

// Event represents a single history entry.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
	Runner    string    `json:"runner,omitempty"`
	Command   string    `json:"command,omitempty"`
	ExitCode  *int      `json:"exit_code,omitempty"`
	Dir       string    `json:"dir,omitempty"`
	Details   string    `json:"details,omitempty"`
}

// Logger appends and reads history events.
type Logger struct {
	path string
}

// NewLogger creates a history logger writing to path.
func NewLogger(path string) *Logger {
	return &Logger{path: path}
}

// Path returns the history file location.
func (l *Logger) Path() string {
	return l.path
}

// Log appends an event to the history. A missing timestamp or run ID is
// filled in.
func (l *Logger) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.RunID == "" {
		event.RunID = uuid.NewString()
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// Events reads all events in chronological order.
func (l *Logger) Events() ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading history: %w", err)
	}

	return events, nil
}

// Recent returns at most n of the latest events, oldest first. n <= 0
// returns everything.
func (l *Logger) Recent(n int) ([]Event, error) {
	events, err := l.Events()
	if err != nil || n <= 0 || len(events) <= n {
		return events, err
	}
	return events[len(events)-n:], nil
}

// IntPtr is a helper for filling Event.ExitCode.
func IntPtr(v int) *int {
	return &v
}
