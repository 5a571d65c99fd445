package server

import (
	"fmt"
	"sync"
	"time"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// ConsoleLog implements core.Logger by keeping the most recent messages
// for the /api/console endpoint
type ConsoleLog struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	next     int
	full     bool
	stdout   bool
	now      func() time.Time
}

// NewConsoleLog creates a console that keeps up to capacity messages.
// When stdout is set every message is also written to stdout.
func NewConsoleLog(capacity int, stdout bool) *ConsoleLog {
	if capacity <= 0 {
		capacity = 1
	}
	return &ConsoleLog{
		messages: make([]ConsoleMessage, capacity),
		stdout:   stdout,
		now:      time.Now,
	}
}

// Printf implements core.Logger interface
func (c *ConsoleLog) Printf(format string, args ...interface{}) {
	c.add("info", fmt.Sprintf(format, args...))
}

// Errorf records a message at error level
func (c *ConsoleLog) Errorf(format string, args ...interface{}) {
	c.add("error", fmt.Sprintf(format, args...))
}

func (c *ConsoleLog) add(level, message string) {
	// Also write to stdout for server logs
	if c.stdout {
		fmt.Print(message)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages[c.next] = ConsoleMessage{
		Message:   message,
		Timestamp: c.now(),
		Level:     level,
	}
	c.next = (c.next + 1) % len(c.messages)
	if c.next == 0 {
		c.full = true
	}
}

// Messages returns the retained messages, oldest first
func (c *ConsoleLog) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.full {
		return append([]ConsoleMessage(nil), c.messages[:c.next]...)
	}
	out := make([]ConsoleMessage, 0, len(c.messages))
	out = append(out, c.messages[c.next:]...)
	return append(out, c.messages[:c.next]...)
}
