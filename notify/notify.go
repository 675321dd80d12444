// Package notify holds transient status messages with auto-dismissal, shown
// by the interactive shell after actions.
package notify

import (
	"sync"
	"time"
)

// Level classifies a message.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// Default display durations; errors linger a little longer.
const (
	DefaultDuration      = 3 * time.Second
	DefaultErrorDuration = 4 * time.Second
)

// Message is one transient notification.
type Message struct {
	ID    int
	Level Level
	Text  string
}

// Center collects messages and dismisses each after its duration elapses.
// There is no automatic retry semantics attached; a message is purely
// informational.
type Center struct {
	mu       sync.Mutex
	messages []Message
	nextID   int
}

// NewCenter constructs an empty notification center.
func NewCenter() *Center {
	return &Center{}
}

// Show adds a message and schedules its dismissal. A non-positive duration
// keeps the message until removed explicitly.
func (c *Center) Show(level Level, text string, duration time.Duration) int {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.messages = append(c.messages, Message{ID: id, Level: level, Text: text})
	c.mu.Unlock()

	if duration > 0 {
		time.AfterFunc(duration, func() { c.Remove(id) })
	}
	return id
}

// Success posts a success message with the default duration.
func (c *Center) Success(text string) int {
	return c.Show(LevelSuccess, text, DefaultDuration)
}

// Error posts an error message with the longer default duration.
func (c *Center) Error(text string) int {
	return c.Show(LevelError, text, DefaultErrorDuration)
}

// Info posts an informational message with the default duration.
func (c *Center) Info(text string) int {
	return c.Show(LevelInfo, text, DefaultDuration)
}

// Warning posts a warning message with the default duration.
func (c *Center) Warning(text string) int {
	return c.Show(LevelWarning, text, DefaultDuration)
}

// Remove dismisses the message with the given id, if still present.
func (c *Center) Remove(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.messages[:0]
	for _, m := range c.messages {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	c.messages = kept
}

// Clear drops every message.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
}

// Active returns a copy of the currently visible messages.
func (c *Center) Active() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.messages...)
}
