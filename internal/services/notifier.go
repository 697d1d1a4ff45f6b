package services

import (
	"log/slog"
	"sync"
	"time"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier surfaces non-fatal outcomes to the operator.
type Notifier interface {
	Notify(level Level, message string)
}

type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Inbox keeps the most recent notifications and logs each one.
type Inbox struct {
	mu       sync.Mutex
	capacity int
	items    []Notification
	logger   *slog.Logger
}

func NewInbox(capacity int, logger *slog.Logger) *Inbox {
	if capacity <= 0 {
		capacity = 50
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Inbox{capacity: capacity, logger: logger}
}

func (in *Inbox) Notify(level Level, message string) {
	if level == LevelError {
		in.logger.Warn("notification", "level", level, "message", message)
	} else {
		in.logger.Info("notification", "level", level, "message", message)
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	in.items = append(in.items, Notification{Level: level, Message: message, At: time.Now()})
	if over := len(in.items) - in.capacity; over > 0 {
		in.items = append([]Notification(nil), in.items[over:]...)
	}
}

// Recent returns the stored notifications, oldest first.
func (in *Inbox) Recent() []Notification {
	in.mu.Lock()
	defer in.mu.Unlock()

	out := make([]Notification, len(in.items))
	copy(out, in.items)
	return out
}

// Last returns the newest notification, if any.
func (in *Inbox) Last() (Notification, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if len(in.items) == 0 {
		return Notification{}, false
	}
	return in.items[len(in.items)-1], true
}
