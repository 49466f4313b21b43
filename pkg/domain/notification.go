package domain

import (
	"math"
	"strconv"
)

// NotificationLevel hints how the UI should style a message.
type NotificationLevel string

const (
	LevelInfo    NotificationLevel = "info"
	LevelWarning NotificationLevel = "warning"
	LevelDanger  NotificationLevel = "danger"
)

// DefaultNotificationCapacity bounds the queue when content does not say otherwise.
const DefaultNotificationCapacity = 5

// Notification is a transient user-facing message.
// ExpiresAtMs is measured on the game clock; 0 means it stays until dismissed.
type Notification struct {
	ID          string            `json:"id"`
	Level       NotificationLevel `json:"level"`
	Message     string            `json:"message"`
	ExpiresAtMs int64             `json:"expires_at_ms,omitempty"`
}

// PushNotification appends a message, dropping the oldest entries beyond capacity.
// It returns the id assigned to the new entry.
func (s *GameState) PushNotification(level NotificationLevel, message string, durationMs int64, capacity int) string {
	if capacity <= 0 {
		capacity = DefaultNotificationCapacity
	}
	if level == "" {
		level = LevelInfo
	}
	s.NextNotificationID++
	n := Notification{
		ID:      "n" + strconv.Itoa(s.NextNotificationID),
		Level:   level,
		Message: message,
	}
	if durationMs > 0 {
		n.ExpiresAtMs = AddMs(s.ClockMs, durationMs)
	}
	s.Notifications = append(s.Notifications, n)
	if over := len(s.Notifications) - capacity; over > 0 {
		s.Notifications = append([]Notification{}, s.Notifications[over:]...)
	}
	return n.ID
}

// DismissNotification removes the entry with the given id and reports whether it existed.
func (s *GameState) DismissNotification(id string) bool {
	for i, n := range s.Notifications {
		if n.ID == id {
			s.Notifications = append(s.Notifications[:i:i], s.Notifications[i+1:]...)
			return true
		}
	}
	return false
}

// ExpireNotifications drops every timed entry whose expiry is at or before the game clock.
func (s *GameState) ExpireNotifications() int {
	kept := s.Notifications[:0:0]
	for _, n := range s.Notifications {
		if n.ExpiresAtMs > 0 && n.ExpiresAtMs <= s.ClockMs {
			continue
		}
		kept = append(kept, n)
	}
	dropped := len(s.Notifications) - len(kept)
	if kept == nil {
		kept = []Notification{}
	}
	s.Notifications = kept
	return dropped
}

// AddMs adds two non-negative game clock values, saturating at math.MaxInt64.
func AddMs(a, b int64) int64 {
	if b > math.MaxInt64-a {
		return math.MaxInt64
	}
	return a + b
}
