package domain

import "time"

// Notification types produced by the service itself
const (
	NotificationBookingCreated       = "booking_created"
	NotificationBookingStatusChanged = "booking_status_changed"
)

// Notification is a message shown in the user's notification feed
type Notification struct {
	ID        int64
	UserID    int64
	Type      string
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}
