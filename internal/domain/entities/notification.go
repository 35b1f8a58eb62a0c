package entities

import "time"

type NotificationVariant string

const (
	NotificationError NotificationVariant = "error"
	NotificationInfo  NotificationVariant = "info"
)

// DefaultNotificationDuration mirrors how long a transient message stays visible.
const DefaultNotificationDuration = 3 * time.Second

// Notification is a transient user-facing message.
type Notification struct {
	ID       string
	Subject  string
	Message  string
	Variant  NotificationVariant
	Duration time.Duration
}
