package enums

import "fmt"

// NotificationType classifies in-app notifications.
type NotificationType string

const (
	NotificationTypeReminderToday    NotificationType = "reminder_today"
	NotificationTypeReminderUpcoming NotificationType = "reminder_upcoming"
	NotificationTypeSystem           NotificationType = "system"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeReminderToday,
	NotificationTypeReminderUpcoming,
	NotificationTypeSystem,
}

// String implements fmt.Stringer.
func (n NotificationType) String() string {
	return string(n)
}

// IsValid reports whether the type is recognized.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts a raw string into a NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	candidate := NotificationType(value)
	if candidate.IsValid() {
		return candidate, nil
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
