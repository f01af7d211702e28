package dto

import (
	"time"

	"github.com/finance-tracker/insights/internal/application/adapter"
)

// NotificationResponse represents a single notification.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Level     string    `json:"level"`
	Code      string    `json:"code,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationListResponse represents the live notifications.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// ToNotificationListResponse converts notifications to their DTO.
func ToNotificationListResponse(notifications []adapter.Notification) NotificationListResponse {
	items := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		items[i] = NotificationResponse{
			ID:        n.ID.String(),
			Level:     string(n.Level),
			Code:      n.Code,
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
		}
	}
	return NotificationListResponse{Notifications: items}
}
