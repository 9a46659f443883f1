// internal/share/models.go
package share

import "nashville-eats/internal/models"

// Channels
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

type Input struct {
	Channel     string              `json:"channel"`
	To          string              `json:"to"`
	Restaurants []models.Restaurant `json:"restaurants"`
}

type Output struct {
	ShareID   string `json:"shareId"`
	Channel   string `json:"channel"`
	Status    string `json:"status"` // "sent", "failed", "disabled"
	MessageID string `json:"messageId,omitempty"`
	SentAt    string `json:"sentAt"` // ISO 8601
}
