// internal/share/service.go
package share

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "nashville-eats/internal/common/errors"
	"nashville-eats/internal/common/logger"
	"nashville-eats/internal/common/metrics"
	"nashville-eats/internal/models"

	"github.com/google/uuid"
)

const TaskType = "share-recommendations"

var (
	ErrNilInput           = errors.New("input cannot be nil")
	ErrUnsupportedChannel = errors.New("unsupported share channel")
	ErrNothingToShare     = errors.New("no restaurants to share")
)

// Define interfaces for mocking
type EmailSender interface {
	SendText(ctx context.Context, to, subject, body string) (string, error)
}

type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

// Service sends a recommendation list to a person by email or SMS.
// A nil sender disables its channel.
type Service struct {
	config *Config
	email  EmailSender
	sms    SMSSender
	logger logger.Logger
}

func NewService(config *Config, email EmailSender, sms SMSSender, log logger.Logger) *Service {
	return &Service{
		config: config,
		email:  email,
		sms:    sms,
		logger: log.WithFields(map[string]interface{}{"stage": TaskType}),
	}
}

// Send delivers the list. Delivery failures come back as a SHARE_FAILED
// StandardError.
func (s *Service) Send(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if len(input.Restaurants) == 0 {
		return nil, ErrNothingToShare
	}

	out := &Output{
		ShareID: uuid.New().String(),
		Channel: input.Channel,
		SentAt:  time.Now().UTC().Format(time.RFC3339),
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	var (
		messageID string
		err       error
	)
	switch input.Channel {
	case ChannelEmail:
		if !s.config.Enabled || s.email == nil {
			return s.disabled(out), nil
		}
		messageID, err = s.email.SendText(ctx, input.To, s.config.Subject, RenderText(input.Restaurants, s.config.MaxItems))
	case ChannelSMS:
		if !s.config.Enabled || !s.config.SMSEnabled || s.sms == nil {
			return s.disabled(out), nil
		}
		messageID, err = s.sms.SendSMS(ctx, input.To, RenderSMS(input.Restaurants, s.config.MaxItems))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedChannel, input.Channel)
	}

	if err != nil {
		metrics.SharesSent.WithLabelValues(input.Channel, StatusFailed).Inc()
		s.logger.Error("share send failed", map[string]interface{}{
			"channel": input.Channel,
			"error":   err.Error(),
		})
		return nil, apperrors.NewShareFailedError(input.Channel, err)
	}

	metrics.SharesSent.WithLabelValues(input.Channel, StatusSent).Inc()
	out.Status = StatusSent
	out.MessageID = messageID

	s.logger.Info("recommendations shared", map[string]interface{}{
		"shareId":   out.ShareID,
		"channel":   input.Channel,
		"itemCount": len(input.Restaurants),
	})
	return out, nil
}

func (s *Service) disabled(out *Output) *Output {
	metrics.SharesSent.WithLabelValues(out.Channel, StatusDisabled).Inc()
	out.Status = StatusDisabled
	return out
}

// RenderText formats a numbered list for email. maxItems <= 0 means no limit.
func RenderText(list []models.Restaurant, maxItems int) string {
	var b strings.Builder
	b.WriteString("Here are your Nashville restaurant picks:\n\n")
	for i, r := range limit(list, maxItems) {
		fmt.Fprintf(&b, "%d. %s", i+1, r.Name)
		var meta []string
		if r.Cuisine != "" {
			meta = append(meta, r.Cuisine)
		}
		if r.Neighborhood != "" {
			meta = append(meta, r.Neighborhood)
		}
		if r.PriceRange != "" {
			meta = append(meta, string(r.PriceRange))
		}
		if len(meta) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(meta, ", "))
		}
		b.WriteString("\n")
		if r.Address != "" {
			fmt.Fprintf(&b, "   %s\n", r.Address)
		}
		if r.Website != "" {
			fmt.Fprintf(&b, "   %s\n", r.Website)
		}
	}
	if extra := len(list) - len(limit(list, maxItems)); extra > 0 {
		fmt.Fprintf(&b, "\n...and %d more.\n", extra)
	}
	return b.String()
}

// RenderSMS is the compact variant: one name per line.
func RenderSMS(list []models.Restaurant, maxItems int) string {
	shown := limit(list, maxItems)
	lines := make([]string, 0, len(shown)+1)
	lines = append(lines, "Nashville picks:")
	for i, r := range shown {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, r.Name))
	}
	return strings.Join(lines, "\n")
}

func limit(list []models.Restaurant, maxItems int) []models.Restaurant {
	if maxItems > 0 && len(list) > maxItems {
		return list[:maxItems]
	}
	return list
}
