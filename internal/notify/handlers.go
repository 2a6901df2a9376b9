package notify

import (
	"context"
	"log/slog"

	"github.com/deadlineai/remind-api/internal/domain"
)

// The built-in handlers below log each delivery and succeed. They stand in
// for real transport integrations so every standard channel has a working
// default.

// EmailHandler delivers reminders over email.
type EmailHandler struct {
	logger *slog.Logger
}

// NewEmailHandler creates the default email handler.
func NewEmailHandler(logger *slog.Logger) *EmailHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmailHandler{logger: logger.With("component", "email_handler")}
}

// Notify implements the Handler interface.
// TODO: integrate with a real email service (SMTP or SendGrid).
func (h *EmailHandler) Notify(ctx context.Context, reminder *domain.Reminder) error {
	h.logger.Info("sending email notification",
		"recipient", reminder.Recipient,
		"title", reminder.Title,
		"reminder_id", reminder.ID.String())
	return nil
}

// SMSHandler delivers reminders over SMS.
type SMSHandler struct {
	logger *slog.Logger
}

// NewSMSHandler creates the default SMS handler.
func NewSMSHandler(logger *slog.Logger) *SMSHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SMSHandler{logger: logger.With("component", "sms_handler")}
}

// Notify implements the Handler interface.
// TODO: integrate with an SMS gateway (Twilio).
func (h *SMSHandler) Notify(ctx context.Context, reminder *domain.Reminder) error {
	h.logger.Info("sending sms notification",
		"recipient", reminder.Recipient,
		"title", reminder.Title,
		"reminder_id", reminder.ID.String())
	return nil
}

// PushHandler delivers reminders as push notifications.
type PushHandler struct {
	logger *slog.Logger
}

// NewPushHandler creates the default push handler.
func NewPushHandler(logger *slog.Logger) *PushHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PushHandler{logger: logger.With("component", "push_handler")}
}

// Notify implements the Handler interface.
// TODO: integrate with a push service (Firebase).
func (h *PushHandler) Notify(ctx context.Context, reminder *domain.Reminder) error {
	h.logger.Info("sending push notification",
		"recipient", reminder.Recipient,
		"title", reminder.Title,
		"reminder_id", reminder.ID.String())
	return nil
}

// InAppHandler records reminders for in-app display. Unlike the other
// channels it has no external recipient address to target.
type InAppHandler struct {
	logger *slog.Logger
}

// NewInAppHandler creates the default in-app handler.
func NewInAppHandler(logger *slog.Logger) *InAppHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InAppHandler{logger: logger.With("component", "in_app_handler")}
}

// Notify implements the Handler interface.
// TODO: persist for in-app display once a notification inbox exists.
func (h *InAppHandler) Notify(ctx context.Context, reminder *domain.Reminder) error {
	h.logger.Info("sending in-app notification",
		"title", reminder.Title,
		"reminder_id", reminder.ID.String())
	return nil
}

// RegisterDefaults installs the built-in handler for each of the four
// standard channels on the given registry.
func RegisterDefaults(registry *Registry, logger *slog.Logger) {
	registry.Register(domain.ChannelEmail, NewEmailHandler(logger))
	registry.Register(domain.ChannelSMS, NewSMSHandler(logger))
	registry.Register(domain.ChannelPush, NewPushHandler(logger))
	registry.Register(domain.ChannelInApp, NewInAppHandler(logger))
}
