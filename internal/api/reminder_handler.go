package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/deadlineai/remind-api/internal/api/shared"
	"github.com/deadlineai/remind-api/internal/domain"
	"github.com/deadlineai/remind-api/internal/platform/logger"
	"github.com/deadlineai/remind-api/internal/redact"
	"github.com/deadlineai/remind-api/internal/service"
)

// ReminderHandler handles reminder-related HTTP requests
type ReminderHandler struct {
	reminderService service.ReminderService
	logger          *slog.Logger
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(
	reminderService service.ReminderService,
	logger *slog.Logger,
) *ReminderHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReminderHandler")
	}

	return &ReminderHandler{
		reminderService: reminderService,
		logger:          logger.With(slog.String("component", "reminder_handler")),
	}
}

// CreateReminder handles POST /api/reminders requests.
// The reminder is stored immediately; delivery happens asynchronously when
// the scheduler picks it up, hence the 202 Accepted status.
func (h *ReminderHandler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	// Get logger from context or use default
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	// Parse request body
	var req CreateReminderRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Validate request
	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	// The uuid validation tag already vouched for the format
	deadlineID, err := uuid.Parse(req.DeadlineID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid deadline_id format")
		return
	}

	reminder, err := h.reminderService.CreateReminder(r.Context(), domain.NewReminderParams{
		DeadlineID:  deadlineID,
		Title:       req.Title,
		Description: req.Description,
		DeadlineAt:  req.DeadlineAt,
		TriggerAt:   req.TriggerAt,
		Channel:     domain.Channel(req.Channel),
		Recipient:   req.Recipient,
		Metadata:    req.Metadata,
	})
	if err != nil {
		// Map to appropriate status code and get sanitized message
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)

		// For generic server errors, use a specific message
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create reminder"
		}

		// Log the full error but only send sanitized message to client
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("reminder created",
		slog.String("reminder_id", reminder.ID.String()),
		slog.String("channel", string(reminder.Channel)))
	shared.RespondWithJSON(w, r, http.StatusAccepted, reminderToResponse(reminder))
}

// ListReminders handles GET /api/reminders requests.
// It accepts an optional status query parameter to filter the result.
func (h *ReminderHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	status := domain.ReminderStatus(r.URL.Query().Get("status"))

	reminders, err := h.reminderService.ListReminders(r.Context(), status)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to list reminders"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := RemindersResponse{
		Reminders: make([]ReminderResponse, 0, len(reminders)),
		Count:     len(reminders),
	}
	for _, reminder := range reminders {
		response.Reminders = append(response.Reminders, reminderToResponse(reminder))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetReminder handles GET /api/reminders/{id} requests
func (h *ReminderHandler) GetReminder(w http.ResponseWriter, r *http.Request) {
	// Get logger from context or use default
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		log.Warn("invalid reminder ID in URL path", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid reminder ID format")
		return
	}

	reminder, err := h.reminderService.GetReminder(r.Context(), id)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get reminder"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reminderToResponse(reminder))
}

// DismissReminder handles POST /api/reminders/{id}/dismiss requests.
// Only pending reminders can be dismissed; anything else yields 409.
func (h *ReminderHandler) DismissReminder(w http.ResponseWriter, r *http.Request) {
	// Get logger from context or use default
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		log.Warn("invalid reminder ID in URL path", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid reminder ID format")
		return
	}

	reminder, err := h.reminderService.DismissReminder(r.Context(), id)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to dismiss reminder"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("reminder dismissed", slog.String("reminder_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, reminderToResponse(reminder))
}

// RemoveReminder handles DELETE /api/reminders/{id} requests
func (h *ReminderHandler) RemoveReminder(w http.ResponseWriter, r *http.Request) {
	// Get logger from context or use default
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		log.Warn("invalid reminder ID in URL path", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid reminder ID format")
		return
	}

	if err := h.reminderService.RemoveReminder(r.Context(), id); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to remove reminder"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("reminder removed", slog.String("reminder_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// SaveSnapshot handles POST /api/snapshot requests.
// It persists the current reminder set to disk on demand, outside the
// periodic snapshot schedule.
func (h *ReminderHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	count, err := h.reminderService.SaveSnapshot(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to save snapshot", err,
		)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SnapshotSaveResponse{Count: count})
}

// reminderToResponse converts a domain.Reminder to a ReminderResponse
func reminderToResponse(reminder *domain.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:          reminder.ID.String(),
		DeadlineID:  reminder.DeadlineID.String(),
		Title:       reminder.Title,
		Description: reminder.Description,
		DeadlineAt:  reminder.DeadlineAt,
		TriggerAt:   reminder.TriggerAt,
		Channel:     string(reminder.Channel),
		Recipient:   reminder.Recipient,
		Status:      string(reminder.Status),
		LastError:   reminder.LastError,
		Metadata:    reminder.Metadata,
		CreatedAt:   reminder.CreatedAt,
		UpdatedAt:   reminder.UpdatedAt,
	}
}
