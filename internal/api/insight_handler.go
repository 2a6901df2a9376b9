package api

import (
	"log/slog"
	"net/http"

	"github.com/deadlineai/remind-api/internal/api/shared"
	"github.com/deadlineai/remind-api/internal/service"
)

// InsightHandler handles insight report HTTP requests
type InsightHandler struct {
	reminderService service.ReminderService
	logger          *slog.Logger
}

// NewInsightHandler creates a new InsightHandler
func NewInsightHandler(reminderService service.ReminderService, logger *slog.Logger) *InsightHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for InsightHandler")
	}

	return &InsightHandler{
		reminderService: reminderService,
		logger:          logger.With(slog.String("component", "insight_handler")),
	}
}

// GetInsights handles GET /api/reminders/insights requests.
// The report already carries JSON tags, so it is serialized directly.
func (h *InsightHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	report, err := h.reminderService.InsightReport(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to compute insights", err,
		)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, report)
}
