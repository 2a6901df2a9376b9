package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/deadlineai/remind-api/internal/api/shared"
	"github.com/deadlineai/remind-api/internal/platform/logger"
)

// SchedulerController is the surface of the scheduler loop the API exposes.
// It is satisfied by scheduler.Scheduler.
type SchedulerController interface {
	// Start launches the dispatch loop; starting a running scheduler is a no-op
	Start()

	// Stop halts the dispatch loop, waiting briefly for an in-flight cycle
	Stop()

	// Running reports whether the dispatch loop is active
	Running() bool

	// Interval returns the tick interval of the dispatch loop
	Interval() time.Duration
}

// SchedulerHandler handles scheduler control HTTP requests
type SchedulerHandler struct {
	scheduler SchedulerController
	logger    *slog.Logger
}

// NewSchedulerHandler creates a new SchedulerHandler
func NewSchedulerHandler(scheduler SchedulerController, logger *slog.Logger) *SchedulerHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SchedulerHandler")
	}

	return &SchedulerHandler{
		scheduler: scheduler,
		logger:    logger.With(slog.String("component", "scheduler_handler")),
	}
}

// Status handles GET /api/scheduler requests
func (h *SchedulerHandler) Status(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.statusResponse())
}

// Start handles POST /api/scheduler/start requests.
// Starting an already running scheduler succeeds without effect.
func (h *SchedulerHandler) Start(w http.ResponseWriter, r *http.Request) {
	// Get logger from context or use default
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	h.scheduler.Start()

	log.Info("scheduler started via API")
	shared.RespondWithJSON(w, r, http.StatusOK, h.statusResponse())
}

// Stop handles POST /api/scheduler/stop requests.
// Stopping an already stopped scheduler succeeds without effect.
func (h *SchedulerHandler) Stop(w http.ResponseWriter, r *http.Request) {
	// Get logger from context or use default
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	h.scheduler.Stop()

	log.Info("scheduler stopped via API")
	shared.RespondWithJSON(w, r, http.StatusOK, h.statusResponse())
}

func (h *SchedulerHandler) statusResponse() SchedulerStatusResponse {
	return SchedulerStatusResponse{
		Running:         h.scheduler.Running(),
		IntervalSeconds: h.scheduler.Interval().Seconds(),
	}
}
