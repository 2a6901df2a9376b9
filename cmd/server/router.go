package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/deadlineai/remind-api/internal/api"
	apiMiddleware "github.com/deadlineai/remind-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	// Create a router
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	reminderHandler := api.NewReminderHandler(app.reminderService, app.logger)
	schedulerHandler := api.NewSchedulerHandler(app.scheduler, app.logger)
	insightHandler := api.NewInsightHandler(app.reminderService, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Reminder endpoints. The insights route is registered alongside the
		// {id} routes; chi matches static segments before parameters.
		r.Post("/reminders", reminderHandler.CreateReminder)
		r.Get("/reminders", reminderHandler.ListReminders)
		r.Get("/reminders/insights", insightHandler.GetInsights)
		r.Get("/reminders/{id}", reminderHandler.GetReminder)
		r.Post("/reminders/{id}/dismiss", reminderHandler.DismissReminder)
		r.Delete("/reminders/{id}", reminderHandler.RemoveReminder)

		// Scheduler control endpoints
		r.Get("/scheduler", schedulerHandler.Status)
		r.Post("/scheduler/start", schedulerHandler.Start)
		r.Post("/scheduler/stop", schedulerHandler.Stop)

		// On-demand snapshot save
		r.Post("/snapshot", reminderHandler.SaveSnapshot)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
