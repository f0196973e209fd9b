package main

import (
	"log"
	"net/http"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/prem-2323/CleanCity/pkg/middleware"
	"github.com/prem-2323/CleanCity/pkg/queue"
	"github.com/prem-2323/CleanCity/pkg/storage"
	"github.com/prem-2323/CleanCity/services/report-service/staff"
	"github.com/prem-2323/CleanCity/services/report-service/store"
)

const (
	queueName         = "report_queue"
	notificationQueue = "notification_queue"
)

type app struct {
	store   *store.ReportStore
	staff   *staff.Directory
	channel *amqp.Channel
	photos  *storage.PhotoStore
	authURL string
	client  *http.Client
}

func (a *app) routes() *http.ServeMux {
	mux := http.NewServeMux()

	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			middleware.TraceMiddleware(
				middleware.LoggerMiddleware(
					middleware.MetricsMiddleware(
						middleware.AuthMiddleware(h)))).ServeHTTP(w, r)
		}
	}
	open := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			middleware.TraceMiddleware(
				middleware.LoggerMiddleware(
					middleware.MetricsMiddleware(h))).ServeHTTP(w, r)
		}
	}

	mux.HandleFunc("/api/reports", protected(a.reportsHandler))
	mux.HandleFunc("/api/reports/mine", protected(a.myReportsHandler))
	mux.HandleFunc("/api/reports/bulk", protected(middleware.RequireRole("admin")(a.bulkUpdateHandler)))
	mux.HandleFunc("/api/reports/", protected(a.reportDetailHandler))
	mux.HandleFunc("/api/staff", protected(a.staffHandler))
	mux.HandleFunc("/api/tasks", protected(middleware.RequireRole("cleaner", "admin")(a.tasksHandler)))
	mux.HandleFunc("/api/uploads", protected(a.uploadHandler))

	// Called by the dispatcher; not exposed through the gateway.
	mux.HandleFunc("/internal/assign", open(a.internalAssignHandler))

	mux.HandleFunc("/admin/reports", protected(middleware.RequireRole("admin")(a.adminReportsHandler)))
	mux.HandleFunc("/admin/analytics", protected(middleware.RequireRole("admin")(a.adminAnalyticsHandler)))

	mux.HandleFunc("/health", a.healthHandler)
	mux.Handle("/metrics", middleware.GetMetricsHandler())

	return mux
}

// publishEvent is best-effort: a queue outage must not fail the request.
// The dispatcher and the notification hub each consume their own queue.
func (a *app) publishEvent(event interface{}) {
	if a.channel == nil {
		return
	}
	for _, q := range []string{queueName, notificationQueue} {
		if err := queue.PublishMessage(a.channel, q, event); err != nil {
			log.Printf("[WARN] Failed to publish event to %s: %v", q, err)
		}
	}
}
