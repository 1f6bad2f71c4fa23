package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"docview/internal/pipeline"
	"docview/internal/service"
)

// RegisterRoutes attaches the viewer API to app.
func RegisterRoutes(app *fiber.App, svc service.ViewerService, limits pipeline.Limits, readTimeout time.Duration) {
	app.Get("/healthz", LivenessProbe())
	app.Get("/health", HealthCheck(svc))
	app.Get("/formats", SupportedFormats(limits))

	app.Post("/documents", ViewDocument(svc, readTimeout))
	app.Get("/documents/current", CurrentDocument(svc))
	app.Delete("/documents/current", ResetDocument(svc))
	app.Get("/documents/status", DocumentStatus(svc))
}
