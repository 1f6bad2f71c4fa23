package handler

import (
	"github.com/gofiber/fiber/v2"

	"docview/internal/model"
	"docview/internal/pipeline"
	"docview/internal/service"
)

type healthResponse struct {
	Status string         `json:"status" example:"healthy"`
	State  pipeline.State `json:"state" swaggertype:"string" example:"idle"`
}

type formatsResponse struct {
	Extensions   []string            `json:"extensions" example:".txt,.docx,.pptx,.xlsx"`
	ContentTypes []model.ContentType `json:"content_types" swaggertype:"array,string"`
	MaxSizeBytes int64               `json:"max_size_bytes" example:"20971520"`
}

// LivenessProbe godoc
// @Summary Liveness probe
// @Tags health
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// HealthCheck godoc
// @Summary Service health with the viewer's pipeline state
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Router /health [get]
func HealthCheck(svc service.ViewerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st := svc.Status(c.UserContext())
		return c.JSON(healthResponse{Status: "healthy", State: st.State})
	}
}

// SupportedFormats godoc
// @Summary Accepted file extensions and size ceiling
// @Tags documents
// @Produce json
// @Success 200 {object} formatsResponse
// @Router /formats [get]
func SupportedFormats(limits pipeline.Limits) fiber.Handler {
	limits = pipeline.NewValidator(limits).Limits()
	res := formatsResponse{
		Extensions:   limits.AllowedExtensions,
		ContentTypes: model.ContentTypes,
		MaxSizeBytes: limits.MaxSizeBytes,
	}
	return func(c *fiber.Ctx) error {
		return c.JSON(res)
	}
}
