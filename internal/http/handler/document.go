package handler

import (
	"context"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"docview/internal/model"
	"docview/internal/service"
)

// ViewDocument godoc
// @Summary Open a document in the viewer
// @Description Parses the uploaded file and makes it the current document. A newer upload supersedes one still in progress.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document (.txt, .docx, .pptx or .xlsx)"
// @Success 200 {object} model.ContentModel
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /documents [post]
func ViewDocument(svc service.ViewerService, readTimeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		file := model.File{
			Name:     fh.Filename,
			Size:     fh.Size,
			MimeType: fh.Header.Get("Content-Type"),
			Open:     func() (io.ReadCloser, error) { return fh.Open() },
		}

		ctx := c.UserContext()
		if readTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, readTimeout)
			defer cancel()
		}

		cm, err := svc.View(ctx, file)
		if err != nil {
			return writeViewError(c, err)
		}
		return c.JSON(cm)
	}
}

// CurrentDocument godoc
// @Summary Current document
// @Description Set raw=false to omit encoded_bytes.
// @Tags documents
// @Produce json
// @Param raw query bool false "Include encoded_bytes" default(true)
// @Success 200 {object} model.ContentModel
// @Failure 404 {object} errorPayload
// @Router /documents/current [get]
func CurrentDocument(svc service.ViewerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cm, err := svc.Current(c.UserContext())
		if err != nil {
			return writeViewError(c, err)
		}
		if !c.QueryBool("raw", true) {
			cm = cm.WithoutEncodedBytes()
		}
		return c.JSON(cm)
	}
}

// ResetDocument godoc
// @Summary Close the current document
// @Tags documents
// @Success 204
// @Router /documents/current [delete]
func ResetDocument(svc service.ViewerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		svc.Reset(c.UserContext())
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DocumentStatus godoc
// @Summary Latest attempt and its pipeline state
// @Tags documents
// @Produce json
// @Success 200 {object} service.Status
// @Router /documents/status [get]
func DocumentStatus(svc service.ViewerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Status(c.UserContext()))
	}
}
