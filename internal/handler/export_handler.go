package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/booking-admin/internal/models"
	"github.com/noah-isme/booking-admin/internal/service"
	"github.com/noah-isme/booking-admin/pkg/response"
)

type scheduleExporter interface {
	Schedules(ctx context.Context, format string) (*service.ExportFile, error)
}

// ExportHandler serves schedule downloads.
type ExportHandler struct {
	exporter  scheduleExporter
	presenter *Presenter
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(exporter scheduleExporter, presenter *Presenter) *ExportHandler {
	return &ExportHandler{exporter: exporter, presenter: presenter}
}

// Schedules answers GET /schedule/export?format=csv|pdf.
func (h *ExportHandler) Schedules(c *gin.Context) {
	file, err := h.exporter.Schedules(c.Request.Context(), c.DefaultQuery("format", service.ExportFormatCSV))
	if err != nil {
		_ = c.Error(err)
		h.presenter.Redirect(c, "/", models.Failure("Erro ao exportar agendamentos", describe(err)))
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
