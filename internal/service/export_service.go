package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/booking-admin/internal/models"
	appErrors "github.com/noah-isme/booking-admin/pkg/errors"
	"github.com/noah-isme/booking-admin/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type scheduleLister interface {
	List(ctx context.Context) ([]models.Schedule, error)
}

type tableRenderer interface {
	ContentType() string
	Extension() string
	Render(table export.Table) ([]byte, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders the schedule list as a downloadable file.
type ExportService struct {
	schedules scheduleLister
	renderers map[string]tableRenderer
	location  *time.Location
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService with the CSV and PDF renderers.
func NewExportService(schedules scheduleLister, location *time.Location, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.Local
	}
	return &ExportService{
		schedules: schedules,
		renderers: map[string]tableRenderer{
			ExportFormatCSV: export.NewCSVExporter(),
			ExportFormatPDF: export.NewPDFExporter(),
		},
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

// Schedules fetches the schedule list and renders it in format.
func (s *ExportService) Schedules(ctx context.Context, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	schedules, err := s.schedules.List(ctx)
	if err != nil {
		return nil, err
	}

	body, err := renderer.Render(ScheduleTable(schedules, s.location))
	if err != nil {
		s.logger.Error("failed to render schedule export", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("agendamentos-%s.%s", s.now().In(s.location).Format("20060102-1504"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

// ScheduleTable lays out schedules with the same columns as the schedule page.
func ScheduleTable(schedules []models.Schedule, loc *time.Location) export.Table {
	table := export.Table{
		Title: "Agendamentos",
		Columns: []export.Column{
			{Key: "teacher", Title: "Professor", Width: 2},
			{Key: "subject", Title: "Disciplina", Width: 2},
			{Key: "start", Title: "Início", Width: 1.5},
			{Key: "end", Title: "Término", Width: 1.5},
		},
		Rows: make([]map[string]string, 0, len(schedules)),
	}
	for _, schedule := range schedules {
		table.Rows = append(table.Rows, map[string]string{
			"teacher": schedule.Teacher.Name,
			"subject": schedule.Subject.Name,
			"start":   models.FormatDateTime(schedule.StartTime, loc),
			"end":     models.FormatDateTime(schedule.EndTime, loc),
		})
	}
	return table
}
