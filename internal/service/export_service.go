package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/campusboard/portal-api/internal/models"
	appErrors "github.com/campusboard/portal-api/pkg/errors"
	"github.com/campusboard/portal-api/pkg/export"
)

type scheduleSource interface {
	List(ctx context.Context) ([]models.ClassTimeSlot, error)
}

type routineSource interface {
	List(ctx context.Context) ([]models.RoutineSet, error)
}

// ExportFormat enumerates supported export encodings.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult carries a rendered document.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportService renders the class time schedule and weekly routines into
// downloadable documents.
type ExportService struct {
	schedule scheduleSource
	routines routineSource
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(schedule scheduleSource, routines routineSource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		schedule: schedule,
		routines: routines,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// ParseExportFormat validates a format query value.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(raw) {
	case ExportFormatCSV, ExportFormatPDF:
		return ExportFormat(raw), nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

// ClassTimes renders the full schedule.
func (s *ExportService) ClassTimes(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	slots, err := s.schedule.List(ctx)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"Day", "Start", "End", "Subject", "Teacher"},
	}
	for _, slot := range slots {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Day":     slot.WeekDay,
			"Start":   slot.StartTime,
			"End":     slot.EndTime,
			"Subject": slot.Subject,
			"Teacher": slot.Teacher,
		})
	}
	return s.render(dataset, "class-times", "Class Time Schedule", format)
}

// Routines renders every routine set, one row per period.
func (s *ExportService) Routines(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	sets, err := s.routines.List(ctx)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"Routine", "Day", "Period", "Subject", "Teacher", "Start", "End"},
	}
	for _, set := range sets {
		for _, day := range set.Days {
			for _, period := range day.Periods {
				dataset.Rows = append(dataset.Rows, map[string]string{
					"Routine": strconv.FormatInt(set.ID, 10),
					"Day":     day.DayName,
					"Period":  strconv.Itoa(period.PeriodNumber),
					"Subject": period.Subject,
					"Teacher": period.Teacher,
					"Start":   period.StartTime,
					"End":     period.EndTime,
				})
			}
		}
	}
	return s.render(dataset, "routines", "Weekly Routine", format)
}

func (s *ExportService) render(dataset export.Dataset, name, title string, format ExportFormat) (*ExportResult, error) {
	stamp := time.Now().UTC().Format("20060102")
	switch format {
	case ExportFormatCSV:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("%s-%s.csv", name, stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case ExportFormatPDF:
		data, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("%s-%s.pdf", name, stamp),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}
