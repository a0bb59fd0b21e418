package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/portal-api/internal/models"
)

type stubScheduleSource struct{ slots []models.ClassTimeSlot }

func (s *stubScheduleSource) List(ctx context.Context) ([]models.ClassTimeSlot, error) {
	return s.slots, nil
}

type stubRoutineSource struct{ sets []models.RoutineSet }

func (s *stubRoutineSource) List(ctx context.Context) ([]models.RoutineSet, error) {
	return s.sets, nil
}

func TestExportClassTimesCSV(t *testing.T) {
	schedule := &stubScheduleSource{slots: []models.ClassTimeSlot{
		{WeekDay: "Sunday", StartTime: "09:00", EndTime: "09:45", Subject: "Math", Teacher: "Mr. Karim"},
		{WeekDay: "Sunday", StartTime: "09:45", EndTime: "10:30", Subject: "English", Teacher: "Ms. Laila"},
	}}
	svc := NewExportService(schedule, &stubRoutineSource{}, nil)

	result, err := svc.ClassTimes(context.Background(), ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasSuffix(result.FileName, ".csv"))

	body := string(result.Data)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Day,Start,End,Subject,Teacher", lines[0])
	assert.Contains(t, lines[1], "Math")
}

func TestExportRoutinesFlattensPeriods(t *testing.T) {
	routines := &stubRoutineSource{sets: []models.RoutineSet{{
		ID: 1,
		Days: models.RoutineDays{
			{DayName: "Sunday", Periods: []models.RoutinePeriod{
				{PeriodNumber: 1, Subject: "Math", Teacher: "Mr. Karim", StartTime: "09:00", EndTime: "09:45"},
				{PeriodNumber: 2, Subject: "English", Teacher: "Ms. Laila", StartTime: "09:45", EndTime: "10:30"},
			}},
			{DayName: "Monday", Periods: []models.RoutinePeriod{
				{PeriodNumber: 1, Subject: "Science", Teacher: "Mr. Alam", StartTime: "09:00", EndTime: "09:45"},
			}},
		},
	}}}
	svc := NewExportService(&stubScheduleSource{}, routines, nil)

	result, err := svc.Routines(context.Background(), ExportFormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(result.Data)), "\n")
	assert.Len(t, lines, 4, "header plus one row per period")
}

func TestExportClassTimesPDF(t *testing.T) {
	schedule := &stubScheduleSource{slots: []models.ClassTimeSlot{
		{WeekDay: "Sunday", StartTime: "09:00", EndTime: "09:45", Subject: "Math", Teacher: "Mr. Karim"},
	}}
	svc := NewExportService(schedule, &stubRoutineSource{}, nil)

	result, err := svc.ClassTimes(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Data), "%PDF"))
}

func TestParseExportFormat(t *testing.T) {
	_, err := ParseExportFormat("xlsx")
	assert.Error(t, err)

	format, err := ParseExportFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatPDF, format)
}
