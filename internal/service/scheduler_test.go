package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodlab/foodlab-api/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildScheduleAlternatesModalities(t *testing.T) {
	c := model.Course{
		ID:            7,
		StartDate:     day(2026, time.March, 2),
		Frequency:     model.FrequencyWeekly,
		SessionCount:  4,
		DurationHours: 2,
	}
	sessions := BuildSchedule(c)
	require.Len(t, sessions, 4)

	// odd sequence numbers are practical, even are theory
	assert.Equal(t, model.ModalityInPerson, sessions[0].Modality)
	assert.Equal(t, "Sessione Pratica 1", sessions[0].Title)
	assert.Equal(t, model.ModalityOnline, sessions[1].Modality)
	assert.Equal(t, "Sessione Teorica 2", sessions[1].Title)
	assert.Equal(t, model.ModalityInPerson, sessions[2].Modality)
	assert.Equal(t, "Sessione Pratica 3", sessions[2].Title)
	assert.Equal(t, model.ModalityOnline, sessions[3].Modality)

	for i, s := range sessions {
		assert.Equal(t, uint64(7), s.CourseID)
		assert.Equal(t, i+1, s.SequenceNumber)
		assert.Equal(t, 120, s.DurationMinutes)
	}
}

func TestBuildScheduleDateSteps(t *testing.T) {
	start := day(2026, time.January, 10)
	cases := []struct {
		freq model.Frequency
		step int
	}{
		{model.FrequencyWeekly, 7},
		{model.FrequencyEveryTwoDays, 2},
		{model.FrequencyDaily, 1},
		{model.Frequency("boh"), 7}, // unknown falls back to weekly
	}
	for _, c := range cases {
		sessions := BuildSchedule(model.Course{
			StartDate:     start,
			Frequency:     c.freq,
			SessionCount:  3,
			DurationHours: 1,
		})
		require.Len(t, sessions, 3, "freq %q", c.freq)
		assert.Equal(t, start, sessions[0].Date, "freq %q", c.freq)
		assert.Equal(t, start.AddDate(0, 0, c.step), sessions[1].Date, "freq %q", c.freq)
		assert.Equal(t, start.AddDate(0, 0, 2*c.step), sessions[2].Date, "freq %q", c.freq)
	}
}

func TestBuildScheduleFixedDuration(t *testing.T) {
	// duration_hours describes the course commitment, not the session
	// length: generated sessions are always 120 minutes
	for _, hours := range []int{0, 1, 3, 8} {
		sessions := BuildSchedule(model.Course{
			StartDate:     day(2026, time.May, 1),
			Frequency:     model.FrequencyDaily,
			SessionCount:  2,
			DurationHours: hours,
		})
		require.Len(t, sessions, 2, "duration_hours %d", hours)
		assert.Equal(t, 120, sessions[0].DurationMinutes, "duration_hours %d", hours)
		assert.Equal(t, 120, sessions[1].DurationMinutes, "duration_hours %d", hours)
	}
}

func TestBuildScheduleDescriptions(t *testing.T) {
	sessions := BuildSchedule(model.Course{
		StartDate:    day(2026, time.May, 1),
		Frequency:    model.FrequencyWeekly,
		SessionCount: 2,
	})
	require.Len(t, sessions, 2)
	assert.Equal(t, "Sessione pratica con preparazione di ricette", sessions[0].Description)
	assert.Equal(t, "Sessione teorica online", sessions[1].Description)
}

func TestBuildScheduleEmpty(t *testing.T) {
	assert.Nil(t, BuildSchedule(model.Course{SessionCount: 0}))
	assert.Nil(t, BuildSchedule(model.Course{SessionCount: -3}))
}

func TestValidateCourse(t *testing.T) {
	valid := model.Course{
		Title:           "Pasta fresca",
		CategoryID:      1,
		StartDate:       day(2026, time.April, 1),
		Frequency:       model.FrequencyWeekly,
		SessionCount:    8,
		DurationHours:   2,
		MaxParticipants: 12,
	}
	assert.NoError(t, ValidateCourse(valid))

	broken := []func(c *model.Course){
		func(c *model.Course) { c.Title = "" },
		func(c *model.Course) { c.CategoryID = 0 },
		func(c *model.Course) { c.StartDate = time.Time{} },
		func(c *model.Course) { c.Frequency = "mensile" },
		func(c *model.Course) { c.SessionCount = 0 },
		func(c *model.Course) { c.SessionCount = MaxSessionCount + 1 },
		func(c *model.Course) { c.DurationHours = 0 },
		func(c *model.Course) { c.DurationHours = MaxDurationHours + 1 },
		func(c *model.Course) { c.MaxParticipants = 0 },
		func(c *model.Course) { c.MaxParticipants = MaxParticipants + 1 },
	}
	for i, mutate := range broken {
		c := valid
		mutate(&c)
		err := ValidateCourse(c)
		assert.ErrorIs(t, err, ErrValidation, "case %d", i)
	}
}

func TestCreateCourseRejectsPastStart(t *testing.T) {
	svc := NewSchedulerService(nil, nil, nil, nil)
	svc.now = func() time.Time { return day(2026, time.April, 10) }

	c := model.Course{
		Title:           "Pasta fresca",
		CategoryID:      1,
		StartDate:       day(2026, time.April, 9),
		Frequency:       model.FrequencyWeekly,
		SessionCount:    8,
		DurationHours:   2,
		MaxParticipants: 12,
	}
	_, err := svc.CreateCourse(context.Background(), &c)
	assert.ErrorIs(t, err, ErrValidation)
}
