package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-calendar/internal/httperr"
)

func TestBlockHeightAndZIndex(t *testing.T) {
	assert.Equal(t, 96, BlockHeight(1, 96))
	assert.Equal(t, 288, BlockHeight(3, 96))
	assert.Equal(t, 0, ZIndex(1))
	assert.Equal(t, 13, ZIndex(3))
	assert.Greater(t, ZIndex(4), ZIndex(2))
}

func TestDayTitle(t *testing.T) {
	d := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "16 октября 2026 г.", DayTitle(d))
}

func TestParseViewMode(t *testing.T) {
	v, err := ParseViewMode("")
	require.NoError(t, err)
	assert.Equal(t, ViewDay, v)

	_, err = ParseViewMode("week")
	assert.True(t, httperr.IsBusiness(err, "view_mode_not_supported"))

	_, err = ParseViewMode("year")
	assert.True(t, httperr.IsBusiness(err, "invalid_view_mode"))
}

func TestNavigate(t *testing.T) {
	loc := time.FixedZone("ALMT", 5*3600)
	current := time.Date(2026, time.March, 1, 15, 30, 0, 0, loc)
	now := time.Date(2026, time.October, 16, 8, 0, 0, 0, loc)

	prev, err := Navigate(current, StepPrev, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, loc), prev)

	next, err := Navigate(current, StepNext, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 2, 0, 0, 0, 0, loc), next)

	today, err := Navigate(current, StepToday, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.October, 16, 0, 0, 0, 0, loc), today)

	same, err := Navigate(current, StepNone, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, loc), same)

	_, err = Navigate(current, Step("sideways"), now)
	assert.True(t, httperr.IsBusiness(err, "invalid_step"))
}

func TestNewDraft(t *testing.T) {
	day := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)

	d, err := NewDraft(day, 0)
	require.NoError(t, err)
	assert.Equal(t, "00:00", d.StartTime)
	assert.Equal(t, "01:00", d.EndTime)
	assert.Equal(t, "2026-10-16", d.Date)
	assert.Equal(t, appointment.StatusNew, d.Status)

	last, err := NewDraft(day, 23)
	require.NoError(t, err)
	assert.Equal(t, "23:00", last.StartTime)
	assert.Equal(t, "23:59", last.EndTime)

	_, err = NewDraft(day, 24)
	assert.True(t, httperr.IsBusiness(err, "invalid_hour"))
}
