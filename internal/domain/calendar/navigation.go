package calendar

import (
	"time"

	"github.com/BruksfildServices01/booking-calendar/internal/httperr"
)

const DateLayout = "2006-01-02"

type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// ParseViewMode accepts the three known modes; only the day view is built.
func ParseViewMode(raw string) (ViewMode, error) {
	switch ViewMode(raw) {
	case "", ViewDay:
		return ViewDay, nil
	case ViewWeek, ViewMonth:
		return "", httperr.ErrBusiness("view_mode_not_supported")
	default:
		return "", httperr.ErrBusiness("invalid_view_mode")
	}
}

type Step string

const (
	StepNone  Step = ""
	StepPrev  Step = "prev"
	StepNext  Step = "next"
	StepToday Step = "today"
)

// Navigate moves the displayed day. now is only used for StepToday.
func Navigate(current time.Time, step Step, now time.Time) (time.Time, error) {
	switch step {
	case StepNone:
		return StartOfDay(current), nil
	case StepPrev:
		return StartOfDay(current).AddDate(0, 0, -1), nil
	case StepNext:
		return StartOfDay(current).AddDate(0, 0, 1), nil
	case StepToday:
		return StartOfDay(now), nil
	default:
		return time.Time{}, httperr.ErrBusiness("invalid_step")
	}
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
