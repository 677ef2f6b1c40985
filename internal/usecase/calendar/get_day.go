package calendar

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	domain "github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
	cal "github.com/BruksfildServices01/booking-calendar/internal/domain/calendar"
	"github.com/BruksfildServices01/booking-calendar/internal/dto"
	"github.com/BruksfildServices01/booking-calendar/internal/httperr"
	"github.com/BruksfildServices01/booking-calendar/internal/models"
	"github.com/BruksfildServices01/booking-calendar/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type GetDayInput struct {
	WorkspaceID uint

	// Date is "YYYY-MM-DD"; empty means today in the workspace timezone.
	Date string
	Step string
	View string
}

// ======================================================
// USE CASE
// ======================================================

const defaultFetchTimeout = 30 * time.Second

type GetDay struct {
	repo        domain.Repository
	rowHeightPx int
	defaultTZ   string
	now         func() time.Time

	fetchTimeout time.Duration

	// concurrent fetches of the same workspace share one backend call
	group singleflight.Group
}

func NewGetDay(
	repo domain.Repository,
	rowHeightPx int,
	defaultTZ string,
) *GetDay {
	return &GetDay{
		repo:        repo,
		rowHeightPx: rowHeightPx,
		defaultTZ:   defaultTZ,
		now:         time.Now,

		fetchTimeout: defaultFetchTimeout,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *GetDay) Execute(
	ctx context.Context,
	in GetDayInput,
) (*dto.DayViewDTO, error) {

	// --------------------------------------------------
	// View / workspace / day
	// --------------------------------------------------
	if _, err := cal.ParseViewMode(in.View); err != nil {
		return nil, err
	}

	loc, err := workspaceLocation(ctx, uc.repo, in.WorkspaceID, uc.defaultTZ)
	if err != nil {
		return nil, err
	}

	now := uc.now().In(loc)
	current, err := resolveDate(in.Date, now, loc)
	if err != nil {
		return nil, err
	}

	day, err := cal.Navigate(current, cal.Step(in.Step), now)
	if err != nil {
		return nil, err
	}
	date := day.Format(cal.DateLayout)

	// --------------------------------------------------
	// Bookings
	// --------------------------------------------------
	bookings, err := uc.listBookings(ctx, in.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	apps := make([]domain.Appointment, 0, len(bookings))
	for _, b := range bookings {
		if domain.OnDate(b.Date, date) {
			apps = append(apps, domain.FromBooking(b))
		}
	}

	return NewDayView(in.WorkspaceID, day, now, apps, uc.rowHeightPx), nil
}

// listBookings shares one backend call between concurrent callers. The
// call runs detached from any single caller's context, bounded by
// fetchTimeout; each caller still stops waiting when its own ctx is done.
func (uc *GetDay) listBookings(ctx context.Context, workspaceID uint) ([]models.Booking, error) {
	ch := uc.group.DoChan(flightKey(workspaceID), func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.fetchTimeout)
		defer cancel()
		return uc.repo.ListBookings(fctx, workspaceID)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]models.Booking), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Invalidate makes the next fetch for the workspace go to the backend
// instead of joining a call that started before a write.
func (uc *GetDay) Invalidate(workspaceID uint) {
	uc.group.Forget(flightKey(workspaceID))
}

func flightKey(workspaceID uint) string {
	return "bookings:" + strconv.FormatUint(uint64(workspaceID), 10)
}

// --------------------------------------------------
// helpers shared with GetDraft
// --------------------------------------------------

func workspaceLocation(
	ctx context.Context,
	repo domain.Repository,
	workspaceID uint,
	defaultTZ string,
) (*time.Location, error) {

	ws, err := repo.GetWorkspace(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("workspace_not_found")
		}
		return nil, fmt.Errorf("get workspace: %w", err)
	}

	tz := ws.Timezone
	if tz == "" {
		tz = defaultTZ
	}
	return timezone.Location(tz), nil
}

func resolveDate(raw string, now time.Time, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return cal.StartOfDay(now), nil
	}
	d, err := timezone.ParseDate(raw, loc)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	return d, nil
}
