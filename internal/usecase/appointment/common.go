package appointment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/booking-calendar/internal/audit"
	domain "github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
	cal "github.com/BruksfildServices01/booking-calendar/internal/domain/calendar"
	"github.com/BruksfildServices01/booking-calendar/internal/dto"
	"github.com/BruksfildServices01/booking-calendar/internal/httperr"
	"github.com/BruksfildServices01/booking-calendar/internal/relay"
	ucCalendar "github.com/BruksfildServices01/booking-calendar/internal/usecase/calendar"
	"github.com/BruksfildServices01/booking-calendar/internal/validators"
)

// ======================================================
// COLLABORATORS
// ======================================================

// DayFetcher returns the laid-out day; GetDay from the calendar use cases.
type DayFetcher interface {
	Execute(ctx context.Context, in ucCalendar.GetDayInput) (*dto.DayViewDTO, error)
	Invalidate(workspaceID uint)
}

// Broadcaster tells connected calendars to refetch.
type Broadcaster interface {
	Broadcast(msg relay.Message)
}

type AuditDispatcher interface {
	Dispatch(ev audit.Event)
}

// SaveResult is what every write returns: the stored appointment (nil after
// a delete) and the refetched day it belongs to.
type SaveResult struct {
	Appointment *domain.Appointment `json:"appointment,omitempty"`
	Day         *dto.DayViewDTO     `json:"day"`
}

// ======================================================
// VALIDATION
// ======================================================

func validate(a domain.Appointment) error {
	if strings.TrimSpace(a.ClientName) == "" {
		return httperr.ErrBusiness("client_name_required")
	}
	if validators.DigitsOnly(a.PhoneNumber) == "" {
		return httperr.ErrBusiness("phone_required")
	}
	if _, err := domain.ParseClock(a.StartTime); err != nil {
		return httperr.ErrBusiness("invalid_start_time")
	}
	if _, err := domain.ParseClock(a.EndTime); err != nil {
		return httperr.ErrBusiness("invalid_end_time")
	}
	if a.Date != "" {
		if _, err := time.Parse(cal.DateLayout, a.Date); err != nil {
			return httperr.ErrBusiness("invalid_date")
		}
	}
	if a.Status != "" && !a.Status.Valid() {
		return httperr.ErrBusiness("invalid_status")
	}
	return nil
}

func parseID(id string) (uint, error) {
	n, ok := domain.ParseID(id)
	if !ok {
		return 0, httperr.ErrBusiness("invalid_appointment_id")
	}
	return n, nil
}

func notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness("appointment_not_found")
	}
	return err
}

// checkClient makes sure clientID belongs to the workspace before a booking
// is pointed at it.
func checkClient(ctx context.Context, repo domain.Repository, workspaceID, clientID uint) error {
	if _, err := repo.GetClient(ctx, workspaceID, clientID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness("client_not_found")
		}
		return fmt.Errorf("get client: %w", err)
	}
	return nil
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// ======================================================
// AFTER A WRITE
// ======================================================

type refresher struct {
	days  DayFetcher
	hub   Broadcaster
	audit AuditDispatcher
}

// finish records the write, notifies other clients and refetches the day.
// The write has already happened at this point: a failed refetch yields a
// nil day, never an error, so the caller does not retry a stored write.
func (r refresher) finish(
	ctx context.Context,
	workspaceID uint,
	userID *uint,
	action string,
	bookingID uint,
	date string,
	metadata any,
) *dto.DayViewDTO {

	id := bookingID
	r.audit.Dispatch(audit.Event{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Action:      action,
		Entity:      "booking",
		EntityID:    &id,
		Metadata:    metadata,
	})

	r.days.Invalidate(workspaceID)
	r.hub.Broadcast(relay.BookingChanged(workspaceID, action, idString(bookingID), date))

	day, err := r.days.Execute(ctx, ucCalendar.GetDayInput{
		WorkspaceID: workspaceID,
		Date:        date,
	})
	if err != nil {
		return nil
	}
	return day
}
