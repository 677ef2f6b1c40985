package appointment

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-calendar/internal/submit"
)

type DeleteAppointmentInput struct {
	WorkspaceID   uint
	UserID        *uint
	AppointmentID string

	// Date is the day to refetch when the booking itself has no date.
	Date string
}

type DeleteAppointment struct {
	repo  domain.Repository
	guard submit.Guard
	refresher
}

func NewDeleteAppointment(
	repo domain.Repository,
	guard submit.Guard,
	days DayFetcher,
	hub Broadcaster,
	audit AuditDispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:      repo,
		guard:     guard,
		refresher: refresher{days: days, hub: hub, audit: audit},
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	in DeleteAppointmentInput,
) (*SaveResult, error) {

	id, err := parseID(in.AppointmentID)
	if err != nil {
		return nil, err
	}

	release, err := uc.guard.Acquire(ctx, fmt.Sprintf("delete:%d:%d", in.WorkspaceID, id))
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := uc.repo.GetBooking(ctx, in.WorkspaceID, id)
	if err != nil {
		return nil, notFound(err)
	}

	if err := uc.repo.DeleteBooking(ctx, in.WorkspaceID, id); err != nil {
		return nil, notFound(fmt.Errorf("delete booking: %w", err))
	}

	date := current.Date
	if date == "" {
		date = in.Date
	}

	day := uc.finish(ctx, in.WorkspaceID, in.UserID, "appointment_deleted", id, date, map[string]any{
		"client_id":  current.ClientID,
		"start_time": current.StartTime,
		"end_time":   current.EndTime,
	})

	return &SaveResult{Day: day}, nil
}
