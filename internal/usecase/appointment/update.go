package appointment

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-calendar/internal/relay"
	"github.com/BruksfildServices01/booking-calendar/internal/submit"
)

type UpdateAppointmentInput struct {
	WorkspaceID   uint
	UserID        *uint
	AppointmentID string
	Appointment   domain.Appointment
}

type UpdateAppointment struct {
	repo  domain.Repository
	guard submit.Guard
	refresher
}

func NewUpdateAppointment(
	repo domain.Repository,
	guard submit.Guard,
	days DayFetcher,
	hub Broadcaster,
	audit AuditDispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:      repo,
		guard:     guard,
		refresher: refresher{days: days, hub: hub, audit: audit},
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*SaveResult, error) {

	id, err := parseID(in.AppointmentID)
	if err != nil {
		return nil, err
	}

	ap := in.Appointment
	if err := validate(ap); err != nil {
		return nil, err
	}
	ap.Status = domain.NormalizeStatus(string(ap.Status))

	release, err := uc.guard.Acquire(ctx, fmt.Sprintf("update:%d:%d", in.WorkspaceID, id))
	if err != nil {
		return nil, err
	}
	defer release()

	// --------------------------------------------------
	// Current record
	// --------------------------------------------------
	current, err := uc.repo.GetBooking(ctx, in.WorkspaceID, id)
	if err != nil {
		return nil, notFound(err)
	}

	// the edit form does not change who the booking is for
	clientID := ap.ClientID
	if clientID == 0 {
		clientID = current.ClientID
	} else if clientID != current.ClientID {
		if err := checkClient(ctx, uc.repo, in.WorkspaceID, clientID); err != nil {
			return nil, err
		}
	}
	if ap.Date == "" {
		ap.Date = current.Date
	}

	booking := domain.ToBooking(ap, clientID, in.WorkspaceID)
	booking.ID = id
	booking.Price = current.Price
	booking.CreatedAt = current.CreatedAt

	if err := uc.repo.UpdateBooking(ctx, &booking); err != nil {
		return nil, notFound(fmt.Errorf("update booking: %w", err))
	}

	ap.ID = idString(id)
	ap.ClientID = clientID

	// moved to another day: that day changed too
	if current.Date != "" && current.Date != ap.Date {
		uc.hub.Broadcast(relay.BookingChanged(in.WorkspaceID, "appointment_updated", ap.ID, current.Date))
	}

	day := uc.finish(ctx, in.WorkspaceID, in.UserID, "appointment_updated", id, ap.Date, map[string]any{
		"previous_status": current.Status,
		"status":          ap.Status,
		"start_time":      ap.StartTime,
		"end_time":        ap.EndTime,
	})

	return &SaveResult{Appointment: &ap, Day: day}, nil
}
