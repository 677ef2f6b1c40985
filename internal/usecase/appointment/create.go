package appointment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/booking-calendar/internal/audit"
	domain "github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-calendar/internal/httperr"
	"github.com/BruksfildServices01/booking-calendar/internal/submit"
	"github.com/BruksfildServices01/booking-calendar/internal/validators"
)

const compensateTimeout = 5 * time.Second

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	WorkspaceID uint
	UserID      *uint

	// IdempotencyKey identifies one submission of the form. When empty the
	// key is derived from the payload, so identical resubmits still collide.
	IdempotencyKey string

	Appointment domain.Appointment
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	guard submit.Guard
	refresher
}

func NewCreateAppointment(
	repo domain.Repository,
	guard submit.Guard,
	days DayFetcher,
	hub Broadcaster,
	audit AuditDispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:      repo,
		guard:     guard,
		refresher: refresher{days: days, hub: hub, audit: audit},
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*SaveResult, error) {

	ap := in.Appointment
	if err := validate(ap); err != nil {
		return nil, err
	}
	ap.Status = domain.NormalizeStatus(string(ap.Status))

	// --------------------------------------------------
	// 1. One submission at a time
	// --------------------------------------------------
	key, err := createKey(in)
	if err != nil {
		return nil, err
	}
	release, err := uc.guard.Acquire(ctx, key)
	if err != nil {
		return nil, err
	}
	defer release()

	// --------------------------------------------------
	// 2. Client: given, found by phone, or created
	// --------------------------------------------------
	clientID, created, err := uc.resolveClient(ctx, in.WorkspaceID, ap)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Booking, undoing the client on failure
	// --------------------------------------------------
	booking := domain.ToBooking(ap, clientID, in.WorkspaceID)
	if err := uc.repo.CreateBooking(ctx, &booking); err != nil {
		if created {
			uc.compensate(in, clientID)
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	ap.ID = idString(booking.ID)
	ap.ClientID = clientID

	// --------------------------------------------------
	// 4. Audit / notify / refetch
	// --------------------------------------------------
	day := uc.finish(ctx, in.WorkspaceID, in.UserID, "appointment_created", booking.ID, ap.Date, map[string]any{
		"client_id":      clientID,
		"client_created": created,
		"start_time":     ap.StartTime,
		"end_time":       ap.EndTime,
	})

	return &SaveResult{Appointment: &ap, Day: day}, nil
}

func (uc *CreateAppointment) resolveClient(
	ctx context.Context,
	workspaceID uint,
	ap domain.Appointment,
) (id uint, created bool, err error) {

	if ap.ClientID != 0 {
		if err := checkClient(ctx, uc.repo, workspaceID, ap.ClientID); err != nil {
			return 0, false, err
		}
		return ap.ClientID, false, nil
	}

	clients, err := uc.repo.ListClients(ctx, workspaceID)
	if err != nil {
		return 0, false, fmt.Errorf("list clients: %w", err)
	}
	for _, c := range clients {
		if validators.SamePhone(c.Phone, ap.PhoneNumber) {
			return c.ID, false, nil
		}
	}

	client := domain.ToClient(ap, workspaceID)
	if err := uc.repo.CreateClient(ctx, &client); err != nil {
		return 0, false, fmt.Errorf("create client: %w", err)
	}
	return client.ID, true, nil
}

// compensate deletes a client created for a booking that was never stored.
// It does not use the request context, which may already be canceled.
func (uc *CreateAppointment) compensate(in CreateAppointmentInput, clientID uint) {
	ctx, cancel := context.WithTimeout(context.Background(), compensateTimeout)
	defer cancel()

	err := uc.repo.DeleteClient(ctx, in.WorkspaceID, clientID)

	id := clientID
	meta := map[string]any{"reason": "booking_create_failed"}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		meta["error"] = err.Error()
	}
	uc.audit.Dispatch(audit.Event{
		WorkspaceID: in.WorkspaceID,
		UserID:      in.UserID,
		Action:      "client_compensated",
		Entity:      "client",
		EntityID:    &id,
		Metadata:    meta,
	})
}

func createKey(in CreateAppointmentInput) (string, error) {
	if in.IdempotencyKey != "" {
		return fmt.Sprintf("create:%d:%s", in.WorkspaceID, in.IdempotencyKey), nil
	}

	payload, err := json.Marshal(in.Appointment)
	if err != nil {
		return "", httperr.ErrBusiness("invalid_appointment")
	}
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("create:%d:%s", in.WorkspaceID, hex.EncodeToString(sum[:])), nil
}
