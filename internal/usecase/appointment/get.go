package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
)

// GetAppointment loads one appointment for the edit form.
type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	workspaceID uint,
	appointmentID string,
) (*domain.Appointment, error) {

	id, err := parseID(appointmentID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, workspaceID, id)
	if err != nil {
		return nil, notFound(err)
	}

	ap := domain.FromBooking(*b)
	return &ap, nil
}
