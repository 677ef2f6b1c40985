package calendar

import (
	"time"

	"github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-calendar/internal/httperr"
)

// NewDraft prefills a new appointment for a click on an empty slot:
// one hour starting at the top of the clicked hour.
func NewDraft(day time.Time, hour int) (appointment.Appointment, error) {
	if hour < 0 || hour >= HoursPerDay {
		return appointment.Appointment{}, httperr.ErrBusiness("invalid_hour")
	}

	end := appointment.ClockAt(hour + 1)
	if hour == HoursPerDay-1 {
		end = appointment.ClockAt(hour) + 59
	}

	return appointment.Appointment{
		Date:       day.Format(DateLayout),
		StartTime:  appointment.ClockAt(hour).String(),
		EndTime:    end.String(),
		Status:     appointment.InitialStatus(),
		ClientType: appointment.ClientRegular,
	}, nil
}
