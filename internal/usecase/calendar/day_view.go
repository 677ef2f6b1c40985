package calendar

import (
	"time"

	"github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
	cal "github.com/BruksfildServices01/booking-calendar/internal/domain/calendar"
	"github.com/BruksfildServices01/booking-calendar/internal/dto"
)

// NewDayView lays out apps and turns the plan into the response shape.
// today decides IsToday and must be in the same location as day.
func NewDayView(
	workspaceID uint,
	day time.Time,
	today time.Time,
	apps []appointment.Appointment,
	rowHeightPx int,
) *dto.DayViewDTO {

	if rowHeightPx <= 0 {
		rowHeightPx = cal.DefaultRowHeightPx
	}
	plan := cal.Layout(apps)

	view := &dto.DayViewDTO{
		WorkspaceID: workspaceID,
		Date:        day.Format(cal.DateLayout),
		Title:       cal.DayTitle(day),
		View:        string(cal.ViewDay),
		PrevDate:    day.AddDate(0, 0, -1).Format(cal.DateLayout),
		NextDate:    day.AddDate(0, 0, 1).Format(cal.DateLayout),
		IsToday:     day.Format(cal.DateLayout) == today.Format(cal.DateLayout),
		RowHeightPx: rowHeightPx,
		LaneCount:   cal.LaneCount,
		Hours:       make([]dto.HourRowDTO, 0, cal.HoursPerDay),
		Unplaced:    make([]appointment.Card, 0, len(plan.Unplaced)),
	}

	for _, row := range plan.Rows {
		out := dto.HourRowDTO{
			Hour:         row.Hour,
			Label:        row.Label,
			Appointments: make([]dto.PlacedAppointmentDTO, 0, len(row.Starting)),
			Continuing:   make([]dto.LaneRefDTO, 0, len(row.Continuing)),
			FreeLanes:    row.FreeLanes(),
		}

		for _, pl := range row.Starting {
			out.Appointments = append(out.Appointments, dto.PlacedAppointmentDTO{
				Card:       appointment.NewCard(pl.Appointment),
				Status:     pl.Appointment.Status,
				ClientType: pl.Appointment.ClientType,
				Lane:       pl.Lane,
				Overflow:   pl.Overflow,
				HeightPx:   cal.BlockHeight(pl.DurationHours, rowHeightPx),
				ZIndex:     cal.ZIndex(pl.DurationHours),
			})
		}
		for _, pl := range row.Continuing {
			out.Continuing = append(out.Continuing, dto.LaneRefDTO{
				ID:        pl.Appointment.ID,
				Lane:      pl.Lane,
				StartHour: pl.StartHour,
			})
		}

		view.Hours = append(view.Hours, out)
	}

	for _, ap := range plan.Unplaced {
		view.Unplaced = append(view.Unplaced, appointment.NewCard(ap))
	}

	return view
}
