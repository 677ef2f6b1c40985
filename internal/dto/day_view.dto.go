package dto

import (
	"github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
)

// DayViewDTO is everything the web client needs to draw one day.
type DayViewDTO struct {
	WorkspaceID uint   `json:"workspace_id"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	View        string `json:"view"`
	PrevDate    string `json:"prev_date"`
	NextDate    string `json:"next_date"`
	IsToday     bool   `json:"is_today"`

	RowHeightPx int          `json:"row_height_px"`
	LaneCount   int          `json:"lane_count"`
	Hours       []HourRowDTO `json:"hours"`

	// appointments whose start time could not be read
	Unplaced []appointment.Card `json:"unplaced"`
}

type HourRowDTO struct {
	Hour  int    `json:"hour"`
	Label string `json:"label"`

	Appointments []PlacedAppointmentDTO `json:"appointments"`
	Continuing   []LaneRefDTO           `json:"continuing"`
	FreeLanes    []int                  `json:"free_lanes"`
}

type PlacedAppointmentDTO struct {
	appointment.Card

	Status     appointment.Status     `json:"status"`
	ClientType appointment.ClientType `json:"client_type,omitempty"`

	Lane     int  `json:"lane"`
	Overflow bool `json:"overflow,omitempty"`
	HeightPx int  `json:"height_px"`
	ZIndex   int  `json:"z_index"`
}

// LaneRefDTO marks a lane held by an appointment that started earlier.
type LaneRefDTO struct {
	ID        string `json:"id"`
	Lane      int    `json:"lane"`
	StartHour int    `json:"start_hour"`
}

// DraftDTO prefills the form for a new appointment.
type DraftDTO struct {
	WorkspaceID uint                    `json:"workspace_id"`
	Appointment appointment.Appointment `json:"appointment"`
}
