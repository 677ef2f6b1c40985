package calendar

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
)

const (
	HoursPerDay = 24
	LaneCount   = 3
)

// Placement is one appointment drawn in one lane. A multi-hour appointment
// keeps the lane it got in its start hour for every hour it covers.
type Placement struct {
	Appointment   appointment.Appointment
	StartHour     int
	DurationHours int
	Lane          int

	// Overflow is set when all lanes were taken in the start hour and the
	// lane was picked from the appointment id instead.
	Overflow bool
}

// Row is one hour of the day grid.
type Row struct {
	Hour  int
	Label string

	// Starting holds the appointments that begin in this hour.
	Starting []Placement
	// Continuing holds multi-hour appointments that began earlier.
	Continuing []Placement

	Occupied [LaneCount]bool
}

// FreeLanes lists lanes with nothing drawn in them for this hour.
func (r Row) FreeLanes() []int {
	free := make([]int, 0, LaneCount)
	for i, taken := range r.Occupied {
		if !taken {
			free = append(free, i)
		}
	}
	return free
}

type Plan struct {
	Rows [HoursPerDay]Row

	// Unplaced holds appointments whose start time cannot be read.
	Unplaced []appointment.Appointment
}

// Row returns the row for hour h, or an empty row when h is outside 0..23.
func (p Plan) Row(h int) Row {
	if h < 0 || h >= HoursPerDay {
		return Row{Hour: h}
	}
	return p.Rows[h]
}

func FormatHour(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

// AssignHour lays out the whole day and returns hour h.
func AssignHour(apps []appointment.Appointment, h int) Row {
	return Layout(apps).Row(h)
}

type candidate struct {
	ap     appointment.Appointment
	start  appointment.Clock
	hour   int
	length int
}

// Layout assigns every appointment of a day to one of LaneCount lanes per
// hour row.
//
// Hours are walked in order. Appointments still running from earlier hours
// occupy their lane first; then the ones starting in the hour are placed,
// longest first. A multi-hour appointment prefers lane startHour%LaneCount,
// anything else takes the first free lane. When no lane is free the lane is
// derived from a hash of the id, so the result does not change between calls.
func Layout(apps []appointment.Appointment) Plan {
	var plan Plan
	for h := range plan.Rows {
		plan.Rows[h] = Row{Hour: h, Label: FormatHour(h)}
	}

	byHour := make([][]candidate, HoursPerDay)
	for _, ap := range apps {
		start, err := appointment.ParseClock(ap.StartTime)
		if err != nil || start.Hour() >= HoursPerDay {
			plan.Unplaced = append(plan.Unplaced, ap)
			continue
		}
		h := start.Hour()
		byHour[h] = append(byHour[h], candidate{
			ap:     ap,
			start:  start,
			hour:   h,
			length: ap.DurationHours(),
		})
	}

	var spanning []Placement

	for h := 0; h < HoursPerDay; h++ {
		row := &plan.Rows[h]

		still := spanning[:0]
		for _, pl := range spanning {
			if pl.StartHour+pl.DurationHours > h {
				row.Continuing = append(row.Continuing, pl)
				row.Occupied[pl.Lane] = true
				still = append(still, pl)
			}
		}
		spanning = still

		starting := byHour[h]
		sortCandidates(starting)

		for _, c := range starting {
			lane, overflow := pickLane(row.Occupied, c)
			pl := Placement{
				Appointment:   c.ap,
				StartHour:     c.hour,
				DurationHours: c.length,
				Lane:          lane,
				Overflow:      overflow,
			}
			row.Occupied[lane] = true
			row.Starting = append(row.Starting, pl)

			if c.length > 1 {
				spanning = append(spanning, pl)
			}
		}
	}

	return plan
}

func sortCandidates(cs []candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].length != cs[j].length {
			return cs[i].length > cs[j].length
		}
		if cs[i].start != cs[j].start {
			return cs[i].start < cs[j].start
		}
		return cs[i].ap.ID < cs[j].ap.ID
	})
}

func pickLane(occupied [LaneCount]bool, c candidate) (int, bool) {
	if c.length > 1 {
		if pref := c.hour % LaneCount; !occupied[pref] {
			return pref, false
		}
	}
	for i := 0; i < LaneCount; i++ {
		if !occupied[i] {
			return i, false
		}
	}
	return OverflowLane(c.ap.ID), true
}

// OverflowLane is the lane used when an hour has no free lane left.
func OverflowLane(id string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return int(h.Sum32() % LaneCount)
}
