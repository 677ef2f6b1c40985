package calendar

import (
	"fmt"
	"time"
)

// DefaultRowHeightPx matches the height of one hour row in the web client.
const DefaultRowHeightPx = 96

// BlockHeight is the pixel height of an appointment block. Multi-hour
// blocks stretch over the rows below their start row.
func BlockHeight(durationHours, rowHeightPx int) int {
	if durationHours <= 1 {
		return rowHeightPx
	}
	return durationHours * rowHeightPx
}

// ZIndex puts longer blocks above the shorter ones they overlap.
func ZIndex(durationHours int) int {
	if durationHours <= 1 {
		return 0
	}
	return 10 + durationHours
}

var monthsGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// DayTitle formats a date the way the calendar header shows it,
// e.g. "16 октября 2026 г.".
func DayTitle(d time.Time) string {
	return fmt.Sprintf("%d %s %d г.", d.Day(), monthsGenitive[d.Month()-1], d.Year())
}
