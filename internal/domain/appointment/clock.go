package appointment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidClock = errors.New("invalid time of day")

// Clock is a wall-clock time of day in minutes since midnight.
type Clock int

// ParseClock accepts "H:MM", "HH:MM" and "HH:MM:SS" (seconds are dropped).
// "24:00" is accepted so an appointment can end at midnight.
func ParseClock(s string) (Clock, error) {
	raw := strings.TrimSpace(s)

	hh, rest, ok := strings.Cut(raw, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	mm, ss, hasSeconds := strings.Cut(rest, ":")

	if len(hh) < 1 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if hasSeconds && len(ss) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	h, okH := digits(hh)
	m, okM := digits(mm)
	if !okH || !okM || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if hasSeconds {
		if sec, okS := digits(ss); !okS || sec > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
	}

	return Clock(h*60 + m), nil
}

func digits(s string) (int, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// ClockAt returns the clock at the top of hour h.
func ClockAt(h int) Clock {
	return Clock(h * 60)
}

func (c Clock) Hour() int {
	return int(c) / 60
}

func (c Clock) Minute() int {
	return int(c) % 60
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// DurationHours returns how many hour rows a start/end pair covers.
// Any partial hour counts as a full one and the result is never below 1,
// also for zero-length, reversed or unparseable input.
func DurationHours(start, end string) int {
	s, err := ParseClock(start)
	if err != nil {
		return 1
	}
	e, err := ParseClock(end)
	if err != nil {
		return 1
	}

	minutes := int(e - s)
	if minutes <= 0 {
		return 1
	}
	return (minutes + 59) / 60
}
