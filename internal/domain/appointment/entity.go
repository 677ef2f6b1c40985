package appointment

type ClientType string

const (
	ClientRegular ClientType = "regular"
	ClientVIP     ClientType = "vip"
)

// Appointment is the calendar's view of a booking joined with its client.
type Appointment struct {
	ID   string `json:"id"`
	Date string `json:"date,omitempty"`

	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	ClientID    uint   `json:"client_id,omitempty"`
	ClientName  string `json:"client_name"`
	PhoneNumber string `json:"phone_number"`
	Location    string `json:"location"`
	Status      Status `json:"status"`

	Comment          string     `json:"comment,omitempty"`
	ClientType       ClientType `json:"client_type,omitempty"`
	DateOfBirth      string     `json:"date_of_birth,omitempty"`
	PersonalDiscount *float64   `json:"personal_discount,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}

// StartHour reports the hour row the appointment starts in.
func (a Appointment) StartHour() (int, bool) {
	c, err := ParseClock(a.StartTime)
	if err != nil || c.Hour() > 23 {
		return 0, false
	}
	return c.Hour(), true
}

func (a Appointment) DurationHours() int {
	return DurationHours(a.StartTime, a.EndTime)
}

// OnDate reports whether a booking stored with bookingDate belongs to day.
// Bookings without a date are shown on every day.
func OnDate(bookingDate, day string) bool {
	return bookingDate == "" || bookingDate == day
}
