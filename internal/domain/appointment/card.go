package appointment

import "fmt"

// Card is the rendered content of one appointment block.
type Card struct {
	ID            string `json:"id"`
	TimeRange     string `json:"time_range"`
	ClientName    string `json:"client_name"`
	PhoneNumber   string `json:"phone_number"`
	Location      string `json:"location,omitempty"`
	Comment       string `json:"comment,omitempty"`
	Badge         Badge  `json:"badge"`
	DurationHours int    `json:"duration_hours"`
	DurationLabel string `json:"duration_label,omitempty"`
}

func NewCard(a Appointment) Card {
	hours := a.DurationHours()

	card := Card{
		ID:            a.ID,
		TimeRange:     a.StartTime + "-" + a.EndTime,
		ClientName:    a.ClientName,
		PhoneNumber:   a.PhoneNumber,
		Location:      a.Location,
		Comment:       a.Comment,
		Badge:         BadgeFor(a.Status),
		DurationHours: hours,
	}
	if hours > 1 {
		card.DurationLabel = fmt.Sprintf("Длительность: %d %s", hours, hourWord(hours))
	}
	return card
}

func hourWord(n int) string {
	switch {
	case n == 1:
		return "час"
	case n < 5:
		return "часа"
	default:
		return "часов"
	}
}
