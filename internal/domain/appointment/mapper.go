package appointment

import (
	"strconv"
	"strings"

	"github.com/BruksfildServices01/booking-calendar/internal/models"
)

const unknownClientName = "клиент не зарегистрирован"

// FromBooking maps a stored booking (with its client preloaded) to an
// Appointment.
func FromBooking(b models.Booking) Appointment {
	name := strings.TrimSpace(b.Client.Name + " " + b.Client.Surname)
	if name == "" {
		name = unknownClientName
	}

	clientType := ClientRegular
	if b.Client.Category == string(ClientVIP) {
		clientType = ClientVIP
	}

	return Appointment{
		ID:               strconv.FormatUint(uint64(b.ID), 10),
		Date:             b.Date,
		StartTime:        orMidnight(b.StartTime),
		EndTime:          orMidnight(b.EndTime),
		ClientID:         b.ClientID,
		ClientName:       name,
		PhoneNumber:      b.Client.Phone,
		Location:         b.Location,
		Status:           StatusFromRecord(b.Status),
		Comment:          b.Client.Comments,
		ClientType:       clientType,
		DateOfBirth:      b.Client.BirthDate,
		PersonalDiscount: b.Client.PersonalDiscount,
		Notes:            b.Client.Preferences,
	}
}

func orMidnight(hm string) string {
	if strings.TrimSpace(hm) == "" {
		return "00:00"
	}
	return hm
}

// ToBooking builds the booking record for a create or update.
func ToBooking(a Appointment, clientID, workspaceID uint) models.Booking {
	price := 0.0
	return models.Booking{
		WorkspaceID: workspaceID,
		ClientID:    clientID,
		Date:        a.Date,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		Location:    a.Location,
		Price:       &price,
		Status:      string(NormalizeStatus(string(a.Status))),
	}
}

// ToClient builds a new client record from the appointment form fields.
func ToClient(a Appointment, workspaceID uint) models.Client {
	name, surname := SplitClientName(a.ClientName)

	category := string(a.ClientType)
	if category == "" {
		category = string(ClientRegular)
	}

	return models.Client{
		WorkspaceID:      workspaceID,
		Name:             name,
		Surname:          surname,
		Phone:            a.PhoneNumber,
		Category:         category,
		PersonalDiscount: a.PersonalDiscount,
		BirthDate:        a.DateOfBirth,
		Preferences:      a.Notes,
		Comments:         a.Comment,
	}
}

// SplitClientName takes the first word as the name and the rest as surname.
func SplitClientName(full string) (name, surname string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// ParseID converts an appointment id to the booking's numeric key.
func ParseID(id string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
