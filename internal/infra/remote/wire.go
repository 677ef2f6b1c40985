package remote

import (
	"github.com/BruksfildServices01/booking-calendar/internal/models"
)

// -------- booking API payloads --------

type clientRead struct {
	ID               uint     `json:"id"`
	Name             string   `json:"name"`
	Surname          string   `json:"surname"`
	Phone            *string  `json:"phone"`
	Email            *string  `json:"email"`
	BirthDate        *string  `json:"birth_date"`
	Prefernces       *string  `json:"prefernces"`
	Comments         *string  `json:"comments"`
	Category         *string  `json:"category"`
	PersonalDiscount *float64 `json:"personal_discount"`
}

type clientCreate struct {
	Name             string   `json:"name"`
	Surname          string   `json:"surname"`
	Phone            *string  `json:"phone,omitempty"`
	Email            *string  `json:"email,omitempty"`
	BirthDate        *string  `json:"birth_date,omitempty"`
	Prefernces       *string  `json:"prefernces,omitempty"`
	Comments         *string  `json:"comments,omitempty"`
	Category         *string  `json:"category,omitempty"`
	PersonalDiscount *float64 `json:"personal_discount,omitempty"`
}

// create_client answers with the new client or just its id
type clientCreated struct {
	ID       uint `json:"id"`
	ClientID uint `json:"client_id"`
}

type bookingRead struct {
	ID          uint       `json:"id"`
	BookingID   uint       `json:"booking_id"`
	ClientID    uint       `json:"client_id"`
	WorkspaceID uint       `json:"workspace_id"`
	StartTime   *string    `json:"start_time"`
	EndTime     *string    `json:"end_time"`
	Date        *string    `json:"date"`
	Location    *string    `json:"location"`
	Price       *float64   `json:"price"`
	Status      *string    `json:"status"`
	Client      clientRead `json:"client"`
}

type bookingWrite struct {
	ID          uint     `json:"id,omitempty"`
	ClientID    uint     `json:"client_id"`
	WorkspaceID uint     `json:"workspace_id"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Date        *string  `json:"date"`
	Location    *string  `json:"location,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Status      string   `json:"status"`
}

type workspaceRead struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Location *string `json:"location"`
	UserID   uint    `json:"user_id"`
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r clientRead) model(workspaceID uint) models.Client {
	return models.Client{
		ID:               r.ID,
		WorkspaceID:      workspaceID,
		Name:             r.Name,
		Surname:          r.Surname,
		Phone:            str(r.Phone),
		Email:            str(r.Email),
		BirthDate:        str(r.BirthDate),
		Preferences:      str(r.Prefernces),
		Comments:         str(r.Comments),
		Category:         str(r.Category),
		PersonalDiscount: r.PersonalDiscount,
	}
}

func newClientCreate(c models.Client) clientCreate {
	return clientCreate{
		Name:             c.Name,
		Surname:          c.Surname,
		Phone:            ptr(c.Phone),
		Email:            ptr(c.Email),
		BirthDate:        ptr(c.BirthDate),
		Prefernces:       ptr(c.Preferences),
		Comments:         ptr(c.Comments),
		Category:         ptr(c.Category),
		PersonalDiscount: c.PersonalDiscount,
	}
}

func (r bookingRead) model() models.Booking {
	id := r.ID
	if id == 0 {
		id = r.BookingID
	}
	return models.Booking{
		ID:          id,
		WorkspaceID: r.WorkspaceID,
		ClientID:    r.ClientID,
		Client:      r.Client.model(r.WorkspaceID),
		Date:        str(r.Date),
		StartTime:   str(r.StartTime),
		EndTime:     str(r.EndTime),
		Location:    str(r.Location),
		Price:       r.Price,
		Status:      str(r.Status),
	}
}

func newBookingWrite(b models.Booking) bookingWrite {
	return bookingWrite{
		ID:          b.ID,
		ClientID:    b.ClientID,
		WorkspaceID: b.WorkspaceID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Date:        ptr(b.Date),
		Location:    ptr(b.Location),
		Price:       b.Price,
		Status:      b.Status,
	}
}
