package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-calendar/internal/models"
)

// Repository implements appointment.Repository on top of the booking API.
type Repository struct {
	api *Client
}

var _ appointment.Repository = (*Repository)(nil)

func NewRepository(api *Client) *Repository {
	return &Repository{api: api}
}

// ======================================================
// WORKSPACE
// ======================================================

func (r *Repository) GetWorkspace(ctx context.Context, id uint) (*models.Workspace, error) {
	var out workspaceRead
	if err := r.api.do(ctx, http.MethodGet, "/api/workspace/workspaces/"+idString(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get workspace %d: %w", id, err)
	}
	return &models.Workspace{
		ID:       out.ID,
		Name:     out.Name,
		Location: str(out.Location),
		UserID:   out.UserID,
	}, nil
}

// ======================================================
// CLIENTS
// ======================================================

// ListClients returns the clients visible to the API token. The API does
// not scope clients by workspace, so they are all tagged with workspaceID.
func (r *Repository) ListClients(ctx context.Context, workspaceID uint) ([]models.Client, error) {
	var out []clientRead
	if err := r.api.do(ctx, http.MethodGet, "/api/client/get_clients", nil, &out); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	clients := make([]models.Client, 0, len(out))
	for _, c := range out {
		clients = append(clients, c.model(workspaceID))
	}
	return clients, nil
}

// GetClient looks the client up among those visible to the API token,
// the same scope ListClients serves for workspaceID.
func (r *Repository) GetClient(ctx context.Context, workspaceID, clientID uint) (*models.Client, error) {
	var out clientRead
	if err := r.api.do(ctx, http.MethodGet, "/api/client/get_client/"+idString(clientID), nil, &out); err != nil {
		return nil, fmt.Errorf("get client %d: %w", clientID, err)
	}
	if out.ID != 0 && out.ID != clientID {
		return nil, fmt.Errorf("get client %d: %w", clientID, appointment.ErrNotFound)
	}

	c := out.model(workspaceID)
	c.ID = clientID
	return &c, nil
}

func (r *Repository) CreateClient(ctx context.Context, client *models.Client) error {
	var out clientCreated
	if err := r.api.do(ctx, http.MethodPost, "/api/client/create_client", newClientCreate(*client), &out); err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	id := out.ClientID
	if id == 0 {
		id = out.ID
	}
	if id == 0 {
		return fmt.Errorf("create client: response carries no id")
	}
	client.ID = id
	return nil
}

func (r *Repository) DeleteClient(ctx context.Context, _ uint, clientID uint) error {
	q := url.Values{"client_id": {idString(clientID)}}
	if err := r.api.do(ctx, http.MethodDelete, "/api/client/delete_client?"+q.Encode(), nil, nil); err != nil {
		return fmt.Errorf("delete client %d: %w", clientID, err)
	}
	return nil
}

// ======================================================
// BOOKINGS
// ======================================================

func (r *Repository) ListBookings(ctx context.Context, workspaceID uint) ([]models.Booking, error) {
	var out []bookingRead
	if err := r.api.do(ctx, http.MethodGet, "/api/booking/bookings/workspace/"+idString(workspaceID), nil, &out); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	bookings := make([]models.Booking, 0, len(out))
	for _, b := range out {
		m := b.model()
		if m.WorkspaceID == 0 {
			m.WorkspaceID = workspaceID
		}
		bookings = append(bookings, m)
	}
	return bookings, nil
}

// GetBooking reports appointment.ErrNotFound for bookings of another
// workspace as well as for missing ones.
func (r *Repository) GetBooking(ctx context.Context, workspaceID, bookingID uint) (*models.Booking, error) {
	var out bookingRead
	if err := r.api.do(ctx, http.MethodGet, "/api/booking/bookings/"+idString(bookingID), nil, &out); err != nil {
		return nil, fmt.Errorf("get booking %d: %w", bookingID, err)
	}

	b := out.model()
	if b.WorkspaceID != 0 && b.WorkspaceID != workspaceID {
		return nil, fmt.Errorf("get booking %d: %w", bookingID, appointment.ErrNotFound)
	}
	return &b, nil
}

func (r *Repository) CreateBooking(ctx context.Context, booking *models.Booking) error {
	var out bookingRead
	if err := r.api.do(ctx, http.MethodPost, "/api/booking/bookings", newBookingWrite(*booking), &out); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	created := out.model()
	if created.ID == 0 {
		return fmt.Errorf("create booking: response carries no id")
	}
	booking.ID = created.ID
	return nil
}

// UpdateBooking sends the id in the body, the API has no id in the path
// for updates.
func (r *Repository) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	if err := r.api.do(ctx, http.MethodPut, "/api/booking/bookings", newBookingWrite(*booking), nil); err != nil {
		return fmt.Errorf("update booking %d: %w", booking.ID, err)
	}
	return nil
}

func (r *Repository) DeleteBooking(ctx context.Context, workspaceID, bookingID uint) error {
	if _, err := r.GetBooking(ctx, workspaceID, bookingID); err != nil {
		return err
	}

	q := url.Values{"booking_id": {idString(bookingID)}}
	if err := r.api.do(ctx, http.MethodDelete, "/api/booking/bookings?"+q.Encode(), nil, nil); err != nil {
		return fmt.Errorf("delete booking %d: %w", bookingID, err)
	}
	return nil
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
