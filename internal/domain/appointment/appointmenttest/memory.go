// Package appointmenttest provides an in-memory appointment.Repository for
// tests of the layers above it.
package appointmenttest

import (
	"context"
	"sort"
	"sync"

	domain "github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-calendar/internal/models"
)

type Repository struct {
	mu sync.Mutex

	workspaces map[uint]models.Workspace
	clients    map[uint]models.Client
	bookings   map[uint]models.Booking
	nextID     uint

	// Fail, when set, is consulted before every call; a non-nil result is
	// returned as the call's error.
	Fail func(op string) error

	// BeforeCreateBooking runs before a booking is stored, outside the lock.
	BeforeCreateBooking func()

	Calls map[string]int
}

var _ domain.Repository = (*Repository)(nil)

func New() *Repository {
	return &Repository{
		workspaces: make(map[uint]models.Workspace),
		clients:    make(map[uint]models.Client),
		bookings:   make(map[uint]models.Booking),
		nextID:     100,
		Calls:      make(map[string]int),
	}
}

func (r *Repository) enter(op string) error {
	r.mu.Lock()
	r.Calls[op]++
	fail := r.Fail
	r.mu.Unlock()

	if fail != nil {
		return fail(op)
	}
	return nil
}

func (r *Repository) CallCount(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Calls[op]
}

// -------- seeding --------

func (r *Repository) AddWorkspace(ws models.Workspace) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workspaces[ws.ID] = ws
}

func (r *Repository) AddClient(c models.Client) models.Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		r.nextID++
		c.ID = r.nextID
	}
	r.clients[c.ID] = c
	return c
}

func (r *Repository) AddBooking(b models.Booking) models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == 0 {
		r.nextID++
		b.ID = r.nextID
	}
	r.bookings[b.ID] = b
	return b
}

func (r *Repository) Clients() []models.Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Repository) Bookings() []models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// -------- appointment.Repository --------

func (r *Repository) GetWorkspace(_ context.Context, id uint) (*models.Workspace, error) {
	if err := r.enter("GetWorkspace"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.workspaces[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ws, nil
}

func (r *Repository) ListClients(_ context.Context, workspaceID uint) ([]models.Client, error) {
	if err := r.enter("ListClients"); err != nil {
		return nil, err
	}
	var out []models.Client
	for _, c := range r.Clients() {
		if c.WorkspaceID == workspaceID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *Repository) GetClient(_ context.Context, workspaceID, clientID uint) (*models.Client, error) {
	if err := r.enter("GetClient"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[clientID]
	if !ok || c.WorkspaceID != workspaceID {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *Repository) CreateClient(_ context.Context, client *models.Client) error {
	if err := r.enter("CreateClient"); err != nil {
		return err
	}
	client.ID = 0
	*client = r.AddClient(*client)
	return nil
}

func (r *Repository) DeleteClient(_ context.Context, workspaceID, clientID uint) error {
	if err := r.enter("DeleteClient"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[clientID]
	if !ok || c.WorkspaceID != workspaceID {
		return domain.ErrNotFound
	}
	delete(r.clients, clientID)
	return nil
}

func (r *Repository) ListBookings(_ context.Context, workspaceID uint) ([]models.Booking, error) {
	if err := r.enter("ListBookings"); err != nil {
		return nil, err
	}
	var out []models.Booking
	for _, b := range r.Bookings() {
		if b.WorkspaceID == workspaceID {
			out = append(out, r.withClient(b))
		}
	}
	return out, nil
}

func (r *Repository) GetBooking(_ context.Context, workspaceID, bookingID uint) (*models.Booking, error) {
	if err := r.enter("GetBooking"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	b, ok := r.bookings[bookingID]
	r.mu.Unlock()
	if !ok || b.WorkspaceID != workspaceID {
		return nil, domain.ErrNotFound
	}
	b = r.withClient(b)
	return &b, nil
}

func (r *Repository) CreateBooking(_ context.Context, booking *models.Booking) error {
	if err := r.enter("CreateBooking"); err != nil {
		return err
	}
	if r.BeforeCreateBooking != nil {
		r.BeforeCreateBooking()
	}
	booking.ID = 0
	*booking = r.AddBooking(*booking)
	return nil
}

func (r *Repository) UpdateBooking(_ context.Context, booking *models.Booking) error {
	if err := r.enter("UpdateBooking"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.bookings[booking.ID]
	if !ok || current.WorkspaceID != booking.WorkspaceID {
		return domain.ErrNotFound
	}
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *Repository) DeleteBooking(_ context.Context, workspaceID, bookingID uint) error {
	if err := r.enter("DeleteBooking"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok || b.WorkspaceID != workspaceID {
		return domain.ErrNotFound
	}
	delete(r.bookings, bookingID)
	return nil
}

func (r *Repository) withClient(b models.Booking) models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.clients[b.ClientID]; ok && c.WorkspaceID == b.WorkspaceID {
		b.Client = c
	}
	return b
}
