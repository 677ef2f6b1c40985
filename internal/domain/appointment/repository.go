package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/booking-calendar/internal/models"
)

// ErrNotFound is returned by repositories when a record does not exist in
// the requested workspace.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	// -------- Workspace --------
	GetWorkspace(
		ctx context.Context,
		id uint,
	) (*models.Workspace, error)

	// -------- Client --------
	ListClients(
		ctx context.Context,
		workspaceID uint,
	) ([]models.Client, error)

	// GetClient reports ErrNotFound for clients of another workspace.
	GetClient(
		ctx context.Context,
		workspaceID uint,
		clientID uint,
	) (*models.Client, error)

	CreateClient(
		ctx context.Context,
		client *models.Client,
	) error

	DeleteClient(
		ctx context.Context,
		workspaceID uint,
		clientID uint,
	) error

	// -------- Booking --------
	ListBookings(
		ctx context.Context,
		workspaceID uint,
	) ([]models.Booking, error)

	GetBooking(
		ctx context.Context,
		workspaceID uint,
		bookingID uint,
	) (*models.Booking, error)

	CreateBooking(
		ctx context.Context,
		booking *models.Booking,
	) error

	UpdateBooking(
		ctx context.Context,
		booking *models.Booking,
	) error

	DeleteBooking(
		ctx context.Context,
		workspaceID uint,
		bookingID uint,
	) error
}
