package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-calendar/internal/models"
)

// BookingGormRepository stores workspaces, clients and bookings in postgres.
type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Workspace
// --------------------------------------------------

func (r *BookingGormRepository) GetWorkspace(
	ctx context.Context,
	id uint,
) (*models.Workspace, error) {

	var ws models.Workspace
	if err := r.db.WithContext(ctx).First(&ws, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ws, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) ListClients(
	ctx context.Context,
	workspaceID uint,
) ([]models.Client, error) {

	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("name ASC, surname ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *BookingGormRepository) GetClient(
	ctx context.Context,
	workspaceID uint,
	clientID uint,
) (*models.Client, error) {

	var c models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", clientID, workspaceID).
		First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *BookingGormRepository) CreateClient(
	ctx context.Context,
	client *models.Client,
) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *BookingGormRepository) DeleteClient(
	ctx context.Context,
	workspaceID uint,
	clientID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", clientID, workspaceID).
		Delete(&models.Client{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	workspaceID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client", "workspace_id = ?", workspaceID).
		Where("workspace_id = ?", workspaceID).
		Order("date ASC, start_time ASC, id ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	workspaceID uint,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client", "workspace_id = ?", workspaceID).
		Where("id = ? AND workspace_id = ?", bookingID, workspaceID).
		First(&b).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	booking *models.Booking,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(booking).Error
}

// UpdateBooking locks the row so two editors of the same booking are
// serialised, and refuses bookings of another workspace.
func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	booking *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND workspace_id = ?", booking.ID, booking.WorkspaceID).
			First(&current).Error; err != nil {
			return notFound(err)
		}

		booking.CreatedAt = current.CreatedAt
		if err := tx.Omit(clause.Associations).Save(booking).Error; err != nil {
			return fmt.Errorf("save booking %d: %w", booking.ID, err)
		}
		return nil
	})
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	workspaceID uint,
	bookingID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND workspace_id = ?", bookingID, workspaceID).
		Delete(&models.Booking{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
