package repository

import (
	"context"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/estudiobarber/turnos-api/internal/domain/appointment"
	"github.com/estudiobarber/turnos-api/internal/httperr"
	"github.com/estudiobarber/turnos-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetActiveService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = true", serviceID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetActiveBarber(
	ctx context.Context,
	barberID uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = true", barberID).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	id string,
	name string,
	phone string,
	email string,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&customer).Error

	if err == nil {
		return &customer, nil
	}

	customer = models.Customer{
		ID:    id,
		Name:  name,
		Phone: phone,
		Email: email,
	}

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}

	return &customer, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// overlapping scopes the query to non-cancelled appointments for barberID
// whose interval intersects [start, end).
func overlapping(tx *gorm.DB, barberID uint, start, end time.Time) *gorm.DB {
	return tx.
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			barberID,
			string(domain.StatusCancelled),
			end,
			start,
		)
}

func (r *AppointmentGormRepository) CreateAppointmentIfFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Postgres rejects FOR UPDATE on aggregates, so lock the
		// conflicting rows themselves instead of counting them.
		var conflicts []uint
		if err := overlapping(tx, ap.BarberID, ap.StartTime, ap.EndTime).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Limit(1).
			Pluck("id", &conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("slot_taken")
		}

		return tx.Create(ap).Error
	})
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barber").
		First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) FindByPaymentRef(
	ctx context.Context,
	externalRef string,
) (*models.Appointment, error) {

	id, err := strconv.ParseUint(externalRef, 10, 64)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		First(&ap, uint(id)).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Availability / listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	// Interval overlap, not start-within-window: an appointment straddling
	// the window open must still block the slots it covers.
	var apps []models.Appointment
	if err := overlapping(r.db.WithContext(ctx), barberID, start, end).
		Select("start_time", "end_time").
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Barber").
		Preload("Service").
		Where(
			"start_time >= ? AND start_time < ?",
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
