package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domain "github.com/estudiobarber/turnos-api/internal/domain/appointment"
	"github.com/estudiobarber/turnos-api/internal/httperr"
	"github.com/estudiobarber/turnos-api/internal/models"
)

func availabilityUC(repo *mockRepo) *GetAvailability {
	return NewGetAvailability(repo, WorkingWindow{
		Open:            "09:00",
		Close:           "18:00",
		DefaultSlotMins: 30,
	})
}

func activeBarberRepo() *mockRepo {
	return &mockRepo{
		getActiveBarberFn: func(ctx context.Context, barberID uint) (*models.Barber, error) {
			return &models.Barber{ID: barberID, DisplayName: "Nico", Active: true}, nil
		},
	}
}

func slotStarts(slots []domain.TimeSlot) []string {
	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	return starts
}

func TestGetAvailability_MissingFields(t *testing.T) {
	uc := availabilityUC(&mockRepo{})

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{})
	assert.True(t, httperr.IsBusiness(err, "missing_fields"))

	_, err = uc.Execute(context.Background(), domain.AvailabilityInput{BarberID: 3})
	assert.True(t, httperr.IsBusiness(err, "missing_fields"))
}

func TestGetAvailability_BarberNotFound(t *testing.T) {
	uc := availabilityUC(&mockRepo{})

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID: 9,
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))
}

func TestGetAvailability_EmptyDay(t *testing.T) {
	uc := availabilityUC(activeBarberRepo())

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID: 1,
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	// 09:00-18:00 at 30 minutes -> 18 slots
	assert.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "09:30", slots[0].End)
	assert.Equal(t, "17:30", slots[len(slots)-1].Start)
	assert.Equal(t, "18:00", slots[len(slots)-1].End)
}

func TestGetAvailability_BookedSlotExcluded(t *testing.T) {
	repo := activeBarberRepo()
	repo.listForDayFn = func(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
		return []models.Appointment{
			{
				BarberID:  barberID,
				StartTime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
			},
		}, nil
	}
	uc := availabilityUC(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID: 1,
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Len(t, slots, 17)
	assert.NotContains(t, slotStarts(slots), "10:00")
	assert.Contains(t, slotStarts(slots), "09:30")
	assert.Contains(t, slotStarts(slots), "10:30")
}

func TestGetAvailability_LongAppointmentBlocksEverySlotItTouches(t *testing.T) {
	repo := activeBarberRepo()
	repo.listForDayFn = func(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
		// 60-minute cut starting off the slot grid
		return []models.Appointment{
			{
				BarberID:  barberID,
				StartTime: time.Date(2025, 6, 1, 10, 15, 0, 0, time.UTC),
				EndTime:   time.Date(2025, 6, 1, 11, 15, 0, 0, time.UTC),
			},
		}, nil
	}
	uc := availabilityUC(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID: 1,
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	starts := slotStarts(slots)
	assert.NotContains(t, starts, "10:00")
	assert.NotContains(t, starts, "10:30")
	assert.NotContains(t, starts, "11:00")
	assert.Contains(t, starts, "09:30")
	assert.Contains(t, starts, "11:30")
	assert.Len(t, slots, 15)
}

func TestGetAvailability_AppointmentStraddlingWindowOpen(t *testing.T) {
	repo := activeBarberRepo()
	repo.listForDayFn = func(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
		// booked 08:30-09:30, before the window opened at 09:00
		return []models.Appointment{
			{
				BarberID:  barberID,
				StartTime: time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC),
				EndTime:   time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
			},
		}, nil
	}
	uc := availabilityUC(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID: 1,
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	starts := slotStarts(slots)
	assert.NotContains(t, starts, "09:00")
	assert.Contains(t, starts, "09:30")
	assert.Len(t, slots, 17)
}

func TestGetAvailability_CustomSlotDuration(t *testing.T) {
	uc := availabilityUC(activeBarberRepo())

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BarberID:    1,
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		SlotMinutes: 60,
	})

	assert.NoError(t, err)
	assert.Len(t, slots, 9)
	assert.Equal(t, "17:00", slots[len(slots)-1].Start)
}
