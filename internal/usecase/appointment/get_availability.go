package appointment

import (
	"context"
	"time"

	domain "github.com/estudiobarber/turnos-api/internal/domain/appointment"
	"github.com/estudiobarber/turnos-api/internal/httperr"
)

// WorkingWindow is the shop-wide bookable window. Per-barber schedules would
// replace this, which is why it is injected configuration and not a constant.
type WorkingWindow struct {
	Open            string
	Close           string
	DefaultSlotMins int
}

type GetAvailability struct {
	repo   domain.Repository
	window WorkingWindow
}

func NewGetAvailability(repo domain.Repository, window WorkingWindow) *GetAvailability {
	return &GetAvailability{repo: repo, window: window}
}

// Execute computes the bookable slots for a barber on a date. The result is
// recomputed from the ledger on every call; nothing is cached and nothing is
// written.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	if in.BarberID == 0 || in.Date.IsZero() {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	if _, err := uc.repo.GetActiveBarber(ctx, in.BarberID); err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	slotMins := in.SlotMinutes
	if slotMins <= 0 {
		slotMins = uc.window.DefaultSlotMins
	}

	loc := in.Date.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			in.Date.Year(), in.Date.Month(), in.Date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	dayStart := parseHM(uc.window.Open)
	dayEnd := parseHM(uc.window.Close)

	appointments, err := uc.repo.ListAppointmentsForDay(
		ctx,
		in.BarberID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	slotDuration := time.Duration(slotMins) * time.Minute
	slots := []domain.TimeSlot{}

	apIdx := 0

	for cur := dayStart; cur.Add(slotDuration).Before(dayEnd) || cur.Add(slotDuration).Equal(dayEnd); cur = cur.Add(slotDuration) {

		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		// skip appointments that ended before this slot
		for apIdx < len(appointments) && !appointments[apIdx].EndTime.After(slotStart) {
			apIdx++
		}

		// Full interval comparison: a 60-minute appointment blocks every
		// slot it touches, not just the one sharing its start time.
		conflict := false
		if apIdx < len(appointments) {
			ap := appointments[apIdx]
			if domain.Overlaps(slotStart, slotEnd, ap.StartTime, ap.EndTime) {
				conflict = true
			}
		}

		if !conflict {
			slots = append(slots, domain.TimeSlot{
				Start: slotStart.Format("15:04"),
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	return slots, nil
}
