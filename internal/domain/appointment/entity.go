package appointment

import "time"

type AvailabilityInput struct {
	BarberID    uint
	Date        time.Time
	SlotMinutes int
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Overlaps reports whether [aStart, aEnd) intersects [bStart, bEnd).
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
