package service

import (
	"math"

	"hrms-portal/models"
)

// FullDayHours is the closed-shift total at which a day counts as Present.
const FullDayHours = 8.0

// RecalculateDay recomputes every derived field of day from its shifts and
// returns the result; the argument is not modified.
//
// Open shifts contribute nothing, so a user who is mid-shift and has fewer
// than FullDayHours closed reads as Half-Day until they check out.
func RecalculateDay(day models.AttendanceDay) models.AttendanceDay {
	day = day.Clone()

	var total float64
	for i := range day.Shifts {
		shift := &day.Shifts[i]
		if shift.CheckOut == nil {
			shift.Duration = 0
			continue
		}
		shift.Duration = roundHours(shift.CheckOut.Sub(shift.CheckIn).Hours())
		total += shift.Duration
	}
	day.WorkingHours = roundHours(total)

	switch {
	case len(day.Shifts) == 0:
		day.Status = models.StatusAbsent
	case day.WorkingHours >= FullDayHours:
		day.Status = models.StatusPresent
	default:
		day.Status = models.StatusHalfDay
	}
	return day
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
