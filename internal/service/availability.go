package service

import (
	"math"
	"time"

	"github.com/unievents/venue-booking-service/internal/models"
)

// overlaps reports whether the half-open windows [s1, e1) and [s2, e2)
// intersect. Windows that touch exactly at a boundary do not overlap, so a
// booking ending at 10:00 and one starting at 10:00 can coexist.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// round2 rounds to two decimal places, matching the numeric(10,2) columns.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// computeTotalCost derives a booking's total from the venue's hourly rate and
// the snapshotted equipment subtotals. A venue without a rate costs nothing.
func computeTotalCost(hourlyRate *float64, durationHours float64, equipment []models.BookingEquipment) float64 {
	var venueCost float64
	if hourlyRate != nil {
		venueCost = *hourlyRate * durationHours
	}

	var equipmentCost float64
	for _, row := range equipment {
		equipmentCost += row.Subtotal
	}

	return round2(venueCost + equipmentCost)
}
