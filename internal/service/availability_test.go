package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/unievents/venue-booking-service/internal/models"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 1, 10, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical windows", at(9, 0), at(11, 0), at(9, 0), at(11, 0), true},
		{"partial overlap", at(9, 0), at(11, 0), at(10, 30), at(12, 0), true},
		{"contained window", at(9, 0), at(12, 0), at(10, 0), at(11, 0), true},
		{"containing window", at(10, 0), at(11, 0), at(9, 0), at(12, 0), true},
		{"disjoint before", at(9, 0), at(10, 0), at(11, 0), at(12, 0), false},
		{"disjoint after", at(11, 0), at(12, 0), at(9, 0), at(10, 0), false},
		// Half-open semantics: touching boundaries are not a conflict.
		{"adjacent, end meets start", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"adjacent, start meets end", at(10, 0), at(11, 0), at(9, 0), at(10, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			// Overlap is symmetric
			assert.Equal(t, tt.want, overlaps(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

func TestComputeTotalCost_VenueOnly(t *testing.T) {
	rate := 100.0
	total := computeTotalCost(&rate, 2, nil)
	assert.Equal(t, 200.00, total)
}

func TestComputeTotalCost_NoRate(t *testing.T) {
	total := computeTotalCost(nil, 5, nil)
	assert.Equal(t, 0.00, total)
}

func TestComputeTotalCost_WithEquipment(t *testing.T) {
	rate := 50.0
	equipment := []models.BookingEquipment{
		{QuantityRequested: 2, RatePerUnit: 15, Subtotal: 30},
		{QuantityRequested: 1, RatePerUnit: 12.5, Subtotal: 12.5},
	}
	total := computeTotalCost(&rate, 1.5, equipment)
	assert.Equal(t, 117.50, total)
}

func TestComputeTotalCost_FractionalHoursRounded(t *testing.T) {
	rate := 33.33
	// 100 minutes = 1.666... hours; 33.33 * 1.666... = 55.55
	total := computeTotalCost(&rate, 100.0/60.0, nil)
	assert.Equal(t, 55.55, total)
}

func TestComputeTotalCost_Deterministic(t *testing.T) {
	rate := 75.25
	equipment := []models.BookingEquipment{{QuantityRequested: 3, RatePerUnit: 9.99, Subtotal: 29.97}}

	first := computeTotalCost(&rate, 2.5, equipment)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, computeTotalCost(&rate, 2.5, equipment))
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.30, round2(0.1+0.2))
	assert.Equal(t, 200.00, round2(200.004))
	assert.Equal(t, 100.00, round2(99.999))
}
