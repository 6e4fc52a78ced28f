package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/unievents/venue-booking-service/config"
	"github.com/unievents/venue-booking-service/internal/repository"
)

var sweepTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "booking_sweep_transitions_total",
	Help: "Bookings moved by the background sweep, by transition.",
}, []string{"transition"})

// Sweeper periodically auto-rejects stale pending bookings and completes
// approved bookings whose event has ended. Both paths reuse the lifecycle
// transitions, so they hit the exact same guards as manual admin actions.
type Sweeper struct {
	bookingRepo repository.BookingRepository
	bookingSvc  BookingService
	rules       config.BookingRules
}

func NewSweeper(bookingRepo repository.BookingRepository, bookingSvc BookingService, rules config.BookingRules) *Sweeper {
	return &Sweeper{bookingRepo: bookingRepo, bookingSvc: bookingSvc, rules: rules}
}

func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.rules.SweepInterval)
	defer ticker.Stop()

	log.Printf("[Sweeper] running every %s (auto-reject after %s)", s.rules.SweepInterval, s.rules.AutoRejectAfter)
	for {
		select {
		case <-ctx.Done():
			log.Println("[Sweeper] stopping")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	s.autoRejectStale(ctx)
	s.completeEnded(ctx)
}

func (s *Sweeper) autoRejectStale(ctx context.Context) {
	if s.rules.AutoRejectAfter <= 0 {
		return
	}
	cutoff := time.Now().Add(-s.rules.AutoRejectAfter)
	stale, err := s.bookingRepo.FindPendingOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("[Sweeper] failed to list stale pending bookings: %v", err)
		return
	}

	reason := fmt.Sprintf("Automatically rejected: no decision within %d hours", int(s.rules.AutoRejectAfter.Hours()))
	for _, booking := range stale {
		if _, err := s.bookingSvc.Reject(ctx, booking.ID, nil, reason); err != nil {
			// An admin may have decided while we were sweeping.
			if errors.Is(err, ErrInvalidStateTransition) {
				continue
			}
			log.Printf("[Sweeper] failed to auto-reject booking %d: %v", booking.ID, err)
			continue
		}
		sweepTransitions.WithLabelValues("auto_reject").Inc()
		log.Printf("[Sweeper] auto-rejected stale booking %d", booking.ID)
	}
}

func (s *Sweeper) completeEnded(ctx context.Context) {
	ended, err := s.bookingRepo.FindApprovedEndedBefore(ctx, time.Now())
	if err != nil {
		log.Printf("[Sweeper] failed to list ended bookings: %v", err)
		return
	}

	for _, booking := range ended {
		if _, err := s.bookingSvc.Complete(ctx, booking.ID); err != nil {
			if errors.Is(err, ErrInvalidStateTransition) {
				continue
			}
			log.Printf("[Sweeper] failed to complete booking %d: %v", booking.ID, err)
			continue
		}
		sweepTransitions.WithLabelValues("complete").Inc()
		log.Printf("[Sweeper] completed booking %d", booking.ID)
	}
}
