package service

import "errors"

var (
	// ErrValidation wraps malformed input; the detail is surfaced verbatim.
	ErrValidation = errors.New("validation failed")

	ErrVenueNotFound       = errors.New("venue not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrEquipmentNotFound   = errors.New("equipment not found")
	ErrMaintenanceNotFound = errors.New("maintenance request not found")

	// ErrInvalidStateTransition means the booking was not in a status that
	// allows the attempted transition. Never retried automatically.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrVenueUnavailable means an approved booking already occupies an
	// overlapping window on the venue.
	ErrVenueUnavailable = errors.New("venue is no longer available for the requested time")

	ErrNotOwner = errors.New("only the booking owner may perform this action")
)
