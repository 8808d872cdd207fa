package entity

import "errors"

var (
	// Settings errors
	ErrSettingsNotFound = errors.New("settings not found")

	// Booking errors
	ErrBookingNotFound    = errors.New("booking not found")
	ErrInvalidBookingDate = errors.New("invalid booking date")
	ErrDateOutOfWindow    = errors.New("booking date outside the allowed window")
	ErrUnknownSlot        = errors.New("unknown time slot")
	ErrInvalidGroupSize   = errors.New("invalid group size")
	ErrMissingContactInfo = errors.New("name, email and phone are required")

	// Allocation errors
	ErrSlotCapacityExhausted = errors.New("not enough seats left in this slot")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)
