package utils

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrTripNotFound        = errors.New("trip not found")
	ErrHotelNotFound       = errors.New("hotel option not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrRideNotFound        = errors.New("ride search not found")
	ErrRideOptionExpired   = errors.New("ride option not found or expired")
	ErrDraftNotFound       = errors.New("no pending booking draft")
	ErrCapacityExceeded    = errors.New("passenger count exceeds vehicle capacity")
	ErrDateInPast          = errors.New("date is in the past")
	ErrRequestInFlight     = errors.New("a request for this user is already in progress")
	ErrOracleUnavailable   = errors.New("ai model request failed")
	ErrPaymentFailed       = errors.New("payment session could not be created")
	ErrPaymentNotCompleted = errors.New("payment has not been completed")
	ErrDatabaseError       = errors.New("database error")
)
