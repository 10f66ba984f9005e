package repository

import "errors"

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrNoAvailability is returned when an accommodation has no remaining
// capacity for the requested range. Expected and frequent under contention;
// callers refresh and retry with different parameters.
var ErrNoAvailability = errors.New("no availability for requested dates")

// ErrAlreadySold is returned when an auction item already has a buyer.
var ErrAlreadySold = errors.New("auction item already sold")

// ErrNotAuctionItem is returned when a purchase targets a non-auction unit.
var ErrNotAuctionItem = errors.New("accommodation is not an auction item")

// ErrInsufficientCredit is returned when a confirm would overdraw the
// user's credit balance.
var ErrInsufficientCredit = errors.New("insufficient credit balance")

// ErrPaymentRefMismatch is returned when a booking is re-confirmed with a
// different external payment reference than the one it was confirmed with.
var ErrPaymentRefMismatch = errors.New("booking already confirmed with a different payment reference")

// ErrBookingCancelled is returned when a confirm targets a cancelled booking.
var ErrBookingCancelled = errors.New("booking is cancelled")
