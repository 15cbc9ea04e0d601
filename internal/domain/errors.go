package domain

import "errors"

// Sentinel errors shared by services and repositories.
var (
	ErrNotFound                  = errors.New("not found")
	ErrInvalidInput              = errors.New("invalid input")
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
	ErrUpstreamUnavailable       = errors.New("payment gateway unavailable")
	ErrNoActiveEvent             = errors.New("no active event")
	ErrActiveEventDelete         = errors.New("cannot delete active event")
	ErrTransactionExists         = errors.New("transaction already processed")
	ErrInvalidCredentials        = errors.New("invalid email or password")
	ErrDuplicateEmail            = errors.New("email already in use")
	ErrTokenExpired              = errors.New("token expired")
)
