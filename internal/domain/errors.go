package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUpstreamModel   = errors.New("model request failed")
	ErrProfileNotFound = errors.New("github profile not found")
	ErrParse           = errors.New("could not parse model response")
	ErrPersistence     = errors.New("persistence failure")
	ErrNegotiationOver = errors.New("negotiation is over")
	ErrRateLimited     = errors.New("rate limited")
)
