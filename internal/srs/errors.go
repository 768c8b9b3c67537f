package srs

import "errors"

// Sentinel errors for the srs package.
// Use errors.Is to check: errors.Is(err, srs.ErrInvalidState)
var (
	ErrInvalidState  = errors.New("srs: invalid card state")
	ErrInvalidRating = errors.New("srs: invalid rating")
	ErrInvalidConfig = errors.New("srs: invalid scheduler config")
)
