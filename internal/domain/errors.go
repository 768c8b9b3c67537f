package domain

import "errors"

// Domain errors shared by the storage and review layers.
var (
	ErrCardNotFound   = errors.New("card not found")
	ErrSourceNotFound = errors.New("source not found")
	ErrEmptyCard      = errors.New("card has no front text")
	ErrDuplicateCard  = errors.New("card already exists")
)
