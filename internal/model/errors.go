package model

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("already exists")
	ErrNothingToPurchase = errors.New("nothing to purchase")
	ErrUpstream          = errors.New("upstream service failure")
)
