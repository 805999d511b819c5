package services

import "errors"

var (
	ErrBadCreds       = errors.New("invalid email or password")
	ErrUnknownProduct = errors.New("unknown product reference")
	ErrNoItems        = errors.New("at least one line item required")
	ErrBadQuantity    = errors.New("quantity must be a positive integer")
	ErrBadPrice       = errors.New("price must be non-negative")
	ErrBadMargin      = errors.New("target margin must be between 5 and 50")
	ErrBadStatus      = errors.New("invalid sale status")
	ErrHasChildren    = errors.New("category has subcategories")
	ErrTooManyTiers   = errors.New("too many price tiers")
)
