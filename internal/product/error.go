package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidUnit     = errors.New("invalid unit")
	ErrInvalidPrice    = errors.New("price must be a non-negative number")
	ErrInvalidStock    = errors.New("stock must be a non-negative integer")
	ErrInvalidDiscount = errors.New("discount must be between 0 and 100")
)
