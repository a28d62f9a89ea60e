package repository

import "errors"

// ErrInsufficientStock is returned when a sale would drive a product's
// quantity below zero.
var ErrInsufficientStock = errors.New("insufficient stock")
