package store

import "errors"

var (
	// ErrNotFound is returned by update/delete actions that reference an
	// unknown id. The store is left unchanged.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a payload violates an entity invariant.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientStock is returned when a checkout would drive stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)
