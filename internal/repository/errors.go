package repository

import "errors"

var (
	// ErrNotFound is wrapped by every lookup that matches no row.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a taxonomy name is added twice.
	ErrAlreadyExists = errors.New("already exists")
)
