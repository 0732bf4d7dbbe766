package repository

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input data")
	ErrDuplicate    = errors.New("duplicate resource")
)
