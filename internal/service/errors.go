package service

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("already exists")
	ErrArchiveDisabled = errors.New("archive is not configured")
)
