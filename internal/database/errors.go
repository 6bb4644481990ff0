package database

import "errors"

var (
	// ErrNotFound - the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConstraintViolation - a uniqueness-indexed field (username,
	// product barcode) collided on insert. Nothing was written.
	ErrConstraintViolation = errors.New("unique constraint violation")

	// ErrTransactionFailed - the atomic sale commit aborted. No sale
	// was inserted and no stock changed.
	ErrTransactionFailed = errors.New("sale transaction failed")
)
