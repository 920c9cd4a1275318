package ledger

import (
	"errors"

	"github.com/piresc/ledgersync/internal/pkg/chain"
)

var (
	// ErrNotFound is returned when a referenced record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrWrongProvider is returned when a job targets a transaction another settler owns
	ErrWrongProvider = errors.New("transaction provider not handled here")
	// ErrInvariantViolation aborts a watcher run without advancing the watermark
	ErrInvariantViolation = errors.New("ledger invariant violation")
	// ErrReceiptNotFound means the submitted hash is not mined yet
	ErrReceiptNotFound = chain.ErrReceiptNotFound
	// ErrConflict is returned when a unique key is already taken
	ErrConflict = errors.New("conflict")
	// ErrInvalidTransfer is returned for malformed transfer requests
	ErrInvalidTransfer = errors.New("invalid transfer")
	// ErrForbidden is returned when a user reads a transaction they are not part of
	ErrForbidden = errors.New("forbidden")
)
