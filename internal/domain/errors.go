package domain

import "errors"

// Sentinel errors shared across the domain and adapter layers.
// Callers should test with errors.Is; adapters map them to transport
// status codes.
var (
	// ErrNotFound indicates a referenced entity does not exist, or is
	// owned by a different user (the two are deliberately
	// indistinguishable to the caller).
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a monetary or numeric field could not be
	// parsed. The valuation core fails loudly on unparsable input rather
	// than defaulting to zero.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateSnapshot indicates a snapshot already exists for the
	// same owner and date.
	ErrDuplicateSnapshot = errors.New("snapshot already exists for date")
)
