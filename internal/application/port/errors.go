package port

import "errors"

var (
	// ErrDuplicateKey signals an insert that collided with an existing
	// record on a unique key, e.g. the (user_id, week_start_date) pair.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrVersionMismatch signals a conditional update that matched no row
	// because the record changed since it was read.
	ErrVersionMismatch = errors.New("version mismatch")
)
