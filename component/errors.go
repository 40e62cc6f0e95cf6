package component

import "errors"

var (
	// ErrInvalidAtlasDimensions is returned when an atlas cannot be cut into
	// the requested grid without leftover pixels.
	ErrInvalidAtlasDimensions = errors.New("invalid atlas dimensions")

	// ErrKeyCountMismatch is returned when direction keys cannot be mapped
	// onto the atlas rows.
	ErrKeyCountMismatch = errors.New("direction key count mismatch")
)
