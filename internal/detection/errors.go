package detection

import "errors"

// Sentinel errors returned by the detection pipeline. Callers should test
// for them with errors.Is; returned errors carry additional context.
var (
	// ErrInvalidConfiguration indicates malformed kernel radii or sample
	// density. It is reported eagerly at construction time; no partial
	// kernel or selector is ever built.
	ErrInvalidConfiguration = errors.New("invalid detector configuration")

	// ErrNoImage indicates a query method was invoked before any image
	// was bound with SetImage. The selector remains usable; a valid
	// SetImage call afterward succeeds normally.
	ErrNoImage = errors.New("no image bound to selector")
)
