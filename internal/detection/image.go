package detection

// Image is the read-only grayscale pixel source consumed by the detector.
//
// The detector requires 8-bit unsigned intensity semantics and never writes
// through this interface. Implementations must return stable values for the
// lifetime of a detection session: the selector assumes the bound image does
// not change between SetImage and the query calls that follow it.
//
// Coordinates are (row, column) with (0, 0) at the top-left corner, rows
// increasing downward and columns increasing rightward. The detector only
// reads pixels in [0, Rows) x [0, Columns); behavior outside that range is
// up to the implementation.
type Image interface {
	// Rows returns the number of pixel rows.
	Rows() int

	// Columns returns the number of pixel columns.
	Columns() int

	// At returns the intensity at (row, column).
	At(row, column int) uint8
}
