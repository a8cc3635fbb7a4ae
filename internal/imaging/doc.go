// Package imaging provides the pixel plumbing around the fiducial
// detector: image loading and caching, grayscale planes, the PGM codec,
// and visualization of detection results.
//
// The detection core only consumes a narrow read-only pixel interface;
// everything in this package exists to feed that interface from files on
// disk and to render what the detector produced back into images.
//
// # Coordinate System
//
// The detection core addresses pixels as (row, column) with (0, 0) at the
// top-left corner. Standard Go images address pixels as (x, y); Plane
// performs the transposition, so row maps to y and column maps to x.
//
// # Formats
//
// PNG, JPEG, and GIF decode through the stdlib registry. 8-bit PGM (both
// the binary P5 and ASCII P2 variants) is handled by this package
// directly, since calibration captures are commonly archived as PGM and
// the stdlib has no decoder for it.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Plane is immutable after
// construction and safe for concurrent reads. The rendering helpers are
// stateless.
package imaging
