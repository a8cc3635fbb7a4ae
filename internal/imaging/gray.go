package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Plane is a dense, row-major 8-bit grayscale copy of an image. It
// implements the pixel-source interface consumed by the detection package:
// Rows, Columns, and bounds-checked At.
//
// A Plane owns its pixel buffer, so the source image may be modified or
// discarded after construction. It is immutable and safe for concurrent
// reads.
type Plane struct {
	rows, cols int
	pix        []uint8
}

// NewPlane builds a grayscale plane from any image. Grayscale sources are
// copied directly; color sources are converted with BT.601 luminance
// weights first.
func NewPlane(img image.Image) *Plane {
	bounds := img.Bounds()
	p := &Plane{
		rows: bounds.Dy(),
		cols: bounds.Dx(),
		pix:  make([]uint8, bounds.Dy()*bounds.Dx()),
	}

	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < p.rows; y++ {
			copy(p.pix[y*p.cols:(y+1)*p.cols], g.Pix[y*g.Stride:y*g.Stride+p.cols])
		}
		return p
	}

	gray := imaging.Grayscale(img)
	for y := 0; y < p.rows; y++ {
		for x := 0; x < p.cols; x++ {
			p.pix[y*p.cols+x] = gray.Pix[y*gray.Stride+x*4]
		}
	}
	return p
}

// Rows returns the number of pixel rows.
func (p *Plane) Rows() int { return p.rows }

// Columns returns the number of pixel columns.
func (p *Plane) Columns() int { return p.cols }

// At returns the intensity at (row, column). Out-of-range coordinates
// return 0, following the image.Image convention for reads outside the
// bounds.
func (p *Plane) At(row, col int) uint8 {
	if row < 0 || row >= p.rows || col < 0 || col >= p.cols {
		return 0
	}
	return p.pix[row*p.cols+col]
}

// Gray copies the plane back into a standard *image.Gray, for encoding or
// visualization.
func (p *Plane) Gray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, p.cols, p.rows))
	for y := 0; y < p.rows; y++ {
		copy(g.Pix[y*g.Stride:y*g.Stride+p.cols], p.pix[y*p.cols:(y+1)*p.cols])
	}
	return g
}
