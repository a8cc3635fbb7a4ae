package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/fiducial-tools/internal/detection"
)

// Heatmap endpoints, blended in Lab space so the perceived gradient is
// uniform from the lowest to the highest score.
var (
	heatmapCold, _ = colorful.Hex("#1d3557")
	heatmapHot, _  = colorful.Hex("#ffd166")
)

// heatmapGap marks score-map cells that were never evaluated (the border
// margin around the interior region).
var heatmapGap = color.NRGBA{R: 32, G: 32, B: 32, A: 255}

// RenderScoreMap renders a symmetry score map as a heatmap image of the
// same extent. Evaluated cells map linearly from the map's score range
// onto a cold-to-hot gradient; unevaluated border cells render dark gray.
func RenderScoreMap(m *detection.ScoreMap) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.Columns(), m.Rows()))

	lo, hi, ok := m.Range()
	span := hi - lo

	for row := 0; row < m.Rows(); row++ {
		for col := 0; col < m.Columns(); col++ {
			if !m.Evaluated(row, col) {
				out.SetNRGBA(col, row, heatmapGap)
				continue
			}
			t := 0.0
			if ok && span > 0 {
				t = (m.At(row, col) - lo) / span
			}
			c := heatmapCold.BlendLab(heatmapHot, t).Clamped()
			r8, g8, b8 := c.RGB255()
			out.SetNRGBA(col, row, color.NRGBA{R: r8, G: g8, B: b8, A: 255})
		}
	}
	return out
}

// MarkKeypoints draws a ring and crosshair over each detected keypoint,
// returning a copy of the source image with the overlay applied. radius
// controls the ring size; the outer kernel radius reads well in practice.
func MarkKeypoints(img image.Image, keypoints []detection.Keypoint, radius int, mark color.Color) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	for _, kp := range keypoints {
		cx := kp.Column + bounds.Min.X
		cy := kp.Row + bounds.Min.Y
		drawRing(out, cx, cy, radius, mark)
		for d := -radius; d <= radius; d++ {
			setIfInside(out, cx+d, cy, mark)
			setIfInside(out, cx, cy+d, mark)
		}
	}
	return out
}

// drawRing plots a one-pixel circle outline using the midpoint algorithm.
func drawRing(img *image.NRGBA, cx, cy, radius int, c color.Color) {
	x := radius
	y := 0
	err := 0

	for x >= y {
		setIfInside(img, cx+x, cy+y, c)
		setIfInside(img, cx+y, cy+x, c)
		setIfInside(img, cx-y, cy+x, c)
		setIfInside(img, cx-x, cy+y, c)
		setIfInside(img, cx-x, cy-y, c)
		setIfInside(img, cx-y, cy-x, c)
		setIfInside(img, cx+y, cy-x, c)
		setIfInside(img, cx+x, cy-y, c)

		if err <= 0 {
			y++
			err += 2*y + 1
		}
		if err > 0 {
			x--
			err -= 2*x + 1
		}
	}
}

func setIfInside(img *image.NRGBA, x, y int, c color.Color) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.Set(x, y, c)
	}
}

// SaveImage writes img to path, picking the encoder from the extension.
// PNG, JPEG, GIF, TIFF, and BMP go through the imaging library; .pgm files
// are converted to grayscale and written with the PGM codec.
func SaveImage(path string, img image.Image) error {
	if strings.EqualFold(filepath.Ext(path), ".pgm") {
		return WritePGM(path, toGray(img))
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	src := imaging.Grayscale(img)
	bounds := src.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.SetGray(x, y, color.Gray{Y: src.NRGBAAt(x, y).R})
		}
	}
	return out
}
