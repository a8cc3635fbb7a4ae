package imaging

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/ironsheep/fiducial-tools/internal/detection"
)

// scoreMapForTest produces a real score map by scanning a small uniform
// image, so the border margin and interior shape match production output.
func scoreMapForTest(t *testing.T, rows, cols int) *detection.ScoreMap {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, cols, rows))
	for i := range img.Pix {
		img.Pix[i] = 100
	}

	sel, err := detection.NewSelector(3, 5, 2)
	if err != nil {
		t.Fatalf("NewSelector failed: %v", err)
	}
	sel.SetImage(NewPlane(img))
	m, err := sel.ScoreMap()
	if err != nil {
		t.Fatalf("ScoreMap failed: %v", err)
	}
	return m
}

func TestRenderScoreMap(t *testing.T) {
	m := scoreMapForTest(t, 30, 40)
	out := RenderScoreMap(m)

	bounds := out.Bounds()
	if bounds.Dx() != 40 || bounds.Dy() != 30 {
		t.Fatalf("dimensions: got %dx%d, want 40x30", bounds.Dx(), bounds.Dy())
	}

	// Border cells are never evaluated and render as the gap color.
	if got := out.NRGBAAt(0, 0); got != heatmapGap {
		t.Errorf("corner pixel: got %v, want gap color %v", got, heatmapGap)
	}

	// Interior cells carry a gradient color, never the gap color.
	b := m.Border()
	if got := out.NRGBAAt(b+2, b+2); got == heatmapGap {
		t.Errorf("interior pixel at (%d, %d) rendered as gap color", b+2, b+2)
	}
}

func TestMarkKeypoints(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 50, 50))
	keypoints := []detection.Keypoint{{Row: 25, Column: 25, Score: 0.9}}
	mark := color.NRGBA{R: 255, A: 255}

	out := MarkKeypoints(src, keypoints, 6, mark)

	if !out.Bounds().Eq(src.Bounds()) {
		t.Fatalf("bounds: got %v, want %v", out.Bounds(), src.Bounds())
	}

	// Crosshair passes through the center; ring sits on the axes at
	// the given radius.
	for _, px := range []image.Point{
		{25, 25},
		{25 + 6, 25},
		{25 - 6, 25},
		{25, 25 + 6},
		{25, 25 - 6},
	} {
		if got := out.NRGBAAt(px.X, px.Y); got != mark {
			t.Errorf("pixel %v: got %v, want mark color", px, got)
		}
	}

	// Pixels well outside the overlay keep the source intensity.
	if got := out.NRGBAAt(2, 2); got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("background pixel changed: %v", got)
	}

	// The source image is untouched.
	if src.GrayAt(25, 25).Y != 0 {
		t.Error("MarkKeypoints must not modify the source image")
	}
}

func TestMarkKeypoints_NearEdge(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 20, 20))
	keypoints := []detection.Keypoint{{Row: 1, Column: 1, Score: 0.8}}

	// Must not panic when the overlay extends past the image bounds.
	out := MarkKeypoints(src, keypoints, 8, color.NRGBA{G: 255, A: 255})
	if out == nil {
		t.Fatal("MarkKeypoints returned nil")
	}
}

func TestSaveImage_PGM(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 8, 6))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 5)
	}

	path := filepath.Join(t.TempDir(), "overlay.pgm")
	if err := SaveImage(path, src); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	got, err := ReadPGM(path)
	if err != nil {
		t.Fatalf("ReadPGM failed: %v", err)
	}
	if got.Bounds().Dx() != 8 || got.Bounds().Dy() != 6 {
		t.Errorf("dimensions: got %dx%d, want 8x6", got.Bounds().Dx(), got.Bounds().Dy())
	}
	if got.Pix[10] != src.Pix[10] {
		t.Errorf("pixel 10: got %d, want %d", got.Pix[10], src.Pix[10])
	}
}

func TestSaveImage_PNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))

	path := filepath.Join(t.TempDir(), "heatmap.png")
	if err := SaveImage(path, src); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	cache := NewImageCache()
	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load of saved PNG failed: %v", err)
	}
	if img.Bounds().Dx() != 10 {
		t.Errorf("width: got %d, want 10", img.Bounds().Dx())
	}
}
