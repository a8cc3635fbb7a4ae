package detection

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewKernel_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name                  string
		inner, outer, density int
	}{
		{"zero inner radius", 0, 15, 5},
		{"negative inner radius", -3, 15, 5},
		{"equal radii", 10, 10, 5},
		{"inverted radii", 15, 10, 5},
		{"zero density", 10, 15, 0},
		{"negative density", 10, 15, -2},
		{"single band cannot alternate", 10, 15, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := NewKernel(tt.inner, tt.outer, tt.density)
			if err == nil {
				t.Fatalf("NewKernel(%d, %d, %d) should fail", tt.inner, tt.outer, tt.density)
			}
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("error %v should wrap ErrInvalidConfiguration", err)
			}
			if k != nil {
				t.Error("no partial kernel may be built on configuration failure")
			}
		})
	}
}

func TestNewKernel_Properties(t *testing.T) {
	k, err := NewKernel(10, 15, 5)
	if err != nil {
		t.Fatalf("NewKernel failed: %v", err)
	}

	if k.Inner() != 10 || k.Outer() != 15 || k.Density() != 5 {
		t.Errorf("configuration accessors: got (%d, %d, %d), want (10, 15, 5)",
			k.Inner(), k.Outer(), k.Density())
	}
	if k.MaxRadius() != 15 {
		t.Errorf("MaxRadius: got %d, want 15", k.MaxRadius())
	}

	samples := k.Samples()
	if len(samples) == 0 {
		t.Fatal("kernel has no samples")
	}
	if len(samples) != k.Size() {
		t.Errorf("Size %d disagrees with len(Samples) %d", k.Size(), len(samples))
	}

	var sum, norm float64
	positive, negative := 0, 0
	for _, s := range samples {
		d := math.Hypot(float64(s.DR), float64(s.DC))
		if d < 10 || d >= 15 {
			t.Errorf("sample (%d, %d) at distance %.2f outside annulus [10, 15)", s.DR, s.DC, d)
		}
		sum += s.Weight
		norm += s.Weight * s.Weight
		if s.Weight > 0 {
			positive++
		} else if s.Weight < 0 {
			negative++
		}
	}
	if math.Abs(sum) > 1e-9 {
		t.Errorf("weights sum to %.3e, want 0", sum)
	}
	if math.Abs(norm-1) > 1e-9 {
		t.Errorf("weight norm squared is %.6f, want 1", norm)
	}
	if positive == 0 || negative == 0 {
		t.Errorf("kernel must carry both polarities, got %d positive and %d negative", positive, negative)
	}
}

func TestNewKernel_Deterministic(t *testing.T) {
	k1, err := NewKernel(10, 15, 5)
	if err != nil {
		t.Fatalf("first NewKernel failed: %v", err)
	}
	k2, err := NewKernel(10, 15, 5)
	if err != nil {
		t.Fatalf("second NewKernel failed: %v", err)
	}
	if diff := cmp.Diff(k1.Samples(), k2.Samples()); diff != "" {
		t.Errorf("identical configurations built different kernels (-k1 +k2):\n%s", diff)
	}
}

func TestKernel_SharedAcrossSelectors(t *testing.T) {
	k, err := NewKernel(10, 15, 5)
	if err != nil {
		t.Fatalf("NewKernel failed: %v", err)
	}

	img := newGridImage(120, 110, 128)
	drawBullseye(img, 59, 54, 10, 15, 5)

	selA := NewSelectorWithKernel(k, DefaultOptions(k))
	selB := NewSelectorWithKernel(k, DefaultOptions(k))
	selA.SetImage(img)
	selB.SetImage(img)

	kpsA, err := selA.Keypoints()
	if err != nil {
		t.Fatalf("selector A failed: %v", err)
	}
	kpsB, err := selB.Keypoints()
	if err != nil {
		t.Fatalf("selector B failed: %v", err)
	}
	if diff := cmp.Diff(kpsA, kpsB); diff != "" {
		t.Errorf("selectors sharing a kernel disagree (-A +B):\n%s", diff)
	}
}
