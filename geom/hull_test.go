package geom

import (
	"image"
	"testing"
)

func TestOutlineSquareIsOrderedBoundary(t *testing.T) {
	got := FilledMask(2, 2).Outline()
	want := []image.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	if len(got) != len(want) {
		t.Fatalf("outline = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("outline = %v, want %v", got, want)
		}
	}
}

func TestOutlineOnlyBoundaryPixels(t *testing.T) {
	m := FilledMask(6, 5)
	for _, p := range m.Outline() {
		if p.X != 0 && p.Y != 0 && p.X != 5 && p.Y != 4 {
			t.Errorf("interior pixel %v in outline", p)
		}
	}
}

func TestOutlineEmptyAndSingle(t *testing.T) {
	if got := NewMask(5, 5).Outline(); got != nil {
		t.Errorf("empty mask outline = %v, want nil", got)
	}
	m := NewMask(5, 5)
	m.Set(2, 3, true)
	got := m.Outline()
	if len(got) != 1 || got[0] != image.Pt(2, 3) {
		t.Errorf("single pixel outline = %v", got)
	}
}

func TestConvexHullDegenerate(t *testing.T) {
	tests := []struct {
		name string
		mask *Mask
	}{
		{"empty", NewMask(4, 4)},
		{"single pixel", FilledMask(1, 1)},
		{"two pixels", FilledMask(2, 1)},
		{"horizontal line", FilledMask(5, 1)},
		{"vertical line", FilledMask(1, 7)},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvexHull(tt.mask); len(got) != 0 {
				t.Errorf("hull = %v, want empty", got)
			}
		})
	}
}

func TestConvexHullFilledRectangleIsCorners(t *testing.T) {
	hull := ConvexHull(FilledMask(4, 3))
	want := map[image.Point]bool{
		{0, 0}: true, {3, 0}: true, {3, 2}: true, {0, 2}: true,
	}
	if len(hull) != len(want) {
		t.Fatalf("hull = %v, want the four corners", hull)
	}
	for _, p := range hull {
		if !want[p] {
			t.Errorf("unexpected hull vertex %v", p)
		}
	}
}

func TestConvexHullTriangle(t *testing.T) {
	m := NewMask(5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x <= y; x++ {
			m.Set(x, y, true)
		}
	}
	hull := ConvexHull(m)
	if len(hull) != 3 {
		t.Fatalf("hull = %v, want 3 vertices", hull)
	}
}

func TestHullContainsOutline(t *testing.T) {
	m := NewMask(9, 9)
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			dx, dy := x-4, y-4
			if dx*dx+dy*dy <= 16 {
				m.Set(x, y, true)
			}
		}
	}
	hull := ConvexHull(m)
	if len(hull) < 3 {
		t.Fatalf("disc hull too small: %v", hull)
	}
	for _, p := range m.Outline() {
		for i := range hull {
			a, b := hull[i], hull[(i+1)%len(hull)]
			if cross(a, b, p) < 0 {
				t.Fatalf("outline point %v lies outside hull edge %v-%v", p, a, b)
			}
		}
	}
}

func TestTranslate(t *testing.T) {
	got := Translate([]image.Point{{1, 2}, {3, 4}}, image.Pt(10, -1))
	if got[0] != image.Pt(11, 1) || got[1] != image.Pt(13, 3) {
		t.Errorf("translate = %v", got)
	}
	if Translate(nil, image.Pt(1, 1)) != nil {
		t.Error("translate of nil should be nil")
	}
}
