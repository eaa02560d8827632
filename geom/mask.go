package geom

import (
	"image"
	"math/bits"
)

// DefaultAlphaThreshold matches the usual sprite convention: a pixel is opaque
// when its 8-bit alpha is above 127.
const DefaultAlphaThreshold = 127

// Mask is a boolean per-pixel bitmap marking the opaque pixels of a sprite.
// Rows are packed into 64-bit words.
type Mask struct {
	w, h   int
	stride int // words per row
	bits   []uint64
}

// NewMask creates an empty mask of the given size
func NewMask(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	stride := (w + 63) / 64
	return &Mask{
		w:      w,
		h:      h,
		stride: stride,
		bits:   make([]uint64, stride*h),
	}
}

// FilledMask creates a mask with every pixel set
func FilledMask(w, h int) *Mask {
	m := NewMask(w, h)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			m.Set(x, y, true)
		}
	}
	return m
}

// MaskFromImage builds a mask from an image's alpha channel. A pixel is set when
// its alpha is strictly greater than threshold (0-255).
func MaskFromImage(img image.Image, threshold uint8) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	limit := uint32(threshold) * 0x101
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a > limit {
				m.Set(x-b.Min.X, y-b.Min.Y, true)
			}
		}
	}
	return m
}

// Size returns the mask dimensions
func (m *Mask) Size() image.Point {
	if m == nil {
		return image.Point{}
	}
	return image.Pt(m.w, m.h)
}

// Bounds returns the mask rectangle anchored at the origin
func (m *Mask) Bounds() image.Rectangle {
	if m == nil {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, m.w, m.h)
}

// At reports whether the pixel is opaque. Out-of-range pixels are transparent.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.bits[y*m.stride+x/64]&(1<<uint(x%64)) != 0
}

// Set sets or clears a pixel. Out-of-range writes are ignored.
func (m *Mask) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return
	}
	i := y*m.stride + x/64
	bit := uint64(1) << uint(x%64)
	if on {
		m.bits[i] |= bit
	} else {
		m.bits[i] &^= bit
	}
}

// Count returns the number of opaque pixels
func (m *Mask) Count() int {
	n := 0
	for _, w := range m.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// Overlap reports whether m and other share any opaque pixel when other's
// origin is placed at offset in m's coordinate space.
func (m *Mask) Overlap(other *Mask, offset image.Point) bool {
	if m == nil || other == nil {
		return false
	}
	area := m.Bounds().Intersect(other.Bounds().Add(offset))
	if area.Empty() {
		return false
	}
	for y := area.Min.Y; y < area.Max.Y; y++ {
		oy := y - offset.Y
		for x := area.Min.X; x < area.Max.X; {
			// Skip whole empty words of m quickly.
			word := m.bits[y*m.stride+x/64] >> uint(x%64)
			if word == 0 {
				x = (x/64 + 1) * 64
				continue
			}
			if word&1 != 0 && other.At(x-offset.X, oy) {
				return true
			}
			x++
		}
	}
	return false
}
