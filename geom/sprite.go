package geom

import "image"

// Sprite pairs a logical image key with the opaque-pixel mask of that image.
// The key is what renderers use to look the image up again.
type Sprite struct {
	Key  string
	Mask *Mask
}

// Size returns the sprite's bounding size
func (s Sprite) Size() image.Point {
	return s.Mask.Size()
}
