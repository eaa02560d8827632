// Package assets provides the game's sprites: built-in SVG artwork rasterized at
// startup, optional PNG overrides from a directory, and scaled variants.
package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"

	"dinorun/geom"
	"dinorun/sim"
)

//go:embed sprites/*.svg
var builtin embed.FS

// ErrUnknownSprite is returned for names with neither an override nor built-in artwork
var ErrUnknownSprite = errors.New("unknown sprite")

// Library resolves sprite names to images and opaque-pixel masks. Images are
// cached by key: the plain name for native sprites and "name@WxH" for scaled ones.
type Library struct {
	dir       string
	debugDir  string
	threshold uint8
	logger    *log.Logger

	images  map[string]image.Image
	sprites map[string]geom.Sprite
}

// Option configures a Library
type Option func(*Library)

// WithOverrideDir loads "<name>.png" from dir in place of the built-in artwork
// when such a file exists.
func WithOverrideDir(dir string) Option {
	return func(l *Library) {
		l.dir = dir
	}
}

// WithDebugDir writes every rasterized sprite to dir as a PNG
func WithDebugDir(dir string) Option {
	return func(l *Library) {
		l.debugDir = dir
	}
}

// WithThreshold sets the alpha level above which a pixel counts as opaque
func WithThreshold(threshold uint8) Option {
	return func(l *Library) {
		l.threshold = threshold
	}
}

// WithLogger routes load diagnostics to logger
func WithLogger(logger *log.Logger) Option {
	return func(l *Library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLibrary creates a library and resolves every sprite the engine needs, so
// a broken override fails at startup rather than mid-game.
func NewLibrary(opts ...Option) (*Library, error) {
	l := &Library{
		threshold: geom.DefaultAlphaThreshold,
		logger:    log.Default(),
		images:    make(map[string]image.Image),
		sprites:   make(map[string]geom.Sprite),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.debugDir != "" {
		if err := os.MkdirAll(l.debugDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sprite debug dir: %w", err)
		}
	}
	for _, name := range sim.RequiredSprites() {
		if _, err := l.Sprite(name); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Sprite returns the named sprite at its native size
func (l *Library) Sprite(name string) (geom.Sprite, error) {
	if s, ok := l.sprites[name]; ok {
		return s, nil
	}
	img, err := l.load(name)
	if err != nil {
		return geom.Sprite{}, err
	}
	return l.store(name, img), nil
}

// Scaled returns the named sprite resized to w x h with nearest-neighbour
// sampling. Results are cached per size.
func (l *Library) Scaled(name string, w, h int) (geom.Sprite, error) {
	if w <= 0 || h <= 0 {
		return geom.Sprite{}, fmt.Errorf("invalid size %dx%d for sprite %q", w, h, name)
	}
	key := ScaledKey(name, w, h)
	if s, ok := l.sprites[key]; ok {
		return s, nil
	}
	if _, err := l.Sprite(name); err != nil {
		return geom.Sprite{}, err
	}
	src := l.images[name]
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return l.store(key, dst), nil
}

// Image returns the image cached under key, as used in draw commands
func (l *Library) Image(key string) (image.Image, bool) {
	img, ok := l.images[key]
	return img, ok
}

// ScaledKey returns the cache key of a scaled sprite
func ScaledKey(name string, w, h int) string {
	return fmt.Sprintf("%s@%dx%d", name, w, h)
}

func (l *Library) store(key string, img image.Image) geom.Sprite {
	s := geom.Sprite{Key: key, Mask: geom.MaskFromImage(img, l.threshold)}
	l.images[key] = img
	l.sprites[key] = s
	if l.debugDir != "" {
		saveDebugPNG(img, filepath.Join(l.debugDir, key+".png"), l.logger)
	}
	return s
}

func (l *Library) load(name string) (image.Image, error) {
	if l.dir != "" {
		img, err := loadPNG(filepath.Join(l.dir, name+".png"))
		switch {
		case err == nil:
			l.logger.Printf("sprite %q loaded from %s", name, l.dir)
			return img, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("failed to load sprite %q: %w", name, err)
		}
	}

	data, err := builtin.ReadFile("sprites/" + name + ".svg")
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownSprite, name)
	}
	img, err := rasterize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize sprite %q: %w", name, err)
	}
	return img, nil
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

// rasterize renders an SVG document at the size of its view box
func rasterize(data []byte) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	w, h := int(icon.ViewBox.W), int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty view box %vx%v", icon.ViewBox.W, icon.ViewBox.H)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

// saveDebugPNG writes img for inspection; failures are logged and ignored
func saveDebugPNG(img image.Image, path string, logger *log.Logger) {
	f, err := os.Create(path)
	if err != nil {
		logger.Printf("failed to create debug PNG: %v", err)
		return
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		logger.Printf("failed to encode debug PNG: %v", err)
	}
}
