package game

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"dinorun/sim"
)

// ImageSource supplies the image behind a draw command's sprite key
type ImageSource interface {
	Image(key string) (image.Image, bool)
}

var (
	skyColor     = color.RGBA{247, 243, 232, 255}
	textColor    = color.RGBA{83, 83, 83, 255}
	overlayColor = color.RGBA{0, 0, 0, 140}
)

// Renderer executes engine draw commands on an ebiten screen
type Renderer struct {
	source        ImageSource
	cache         map[string]*ebiten.Image
	missing       map[string]bool
	face          text.Face
	width, height int
	logger        *log.Logger
}

// NewRenderer creates a renderer for a width x height playfield
func NewRenderer(source ImageSource, width, height int, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{
		source:  source,
		cache:   make(map[string]*ebiten.Image),
		missing: make(map[string]bool),
		face:    text.NewGoXFace(basicfont.Face7x13),
		width:   width,
		height:  height,
		logger:  logger,
	}
}

// Render executes cmds in order, so later commands paint over earlier ones
func (r *Renderer) Render(screen *ebiten.Image, cmds []sim.DrawCommand) {
	screen.Fill(skyColor)
	for _, c := range cmds {
		switch c.Kind {
		case sim.CommandBlit:
			r.blit(screen, c.Sprite, c.At)
		case sim.CommandOutline:
			r.outline(screen, c.Points, c.Color)
		}
	}
}

func (r *Renderer) blit(screen *ebiten.Image, key string, at image.Point) {
	img := r.image(key)
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(at.X), float64(at.Y))
	screen.DrawImage(img, op)
}

// outline strokes the closed polygon through points
func (r *Renderer) outline(screen *ebiten.Image, points []image.Point, clr color.Color) {
	for i, a := range points {
		b := points[(i+1)%len(points)]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, clr, false)
	}
}

// image returns the GPU image for key, uploading it on first use
func (r *Renderer) image(key string) *ebiten.Image {
	if img, ok := r.cache[key]; ok {
		return img
	}
	src, ok := r.source.Image(key)
	if !ok {
		if !r.missing[key] {
			r.missing[key] = true
			r.logger.Printf("no image for sprite %q", key)
		}
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	r.cache[key] = img
	return img
}

// DrawHUD prints the score and level in the top-right corner
func (r *Renderer) DrawHUD(screen *ebiten.Image, f sim.Frame) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(r.width-20), 20)
	op.ColorScale.ScaleWithColor(textColor)
	op.PrimaryAlign = text.AlignEnd
	text.Draw(screen, fmt.Sprintf("Points: %d", f.Score), r.face, op)

	op.GeoM.Translate(0, 18)
	text.Draw(screen, fmt.Sprintf("Level: %d  Speed: %.1f", f.Level, f.Speed), r.face, op)
}

// DrawGameOver dims the playfield and shows the final score
func (r *Renderer) DrawGameOver(screen *ebiten.Image, score int) {
	vector.DrawFilledRect(screen, 0, 0, float32(r.width), float32(r.height), overlayColor, false)

	lines := []string{
		"GAME OVER",
		fmt.Sprintf("Your Score: %d", score),
		"Press any key to restart, Esc to quit",
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(r.width)/2, float64(r.height)/2-30)
	op.ColorScale.ScaleWithColor(color.White)
	op.PrimaryAlign = text.AlignCenter
	for _, line := range lines {
		text.Draw(screen, line, r.face, op)
		op.GeoM.Translate(0, 24)
	}
}
