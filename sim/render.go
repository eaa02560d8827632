package sim

import (
	"image"
	"image/color"
	"math"

	"dinorun/geom"
)

// CommandKind identifies a draw command
type CommandKind int

const (
	// CommandBlit draws the sprite image with its top-left at At
	CommandBlit CommandKind = iota
	// CommandOutline strokes the closed polygon Points in Color
	CommandOutline
)

// DrawCommand is one render-sink instruction produced by the engine
type DrawCommand struct {
	Kind   CommandKind
	Sprite string
	At     image.Point
	Points []image.Point
	Color  color.RGBA
}

// Hull overlay colors
var (
	ColorPlayerHull   = color.RGBA{R: 255, A: 255}
	ColorObstacleHull = color.RGBA{G: 255, A: 255}
	ColorMeteorHull   = color.RGBA{B: 255, A: 255}
)

// DrawHull appends an outline command for hull shifted to offset. Empty hulls
// append nothing.
func DrawHull(cmds []DrawCommand, hull []image.Point, offset image.Point, clr color.RGBA) []DrawCommand {
	if len(hull) < 3 {
		return cmds
	}
	return append(cmds, DrawCommand{
		Kind:   CommandOutline,
		Points: geom.Translate(hull, offset),
		Color:  clr,
	})
}

func blit(cmds []DrawCommand, e *Entity) []DrawCommand {
	return append(cmds, DrawCommand{Kind: CommandBlit, Sprite: e.SpriteKey(), At: e.TopLeft()})
}

// drawWorld emits the frame's commands in painter's order: background,
// player, cacti, meteors, craters, birds, then debris.
func drawWorld(w *WorldState, background geom.Sprite, showHulls bool, cmds []DrawCommand) []DrawCommand {
	bgWidth := background.Size().X
	if bgWidth > 0 {
		tiles := int(math.Ceil(float64(w.Config.ScreenWidth)/float64(bgWidth))) + 1
		offset := int(w.Scroll)
		for i := 0; i < tiles; i++ {
			cmds = append(cmds, DrawCommand{
				Kind:   CommandBlit,
				Sprite: background.Key,
				At:     image.Pt(i*bgWidth+offset, 0),
			})
		}
	}

	layer := func(list []*Entity, hull bool, clr color.RGBA) {
		for _, e := range list {
			if !e.Active {
				continue
			}
			cmds = blit(cmds, e)
			if hull && showHulls {
				cmds = DrawHull(cmds, e.Hull(), e.TopLeft(), clr)
			}
		}
	}

	if w.Player != nil {
		layer([]*Entity{w.Player.Entity}, true, ColorPlayerHull)
	}
	layer(w.Cacti, true, ColorObstacleHull)
	layer(w.Meteors, true, ColorMeteorHull)
	layer(w.Craters, true, ColorMeteorHull)
	layer(w.Birds, true, ColorObstacleHull)
	layer(w.BrokenCacti, false, color.RGBA{})
	layer(w.BrokenBirds, false, color.RGBA{})
	return cmds
}
