package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"dinorun/sim"
)

// DebugState holds debug flags that persist across restarts
type DebugState struct {
	ShowStats bool // Show FPS, tick rate and entity counts
}

// handleDebugKeys toggles the hull overlay and the stats line
func (g *Game) handleDebugKeys() {
	if g.input.Pressed(g.config.Keys.ToggleHulls) {
		show := !g.engine.ShowHulls()
		g.engine.SetShowHulls(show)
		g.logger.Printf("hull overlay: %v", show)
	}
	if g.input.Pressed(g.config.Keys.ToggleStats) {
		g.debug.ShowStats = !g.debug.ShowStats
	}
}

// drawStats prints the debug line in the top-left corner
func (g *Game) drawStats(screen *ebiten.Image) {
	if !g.debug.ShowStats {
		return
	}
	w := g.engine.World()
	nodes := countNodes(g.engine.Collisions().Tree())
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS %.1f  TPS %.1f  entities %d  quadtree nodes %d",
		g.fps, ebiten.ActualTPS(), w.LiveCount()+1, nodes))
}

func countNodes(q *sim.Quadtree) int {
	n := 1
	for _, c := range q.Children() {
		n += countNodes(c)
	}
	return n
}
