package digger

import (
	"fmt"

	"github.com/vovakirdan/tui-digger/internal/core"
	dcore "github.com/vovakirdan/tui-digger/internal/games/digger/core"
)

const hudHeight = 2

// cellStyle returns the rune and color used to draw a creature kind.
func cellStyle(k dcore.Kind) (rune, core.Color) {
	switch k {
	case dcore.KindTerrain:
		return '░', core.ColorBrown
	case dcore.KindPlayer:
		return '@', core.ColorCyan
	case dcore.KindSack:
		return '$', core.ColorWhite
	case dcore.KindGold:
		return '*', core.ColorBrightYellow
	case dcore.KindMonster:
		return 'M', core.ColorBrightRed
	default:
		return ' ', core.ColorDefault
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	top := 0
	if g.cfg.Display.ShowHUD {
		g.renderHUD(dst)
		top = hudHeight
	}

	if g.loadErr != nil || g.sim == nil {
		msg := "No levels"
		if g.loadErr != nil {
			msg = truncate(g.loadErr.Error(), dst.Width()-6)
		}
		g.renderOverlay(dst, "Level error", msg)
		return
	}

	b := g.sim.Board
	if dst.Width() < b.W+2 || dst.Height() < b.H+2+top {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", b.W+2, b.H+2+top))
		return
	}

	area := core.NewRect(0, top, dst.Width(), dst.Height()-top)
	frame := area.Centered(b.W+2, b.H+2)
	dst.DrawBox(frame)
	g.renderBoard(dst, frame.X+1, frame.Y+1)

	switch {
	case g.levelCleared:
		g.renderOverlay(dst, fmt.Sprintf("Level %d cleared!", g.levelIndex+1), g.currentLevel().Name)
	case g.won:
		g.renderOverlay(dst, "You Win!", fmt.Sprintf("Final Score: %d", g.sim.Score))
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	lvl := g.currentLevel()
	score, gold := 0, 0
	if g.sim != nil {
		score = g.sim.Score
		gold = g.sim.Board.Count(dcore.KindGold)
	}
	hud := fmt.Sprintf(" Digger | Score: %d  Level: %d/%d %s  Gold left: %d",
		score, g.levelIndex+1, len(g.campaign), lvl.Name, gold)
	dst.DrawText(0, 0, hud)

	// Flash the pickup for a short while after collecting gold.
	if g.lastCollect > 0 && g.frame-g.lastCollect < 30 {
		bonus := fmt.Sprintf("+%d ", dcore.GoldReward)
		dst.DrawTextColored(dst.Width()-len(bonus), 0, bonus, core.ColorBrightYellow)
	}

	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderBoard draws every cell with its top-left at (ox, oy).
func (g *Game) renderBoard(dst *core.Screen, ox, oy int) {
	b := g.sim.Board
	for x := 0; x < b.W; x++ {
		for y := 0; y < b.H; y++ {
			r, c := cellStyle(dcore.KindOf(b.At(x, y)))
			dst.SetColored(ox+x, oy+y, r, c)
		}
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := dst.Bounds().Centered(boxW, 5)
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 1 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
