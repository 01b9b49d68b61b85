package frontend

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"tankarena/game"
)

const (
	hudMarginX      = 10
	hudLineHeight   = 16
	healthBarWidth  = 200.0
	healthBarHeight = 12.0
	healthLowRatio  = 0.3
)

// hudLines returns the status text shown in the top-left corner
func hudLines(w *game.World) []string {
	p := w.Player()
	lines := []string{fmt.Sprintf("MODE %s", strings.ToUpper(w.Mode().String()))}

	if w.Rules().TracksProgress() {
		lines = append(lines,
			fmt.Sprintf("SCORE %d   HIGH %d", w.Score(), w.HighScore()),
			fmt.Sprintf("WAVE %d   KILLS %d/%d", w.Wave(), w.KillsThisWave(), w.EnemiesPerWave()),
			fmt.Sprintf("LIVES %d", w.Lives()),
		)
	}

	switch {
	case p.Dead:
		lines = append(lines, fmt.Sprintf("DESTROYED - respawn in %.1f", max(p.DeadTime, 0)))
	case p.Invulnerable && w.Rules().TracksProgress():
		lines = append(lines, fmt.Sprintf("SHIELDED %.1f", max(p.InvulnerableTime, 0)))
	}
	return lines
}

// overlayText returns the centered banner for the current session state, if any
func overlayText(w *game.World) string {
	switch {
	case w.GameOver():
		return fmt.Sprintf("GAME OVER\n\nscore %d  wave %d\n\nENTER to play again", w.Score(), w.Wave())
	case !w.Started():
		return fmt.Sprintf("TANK ARENA - %s\n\nENTER to start  M to switch mode", strings.ToUpper(w.Mode().String()))
	default:
		return ""
	}
}

// drawHUD draws the status text, the health bar and any session banner
func (r *Renderer) drawHUD(screen *ebiten.Image, w *game.World, fx *Effects, fps float64, showDebug bool) {
	for i, line := range hudLines(w) {
		ebitenutil.DebugPrintAt(screen, line, hudMarginX, hudMarginX+i*hudLineHeight)
	}

	if w.Rules().TracksProgress() {
		r.drawHealthBar(screen, w.Player())
	}

	if showDebug {
		p := w.Player()
		debug := fmt.Sprintf("FPS %.0f  tick %d\npos %.1f, %.1f  angle %.2f\nenemies %d  shots %d",
			fps, w.TickCount(), p.X, p.Z, p.Angle, len(w.Enemies()), len(w.EnemyShots()))
		ebitenutil.DebugPrintAt(screen, debug, hudMarginX, int(r.camera.Height)-3*hudLineHeight-hudMarginX)
	}

	if fx != nil && fx.WaveBanner() && w.Running() {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("WAVE %d", w.Wave()), int(r.camera.Width)/2-24, int(r.camera.Height)/3)
	}

	if text := overlayText(w); text != "" {
		vector.DrawFilledRect(screen, 0, 0, float32(r.camera.Width), float32(r.camera.Height), r.palette.Overlay, false)
		x := int(r.camera.Width)/2 - 100
		y := int(r.camera.Height)/2 - 3*hudLineHeight
		ebitenutil.DebugPrintAt(screen, text, x, y)
	}
}

// drawHealthBar draws the player's health along the bottom edge
func (r *Renderer) drawHealthBar(screen *ebiten.Image, p game.Player) {
	x := float32(r.camera.Width/2 - healthBarWidth/2)
	y := float32(r.camera.Height - healthBarHeight - hudMarginX)

	vector.DrawFilledRect(screen, x, y, healthBarWidth, healthBarHeight, r.palette.HealthBack, false)

	ratio := 0.0
	if p.MaxHealth > 0 {
		ratio = min(max(p.Health/p.MaxHealth, 0), 1)
	}
	fill := r.palette.HealthFill
	if ratio < healthLowRatio {
		fill = r.palette.HealthLow
	}
	vector.DrawFilledRect(screen, x, y, float32(healthBarWidth*ratio), healthBarHeight, fill, false)
	vector.StrokeRect(screen, x, y, healthBarWidth, healthBarHeight, 1, r.palette.Border, false)
}
