package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"tankarena/game"
)

var (
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorDarkKhaki)
	styleCube     = tcell.StyleDefault.Foreground(tcell.ColorSlateGray)
	stylePyramid  = tcell.StyleDefault.Foreground(tcell.ColorPeru)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleShielded = tcell.StyleDefault.Foreground(tcell.ColorDeepSkyBlue).Bold(true)
	styleDead     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleEnemy    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stylePShot    = tcell.StyleDefault.Foreground(tcell.ColorGold)
	styleEShot    = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
	stylePickup   = tcell.StyleDefault.Foreground(tcell.ColorSpringGreen)
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleBanner   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Reverse(true)
)

// headingGlyphs are indexed by compass octant, clockwise from north
var headingGlyphs = []rune{'^', '/', '>', '\\', 'v', '/', '<', '\\'}

// viewport maps the square field onto the terminal cells below the HUD line
type viewport struct {
	cols, rows int
	top        int
	half       float64
}

func newViewport(width, height int, half float64) viewport {
	return viewport{cols: width - 2, rows: height - 3, top: 1, half: half}
}

// cell returns the terminal cell of a world point. +Z is up.
func (v viewport) cell(x, z float64) (int, int, bool) {
	if v.cols <= 0 || v.rows <= 0 {
		return 0, 0, false
	}
	fx := (x + v.half) / (2 * v.half)
	fz := (v.half - z) / (2 * v.half)
	col := int(math.Floor(fx * float64(v.cols)))
	row := int(math.Floor(fz * float64(v.rows)))
	if col < 0 || col >= v.cols || row < 0 || row >= v.rows {
		return 0, 0, false
	}
	// offset past the border
	return col + 1, row + v.top + 1, true
}

// headingGlyph picks the arrow closest to a world direction
func headingGlyph(dx, dz float64) rune {
	// Compass bearing: 0 is north (+Z), clockwise positive
	bearing := math.Atan2(dx, dz)
	octant := int(math.Round(bearing/(math.Pi/4))) & 7
	return headingGlyphs[octant]
}

// draw renders the whole world and HUD onto s
func draw(s tcell.Screen, w *game.World) {
	s.Clear()
	width, height := s.Size()
	cfg := w.Config()
	v := newViewport(width, height, cfg.FieldHalfSize)

	drawBorder(s, v)

	for _, o := range w.Obstacles() {
		glyph, style := '#', styleCube
		if o.Type == game.ObstaclePyramid {
			glyph, style = '^', stylePyramid
		}
		// Cover every cell the collision circle reaches
		r := o.Radius(&cfg)
		for dx := -r; dx <= r; dx += 0.5 {
			for dz := -r; dz <= r; dz += 0.5 {
				if dx*dx+dz*dz > r*r {
					continue
				}
				if c, row, ok := v.cell(o.X+dx, o.Z+dz); ok {
					s.SetContent(c, row, glyph, nil, style)
				}
			}
		}
	}
	for _, p := range w.Pickups() {
		put(s, v, p.X, p.Z, '+', stylePickup)
	}
	for _, shot := range w.EnemyShots() {
		put(s, v, shot.X, shot.Z, 'o', styleEShot)
	}
	if shot, ok := w.PlayerShot(); ok {
		put(s, v, shot.X, shot.Z, '*', stylePShot)
	}
	for _, e := range w.Enemies() {
		put(s, v, e.X, e.Z, 'E', styleEnemy)
	}

	p := w.Player()
	rules := w.Rules()
	style := stylePlayer
	switch {
	case p.Dead:
		style = styleDead
	case p.Invulnerable && rules.TracksProgress():
		style = styleShielded
	}
	ax, az := rules.AimVector(&p)
	put(s, v, p.X, p.Z, headingGlyph(ax, az), style)

	printAt(s, 0, 0, statusLine(w), styleHUD)
	printAt(s, 0, height-1, footerLine(w), styleHUD)
	if banner := bannerText(w); banner != "" {
		printAt(s, max((width-len(banner))/2, 0), height/2, banner, styleBanner)
	}
	s.Show()
}

func put(s tcell.Screen, v viewport, x, z float64, r rune, style tcell.Style) {
	if c, row, ok := v.cell(x, z); ok {
		s.SetContent(c, row, r, nil, style)
	}
}

func drawBorder(s tcell.Screen, v viewport) {
	top, bottom := v.top, v.top+v.rows+1
	right := v.cols + 1
	for x := 0; x <= right; x++ {
		s.SetContent(x, top, '-', nil, styleBorder)
		s.SetContent(x, bottom, '-', nil, styleBorder)
	}
	for y := top; y <= bottom; y++ {
		s.SetContent(0, y, '|', nil, styleBorder)
		s.SetContent(right, y, '|', nil, styleBorder)
	}
}

func printAt(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// statusLine is the top HUD row
func statusLine(w *game.World) string {
	mode := strings.ToUpper(w.Mode().String())
	if !w.Rules().TracksProgress() {
		return mode
	}
	p := w.Player()
	line := fmt.Sprintf("%s  score %d  high %d  wave %d  kills %d/%d  lives %d  hp %.0f/%.0f",
		mode, w.Score(), w.HighScore(), w.Wave(), w.KillsThisWave(), w.EnemiesPerWave(), w.Lives(), p.Health, p.MaxHealth)
	switch {
	case p.Dead:
		line += fmt.Sprintf("  respawn %.1f", max(p.DeadTime, 0))
	case p.Invulnerable:
		line += fmt.Sprintf("  shield %.1f", max(p.InvulnerableTime, 0))
	}
	return line
}

func footerLine(*game.World) string {
	return "arrows/wasd drive  q/e turret  space fire  m mode  enter start  r reset  esc quit"
}

// bannerText is the centered message for a waiting or finished session
func bannerText(w *game.World) string {
	switch {
	case w.GameOver():
		return fmt.Sprintf(" GAME OVER  score %d  wave %d  press enter ", w.Score(), w.Wave())
	case !w.Started():
		return fmt.Sprintf(" %s  press enter to start ", strings.ToUpper(w.Mode().String()))
	default:
		return ""
	}
}
