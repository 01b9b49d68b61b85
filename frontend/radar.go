package frontend

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"tankarena/game"
)

const (
	radarRadius     = 70.0
	radarMargin     = 12.0
	radarEdgeMargin = 4.0
	radarRange      = 60.0 // world units shown inside the ring
	radarBlipSize   = 3.0
)

// radarBlip is an enemy projected onto the radar, relative to its center
type radarBlip struct {
	rx, ry  float64
	dist    float64
	clamped bool
}

// projectBlip maps a world offset from the player onto the north-up radar.
// Targets beyond radarRange sit on the rim.
func projectBlip(dx, dz float64) radarBlip {
	scale := radarRadius / radarRange
	b := radarBlip{
		rx:   dx * scale,
		ry:   -dz * scale,
		dist: math.Hypot(dx, dz),
	}
	edgeLimit := radarRadius - radarEdgeMargin
	if d := math.Hypot(b.rx, b.ry); d > edgeLimit {
		f := edgeLimit / d
		b.rx *= f
		b.ry *= f
		b.clamped = true
	}
	return b
}

// drawRadar renders the radar in the top-right corner, centered on the player
func (r *Renderer) drawRadar(screen *ebiten.Image, w *game.World) {
	cx := float32(r.camera.Width - radarRadius - radarMargin)
	cy := float32(radarRadius + radarMargin)

	// Radar backdrop
	vector.DrawFilledCircle(screen, cx, cy, radarRadius+radarEdgeMargin, r.palette.RadarBackdrop, true)
	vector.StrokeCircle(screen, cx, cy, radarRadius, 1, r.palette.RadarRing, true)
	vector.StrokeCircle(screen, cx, cy, radarRadius/2, 1, r.palette.RadarRing, true)

	p := w.Player()
	rules := w.Rules()

	// Heading marker
	hx, hz := rules.Facing(p.Angle)
	headLen := float32(radarRadius * 0.25)
	vector.StrokeLine(screen, cx, cy, cx+float32(hx)*headLen, cy-float32(hz)*headLen, 2, r.palette.Player, true)
	vector.DrawFilledCircle(screen, cx, cy, radarBlipSize, r.palette.Player, true)

	nearest := math.Inf(1)
	for _, e := range w.Enemies() {
		b := projectBlip(e.X-p.X, e.Z-p.Z)
		nearest = min(nearest, b.dist)
		clr := r.palette.Enemy
		if b.clamped {
			clr = fade(clr, 0.6)
		}
		vector.DrawFilledCircle(screen, cx+float32(b.rx), cy+float32(b.ry), radarBlipSize, clr, true)
	}
	for _, pk := range w.Pickups() {
		b := projectBlip(pk.X-p.X, pk.Z-p.Z)
		if b.clamped {
			continue
		}
		vector.DrawFilledCircle(screen, cx+float32(b.rx), cy+float32(b.ry), radarBlipSize-1, r.palette.Pickup, true)
	}

	if !math.IsInf(nearest, 1) {
		label := fmt.Sprintf("nearest %.0f", nearest)
		ebitenutil.DebugPrintAt(screen, label, int(cx)-radarRadius, int(cy)+radarRadius+int(radarEdgeMargin)+2)
	}
}
