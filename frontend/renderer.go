package frontend

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"tankarena/game"
)

// Renderer draws the world top-down. It only reads world state.
type Renderer struct {
	camera  *Camera
	palette Palette
}

// NewRenderer creates a new renderer
func NewRenderer(camera *Camera, palette Palette) *Renderer {
	return &Renderer{
		camera:  camera,
		palette: palette,
	}
}

// Camera returns the camera the renderer projects through
func (r *Renderer) Camera() *Camera {
	return r.camera
}

// Render draws the field, every entity and the effects
func (r *Renderer) Render(screen *ebiten.Image, w *game.World, fx *Effects) {
	cfg := w.Config()
	r.drawGround(screen, cfg.FieldHalfSize)

	for _, o := range w.Obstacles() {
		r.drawObstacle(screen, &o, &cfg)
	}
	for _, p := range w.Pickups() {
		r.drawPickup(screen, &p, &cfg)
	}
	for _, e := range w.Enemies() {
		r.drawEnemy(screen, &e, &cfg)
	}
	r.drawPlayer(screen, w)

	if shot, ok := w.PlayerShot(); ok {
		r.drawShot(screen, &shot, cfg.ShotRadius, r.palette.PlayerShot)
	}
	for _, s := range w.EnemyShots() {
		r.drawShot(screen, &s, cfg.ShotRadius, r.palette.EnemyShot)
	}

	r.drawEffects(screen, fx)
}

func (r *Renderer) drawGround(screen *ebiten.Image, half float64) {
	x0, y0 := r.camera.WorldToScreen(-half, half)
	x1, y1 := r.camera.WorldToScreen(half, -half)
	vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), r.palette.Ground, false)

	// Grid every 10 units
	for g := -half + 10; g < half; g += 10 {
		ax, ay := r.camera.WorldToScreen(g, half)
		bx, by := r.camera.WorldToScreen(g, -half)
		vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 1, r.palette.Grid, false)
		ax, ay = r.camera.WorldToScreen(-half, g)
		bx, by = r.camera.WorldToScreen(half, g)
		vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 1, r.palette.Grid, false)
	}

	vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 2, r.palette.Border, true)
}

func (r *Renderer) drawObstacle(screen *ebiten.Image, o *game.Obstacle, cfg *game.Config) {
	if !r.camera.Visible(o.X, o.Z, 100) {
		return
	}
	sx, sy := r.camera.WorldToScreen(o.X, o.Z)
	radius := o.Radius(cfg) * r.camera.Zoom

	switch o.Type {
	case game.ObstaclePyramid:
		// Triangle inscribed in the collision circle
		var path vector.Path
		for i := 0; i < 3; i++ {
			a := -math.Pi/2 + float64(i)*2*math.Pi/3
			px := float32(sx + math.Cos(a)*radius)
			py := float32(sy + math.Sin(a)*radius)
			if i == 0 {
				path.MoveTo(px, py)
			} else {
				path.LineTo(px, py)
			}
		}
		path.Close()
		vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
		fillVertices(vs, r.palette.Pyramid)
		screen.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
	default:
		side := radius * math.Sqrt2
		vector.DrawFilledRect(screen, float32(sx-side/2), float32(sy-side/2), float32(side), float32(side), r.palette.Cube, true)
	}
}

func (r *Renderer) drawPickup(screen *ebiten.Image, p *game.Pickup, cfg *game.Config) {
	if !r.camera.Visible(p.X, p.Z, 50) {
		return
	}
	sx, sy := r.camera.WorldToScreen(p.X, p.Z)
	arm := cfg.PickupRadius * r.camera.Zoom

	// Spinning cross
	for i := 0; i < 2; i++ {
		a := p.Rotation + float64(i)*math.Pi/2
		dx, dy := math.Cos(a)*arm, math.Sin(a)*arm
		vector.StrokeLine(screen, float32(sx-dx), float32(sy-dy), float32(sx+dx), float32(sy+dy), 3, r.palette.Pickup, true)
	}
}

func (r *Renderer) drawEnemy(screen *ebiten.Image, e *game.Enemy, cfg *game.Config) {
	if !r.camera.Visible(e.X, e.Z, 100) {
		return
	}
	r.drawVehicle(screen, e.X, e.Z, cfg.EnemyRadius,
		math.Sin(e.Angle), math.Cos(e.Angle),
		math.Sin(e.TurretAngle), math.Cos(e.TurretAngle),
		r.palette.Enemy)
}

func (r *Renderer) drawPlayer(screen *ebiten.Image, w *game.World) {
	p := w.Player()
	cfg := w.Config()
	rules := w.Rules()

	clr := r.palette.Player
	switch {
	case p.Dead:
		clr = r.palette.PlayerDead
	case p.Invulnerable && rules.TracksProgress():
		// Blink while the respawn shield lasts
		if math.Mod(p.InvulnerableTime, 0.3) < 0.15 {
			clr = r.palette.PlayerShielded
		}
	}

	hx, hz := rules.Facing(p.Angle)
	tx, tz := rules.AimVector(&p)
	r.drawVehicle(screen, p.X, p.Z, cfg.PlayerRadius, hx, hz, tx, tz, clr)

	if p.Invulnerable {
		sx, sy := r.camera.WorldToScreen(p.X, p.Z)
		vector.StrokeCircle(screen, float32(sx), float32(sy), float32(cfg.PlayerRadius*1.6*r.camera.Zoom), 1, r.palette.PlayerShielded, true)
	}
}

// drawVehicle draws a hull circle with a heading tick and a longer turret barrel
func (r *Renderer) drawVehicle(screen *ebiten.Image, x, z, radius, hx, hz, tx, tz float64, clr color.Color) {
	sx, sy := r.camera.WorldToScreen(x, z)
	rad := max(radius*r.camera.Zoom, 1)

	vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(rad), clr, true)

	// Screen y grows downward, world z upward
	hullLen := rad * 1.2
	vector.StrokeLine(screen, float32(sx), float32(sy), float32(sx+hx*hullLen), float32(sy-hz*hullLen), 3, clr, true)

	barrel := rad * 1.8
	vector.StrokeLine(screen, float32(sx), float32(sy), float32(sx+tx*barrel), float32(sy-tz*barrel), 2, r.palette.Turret, true)
}

func (r *Renderer) drawShot(screen *ebiten.Image, s *game.Projectile, radius float64, clr color.Color) {
	if !r.camera.Visible(s.X, s.Z, 20) {
		return
	}
	sx, sy := r.camera.WorldToScreen(s.X, s.Z)
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(max(radius*r.camera.Zoom, 2)), clr, true)
}

func (r *Renderer) drawEffects(screen *ebiten.Image, fx *Effects) {
	if fx == nil {
		return
	}
	for i := range fx.items {
		e := &fx.items[i]
		t := e.progress()
		switch e.kind {
		case effectExplosion:
			sx, sy := r.camera.WorldToScreen(e.x, e.z)
			rad := (0.5 + 2.5*t) * r.camera.Zoom
			vector.StrokeCircle(screen, float32(sx), float32(sy), float32(rad), 3, fade(r.palette.Explosion, 1-t), true)
		case effectPickup:
			sx, sy := r.camera.WorldToScreen(e.x, e.z)
			rad := (0.8 + 1.5*t) * r.camera.Zoom
			vector.StrokeCircle(screen, float32(sx), float32(sy), float32(rad), 2, fade(r.palette.Pickup, 1-t), true)
		}
	}

	if fx.Flashing() {
		vector.DrawFilledRect(screen, 0, 0, float32(r.camera.Width), float32(r.camera.Height), r.palette.HitFlash, false)
	}
}

// fade scales a color's alpha by opacity
func fade(c color.Color, opacity float64) color.Color {
	rr, gg, bb, aa := c.RGBA()
	o := min(max(opacity, 0), 1)
	return color.RGBA64{
		R: uint16(float64(rr) * o),
		G: uint16(float64(gg) * o),
		B: uint16(float64(bb) * o),
		A: uint16(float64(aa) * o),
	}
}

var whiteImage *ebiten.Image

// whitePixel returns a 1x1 white source image for DrawTriangles
func whitePixel() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
	}
	return whiteImage.SubImage(whiteImage.Bounds().Inset(1)).(*ebiten.Image)
}

// fillVertices paints path vertices a solid color sampled from whitePixel
func fillVertices(vs []ebiten.Vertex, c color.Color) {
	rr, gg, bb, aa := c.RGBA()
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(rr) / 0xffff
		vs[i].ColorG = float32(gg) / 0xffff
		vs[i].ColorB = float32(bb) / 0xffff
		vs[i].ColorA = float32(aa) / 0xffff
	}
}
