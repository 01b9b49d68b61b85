package frontend

// Camera represents the viewport onto the ground plane. World +X is screen
// right and world +Z is screen up.
type Camera struct {
	X, Z   float64 // Camera position in world coordinates
	Zoom   float64 // Screen pixels per world unit
	Width  float64 // Viewport width
	Height float64 // Viewport height

	// Follow smoothing factor per frame, 1 snaps to the target
	Smoothing float64
}

// NewCamera creates a new camera
func NewCamera(width, height, zoom float64) *Camera {
	return &Camera{
		Zoom:      zoom,
		Width:     width,
		Height:    height,
		Smoothing: 0.1,
	}
}

// WorldToScreen converts world coordinates to screen coordinates
func (c *Camera) WorldToScreen(wx, wz float64) (float64, float64) {
	sx := (wx-c.X)*c.Zoom + c.Width/2
	sy := -(wz-c.Z)*c.Zoom + c.Height/2
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	wx := (sx-c.Width/2)/c.Zoom + c.X
	wz := -(sy-c.Height/2)/c.Zoom + c.Z
	return wx, wz
}

// Follow moves the camera part of the way toward a target
func (c *Camera) Follow(x, z float64) {
	c.X += (x - c.X) * c.Smoothing
	c.Z += (z - c.Z) * c.Smoothing
}

// Snap centers the camera on a point immediately
func (c *Camera) Snap(x, z float64) {
	c.X, c.Z = x, z
}

// Visible reports whether a world point is on screen, with a pixel margin
func (c *Camera) Visible(wx, wz, margin float64) bool {
	sx, sy := c.WorldToScreen(wx, wz)
	return sx >= -margin && sx <= c.Width+margin && sy >= -margin && sy <= c.Height+margin
}
