package frontend

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Palette holds every color the renderer uses
type Palette struct {
	Background color.Color
	Ground     color.Color
	Grid       color.Color
	Border     color.Color

	Cube    color.Color
	Pyramid color.Color

	Player         color.Color
	PlayerDead     color.Color
	PlayerShielded color.Color
	Enemy          color.Color
	Turret         color.Color

	PlayerShot color.Color
	EnemyShot  color.Color
	Pickup     color.Color

	Explosion color.Color
	HitFlash  color.Color

	HealthBack color.Color
	HealthFill color.Color
	HealthLow  color.Color

	RadarBackdrop color.Color
	RadarRing     color.Color
	Overlay       color.Color
}

// DefaultPalette returns the standard arena colors
func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{20, 20, 40, 255}, // Dark blue
		Ground:     colornames.Darkolivegreen,
		Grid:       color.RGBA{255, 255, 255, 24},
		Border:     colornames.Khaki,

		Cube:    colornames.Slategray,
		Pyramid: colornames.Peru,

		Player:         colornames.Limegreen,
		PlayerDead:     colornames.Dimgray,
		PlayerShielded: colornames.Deepskyblue,
		Enemy:          colornames.Crimson,
		Turret:         colornames.Whitesmoke,

		PlayerShot: colornames.Gold,
		EnemyShot:  colornames.Orangered,
		Pickup:     colornames.Springgreen,

		Explosion: colornames.Orange,
		HitFlash:  color.RGBA{255, 0, 0, 70},

		HealthBack: color.RGBA{100, 0, 0, 255},
		HealthFill: color.RGBA{0, 255, 0, 255},
		HealthLow:  colornames.Yellow,

		RadarBackdrop: color.RGBA{0, 0, 0, 150},
		RadarRing:     colornames.Seagreen,
		Overlay:       color.RGBA{0, 0, 0, 160},
	}
}
