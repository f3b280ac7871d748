package terrain

import (
	"fmt"
	"image/color"
	"math"
)

// RGB is a color with channels in [0, 1]
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Hex renders the color as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel8(c.R), channel8(c.G), channel8(c.B))
}

// RGBA converts to an opaque image color
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: channel8(c.R), G: channel8(c.G), B: channel8(c.B), A: 0xff}
}

func channel8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func lerp(a, b RGB, t float64) RGB {
	return RGB{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
	}
}

func hex8(r, g, b uint8) RGB {
	return RGB{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}

// Gradient anchors, lowest to highest
var (
	Blue   = hex8(0x00, 0x00, 0xff)
	Green  = hex8(0x00, 0xff, 0x00)
	Yellow = hex8(0xff, 0xff, 0x00)
	Brown  = hex8(0x8b, 0x45, 0x13)
	White  = hex8(0xff, 0xff, 0xff)
)

// Neutral colors applied to islands already picked
var (
	FlatGray = hex8(0x80, 0x80, 0x80)
	MeshGray = RGB{0.5, 0.5, 0.5}
)

// Bands holds the ascending elevation thresholds of the color gradient
type Bands struct {
	Water float64
	Grass float64
	Sand  float64
	Rock  float64
	Snow  float64
}

var (
	// FlatBands colors the 2D board
	FlatBands = Bands{Water: 0, Grass: 200, Sand: 400, Rock: 600, Snow: 800}

	// MeshBands colors the 3D surface
	MeshBands = Bands{Water: 0, Grass: 200, Sand: 400, Rock: 500, Snow: 700}
)

// ColorOf maps an elevation onto the gradient. Each band (floor, ceiling]
// interpolates between its two anchors; anything above Snow is white.
func (b Bands) ColorOf(e float64) RGB {
	switch {
	case e <= b.Water:
		return Blue
	case e <= b.Grass:
		return lerp(Blue, Green, (e-b.Water)/(b.Grass-b.Water))
	case e <= b.Sand:
		return lerp(Green, Yellow, (e-b.Grass)/(b.Sand-b.Grass))
	case e <= b.Rock:
		return lerp(Yellow, Brown, (e-b.Sand)/(b.Rock-b.Sand))
	case e <= b.Snow:
		return lerp(Brown, White, (e-b.Rock)/(b.Snow-b.Rock))
	default:
		return White
	}
}
