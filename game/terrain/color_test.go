package terrain

import (
	"math"
	"testing"
)

func closeRGB(a, b RGB) bool {
	const eps = 1e-6
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps && math.Abs(a.B-b.B) < eps
}

func TestBands_ColorOf(t *testing.T) {
	tests := []struct {
		name  string
		bands Bands
		e     float64
		want  RGB
	}{
		{"water", FlatBands, 0, Blue},
		{"below water", FlatBands, -5, Blue},
		{"half grass", FlatBands, 100, RGB{0, 0.5, 0.5}},
		{"grass ceiling", FlatBands, 200, Green},
		{"sand ceiling", FlatBands, 400, Yellow},
		{"flat rock ceiling", FlatBands, 600, Brown},
		{"mesh rock ceiling", MeshBands, 500, Brown},
		{"flat snow", FlatBands, 800, White},
		{"above snow", MeshBands, 10000, White},
		{"flat above snow", FlatBands, 900, White},
		{"mesh snow", MeshBands, 700, White},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.bands.ColorOf(tt.e)
			if !closeRGB(got, tt.want) {
				t.Errorf("ColorOf(%v) = %+v, want %+v", tt.e, got, tt.want)
			}
		})
	}
}

func TestBands_ContinuousAtBoundaries(t *testing.T) {
	for _, bands := range []Bands{FlatBands, MeshBands} {
		for _, edge := range []float64{bands.Grass, bands.Sand, bands.Rock, bands.Snow} {
			below := bands.ColorOf(edge)
			above := bands.ColorOf(edge + 1e-7)
			if !closeRGB(below, above) {
				t.Errorf("Discontinuity at %v: %+v vs %+v", edge, below, above)
			}
		}
	}
}

func TestBands_ModesDiffer(t *testing.T) {
	flat := FlatBands.ColorOf(550)
	mesh := MeshBands.ColorOf(550)

	if !closeRGB(flat, lerp(Yellow, Brown, 0.75)) {
		t.Errorf("Unexpected flat color %+v", flat)
	}
	if !closeRGB(mesh, lerp(Brown, White, 0.25)) {
		t.Errorf("Unexpected mesh color %+v", mesh)
	}
}

func TestRGB_Hex(t *testing.T) {
	cases := map[string]RGB{
		"#0000ff": Blue,
		"#8b4513": Brown,
		"#808080": FlatGray,
		"#ffffff": White,
	}
	for want, c := range cases {
		if got := c.Hex(); got != want {
			t.Errorf("Hex() = %s, want %s", got, want)
		}
	}

	rgba := Brown.RGBA()
	if rgba.R != 0x8b || rgba.G != 0x45 || rgba.B != 0x13 || rgba.A != 0xff {
		t.Errorf("Unexpected RGBA %+v", rgba)
	}
}
