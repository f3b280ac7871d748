package terrain

import (
	"math"
	"testing"
)

func filled(rows, cols int, v float64) [][]float64 {
	g := make([][]float64, rows)
	for r := range g {
		g[r] = make([]float64, cols)
		for c := range g[r] {
			g[r][c] = v
		}
	}
	return g
}

func TestSmooth_ConstantInterior(t *testing.T) {
	grid := filled(4, 5, 7)
	out := Smooth(grid)

	if len(out) != 4 || len(out[0]) != 5 {
		t.Fatalf("Expected 4x5 result, got %dx%d", len(out), len(out[0]))
	}
	for r := range out {
		for c := range out[r] {
			border := r == 0 || c == 0 || r == 3 || c == 4
			want := 7.0
			if border {
				want = 0
			}
			if math.Abs(out[r][c]-want) > 1e-12 {
				t.Errorf("out[%d][%d] = %v, want %v", r, c, out[r][c], want)
			}
		}
	}
	if grid[0][0] != 7 {
		t.Error("Smooth must not modify its input")
	}
}

func TestSmooth_Weights(t *testing.T) {
	grid := filled(3, 3, 0)
	grid[0][1] = 16

	out := Smooth(grid)
	if out[1][1] != 2 {
		t.Errorf("Expected edge neighbour weight 2/16, got %v", out[1][1])
	}
}

func TestSmooth_DegenerateInput(t *testing.T) {
	if out := Smooth(nil); len(out) != 0 {
		t.Errorf("Expected empty result, got %v", out)
	}

	ragged := [][]float64{{1, 2, 3}, {4, 5}, {6, 7, 8}}
	out := Smooth(ragged)
	if len(out) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(out))
	}
	for _, row := range out {
		for _, v := range row {
			if v != 0 {
				t.Fatalf("Expected zero grid for ragged input, got %v", out)
			}
		}
	}

	small := Smooth(filled(2, 2, 9))
	for _, row := range small {
		for _, v := range row {
			if v != 0 {
				t.Errorf("A 2x2 grid has no interior, got %v", small)
			}
		}
	}
}
