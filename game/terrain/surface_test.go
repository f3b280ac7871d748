package terrain

import (
	"errors"
	"math"
	"testing"
)

func zeroLabels(rows, cols int) [][]int {
	g := make([][]int, rows)
	for r := range g {
		g[r] = make([]int, cols)
	}
	return g
}

func TestBuildSurface_Layout(t *testing.T) {
	s := BuildSurface(filled(3, 3, 140), zeroLabels(3, 3))

	if len(s.Vertex) != 9 || len(s.Colors) != 9 {
		t.Fatalf("Expected 9 vertices, got %d", len(s.Vertex))
	}
	if len(s.Faces) != 8 {
		t.Errorf("Expected 8 faces, got %d", len(s.Faces))
	}

	corner := s.Vertex[s.VertexIndex(0, 0)]
	if corner != V3(-1.5, 0, 1.5) {
		t.Errorf("Unexpected corner vertex %+v", corner)
	}

	center := s.Vertex[s.VertexIndex(1, 1)]
	if math.Abs(center.Y-1) > 1e-12 || center.X != 0 || center.Z != 0 {
		t.Errorf("Unexpected center vertex %+v", center)
	}

	if !closeRGB(s.Colors[s.VertexIndex(0, 0)], Blue) {
		t.Errorf("Border vertices are smoothed to water, got %+v", s.Colors[0])
	}
}

func TestBuildSurface_VertexMapsBackToCell(t *testing.T) {
	s := BuildSurface(filled(4, 6, 0), zeroLabels(4, 6))

	for r := 0; r < 3; r++ {
		for c := 0; c < 5; c++ {
			v := s.Vertex[s.VertexIndex(r, c)]
			// Nudge into the quad owned by the vertex
			p := v.Add(V3(0.01, 0, -0.01))
			gr, gc, ok := GridCoord(p, 4, 6)
			if !ok || gr != r || gc != c {
				t.Errorf("Vertex of (%d,%d) maps to (%d,%d) ok=%v", r, c, gr, gc, ok)
			}
		}
	}
}

func TestSurface_RegrayIdempotent(t *testing.T) {
	labels := [][]int{
		{1, 0, 0},
		{0, 1, 2},
		{0, 0, 2},
	}
	s := BuildSurface(filled(3, 3, 300), labels)
	before := append([]RGB(nil), s.Colors...)

	if n := s.Regray(1); n != 2 {
		t.Errorf("Expected 2 vertices grayed, got %d", n)
	}
	after := append([]RGB(nil), s.Colors...)
	s.Regray(1)

	for i := range s.Colors {
		if s.Colors[i] != after[i] {
			t.Fatalf("Second regray changed vertex %d", i)
		}
	}
	if s.Colors[s.VertexIndex(1, 1)] != MeshGray {
		t.Error("Expected island 1 vertex to be gray")
	}
	if idx := s.VertexIndex(1, 2); s.Colors[idx] != before[idx] {
		t.Error("Island 2 must keep its color")
	}
}

func TestSurface_PickCell(t *testing.T) {
	s := BuildSurface(filled(5, 5, 0), zeroLabels(5, 5))
	camera := DefaultCamera()

	target := V3(-1.0, 0, -1.0)
	ndc := camera.Project(target)

	row, col, ok, err := s.PickCell(camera, ndc.X, ndc.Y)
	if err != nil {
		t.Fatalf("PickCell failed: %v", err)
	}
	if !ok || row != 1 || col != 3 {
		t.Errorf("Expected cell (1,3), got (%d,%d) ok=%v", row, col, ok)
	}
}

func TestSurface_PickCellMiss(t *testing.T) {
	s := BuildSurface(filled(5, 5, 0), zeroLabels(5, 5))
	camera := DefaultCamera()
	camera.Eye = V3(0, 5, 1)
	camera.Target = V3(0, 10, 1.5)

	_, _, ok, err := s.PickCell(camera, 0, 0)
	if err != nil {
		t.Fatalf("PickCell failed: %v", err)
	}
	if ok {
		t.Error("Expected a ray pointing at the sky to miss")
	}

	if _, hit := s.Intersect(Ray{Origin: V3(0, 5, 0), Dir: V3(0, 1, 0)}); hit {
		t.Error("Expected upward ray to miss")
	}
}

func TestGridCoord_OutOfBounds(t *testing.T) {
	if row, _, ok := GridCoord(V3(-5.0/2-0.5, 0, 0), 5, 5); ok || row != -1 {
		t.Errorf("Expected row -1 outside the grid, got %d ok=%v", row, ok)
	}
	if _, col, ok := GridCoord(V3(0, 0, -3), 5, 5); ok || col != 5 {
		t.Errorf("Expected col 5 outside the grid, got %d ok=%v", col, ok)
	}
}

func TestSurface_FarEdgeHitIsOutsideGrid(t *testing.T) {
	s := BuildSurface(filled(5, 5, 0), zeroLabels(5, 5))

	tests := []struct {
		name   string
		origin Vec3
	}{
		{"x edge", V3(2.5, 5, 0.625)},
		{"z edge", V3(0.625, 5, -2.5)},
		{"corner", V3(2.5, 5, -2.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, found := s.Intersect(Ray{Origin: tt.origin, Dir: V3(0, -1, 0)})
			if !found {
				t.Fatal("Expected the edge of the mesh to be hit")
			}
			if row, col, ok := GridCoord(hit.Point, 5, 5); ok {
				t.Errorf("Edge point %+v mapped inside the grid at (%d,%d)", hit.Point, row, col)
			}
		})
	}
}

func TestCamera_Validate(t *testing.T) {
	bad := DefaultCamera()
	bad.FOV = 0
	if _, err := bad.Ray(0, 0); !errors.Is(err, ErrInvalidCamera) {
		t.Errorf("Expected ErrInvalidCamera, got %v", err)
	}

	bad = DefaultCamera()
	bad.Target = bad.Eye
	if err := bad.Validate(); !errors.Is(err, ErrInvalidCamera) {
		t.Errorf("Expected ErrInvalidCamera, got %v", err)
	}
}

func TestMat4_Invert(t *testing.T) {
	m := DefaultCamera().ViewProj()
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Expected invertible matrix")
	}

	id := m.Mul(inv)
	want := Mat4Identity()
	for i := range id {
		if math.Abs(id[i]-want[i]) > 1e-9 {
			t.Fatalf("m * inv(m) differs from identity at %d: %v", i, id[i])
		}
	}

	if _, ok := (Mat4{}).Invert(); ok {
		t.Error("Zero matrix must not invert")
	}
}
