package terrain

import "math"

// MeshHeightDivisor scales smoothed elevation down to world units
const MeshHeightDivisor = 140

// Surface is the 3D height-field mesh of a map: one vertex per cell, laid on
// a W x H plane centered at the origin. World X runs along rows, world Y is
// up and world Z runs against columns.
type Surface struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Vertex []Vec3   `json:"vertices"`
	Colors []RGB    `json:"colors"`
	Faces  [][3]int `json:"faces"`

	labels [][]int
}

// VertexIndex returns the mesh vertex carrying cell (row, col)
func (s *Surface) VertexIndex(row, col int) int {
	return vertexIndex(s.Width, s.Height, row, col)
}

func vertexIndex(w, h, row, col int) int {
	return (h-1-col)*w + row
}

// BuildSurface smooths elevations and lays them out as a colored mesh.
// labels must have the same dimensions as elevations.
func BuildSurface(elevations [][]float64, labels [][]int) *Surface {
	smoothed := Smooth(elevations)
	w := len(smoothed)
	h := 0
	if w > 0 {
		h = len(smoothed[0])
	}

	s := &Surface{
		Width:  w,
		Height: h,
		Vertex: make([]Vec3, w*h),
		Colors: make([]RGB, w*h),
		labels: labels,
	}
	if w == 0 || h == 0 {
		return s
	}

	segW := segmentSize(w)
	segH := segmentSize(h)
	halfW := float64(w) / 2
	halfH := float64(h) / 2

	for r := 0; r < w; r++ {
		for c := 0; c < h; c++ {
			iy := h - 1 - c
			e := smoothed[r][c]
			idx := vertexIndex(w, h, r, c)
			s.Vertex[idx] = Vec3{
				X: float64(r)*segW - halfW,
				Y: e / MeshHeightDivisor,
				Z: -(halfH - float64(iy)*segH),
			}
			s.Colors[idx] = MeshBands.ColorOf(e)
		}
	}

	for iy := 0; iy < h-1; iy++ {
		for ix := 0; ix < w-1; ix++ {
			a := ix + w*iy
			b := ix + w*(iy+1)
			c := ix + 1 + w*(iy+1)
			d := ix + 1 + w*iy
			s.Faces = append(s.Faces, [3]int{a, b, d}, [3]int{b, c, d})
		}
	}
	return s
}

// segmentSize is the spacing between vertices along an axis of n cells
func segmentSize(n int) float64 {
	if n < 2 {
		return 0
	}
	return float64(n) / float64(n-1)
}

// Regray paints every vertex of label with MeshGray and returns the count.
// Repeating it for the same label changes nothing.
func (s *Surface) Regray(label int) int {
	n := 0
	for r := 0; r < s.Width && r < len(s.labels); r++ {
		for c := 0; c < s.Height && c < len(s.labels[r]); c++ {
			if s.labels[r][c] == label {
				s.Colors[s.VertexIndex(r, c)] = MeshGray
				n++
			}
		}
	}
	return n
}

// Ray is a half line from Origin along the unit vector Dir
type Ray struct {
	Origin Vec3 `json:"origin"`
	Dir    Vec3 `json:"dir"`
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Hit is a ray/surface intersection
type Hit struct {
	Point    Vec3    `json:"point"`
	Distance float64 `json:"distance"`
	Face     int     `json:"face"`
}

const intersectEpsilon = 1e-9

// Intersect returns the nearest face hit by ray. Faces are two sided.
func (s *Surface) Intersect(ray Ray) (Hit, bool) {
	best := Hit{Distance: math.Inf(1), Face: -1}
	for i, f := range s.Faces {
		t, ok := intersectTriangle(ray, s.Vertex[f[0]], s.Vertex[f[1]], s.Vertex[f[2]])
		if ok && t < best.Distance {
			best.Distance = t
			best.Face = i
		}
	}
	if best.Face < 0 {
		return Hit{}, false
	}
	best.Point = ray.At(best.Distance)
	return best, true
}

// intersectTriangle is the Moller-Trumbore test
func intersectTriangle(ray Ray, v0, v1, v2 Vec3) (float64, bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	p := ray.Dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < intersectEpsilon {
		return 0, false
	}
	inv := 1 / det

	tv := ray.Origin.Sub(v0)
	u := tv.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := tv.Cross(e1)
	v := ray.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(q) * inv
	if t <= intersectEpsilon {
		return 0, false
	}
	return t, true
}

// Snapshot copies the surface so the caller can read colors while the
// original keeps being regrayed. Geometry is shared, it never changes.
func (s *Surface) Snapshot() *Surface {
	out := *s
	out.Colors = append([]RGB(nil), s.Colors...)
	return &out
}
