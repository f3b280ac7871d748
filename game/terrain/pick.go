package terrain

import "math"

// GridCoord maps a world point on a rows x cols surface back to the cell
// under it. ok is false outside the grid.
func GridCoord(p Vec3, rows, cols int) (row, col int, ok bool) {
	row = int(math.Floor(p.X + float64(rows)/2))
	col = int(math.Floor(-p.Z + float64(cols)/2))
	ok = row >= 0 && row < rows && col >= 0 && col < cols
	return row, col, ok
}

// PickCell resolves an NDC pointer position to a grid cell through camera.
// ok is false when the ray misses the surface or lands outside the grid.
func (s *Surface) PickCell(camera Camera, ndcX, ndcY float64) (row, col int, ok bool, err error) {
	ray, err := camera.Ray(ndcX, ndcY)
	if err != nil {
		return 0, 0, false, err
	}
	hit, found := s.Intersect(ray)
	if !found {
		return 0, 0, false, nil
	}
	row, col, ok = GridCoord(hit.Point, s.Width, s.Height)
	return row, col, ok, nil
}
