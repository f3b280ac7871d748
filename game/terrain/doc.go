// Package terrain turns a map's elevation and label grids into visual
// surfaces: a flat color board and a smoothed 3D height-field mesh.
//
// Both surfaces support Regray, which paints every cell of one island
// neutral gray. The mesh also supports picking: a Camera casts a ray
// through a pointer position, Surface.Intersect finds the nearest face and
// GridCoord maps the hit point back to a (row, col) cell.
//
// The 2D board colors raw elevations with FlatBands; the mesh colors the
// smoothed elevations with MeshBands.
package terrain
