package terrain

// Board is the flat 2D rendering of a map, one color per cell, indexed
// [row][col]. Raw elevations are used, without smoothing.
type Board struct {
	Cells [][]RGB `json:"cells"`

	labels [][]int
}

// BuildBoard colors every cell from its raw elevation
func BuildBoard(elevations [][]float64, labels [][]int) *Board {
	b := &Board{
		Cells:  make([][]RGB, len(elevations)),
		labels: labels,
	}
	for r, row := range elevations {
		b.Cells[r] = make([]RGB, len(row))
		for c, e := range row {
			b.Cells[r][c] = FlatBands.ColorOf(e)
		}
	}
	return b
}

// Rows returns the number of board rows
func (b *Board) Rows() int {
	return len(b.Cells)
}

// Cols returns the number of board columns
func (b *Board) Cols() int {
	if len(b.Cells) == 0 {
		return 0
	}
	return len(b.Cells[0])
}

// Regray paints every cell of label with FlatGray and returns the count
func (b *Board) Regray(label int) int {
	n := 0
	for r := range b.Cells {
		if r >= len(b.labels) {
			break
		}
		for c := range b.Cells[r] {
			if c < len(b.labels[r]) && b.labels[r][c] == label {
				b.Cells[r][c] = FlatGray
				n++
			}
		}
	}
	return n
}

// Hex renders the board as #rrggbb strings
func (b *Board) Hex() [][]string {
	out := make([][]string, len(b.Cells))
	for r, row := range b.Cells {
		out[r] = make([]string, len(row))
		for c, col := range row {
			out[r][c] = col.Hex()
		}
	}
	return out
}

// Snapshot deep copies the board colors
func (b *Board) Snapshot() *Board {
	out := &Board{Cells: make([][]RGB, len(b.Cells)), labels: b.labels}
	for r, row := range b.Cells {
		out.Cells[r] = append([]RGB(nil), row...)
	}
	return out
}
