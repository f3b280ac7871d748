package main

import (
	"math"
	"sort"
)

// bearingWindow is how far either side of the compass heading a candidate
// island may lie and still count as "in that direction"
const bearingWindow = 45.0

// Position is a cell on the board
type Position struct {
	Row int
	Col int
}

// Island is what the survey learned about one labelled island
type Island struct {
	Label     int
	Cells     int
	Mean      float64
	Row       int // a sampled land cell to pick
	Col       int
	CenterRow float64
	CenterCol float64
}

type islandAcc struct {
	cells      int
	sum        float64
	rows, cols float64
	first      Position
}

// SurveyStrategy ranks islands by the mean elevation of their sampled cells
// and uses the compass hint from each wrong pick to narrow the candidates
type SurveyStrategy struct {
	islands map[int]*islandAcc
	seen    map[Position]bool
	picked  map[int]bool
}

func NewSurveyStrategy() *SurveyStrategy {
	return &SurveyStrategy{
		islands: make(map[int]*islandAcc),
		seen:    make(map[Position]bool),
		picked:  make(map[int]bool),
	}
}

// SampleCells lists the cells a survey with the given stride describes
func SampleCells(rows, cols, stride int) []Position {
	if stride < 1 {
		stride = 1
	}
	var cells []Position
	for r := 0; r < rows; r += stride {
		for c := 0; c < cols; c += stride {
			cells = append(cells, Position{Row: r, Col: c})
		}
	}
	return cells
}

// Observe records a described cell. Water and cells seen before are ignored.
func (s *SurveyStrategy) Observe(cell CellInfo) {
	pos := Position{Row: cell.Row, Col: cell.Col}
	if cell.Water || s.seen[pos] {
		return
	}
	s.seen[pos] = true

	acc := s.islands[cell.Label]
	if acc == nil {
		acc = &islandAcc{first: pos}
		s.islands[cell.Label] = acc
	}
	acc.cells++
	acc.sum += cell.Elevation
	acc.rows += float64(cell.Row)
	acc.cols += float64(cell.Col)
}

// MarkPicked removes an island from the candidates
func (s *SurveyStrategy) MarkPicked(label int) {
	s.picked[label] = true
}

// Islands returns every surveyed island, highest mean first
func (s *SurveyStrategy) Islands() []Island {
	islands := make([]Island, 0, len(s.islands))
	for label, acc := range s.islands {
		n := float64(acc.cells)
		islands = append(islands, Island{
			Label:     label,
			Cells:     acc.cells,
			Mean:      acc.sum / n,
			Row:       acc.first.Row,
			Col:       acc.first.Col,
			CenterRow: acc.rows / n,
			CenterCol: acc.cols / n,
		})
	}
	sort.Slice(islands, func(i, j int) bool {
		if islands[i].Mean != islands[j].Mean {
			return islands[i].Mean > islands[j].Mean
		}
		return islands[i].Label < islands[j].Label
	})
	return islands
}

// NextPick chooses the next island to pick. After a wrong pick on last the
// bearing points at the target, so islands lying within bearingWindow of
// that heading from last are preferred. ok is false when every surveyed
// island has been picked.
func (s *SurveyStrategy) NextPick(last *Island, bearing float64, hasBearing bool) (Island, bool) {
	var candidates []Island
	for _, island := range s.Islands() {
		if !s.picked[island.Label] {
			candidates = append(candidates, island)
		}
	}
	if len(candidates) == 0 {
		return Island{}, false
	}

	if last != nil && hasBearing {
		for _, island := range candidates {
			heading := Bearing(last.CenterRow, last.CenterCol, island.CenterRow, island.CenterCol)
			if angleBetween(heading, bearing) <= bearingWindow {
				return island, true
			}
		}
	}
	return candidates[0], true
}

// Bearing is the compass heading in [0, 360) from one point to another, with
// 0 toward row 0 and 90 toward higher columns
func Bearing(fromRow, fromCol, toRow, toCol float64) float64 {
	deg := math.Atan2(toRow-fromRow, toCol-fromCol)*(180/math.Pi) + 90
	if deg < 0 {
		deg += 360
	}
	return deg
}

// angleBetween is the smallest difference between two headings
func angleBetween(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}
