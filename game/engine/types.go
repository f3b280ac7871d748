package engine

const (
	// MaxLives is the number of wrong picks a player may make per session.
	MaxLives = 3

	// Water is the label reserved for unlabeled cells.
	Water = 0
)

// Outcome is the lifecycle state of a session
type Outcome string

const (
	InProgress Outcome = "in_progress"
	Victory    Outcome = "victory"
	Defeat     Outcome = "defeat"
)

// IsTerminal reports whether no further picks are accepted
func (o Outcome) IsTerminal() bool {
	return o == Victory || o == Defeat
}

// Point is an island centroid. X runs along rows, Y along columns.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MapPayload is the map generator's output for one play attempt.
// Label-keyed maps arrive as JSON objects keyed by the label string.
type MapPayload struct {
	IslandIDs                [][]int         `json:"islandIds"`
	MapData                  [][]float64     `json:"mapData"`
	IslandAvgHeights         map[int]float64 `json:"islandAvgHeights"`
	IslandCenterPoints       map[int]Point   `json:"islandCenterPoints"`
	IslandWithMaxAvgHeightID int             `json:"islandWithMaxAvgHeightId"`
}

// Rows returns the number of grid rows (W)
func (p *MapPayload) Rows() int {
	return len(p.IslandIDs)
}

// Cols returns the number of grid columns (H)
func (p *MapPayload) Cols() int {
	if len(p.IslandIDs) == 0 {
		return 0
	}
	return len(p.IslandIDs[0])
}

// InBounds reports whether (row, col) addresses a grid cell
func (p *MapPayload) InBounds(row, col int) bool {
	return row >= 0 && row < p.Rows() && col >= 0 && col < p.Cols()
}

// LabelAt returns the island label of a cell; callers check bounds first
func (p *MapPayload) LabelAt(row, col int) int {
	return p.IslandIDs[row][col]
}

// Target returns the label with the highest average elevation
func (p *MapPayload) Target() int {
	return p.IslandWithMaxAvgHeightID
}

// GameState is the complete mutable state of one play-through
type GameState struct {
	Map            *MapPayload `json:"map"`
	Picks          []int       `json:"picks"`
	LivesRemaining int         `json:"lives_remaining"`
	Outcome        Outcome     `json:"outcome"`

	// Bearing toward the target from the most recent wrong pick
	Bearing    float64 `json:"bearing"`
	HasBearing bool    `json:"has_bearing"`
}

// PickKind classifies a resolved pick
type PickKind string

const (
	PickIgnored     PickKind = "ignored"
	PickOutOfBounds PickKind = "out_of_bounds"
	PickWater       PickKind = "water"
	PickRepeat      PickKind = "repeat"
	PickWrong       PickKind = "wrong"
	PickTarget      PickKind = "target"
)

// PickResult describes what a pick did to the session
type PickResult struct {
	Kind           PickKind `json:"kind"`
	Row            int      `json:"row"`
	Col            int      `json:"col"`
	Label          int      `json:"label"`
	LivesRemaining int      `json:"lives_remaining"`
	Outcome        Outcome  `json:"outcome"`

	// Set when this pick moved the session into a terminal outcome
	OutcomeChanged bool `json:"outcome_changed"`

	Bearing    float64 `json:"bearing,omitempty"`
	HasBearing bool    `json:"has_bearing"`

	// Regray names the label whose cells must be grayed out, 0 for none
	Regray int `json:"regray,omitempty"`
}

// Mutated reports whether the pick changed the session
func (r PickResult) Mutated() bool {
	return r.Kind == PickWrong || r.Kind == PickTarget
}
