package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/wricardo/island-hunt/game/engine"
)

// DocumentVersion is written into every saved document
const DocumentVersion = 1

// ErrDecode is wrapped by every failure to rebuild a session from a document
var ErrDecode = errors.New("failed to decode saved session")

// document is the stored layout. Label-keyed maps are written as
// [label, value] pairs in ascending label order.
type document struct {
	Version                  *int           `json:"version,omitempty"`
	IslandIDs                [][]int        `json:"islandIds"`
	MapData                  [][]float64    `json:"mapData"`
	IslandAvgHeights         []heightEntry  `json:"islandAvgHeights"`
	IslandCenterPoints       []centerEntry  `json:"islandCenterPoints"`
	IslandWithMaxAvgHeightID int            `json:"islandWithMaxAvgHeightId"`
	PlayerLives              *int           `json:"playerLives"`
	ClickedIslands           []int          `json:"clickedIslands"`
	ArrowAngle               float64        `json:"arrowAngle"`
	HasArrow                 *bool          `json:"hasArrow,omitempty"`
	Outcome                  engine.Outcome `json:"outcome,omitempty"`
}

type heightEntry struct {
	Label int
	Avg   float64
}

func (e heightEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Label, e.Avg})
}

func (e *heightEntry) UnmarshalJSON(data []byte) error {
	parts, err := splitPair(data)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(parts[0], &e.Label); err != nil {
		return fmt.Errorf("pair label: %w", err)
	}
	if err := json.Unmarshal(parts[1], &e.Avg); err != nil {
		return fmt.Errorf("average height of %d: %w", e.Label, err)
	}
	return nil
}

type centerEntry struct {
	Label int
	Point engine.Point
}

func (e centerEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Label, e.Point})
}

func (e *centerEntry) UnmarshalJSON(data []byte) error {
	parts, err := splitPair(data)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(parts[0], &e.Label); err != nil {
		return fmt.Errorf("pair label: %w", err)
	}
	if err := json.Unmarshal(parts[1], &e.Point); err != nil {
		return fmt.Errorf("center point of %d: %w", e.Label, err)
	}
	return nil
}

func splitPair(data []byte) ([]json.RawMessage, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil, err
	}
	if len(parts) != 2 {
		return nil, fmt.Errorf("expected [label, value] pair, got %d elements", len(parts))
	}
	return parts, nil
}

// Encode serializes a session into a single JSON document
func Encode(state *engine.GameState) (string, error) {
	if state == nil || state.Map == nil {
		return "", fmt.Errorf("cannot encode a session without map data")
	}

	version := DocumentVersion
	lives := state.LivesRemaining
	hasArrow := state.HasBearing
	doc := document{
		Version:                  &version,
		IslandIDs:                state.Map.IslandIDs,
		MapData:                  state.Map.MapData,
		IslandAvgHeights:         make([]heightEntry, 0, len(state.Map.IslandAvgHeights)),
		IslandCenterPoints:       make([]centerEntry, 0, len(state.Map.IslandCenterPoints)),
		IslandWithMaxAvgHeightID: state.Map.IslandWithMaxAvgHeightID,
		PlayerLives:              &lives,
		ClickedIslands:           state.Picks,
		ArrowAngle:               state.Bearing,
		HasArrow:                 &hasArrow,
		Outcome:                  state.Outcome,
	}
	if doc.ClickedIslands == nil {
		doc.ClickedIslands = []int{}
	}

	for _, label := range sortedKeys(state.Map.IslandAvgHeights) {
		doc.IslandAvgHeights = append(doc.IslandAvgHeights, heightEntry{label, state.Map.IslandAvgHeights[label]})
	}
	for _, label := range sortedKeys(state.Map.IslandCenterPoints) {
		doc.IslandCenterPoints = append(doc.IslandCenterPoints, centerEntry{label, state.Map.IslandCenterPoints[label]})
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}
	return string(data), nil
}

// Decode rebuilds a session from a document written by Encode. Documents
// without a version are legacy saves and are upgraded in place.
func Decode(raw string) (*engine.GameState, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty document", ErrDecode)
	}

	var doc document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	legacy := doc.Version == nil
	if !legacy && *doc.Version != DocumentVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrDecode, *doc.Version)
	}
	if doc.IslandIDs == nil || doc.MapData == nil {
		return nil, fmt.Errorf("%w: missing map payload", ErrDecode)
	}
	if doc.PlayerLives == nil {
		return nil, fmt.Errorf("%w: missing playerLives", ErrDecode)
	}

	payload := &engine.MapPayload{
		IslandIDs:                doc.IslandIDs,
		MapData:                  doc.MapData,
		IslandAvgHeights:         make(map[int]float64, len(doc.IslandAvgHeights)),
		IslandCenterPoints:       make(map[int]engine.Point, len(doc.IslandCenterPoints)),
		IslandWithMaxAvgHeightID: doc.IslandWithMaxAvgHeightID,
	}
	for _, e := range doc.IslandAvgHeights {
		payload.IslandAvgHeights[e.Label] = e.Avg
	}
	for _, e := range doc.IslandCenterPoints {
		payload.IslandCenterPoints[e.Label] = e.Point
	}

	state := &engine.GameState{
		Map:            payload,
		Picks:          doc.ClickedIslands,
		LivesRemaining: *doc.PlayerLives,
		Outcome:        doc.Outcome,
		Bearing:        doc.ArrowAngle,
	}
	if state.Picks == nil {
		state.Picks = []int{}
	}
	if doc.HasArrow != nil {
		state.HasBearing = *doc.HasArrow
	} else {
		state.HasBearing = len(state.Picks) > 0
	}
	if legacy || state.Outcome == "" {
		state.Outcome = engine.InProgress
		if state.LivesRemaining == 0 {
			state.Outcome = engine.Defeat
		}
	}

	if err := engine.ValidateGameState(state); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return state, nil
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
