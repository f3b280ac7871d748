package session

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/wricardo/island-hunt/game/engine"
)

func createTestState() *engine.GameState {
	payload := &engine.MapPayload{
		IslandIDs: [][]int{
			{0, 0, 0, 0},
			{0, 2, 0, 1},
			{0, 0, 3, 0},
		},
		MapData: [][]float64{
			{0, 0, 0, 0},
			{0, 220, 0, 90},
			{0, 0, 510, 0},
		},
		IslandAvgHeights: map[int]float64{1: 90, 2: 220, 3: 510},
		IslandCenterPoints: map[int]engine.Point{
			1: {X: 1, Y: 3},
			2: {X: 1, Y: 1},
			3: {X: 2, Y: 2},
		},
		IslandWithMaxAvgHeightID: 3,
	}
	return engine.InitGameState(payload)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	state := createTestState()
	state.Picks = []int{2}
	state.LivesRemaining = 2
	state.Bearing = 135
	state.HasBearing = true

	doc, err := Encode(state)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if got.LivesRemaining != 2 || len(got.Picks) != 1 || got.Picks[0] != 2 {
		t.Errorf("Unexpected lives/picks: %d %v", got.LivesRemaining, got.Picks)
	}
	if got.Outcome != engine.InProgress {
		t.Errorf("Expected outcome %s, got %s", engine.InProgress, got.Outcome)
	}
	if !got.HasBearing || got.Bearing != 135 {
		t.Errorf("Expected bearing 135, got %v (has=%v)", got.Bearing, got.HasBearing)
	}
	if got.Map.IslandAvgHeights[3] != 510 || got.Map.IslandCenterPoints[1] != (engine.Point{X: 1, Y: 3}) {
		t.Errorf("Island maps not restored: %v %v", got.Map.IslandAvgHeights, got.Map.IslandCenterPoints)
	}
	if got.Map.Target() != 3 {
		t.Errorf("Expected target 3, got %d", got.Map.Target())
	}
}

func TestEncode_PairsInLabelOrder(t *testing.T) {
	doc, err := Encode(createTestState())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var raw struct {
		Version          int               `json:"version"`
		IslandAvgHeights [][]float64       `json:"islandAvgHeights"`
		Centers          []json.RawMessage `json:"islandCenterPoints"`
	}
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		t.Fatalf("Document is not JSON: %v", err)
	}

	if raw.Version != DocumentVersion {
		t.Errorf("Expected version %d, got %d", DocumentVersion, raw.Version)
	}
	for i, pair := range raw.IslandAvgHeights {
		if int(pair[0]) != i+1 {
			t.Errorf("Pair %d has label %v, expected ascending order", i, pair[0])
		}
	}
	if len(raw.Centers) != 3 || !strings.HasPrefix(string(raw.Centers[0]), `[1,{"x":1,"y":3}]`) {
		t.Errorf("Unexpected center pairs: %s", raw.Centers)
	}
}

func TestEncodeDecode_TerminalOutcomes(t *testing.T) {
	victory := createTestState()
	victory.Outcome = engine.Victory

	lastLife := createTestState()
	lastLife.Picks = []int{1, 2}
	lastLife.LivesRemaining = 1

	for name, state := range map[string]*engine.GameState{"victory": victory, "last life": lastLife} {
		t.Run(name, func(t *testing.T) {
			doc, err := Encode(state)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			got, err := Decode(doc)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if got.Outcome != state.Outcome {
				t.Errorf("Expected outcome %s, got %s", state.Outcome, got.Outcome)
			}
		})
	}
}

func TestDecode_LegacyDocument(t *testing.T) {
	legacy := `{
		"islandIds": [[0,0,0,0],[0,2,0,1],[0,0,3,0]],
		"mapData": [[0,0,0,0],[0,220,0,90],[0,0,510,0]],
		"islandAvgHeights": [[1,90],[2,220],[3,510]],
		"islandCenterPoints": [[1,{"x":1,"y":3}],[2,{"x":1,"y":1}],[3,{"x":2,"y":2}]],
		"islandWithMaxAvgHeightId": 3,
		"playerLives": 2,
		"clickedIslands": [1]
	}`

	got, err := Decode(legacy)
	if err != nil {
		t.Fatalf("Legacy decode failed: %v", err)
	}
	if got.Outcome != engine.InProgress {
		t.Errorf("Expected outcome %s, got %s", engine.InProgress, got.Outcome)
	}
	if !got.HasBearing {
		t.Error("Legacy save with picks should show the compass")
	}
}

func TestDecode_Errors(t *testing.T) {
	valid, err := Encode(createTestState())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"not json", "not json"},
		{"missing payload", `{"version":1,"playerLives":3}`},
		{"unknown version", strings.Replace(valid, `"version":1`, `"version":2`, 1)},
		{"missing lives", strings.Replace(valid, `"playerLives":3,`, ``, 1)},
		{"bad pair", strings.Replace(valid, `[1,90]`, `[1]`, 1)},
		{"lives and picks disagree", strings.Replace(valid, `"playerLives":3`, `"playerLives":1`, 1)},
		{"ragged grid", strings.Replace(valid, `[0,0,0,0]`, `[0,0]`, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.doc == valid {
				t.Fatal("Test document was not altered")
			}
			_, err := Decode(tt.doc)
			if !errors.Is(err, ErrDecode) {
				t.Errorf("Expected ErrDecode, got %v", err)
			}
		})
	}
}
