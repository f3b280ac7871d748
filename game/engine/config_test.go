package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const twoIslandJSON = `{
  "islandIds": [[0,0,0],[0,1,0],[0,0,2]],
  "mapData": [[0,0,0],[0,120,0],[0,0,640]],
  "islandAvgHeights": {"1": 120, "2": 640},
  "islandCenterPoints": {"1": {"x": 1, "y": 1}, "2": {"x": 2, "y": 2}},
  "islandWithMaxAvgHeightId": 2
}`

func TestLoadMapPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.json")
	if err := os.WriteFile(path, []byte(twoIslandJSON), 0644); err != nil {
		t.Fatalf("Failed to write payload: %v", err)
	}

	payload, err := LoadMapPayload(path)
	if err != nil {
		t.Fatalf("Failed to load payload: %v", err)
	}

	if payload.Rows() != 3 || payload.Cols() != 3 {
		t.Errorf("Expected 3x3 grid, got %dx%d", payload.Rows(), payload.Cols())
	}
	if payload.IslandAvgHeights[2] != 640 {
		t.Errorf("Expected string keys decoded to int labels, got %v", payload.IslandAvgHeights)
	}
	if c := payload.IslandCenterPoints[1]; c.X != 1 || c.Y != 1 {
		t.Errorf("Unexpected centroid for island 1: %v", c)
	}
	if payload.Target() != 2 {
		t.Errorf("Expected target 2, got %d", payload.Target())
	}
}

func TestLoadMapPayload_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadMapPayload(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{not json"), 0644)
	if _, err := LoadMapPayload(bad); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestValidateMapPayload(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MapPayload)
	}{
		{"empty grid", func(p *MapPayload) { p.IslandIDs = nil }},
		{"row count mismatch", func(p *MapPayload) { p.MapData = p.MapData[:4] }},
		{"ragged labels", func(p *MapPayload) { p.IslandIDs[2] = []int{0, 1} }},
		{"ragged elevations", func(p *MapPayload) { p.MapData[1] = []float64{0} }},
		{"negative label", func(p *MapPayload) { p.IslandIDs[0][0] = -1 }},
		{"negative elevation", func(p *MapPayload) { p.MapData[0][0] = -3 }},
		{"water target", func(p *MapPayload) { p.IslandWithMaxAvgHeightID = 0 }},
		{"absent target", func(p *MapPayload) { p.IslandWithMaxAvgHeightID = 8 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := createTwoIslandPayload()
			tt.mutate(payload)
			if err := ValidateMapPayload(payload); !errors.Is(err, ErrInvalidPayload) {
				t.Errorf("Expected ErrInvalidPayload, got %v", err)
			}
		})
	}

	if err := ValidateMapPayload(nil); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("Expected ErrInvalidPayload for nil, got %v", err)
	}
}

func TestIslandLabelsAndStars(t *testing.T) {
	payload := createTwoIslandPayload()

	labels := IslandLabels(payload)
	if len(labels) != 2 || labels[0] != 1 || labels[1] != 2 {
		t.Errorf("Expected labels [1 2], got %v", labels)
	}
	if n := CountCells(payload, 1); n != 3 {
		t.Errorf("Expected 3 cells for island 1, got %d", n)
	}

	// labels repeat across rows and appear out of order
	scattered := &MapPayload{IslandIDs: [][]int{
		{7, 0, 3},
		{3, 3, 0},
		{0, 7, 5},
	}}
	labels = IslandLabels(scattered)
	if len(labels) != 3 || labels[0] != 3 || labels[1] != 5 || labels[2] != 7 {
		t.Errorf("Expected labels [3 5 7], got %v", labels)
	}
	if labels := IslandLabels(&MapPayload{IslandIDs: [][]int{{0, 0}}}); len(labels) != 0 {
		t.Errorf("Expected no labels for an all-water grid, got %v", labels)
	}

	stars := Stars(1)
	if len(stars) != MaxLives || !stars[0] || stars[1] || stars[2] {
		t.Errorf("Expected [true false false], got %v", stars)
	}
}
