package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/island-hunt/game/engine"
	"github.com/wricardo/island-hunt/game/session"
)

const samplePayload = "../../testdata/map.json"

// runApp runs the CLI with args and returns what it printed
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(context.Background(), append([]string{"analyze"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestAnalyzePayload(t *testing.T) {
	payload, err := loadPayload(samplePayload)
	if err != nil {
		t.Fatalf("Failed to load sample payload: %v", err)
	}

	stats := analyzePayload(payload)
	if stats.Rows != 12 || stats.Cols != 12 {
		t.Errorf("Expected 12x12, got %dx%d", stats.Rows, stats.Cols)
	}
	if len(stats.Islands) != 3 {
		t.Fatalf("Expected 3 islands, got %d", len(stats.Islands))
	}
	if stats.WaterCells != 144-4-3-5 {
		t.Errorf("Expected %d water cells, got %d", 144-12, stats.WaterCells)
	}

	want := []struct {
		label int
		cells int
		avg   float64
	}{
		{1, 4, 135},
		{2, 3, 530},
		{3, 5, 284},
	}
	for i, w := range want {
		island := stats.Islands[i]
		if island.Label != w.label || island.Cells != w.cells {
			t.Errorf("Island %d: expected %d cells, got label %d with %d", w.label, w.cells, island.Label, island.Cells)
		}
		if diff := island.ComputedAvg - w.avg; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Island %d: expected mean %.2f, got %.4f", w.label, w.avg, island.ComputedAvg)
		}
	}
}

func TestStatsCommand(t *testing.T) {
	out, err := runApp(t, "stats", samplePayload)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	for _, want := range []string{"Grid: 12 x 12", "Islands: 3", "Target: island 2", "★ target"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}

	if _, err := runApp(t, "stats"); err == nil {
		t.Error("Expected an error without a payload argument")
	}
}

func TestValidateCommand(t *testing.T) {
	t.Run("sample payload is valid", func(t *testing.T) {
		out, err := runApp(t, "validate", samplePayload)
		if err != nil {
			t.Fatalf("validate failed: %v\n%s", err, out)
		}
		if !strings.Contains(out, "✅ VALID") || !strings.Contains(out, "✓ Target: island 2 of 3") {
			t.Errorf("Unexpected output:\n%s", out)
		}
	})

	t.Run("wrong target and bad averages", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "bad.json", `{
			"islandIds": [[1,0],[0,2]],
			"mapData": [[10,0],[0,20]],
			"islandAvgHeights": {"1": 10, "2": 99},
			"islandCenterPoints": {"1": {"x":0,"y":0}},
			"islandWithMaxAvgHeightId": 1
		}`)
		writeFile(t, dir, "broken.json", `{"islandIds": []}`)

		out, err := runApp(t, "validate", dir)
		if !errors.Is(err, errInvalidFiles) {
			t.Fatalf("Expected errInvalidFiles, got %v", err)
		}
		for _, want := range []string{
			"Island 2 has no center point",
			"Island 2 average 99.00 differs",
			"Target is island 1 but island 2 has the highest average",
			"Failed to load payload",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("validate output missing %q:\n%s", want, out)
			}
		}
	})
}

func TestValidatePayloadFile_Envelope(t *testing.T) {
	data, err := os.ReadFile(samplePayload)
	if err != nil {
		t.Fatalf("Failed to read sample payload: %v", err)
	}
	path := writeFile(t, t.TempDir(), "wrapped.json",
		`{"success": true, "message": "ok", "data": `+string(data)+`}`)

	result := validatePayloadFile(path)
	if !result.Valid {
		t.Errorf("Enveloped payload should validate, got %v", result.Errors)
	}
	if result.File != "wrapped.json" {
		t.Errorf("Expected base file name, got %s", result.File)
	}
}

func TestBearingCommand(t *testing.T) {
	out, err := runApp(t, "bearing", samplePayload)
	if err != nil {
		t.Fatalf("bearing failed: %v", err)
	}
	if strings.Contains(out, "island 2:") {
		t.Error("The target island gives no hint")
	}
	if !strings.Contains(out, "island 1:") || !strings.Contains(out, "island 3:") {
		t.Errorf("Expected hints for islands 1 and 3:\n%s", out)
	}

	out, err = runApp(t, "bearing", samplePayload, "1")
	if err != nil {
		t.Fatalf("bearing failed: %v", err)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("Expected a single line, got:\n%s", out)
	}

	if _, err := runApp(t, "bearing", samplePayload, "x"); err == nil {
		t.Error("Expected an error for a non-integer label")
	}
}

func TestDecodeSaveCommand(t *testing.T) {
	payload, err := engine.LoadMapPayload(samplePayload)
	if err != nil {
		t.Fatalf("Failed to load sample payload: %v", err)
	}
	eng, err := engine.NewEngine(payload)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	eng.Pick(2, 2) // island 1

	doc, err := session.Encode(eng.GetState())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	path := writeFile(t, t.TempDir(), "islandData.json", doc)

	out, err := runApp(t, "decode-save", path)
	if err != nil {
		t.Fatalf("decode-save failed: %v", err)
	}
	for _, want := range []string{"Map: 12 x 12, 3 islands, target 2", "Lives: 2/3", "Wrong picks: [1]", "Bearing:", "Outcome: in_progress"} {
		if !strings.Contains(out, want) {
			t.Errorf("decode-save output missing %q:\n%s", want, out)
		}
	}

	corrupt := writeFile(t, t.TempDir(), "corrupt.json", "{nope")
	if _, err := runApp(t, "decode-save", corrupt); !errors.Is(err, session.ErrDecode) {
		t.Errorf("Expected ErrDecode, got %v", err)
	}
}

func TestProfilesCommand(t *testing.T) {
	out, err := runApp(t, "profiles", "--config-dir", "../../configs")
	if err != nil {
		t.Fatalf("profiles failed: %v", err)
	}
	for _, want := range []string{"classic", "offline", "default: Classic"} {
		if !strings.Contains(out, want) {
			t.Errorf("profiles output missing %q:\n%s", want, out)
		}
	}
}
