package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/wricardo/island-hunt/game/engine"
	"github.com/wricardo/island-hunt/game/provider"
)

// heightTolerance is how far a supplied island average may drift from the
// mean of its cells before validation flags it
const heightTolerance = 0.5

// IslandStats summarizes one island as supplied by the generator and as
// recomputed from the grid
type IslandStats struct {
	Label          int
	Cells          int
	SuppliedAvg    float64
	HasSuppliedAvg bool
	ComputedAvg    float64
	Center         engine.Point
	HasCenter      bool
	ComputedCenter engine.Point
	Peak           float64
}

// PayloadStats is the analysis of a whole payload
type PayloadStats struct {
	Rows       int
	Cols       int
	WaterCells int
	Target     int
	Islands    []IslandStats
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// loadPayload reads and structurally validates a bare or enveloped payload file
func loadPayload(path string) (*engine.MapPayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return provider.DecodePayload(data)
}

// analyzePayload recomputes per-island statistics from the grid
func analyzePayload(p *engine.MapPayload) PayloadStats {
	stats := PayloadStats{
		Rows:   p.Rows(),
		Cols:   p.Cols(),
		Target: p.Target(),
	}

	type acc struct {
		cells           int
		sum, rows, cols float64
		peak            float64
	}
	byLabel := make(map[int]*acc)

	for r, row := range p.IslandIDs {
		for c, label := range row {
			if label == engine.Water {
				stats.WaterCells++
				continue
			}
			a := byLabel[label]
			if a == nil {
				a = &acc{}
				byLabel[label] = a
			}
			h := p.MapData[r][c]
			a.cells++
			a.sum += h
			a.rows += float64(r)
			a.cols += float64(c)
			a.peak = math.Max(a.peak, h)
		}
	}

	for _, label := range engine.IslandLabels(p) {
		a := byLabel[label]
		if a == nil {
			continue
		}
		n := float64(a.cells)
		island := IslandStats{
			Label:          label,
			Cells:          a.cells,
			ComputedAvg:    a.sum / n,
			ComputedCenter: engine.Point{X: a.rows / n, Y: a.cols / n},
			Peak:           a.peak,
		}
		island.SuppliedAvg, island.HasSuppliedAvg = p.IslandAvgHeights[label]
		island.Center, island.HasCenter = p.IslandCenterPoints[label]
		stats.Islands = append(stats.Islands, island)
	}

	sort.Slice(stats.Islands, func(i, j int) bool {
		return stats.Islands[i].Label < stats.Islands[j].Label
	})
	return stats
}

// validatePayloadFile checks a payload file against the engine's structural
// rules and the generator's own statistics
func validatePayloadFile(path string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(path),
		Valid:  true,
		Errors: []string{},
	}

	payload, err := loadPayload(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to load payload: %v", err))
		return result
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", payload.Rows(), payload.Cols()))

	stats := analyzePayload(payload)
	best, bestAvg := engine.Water, math.Inf(-1)
	for _, island := range stats.Islands {
		if !island.HasSuppliedAvg {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Island %d has no average height", island.Label))
			continue
		}
		if !island.HasCenter {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Island %d has no center point (no compass hint)", island.Label))
		}
		if math.Abs(island.SuppliedAvg-island.ComputedAvg) > heightTolerance {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Island %d average %.2f differs from its cells' mean %.2f",
				island.Label, island.SuppliedAvg, island.ComputedAvg))
		}
		if island.SuppliedAvg > bestAvg {
			best, bestAvg = island.Label, island.SuppliedAvg
		}
	}

	if best != payload.Target() {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Target is island %d but island %d has the highest average", payload.Target(), best))
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Target: island %d of %d", best, len(stats.Islands)))
	}

	return result
}
