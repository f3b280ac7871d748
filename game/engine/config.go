package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidPayload is wrapped by every payload validation failure
var ErrInvalidPayload = errors.New("invalid map payload")

// ValidateMapPayload checks the structural invariants the engine relies on.
// Island statistics and centroids are trusted as supplied.
func ValidateMapPayload(p *MapPayload) error {
	if p == nil {
		return fmt.Errorf("%w: payload is nil", ErrInvalidPayload)
	}

	rows := len(p.IslandIDs)
	if rows == 0 {
		return fmt.Errorf("%w: islandIds is empty", ErrInvalidPayload)
	}
	if len(p.MapData) != rows {
		return fmt.Errorf("%w: mapData has %d rows, islandIds has %d", ErrInvalidPayload, len(p.MapData), rows)
	}

	cols := len(p.IslandIDs[0])
	if cols == 0 {
		return fmt.Errorf("%w: islandIds row 0 is empty", ErrInvalidPayload)
	}

	targetSeen := false
	for r := 0; r < rows; r++ {
		if len(p.IslandIDs[r]) != cols {
			return fmt.Errorf("%w: islandIds row %d has %d columns, expected %d", ErrInvalidPayload, r, len(p.IslandIDs[r]), cols)
		}
		if len(p.MapData[r]) != cols {
			return fmt.Errorf("%w: mapData row %d has %d columns, expected %d", ErrInvalidPayload, r, len(p.MapData[r]), cols)
		}
		for c := 0; c < cols; c++ {
			label := p.IslandIDs[r][c]
			if label < 0 {
				return fmt.Errorf("%w: negative label %d at (%d, %d)", ErrInvalidPayload, label, r, c)
			}
			if p.MapData[r][c] < 0 {
				return fmt.Errorf("%w: negative elevation %v at (%d, %d)", ErrInvalidPayload, p.MapData[r][c], r, c)
			}
			if label == p.IslandWithMaxAvgHeightID {
				targetSeen = true
			}
		}
	}

	if p.IslandWithMaxAvgHeightID == Water {
		return fmt.Errorf("%w: target island cannot be water", ErrInvalidPayload)
	}
	if !targetSeen {
		return fmt.Errorf("%w: target island %d does not appear in islandIds", ErrInvalidPayload, p.IslandWithMaxAvgHeightID)
	}

	return nil
}

// LoadMapPayload reads and validates a payload JSON file
func LoadMapPayload(filename string) (*MapPayload, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var payload MapPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse payload '%s': %w", filename, err)
	}

	if err := ValidateMapPayload(&payload); err != nil {
		return nil, err
	}

	return &payload, nil
}

// InitGameState creates the initial state for a freshly received map
func InitGameState(p *MapPayload) *GameState {
	return &GameState{
		Map:            p,
		Picks:          []int{},
		LivesRemaining: MaxLives,
		Outcome:        InProgress,
	}
}
