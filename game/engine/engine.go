package engine

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// ErrInvalidState is wrapped when a restored state breaks a session invariant
var ErrInvalidState = errors.New("invalid game state")

// Engine provides the main interface for game operations
type Engine interface {
	GetState() *GameState
	Pick(row, col int) PickResult

	IsGameOver() bool
	IsVictory() bool
	GetLivesRemaining() int
	GetPicks() []int
	GetPayload() *MapPayload
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state  *GameState
	picked mapset.Set[int]
}

// NewEngine starts a fresh session for payload
func NewEngine(payload *MapPayload) (*GameEngine, error) {
	if err := ValidateMapPayload(payload); err != nil {
		return nil, err
	}

	state := InitGameState(payload)
	return &GameEngine{
		state:  state,
		picked: pickedSet(state.Picks),
	}, nil
}

// RestoreEngine resumes a previously saved session
func RestoreEngine(state *GameState) (*GameEngine, error) {
	if err := ValidateGameState(state); err != nil {
		return nil, err
	}

	return &GameEngine{
		state:  state,
		picked: pickedSet(state.Picks),
	}, nil
}

// ValidateGameState checks a state against the session invariants
func ValidateGameState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("%w: state is nil", ErrInvalidState)
	}
	if err := ValidateMapPayload(state.Map); err != nil {
		return err
	}

	if state.LivesRemaining < 0 || state.LivesRemaining > MaxLives {
		return fmt.Errorf("%w: lives_remaining %d outside [0, %d]", ErrInvalidState, state.LivesRemaining, MaxLives)
	}
	if len(state.Picks) != MaxLives-state.LivesRemaining {
		return fmt.Errorf("%w: %d picks recorded with %d lives remaining", ErrInvalidState, len(state.Picks), state.LivesRemaining)
	}

	present := mapset.New[int]()
	for _, label := range IslandLabels(state.Map) {
		present.Put(label)
	}

	seen := mapset.New[int]()
	for _, label := range state.Picks {
		switch {
		case label == Water:
			return fmt.Errorf("%w: water recorded as a pick", ErrInvalidState)
		case label == state.Map.Target():
			return fmt.Errorf("%w: target island recorded as a wrong pick", ErrInvalidState)
		case !present.Has(label):
			return fmt.Errorf("%w: picked island %d does not appear in the map", ErrInvalidState, label)
		case seen.Has(label):
			return fmt.Errorf("%w: island %d picked twice", ErrInvalidState, label)
		}
		seen.Put(label)
	}

	switch state.Outcome {
	case InProgress:
		if state.LivesRemaining == 0 {
			return fmt.Errorf("%w: no lives left but outcome is %s", ErrInvalidState, state.Outcome)
		}
	case Defeat:
		if state.LivesRemaining != 0 {
			return fmt.Errorf("%w: defeat with %d lives remaining", ErrInvalidState, state.LivesRemaining)
		}
	case Victory:
	default:
		return fmt.Errorf("%w: unknown outcome %q", ErrInvalidState, state.Outcome)
	}

	return nil
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// GetPayload returns the immutable map data
func (e *GameEngine) GetPayload() *MapPayload {
	return e.state.Map
}

// IsGameOver returns whether the session reached a terminal outcome
func (e *GameEngine) IsGameOver() bool {
	return e.state.Outcome.IsTerminal()
}

// IsVictory returns whether the target island was found
func (e *GameEngine) IsVictory() bool {
	return e.state.Outcome == Victory
}

// GetLivesRemaining returns how many lives are left
func (e *GameEngine) GetLivesRemaining() int {
	return e.state.LivesRemaining
}

// GetPicks returns a copy of the wrong picks in selection order
func (e *GameEngine) GetPicks() []int {
	picks := make([]int, len(e.state.Picks))
	copy(picks, e.state.Picks)
	return picks
}

// Pick resolves a player selection at (row, col) and applies it
func (e *GameEngine) Pick(row, col int) PickResult {
	kind, label := e.state.Resolve(row, col, e.picked)

	switch kind {
	case PickTarget:
		e.state.Outcome = Victory
	case PickWrong:
		e.picked.Put(label)
		e.state.recordWrongPick(label)
	}

	result := PickResult{
		Kind:           kind,
		Row:            row,
		Col:            col,
		Label:          label,
		LivesRemaining: e.state.LivesRemaining,
		Outcome:        e.state.Outcome,
		OutcomeChanged: (kind == PickTarget || kind == PickWrong) && e.state.Outcome.IsTerminal(),
		Bearing:        e.state.Bearing,
		HasBearing:     e.state.HasBearing,
	}
	if kind == PickWrong {
		result.Regray = label
	}
	return result
}
