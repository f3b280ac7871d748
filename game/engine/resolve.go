package engine

import "github.com/zyedidia/generic/mapset"

// Resolve classifies a pick at (row, col) without mutating the state.
// picked holds the labels already in gs.Picks.
func (gs *GameState) Resolve(row, col int, picked mapset.Set[int]) (PickKind, int) {
	if gs.Outcome.IsTerminal() {
		return PickIgnored, Water
	}
	if gs.Map == nil || !gs.Map.InBounds(row, col) {
		return PickOutOfBounds, Water
	}

	label := gs.Map.LabelAt(row, col)
	switch {
	case label == Water:
		return PickWater, label
	case label == gs.Map.Target():
		return PickTarget, label
	case picked.Has(label):
		return PickRepeat, label
	default:
		return PickWrong, label
	}
}

// recordWrongPick appends label, takes a life and refreshes the bearing
func (gs *GameState) recordWrongPick(label int) {
	gs.Picks = append(gs.Picks, label)

	gs.LivesRemaining--
	if gs.LivesRemaining < 0 {
		gs.LivesRemaining = 0
	}

	if deg, ok := bearingToTarget(gs.Map, label); ok {
		gs.Bearing = deg
		gs.HasBearing = true
	}

	if gs.LivesRemaining == 0 {
		gs.Outcome = Defeat
	}
}

// pickedSet builds the membership set for a list of picks
func pickedSet(picks []int) mapset.Set[int] {
	set := mapset.New[int]()
	for _, label := range picks {
		set.Put(label)
	}
	return set
}
