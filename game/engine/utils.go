package engine

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// IslandLabels returns every non-water label present in the grid, ascending
func IslandLabels(p *MapPayload) []int {
	seen := mapset.New[int]()
	for _, row := range p.IslandIDs {
		for _, label := range row {
			if label != Water {
				seen.Put(label)
			}
		}
	}

	labels := make([]int, 0, seen.Size())
	seen.Each(func(label int) {
		labels = append(labels, label)
	})
	sort.Ints(labels)
	return labels
}

// CountCells counts the cells carrying label
func CountCells(p *MapPayload, label int) int {
	count := 0
	for _, row := range p.IslandIDs {
		for _, l := range row {
			if l == label {
				count++
			}
		}
	}
	return count
}

// Stars renders remaining lives as gold (true) and lost lives as gray (false)
func Stars(livesRemaining int) []bool {
	if livesRemaining < 0 {
		livesRemaining = 0
	}
	if livesRemaining > MaxLives {
		livesRemaining = MaxLives
	}
	stars := make([]bool, MaxLives)
	for i := 0; i < livesRemaining; i++ {
		stars[i] = true
	}
	return stars
}
