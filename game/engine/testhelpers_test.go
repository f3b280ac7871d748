package engine

// createTwoIslandPayload builds a 5x5 map with a low island 1 and the
// target island 2.
func createTwoIslandPayload() *MapPayload {
	return &MapPayload{
		IslandIDs: [][]int{
			{0, 0, 0, 0, 0},
			{0, 1, 1, 0, 0},
			{0, 1, 0, 2, 0},
			{0, 0, 0, 2, 0},
			{0, 0, 0, 0, 0},
		},
		MapData: [][]float64{
			{0, 0, 0, 0, 0},
			{0, 40, 60, 0, 0},
			{0, 50, 0, 310, 0},
			{0, 0, 0, 290, 0},
			{0, 0, 0, 0, 0},
		},
		IslandAvgHeights: map[int]float64{1: 50, 2: 300},
		IslandCenterPoints: map[int]Point{
			1: {X: 1.5, Y: 1.5},
			2: {X: 2.5, Y: 3},
		},
		IslandWithMaxAvgHeightID: 2,
	}
}

// createFourIslandPayload builds a 5x5 map with four single-cell islands;
// island 4 is the target.
func createFourIslandPayload() *MapPayload {
	return &MapPayload{
		IslandIDs: [][]int{
			{0, 0, 0, 0, 0},
			{0, 1, 0, 2, 0},
			{0, 0, 0, 0, 0},
			{0, 3, 0, 4, 0},
			{0, 0, 0, 0, 0},
		},
		MapData: [][]float64{
			{0, 0, 0, 0, 0},
			{0, 100, 0, 200, 0},
			{0, 0, 0, 0, 0},
			{0, 300, 0, 400, 0},
			{0, 0, 0, 0, 0},
		},
		IslandAvgHeights: map[int]float64{1: 100, 2: 200, 3: 300, 4: 400},
		IslandCenterPoints: map[int]Point{
			1: {X: 1, Y: 1},
			2: {X: 1, Y: 3},
			3: {X: 3, Y: 1},
			4: {X: 3, Y: 3},
		},
		IslandWithMaxAvgHeightID: 4,
	}
}
