package terrain

var kernel = [3][3]float64{
	{1, 2, 1},
	{2, 4, 2},
	{1, 2, 1},
}

const kernelSum = 16

// Smooth applies a 3x3 weighted blur to the interior of grid. Border rows
// and columns of the result are zero. The input is not modified.
func Smooth(grid [][]float64) [][]float64 {
	rows := len(grid)
	cols := 0
	if rows > 0 {
		cols = len(grid[0])
	}

	out := make([][]float64, rows)
	for r := range out {
		out[r] = make([]float64, cols)
	}

	for _, row := range grid {
		if len(row) != cols {
			return out
		}
	}

	for r := 1; r < rows-1; r++ {
		for c := 1; c < cols-1; c++ {
			sum := 0.0
			for kr := -1; kr <= 1; kr++ {
				for kc := -1; kc <= 1; kc++ {
					sum += grid[r+kr][c+kc] * kernel[kr+1][kc+1]
				}
			}
			out[r][c] = sum / kernelSum
		}
	}
	return out
}
