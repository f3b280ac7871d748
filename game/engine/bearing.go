package engine

import "math"

// bearingOffset rotates atan2 output onto the board's visual north
const bearingOffset = 90.0

// BearingDegrees returns the compass heading in [0, 360) from one centroid
// to another. Column delta is the atan2 x argument and row delta the y
// argument, which matches how the board is drawn on screen.
func BearingDegrees(from, to Point) float64 {
	dx := to.Y - from.Y
	dy := to.X - from.X

	deg := math.Atan2(dy, dx)*(180/math.Pi) + bearingOffset
	if deg < 0 {
		deg += 360
	}
	return deg
}

// bearingToTarget computes the hint after picking label. ok is false when
// either centroid is unknown.
func bearingToTarget(p *MapPayload, label int) (float64, bool) {
	from, ok := p.IslandCenterPoints[label]
	if !ok {
		return 0, false
	}
	to, ok := p.IslandCenterPoints[p.Target()]
	if !ok {
		return 0, false
	}
	return BearingDegrees(from, to), true
}
