package hud

import "time"

// Flash durations for the HUD indicators
const (
	DamageFlash  = 1000 * time.Millisecond
	LivesFlash   = 500 * time.Millisecond
	CompassFlash = 500 * time.Millisecond
)

// Flash is a timed indicator. The zero value is idle; Trigger makes it
// flash until a deadline, and the render loop polls Active every frame.
type Flash struct {
	until time.Time
}

// Trigger starts (or extends) the flash for d from now
func (f *Flash) Trigger(now time.Time, d time.Duration) {
	if end := now.Add(d); end.After(f.until) {
		f.until = end
	}
}

// Active reports whether the flash is still showing at now
func (f *Flash) Active(now time.Time) bool {
	return now.Before(f.until)
}

// Progress is how far through the flash now is, in [0, 1]. Idle flashes
// report 1.
func (f *Flash) Progress(now time.Time, d time.Duration) float64 {
	if !f.Active(now) || d <= 0 {
		return 1
	}
	remaining := f.until.Sub(now)
	return 1 - float64(remaining)/float64(d)
}

// Reset returns the flash to idle
func (f *Flash) Reset() {
	f.until = time.Time{}
}
