package hud

import (
	"testing"
	"time"
)

func TestFlash(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	var f Flash
	if f.Active(now) {
		t.Fatal("Zero flash should be idle")
	}
	if f.Progress(now, LivesFlash) != 1 {
		t.Error("Idle flash should report full progress")
	}

	f.Trigger(now, LivesFlash)
	if !f.Active(now) || !f.Active(now.Add(499*time.Millisecond)) {
		t.Error("Flash should be active during its duration")
	}
	if f.Active(now.Add(LivesFlash)) {
		t.Error("Flash should end at its deadline")
	}
	if got := f.Progress(now.Add(250*time.Millisecond), LivesFlash); got != 0.5 {
		t.Errorf("Expected progress 0.5, got %v", got)
	}

	t.Run("shorter trigger does not cut a longer flash", func(t *testing.T) {
		var f Flash
		f.Trigger(now, DamageFlash)
		f.Trigger(now, CompassFlash)
		if !f.Active(now.Add(900 * time.Millisecond)) {
			t.Error("Expected the damage flash to keep running")
		}
	})

	t.Run("reset", func(t *testing.T) {
		var f Flash
		f.Trigger(now, DamageFlash)
		f.Reset()
		if f.Active(now) {
			t.Error("Reset flash should be idle")
		}
	})
}

func TestIndicatorsObserve(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	fresh := &SessionView{LivesRemaining: 3, MaxLives: 3}

	t.Run("wrong pick flashes damage, lives and compass", func(t *testing.T) {
		var in Indicators
		next := &SessionView{LivesRemaining: 2, HasBearing: true, Bearing: 135}
		in.Observe(fresh, next, now)

		if !in.Damage.Active(now.Add(900*time.Millisecond)) || in.Damage.Active(now.Add(DamageFlash)) {
			t.Error("Damage should flash for one second")
		}
		if !in.Lives.Active(now) || in.Lives.Active(now.Add(LivesFlash)) {
			t.Error("Lives should flash for half a second")
		}
		if !in.Compass.Active(now) {
			t.Error("A new bearing should flash the compass")
		}
	})

	t.Run("same view changes nothing", func(t *testing.T) {
		var in Indicators
		view := &SessionView{LivesRemaining: 2, HasBearing: true, Bearing: 135}
		in.Observe(view, view, now)
		if in.Damage.Active(now) || in.Lives.Active(now) || in.Compass.Active(now) {
			t.Error("Expected no flashes for an unchanged view")
		}
	})

	t.Run("new map resets flashes", func(t *testing.T) {
		var in Indicators
		in.Damage.Trigger(now, DamageFlash)
		in.Compass.Trigger(now, CompassFlash)
		in.Observe(&SessionView{LivesRemaining: 1}, fresh, now)
		if in.Damage.Active(now) || in.Compass.Active(now) {
			t.Error("Expected flashes to reset on a new map")
		}
	})

	t.Run("nil next is ignored", func(t *testing.T) {
		var in Indicators
		in.Observe(fresh, nil, now)
		if in.Damage.Active(now) {
			t.Error("Expected no flash")
		}
	})
}

func TestParseHex(t *testing.T) {
	clr, err := ParseHex("#1a2b3c")
	if err != nil {
		t.Fatalf("ParseHex failed: %v", err)
	}
	if clr.R != 0x1a || clr.G != 0x2b || clr.B != 0x3c || clr.A != 0xff {
		t.Errorf("Unexpected color %+v", clr)
	}

	for _, bad := range []string{"", "#fff", "#zzzzzz"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("Expected an error for %q", bad)
		}
	}
}

func TestCompassPointAndStars(t *testing.T) {
	tests := map[float64]string{0: "N", 44: "NE", 135: "SE", 200: "S", 350: "N", 290: "W"}
	for bearing, want := range tests {
		if got := CompassPoint(bearing); got != want {
			t.Errorf("CompassPoint(%v) = %s, want %s", bearing, got, want)
		}
	}

	if got := StarLine([]bool{true, true, false}); got != "**-" {
		t.Errorf("Expected **-, got %s", got)
	}
}
