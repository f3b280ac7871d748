package hud

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"
)

// SessionView mirrors the server's session view
type SessionView struct {
	Rows           int     `json:"rows"`
	Cols           int     `json:"cols"`
	IslandCount    int     `json:"island_count"`
	LivesRemaining int     `json:"lives_remaining"`
	MaxLives       int     `json:"max_lives"`
	Picks          []int   `json:"picks"`
	Outcome        string  `json:"outcome"`
	GameOver       bool    `json:"game_over"`
	Bearing        float64 `json:"bearing"`
	HasBearing     bool    `json:"has_bearing"`
	Stars          []bool  `json:"stars"`
	Message        string  `json:"message"`
}

// BoardView is the flat board as #rrggbb colors, indexed [row][col]
type BoardView struct {
	Rows  int        `json:"rows"`
	Cols  int        `json:"cols"`
	Cells [][]string `json:"cells"`
}

// Message is a WebSocket notification from the server hub
type Message struct {
	Event     string       `json:"event"`
	Session   *SessionView `json:"session,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// Hub events the client reacts to
const (
	EventMapLoaded      = "map_loaded"
	EventPickResolved   = "pick_resolved"
	EventOutcomeChanged = "outcome_changed"
	EventNavigate       = "navigate"
)

// Indicators are the HUD flashes driven by session changes
type Indicators struct {
	Damage  Flash
	Lives   Flash
	Compass Flash
}

// Observe compares the previous and next views and starts the flashes the
// change calls for. A new map (prev nil or more lives than before) resets
// them instead.
func (in *Indicators) Observe(prev, next *SessionView, now time.Time) {
	if next == nil {
		return
	}
	if prev == nil || next.LivesRemaining > prev.LivesRemaining {
		in.Damage.Reset()
		in.Lives.Reset()
		in.Compass.Reset()
		return
	}
	if next.LivesRemaining < prev.LivesRemaining {
		in.Damage.Trigger(now, DamageFlash)
		in.Lives.Trigger(now, LivesFlash)
	}
	if next.HasBearing && (!prev.HasBearing || next.Bearing != prev.Bearing) {
		in.Compass.Trigger(now, CompassFlash)
	}
}

// ParseHex decodes a #rrggbb color
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// StarLine renders the star rating as filled and empty stars
func StarLine(stars []bool) string {
	var b strings.Builder
	for _, gold := range stars {
		if gold {
			b.WriteString("*")
		} else {
			b.WriteString("-")
		}
	}
	return b.String()
}

// CompassPoint names the nearest of the eight winds for a bearing
func CompassPoint(bearing float64) string {
	points := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	idx := int((bearing+22.5)/45) % len(points)
	if idx < 0 {
		idx += len(points)
	}
	return points[idx]
}
