package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/island-hunt/game/engine"
	"github.com/wricardo/island-hunt/game/terrain"
)

var (
	ErrFetch       = errors.New("failed to fetch map")
	ErrNoSession   = errors.New("no playable session")
	ErrOutOfBounds = errors.New("cell out of bounds")
)

// MapProvider supplies freshly generated maps. Errors wrap ErrFetch.
type MapProvider interface {
	FetchMap(ctx context.Context) (*engine.MapPayload, error)
}

// SessionStore saves and restores the live session
type SessionStore interface {
	Save(state *engine.GameState) error
	Load() (*engine.GameState, error)
}

// Navigator is told when no playable session can be established
type Navigator interface {
	NavigateHome(reason error)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(reason error)

func (f NavigatorFunc) NavigateHome(reason error) { f(reason) }

// EventType names a service notification
type EventType string

const (
	EventMapLoaded      EventType = "map_loaded"
	EventPickResolved   EventType = "pick_resolved"
	EventOutcomeChanged EventType = "outcome_changed"
)

// Event is delivered to subscribers after the operation that caused it
type Event struct {
	Type      EventType          `json:"type"`
	Session   *SessionView       `json:"session,omitempty"`
	Pick      *engine.PickResult `json:"pick,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

// Listener receives service events
type Listener func(Event)

// SessionView is the player-facing snapshot of the live session. It never
// exposes the target island or the island statistics.
type SessionView struct {
	Rows           int            `json:"rows"`
	Cols           int            `json:"cols"`
	IslandCount    int            `json:"island_count"`
	LivesRemaining int            `json:"lives_remaining"`
	MaxLives       int            `json:"max_lives"`
	Picks          []int          `json:"picks"`
	Outcome        engine.Outcome `json:"outcome"`
	GameOver       bool           `json:"game_over"`
	Bearing        float64        `json:"bearing"`
	HasBearing     bool           `json:"has_bearing"`
	Stars          []bool         `json:"stars"`
	Message        string         `json:"message"`
}

// PickResponse is the outcome of a direct pick
type PickResponse struct {
	Pick    engine.PickResult `json:"pick"`
	Session *SessionView      `json:"session"`
	Message string            `json:"message"`
}

// Pick3DResponse is the outcome of a pointer pick on the 3D surface.
// Result is nil when the ray missed the grid.
type Pick3DResponse struct {
	Hit     bool          `json:"hit"`
	Point   *terrain.Vec3 `json:"point,omitempty"`
	Result  *PickResponse `json:"result,omitempty"`
	Session *SessionView  `json:"session"`
}

// BoardView is the 2D board as hex colors, indexed [row][col]
type BoardView struct {
	Rows  int        `json:"rows"`
	Cols  int        `json:"cols"`
	Cells [][]string `json:"cells"`
}

// CellInfo describes one grid cell
type CellInfo struct {
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	Label     int     `json:"label"`
	Water     bool    `json:"water"`
	Elevation float64 `json:"elevation"`
	Picked    bool    `json:"picked"`
	Color     string  `json:"color"`
}
