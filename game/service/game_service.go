package service

import (
	"context"

	"github.com/wricardo/island-hunt/game/terrain"
)

// GameService defines all game-related operations on the single live session
type GameService interface {
	// Session Lifecycle
	Start(ctx context.Context) (*SessionView, error)
	NewSession(ctx context.Context) (*SessionView, error)
	RestoreSession() (*SessionView, error)
	Restart(ctx context.Context) (*SessionView, error)
	CurrentSession() (*SessionView, error)

	// Game Operations
	Pick(ctx context.Context, row, col int) (*PickResponse, error)
	Pick3D(ctx context.Context, ndcX, ndcY float64) (*Pick3DResponse, error)
	DescribeCell(row, col int) (*CellInfo, error)

	// Presentation
	Board() (*BoardView, error)
	Surface() (*terrain.Surface, error)
	Camera() terrain.Camera
	SetCamera(camera terrain.Camera) error

	// Notifications
	Subscribe(listener Listener) (cancel func())
}

// Rules is the player-facing rules text
const Rules = `Find the tallest island.

The map is split into islands. One island has the highest average
elevation: find it and you win, no matter how many lives you have left.

Every other island costs a life the first time you pick it. After a wrong
pick the compass points from that island toward the tallest one. Picking
an island again costs nothing, and water is not an island.

You have 3 lives. Your remaining lives become stars when the game ends.`
