package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/wricardo/island-hunt/desktop/hud"
)

const (
	headerHeight = 80
	screenWidth  = 800
	screenHeight = 720
	pollInterval = time.Second
	needleLength = 28
)

var (
	backgroundColor = color.RGBA{20, 20, 30, 255}
	damageColor     = color.RGBA{200, 30, 30, 255}
	compassColor    = color.RGBA{255, 215, 0, 255}
	unknownColor    = color.RGBA{50, 50, 50, 255}
)

// Game is the desktop client: the 2D board, the HUD and its flashes
type Game struct {
	client     *hud.Client
	view       *hud.SessionView
	board      *hud.BoardView
	colors     [][]color.RGBA
	indicators hud.Indicators
	status     string
	messages   <-chan hud.Message
	lastPoll   time.Time
}

func NewGame(client *hud.Client) *Game {
	g := &Game{client: client}
	g.connect()
	g.refresh()
	return g
}

// connect subscribes to the hub; without it the client falls back to polling
func (g *Game) connect() {
	messages, err := g.client.Subscribe()
	if err != nil {
		log.Printf("Failed to connect WebSocket: %v (falling back to polling)", err)
		return
	}
	g.messages = messages
	log.Printf("WebSocket connected")
}

// apply swaps in a new session view and starts the flashes it calls for
func (g *Game) apply(next *hud.SessionView) {
	g.indicators.Observe(g.view, next, time.Now())
	g.view = next
	if next != nil && next.Message != "" {
		g.status = next.Message
	}
}

func (g *Game) refresh() {
	g.lastPoll = time.Now()

	view, err := g.client.Session()
	if err != nil {
		g.fail(err)
		return
	}
	g.apply(view)
	g.refreshBoard()
}

func (g *Game) refreshBoard() {
	board, err := g.client.Board()
	if err != nil {
		g.fail(err)
		return
	}
	g.board = board
	g.colors = make([][]color.RGBA, len(board.Cells))
	for r, row := range board.Cells {
		g.colors[r] = make([]color.RGBA, len(row))
		for c, hex := range row {
			clr, err := hud.ParseHex(hex)
			if err != nil {
				clr = unknownColor
			}
			g.colors[r][c] = clr
		}
	}
}

func (g *Game) fail(err error) {
	if errors.Is(err, hud.ErrNoSession) {
		g.view, g.board, g.colors = nil, nil, nil
		g.status = "No map loaded. Press R to fetch a new one."
		return
	}
	log.Printf("Error talking to server: %v", err)
	g.status = err.Error()
}

// drainMessages applies every queued hub message without blocking the frame
func (g *Game) drainMessages() {
	for g.messages != nil {
		select {
		case msg, ok := <-g.messages:
			if !ok {
				log.Printf("WebSocket closed (falling back to polling)")
				g.messages = nil
				return
			}
			g.handleMessage(msg)
		default:
			return
		}
	}
}

func (g *Game) handleMessage(msg hud.Message) {
	switch msg.Event {
	case hud.EventNavigate:
		g.fail(hud.ErrNoSession)
	case hud.EventMapLoaded, hud.EventPickResolved, hud.EventOutcomeChanged:
		if msg.Session != nil {
			g.apply(msg.Session)
		}
		g.refreshBoard()
	}
}

// cellAt maps a cursor position onto the board
func (g *Game) cellAt(x, y int) (int, int, bool) {
	size := g.cellSize()
	if g.board == nil || size == 0 || x < 0 || y < headerHeight {
		return 0, 0, false
	}
	row, col := (y-headerHeight)/size, x/size
	if row >= g.board.Rows || col >= g.board.Cols {
		return 0, 0, false
	}
	return row, col, true
}

func (g *Game) cellSize() int {
	if g.board == nil || g.board.Rows == 0 || g.board.Cols == 0 {
		return 0
	}
	return min(screenWidth/g.board.Cols, (screenHeight-headerHeight)/g.board.Rows)
}

// Update handles input and server updates
func (g *Game) Update() error {
	g.drainMessages()

	if g.messages == nil && time.Since(g.lastPoll) > pollInterval {
		g.refresh()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && g.view != nil && !g.view.GameOver {
		if row, col, ok := g.cellAt(ebiten.CursorPosition()); ok {
			view, message, err := g.client.Pick(row, col)
			if err != nil {
				g.fail(err)
			} else {
				g.apply(view)
				g.status = message
				g.refreshBoard()
			}
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		view, err := g.client.Restart()
		if err != nil {
			g.fail(err)
		} else {
			g.apply(view)
			g.refreshBoard()
		}
	}

	return nil
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	now := time.Now()
	screen.Fill(backgroundColor)

	if g.indicators.Damage.Active(now) {
		fade := 1 - g.indicators.Damage.Progress(now, hud.DamageFlash)
		flash := damageColor
		flash.A = uint8(160 * fade)
		vector.DrawFilledRect(screen, 0, 0, screenWidth, screenHeight, flash, false)
	}

	g.drawHeader(screen, now)

	size := g.cellSize()
	for r, row := range g.colors {
		for c, clr := range row {
			vector.DrawFilledRect(screen,
				float32(c*size),
				float32(r*size+headerHeight),
				float32(size-1), float32(size-1), clr, false)
		}
	}
}

func (g *Game) drawHeader(screen *ebiten.Image, now time.Time) {
	ebitenutil.DebugPrintAt(screen, "ISLAND HUNT - click the tallest island, R for a new map", 10, 8)
	ebitenutil.DebugPrintAt(screen, g.status, 10, 56)

	if g.view == nil {
		return
	}

	// lives blink while the flash is active
	if !g.indicators.Lives.Active(now) || now.UnixMilli()/100%2 == 0 {
		lives := fmt.Sprintf("Lives: %d/%d", g.view.LivesRemaining, g.view.MaxLives)
		ebitenutil.DebugPrintAt(screen, lives, 10, 26)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Islands: %d", g.view.IslandCount), 130, 26)
	if g.view.GameOver {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  [%s]", g.view.Outcome, hud.StarLine(g.view.Stars)), 250, 26)
	}

	if !g.view.HasBearing {
		return
	}
	cx, cy := float32(screenWidth-50), float32(headerHeight/2)
	rad := g.view.Bearing * math.Pi / 180
	tipX := cx + float32(math.Sin(rad))*needleLength
	tipY := cy - float32(math.Cos(rad))*needleLength

	width := float32(2)
	if g.indicators.Compass.Active(now) {
		width = 4
	}
	vector.StrokeCircle(screen, cx, cy, needleLength+2, 1, color.White, true)
	vector.StrokeLine(screen, cx, cy, tipX, tipY, width, compassColor, true)
	label := fmt.Sprintf("%.0f %s", g.view.Bearing, hud.CompassPoint(g.view.Bearing))
	ebitenutil.DebugPrintAt(screen, label, screenWidth-180, 26)
}

// Layout returns the logical screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	flag.Parse()

	game := NewGame(hud.NewClient(*serverURL))

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Island Hunt - Desktop Client")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
