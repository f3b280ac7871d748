package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/wricardo/island-hunt/game/engine"
	"github.com/wricardo/island-hunt/game/session"
	"github.com/wricardo/island-hunt/game/terrain"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	provider  MapProvider
	store     SessionStore
	navigator Navigator

	mu      sync.Mutex
	engine  *engine.GameEngine
	board   *terrain.Board
	surface *terrain.Surface
	camera  terrain.Camera

	listenersMu sync.Mutex
	listeners   []subscription
	nextID      int
}

type subscription struct {
	id int
	fn Listener
}

// NewGameService creates a game service. store and navigator may be nil.
func NewGameService(provider MapProvider, store SessionStore, navigator Navigator) GameService {
	return &gameServiceImpl{
		provider:  provider,
		store:     store,
		navigator: navigator,
		camera:    terrain.DefaultCamera(),
	}
}

// Start resumes the saved session, or fetches a fresh map when there is none
func (s *gameServiceImpl) Start(ctx context.Context) (*SessionView, error) {
	view, err := s.RestoreSession()
	if err == nil {
		return view, nil
	}
	if !errors.Is(err, session.ErrNoSavedSession) {
		log.Printf("Warning: Discarding saved session: %v", err)
	}
	return s.NewSession(ctx)
}

// NewSession fetches a map and replaces the live session with a fresh one.
// On failure the service is left without a session and the navigator is
// told to go home.
func (s *gameServiceImpl) NewSession(ctx context.Context) (*SessionView, error) {
	eng, err := s.fetchEngine(ctx)
	if err != nil {
		s.mu.Lock()
		s.clearLocked()
		s.mu.Unlock()

		if s.navigator != nil {
			s.navigator.NavigateHome(err)
		}
		return nil, err
	}

	s.mu.Lock()
	s.installLocked(eng)
	s.persistLocked()
	view := s.viewLocked()
	s.mu.Unlock()

	log.Printf("New map loaded: %dx%d, %d islands", view.Rows, view.Cols, view.IslandCount)
	s.notify(Event{Type: EventMapLoaded, Session: view})
	return view, nil
}

// Restart discards the live session and starts over with a new map
func (s *gameServiceImpl) Restart(ctx context.Context) (*SessionView, error) {
	return s.NewSession(ctx)
}

func (s *gameServiceImpl) fetchEngine(ctx context.Context) (*engine.GameEngine, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("%w: no map provider configured", ErrFetch)
	}

	payload, err := s.provider.FetchMap(ctx)
	if err != nil {
		if errors.Is(err, ErrFetch) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	eng, err := engine.NewEngine(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return eng, nil
}

// RestoreSession rebuilds the live session from the store
func (s *gameServiceImpl) RestoreSession() (*SessionView, error) {
	if s.store == nil {
		return nil, session.ErrNoSavedSession
	}

	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	eng, err := engine.RestoreEngine(state)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", session.ErrDecode, err)
	}

	s.mu.Lock()
	s.installLocked(eng)
	view := s.viewLocked()
	s.mu.Unlock()

	log.Printf("Restored saved session: %d lives, picks %v", view.LivesRemaining, view.Picks)
	s.notify(Event{Type: EventMapLoaded, Session: view})
	return view, nil
}

// CurrentSession returns a snapshot of the live session
func (s *gameServiceImpl) CurrentSession() (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		return nil, ErrNoSession
	}
	return s.viewLocked(), nil
}

// Pick resolves a selection of cell (row, col)
func (s *gameServiceImpl) Pick(ctx context.Context, row, col int) (*PickResponse, error) {
	s.mu.Lock()
	if s.engine == nil {
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	resp := s.pickLocked(row, col)
	s.mu.Unlock()

	s.notifyPick(resp)
	return resp, nil
}

// Pick3D casts a ray through an NDC pointer position and picks the cell hit
func (s *gameServiceImpl) Pick3D(ctx context.Context, ndcX, ndcY float64) (*Pick3DResponse, error) {
	s.mu.Lock()
	if s.engine == nil {
		s.mu.Unlock()
		return nil, ErrNoSession
	}

	ray, err := s.camera.Ray(ndcX, ndcY)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	out := &Pick3DResponse{}
	hit, found := s.surface.Intersect(ray)
	if found {
		point := hit.Point
		out.Point = &point
		if row, col, ok := terrain.GridCoord(hit.Point, s.surface.Width, s.surface.Height); ok {
			out.Hit = true
			out.Result = s.pickLocked(row, col)
		}
	}
	out.Session = s.viewLocked()
	s.mu.Unlock()

	if out.Result != nil {
		s.notifyPick(out.Result)
	}
	return out, nil
}

func (s *gameServiceImpl) pickLocked(row, col int) *PickResponse {
	result := s.engine.Pick(row, col)

	if result.Regray != engine.Water {
		s.board.Regray(result.Regray)
		s.surface.Regray(result.Regray)
	}
	// only a wrong pick is saved; a won map is never written back
	if result.Kind == engine.PickWrong {
		s.persistLocked()
	}

	view := s.viewLocked()
	return &PickResponse{
		Pick:    result,
		Session: view,
		Message: describePick(result),
	}
}

// DescribeCell reports what is at (row, col) without picking it
func (s *gameServiceImpl) DescribeCell(row, col int) (*CellInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		return nil, ErrNoSession
	}
	payload := s.engine.GetPayload()
	if !payload.InBounds(row, col) {
		return nil, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfBounds, row, col, payload.Rows(), payload.Cols())
	}

	label := payload.LabelAt(row, col)
	picked := false
	for _, p := range s.engine.GetPicks() {
		if p == label {
			picked = true
			break
		}
	}

	return &CellInfo{
		Row:       row,
		Col:       col,
		Label:     label,
		Water:     label == engine.Water,
		Elevation: payload.MapData[row][col],
		Picked:    picked,
		Color:     s.board.Cells[row][col].Hex(),
	}, nil
}

// Board returns the current 2D board colors
func (s *gameServiceImpl) Board() (*BoardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.board == nil {
		return nil, ErrNoSession
	}
	return &BoardView{
		Rows:  s.board.Rows(),
		Cols:  s.board.Cols(),
		Cells: s.board.Hex(),
	}, nil
}

// Surface returns a snapshot of the 3D mesh
func (s *gameServiceImpl) Surface() (*terrain.Surface, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.surface == nil {
		return nil, ErrNoSession
	}
	return s.surface.Snapshot(), nil
}

// Camera returns the camera used for 3D picks
func (s *gameServiceImpl) Camera() terrain.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.camera
}

// SetCamera replaces the camera used for 3D picks
func (s *gameServiceImpl) SetCamera(camera terrain.Camera) error {
	if err := camera.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.camera = camera
	s.mu.Unlock()
	return nil
}

// Subscribe registers listener for every event; cancel removes it
func (s *gameServiceImpl) Subscribe(listener Listener) (cancel func()) {
	s.listenersMu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: listener})
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			defer s.listenersMu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// installLocked swaps in a new engine and rebuilds the presentation state
func (s *gameServiceImpl) installLocked(eng *engine.GameEngine) {
	payload := eng.GetPayload()

	s.engine = eng
	s.board = terrain.BuildBoard(payload.MapData, payload.IslandIDs)
	s.surface = terrain.BuildSurface(payload.MapData, payload.IslandIDs)

	for _, label := range eng.GetPicks() {
		s.board.Regray(label)
		s.surface.Regray(label)
	}
}

func (s *gameServiceImpl) clearLocked() {
	s.engine = nil
	s.board = nil
	s.surface = nil
}

// persistLocked saves the session; failures never fail the operation
func (s *gameServiceImpl) persistLocked() {
	if s.store == nil || s.engine == nil {
		return
	}
	if err := s.store.Save(s.engine.GetState()); err != nil {
		log.Printf("Warning: Failed to persist session: %v", err)
	}
}

func (s *gameServiceImpl) viewLocked() *SessionView {
	state := s.engine.GetState()
	payload := s.engine.GetPayload()

	return &SessionView{
		Rows:           payload.Rows(),
		Cols:           payload.Cols(),
		IslandCount:    len(engine.IslandLabels(payload)),
		LivesRemaining: state.LivesRemaining,
		MaxLives:       engine.MaxLives,
		Picks:          s.engine.GetPicks(),
		Outcome:        state.Outcome,
		GameOver:       state.Outcome.IsTerminal(),
		Bearing:        state.Bearing,
		HasBearing:     state.HasBearing,
		Stars:          engine.Stars(state.LivesRemaining),
		Message:        describeOutcome(state),
	}
}

func (s *gameServiceImpl) notifyPick(resp *PickResponse) {
	kind := resp.Pick.Kind
	if kind == engine.PickOutOfBounds || kind == engine.PickIgnored {
		return
	}

	pick := resp.Pick
	s.notify(Event{Type: EventPickResolved, Session: resp.Session, Pick: &pick})
	if pick.OutcomeChanged {
		s.notify(Event{Type: EventOutcomeChanged, Session: resp.Session, Pick: &pick})
	}
}

// notify delivers ev to every listener in subscription order. It must be
// called without s.mu held.
func (s *gameServiceImpl) notify(ev Event) {
	ev.Timestamp = time.Now()

	s.listenersMu.Lock()
	listeners := make([]Listener, len(s.listeners))
	for i, sub := range s.listeners {
		listeners[i] = sub.fn
	}
	s.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

func describePick(r engine.PickResult) string {
	switch r.Kind {
	case engine.PickIgnored:
		return "The game is over. Restart to play a new map."
	case engine.PickOutOfBounds:
		return fmt.Sprintf("(%d, %d) is outside the map.", r.Row, r.Col)
	case engine.PickWater:
		return "That's water. Pick an island."
	case engine.PickRepeat:
		return fmt.Sprintf("Island %d was already picked.", r.Label)
	case engine.PickTarget:
		return fmt.Sprintf("Island %d is the tallest island. You win!", r.Label)
	case engine.PickWrong:
		if r.Outcome == engine.Defeat {
			return fmt.Sprintf("Island %d is not the tallest. No lives left.", r.Label)
		}
		return fmt.Sprintf("Island %d is not the tallest. %d %s left.", r.Label, r.LivesRemaining, plural(r.LivesRemaining, "life", "lives"))
	default:
		return ""
	}
}

func describeOutcome(state *engine.GameState) string {
	switch state.Outcome {
	case engine.Victory:
		return "You found the tallest island!"
	case engine.Defeat:
		return "Game over. The tallest island stays hidden."
	default:
		return fmt.Sprintf("Find the tallest island. %d %s left.", state.LivesRemaining, plural(state.LivesRemaining, "life", "lives"))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
