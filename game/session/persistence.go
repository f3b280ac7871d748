package session

import (
	"errors"
	"fmt"

	"github.com/wricardo/island-hunt/game/engine"
)

// DefaultKey is the store key a session is saved under
const DefaultKey = "islandData"

// ErrNoSavedSession is returned by Load when nothing has been saved yet
var ErrNoSavedSession = errors.New("no saved session")

// Persistence saves and restores the single live session through a Store
type Persistence struct {
	store Store
	key   string
}

// NewPersistence binds a store and key; an empty key means DefaultKey
func NewPersistence(store Store, key string) *Persistence {
	if key == "" {
		key = DefaultKey
	}
	return &Persistence{store: store, key: key}
}

// Key returns the store key in use
func (p *Persistence) Key() string {
	return p.key
}

// Save encodes state and writes it under the key
func (p *Persistence) Save(state *engine.GameState) error {
	doc, err := Encode(state)
	if err != nil {
		return err
	}
	if err := p.store.Set(p.key, doc); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load reads and decodes the saved session. Errors are either
// ErrNoSavedSession, ErrDecode or a store failure.
func (p *Persistence) Load() (*engine.GameState, error) {
	doc, err := p.store.Get(p.key)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNoSavedSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return Decode(doc)
}
