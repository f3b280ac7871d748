package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wricardo/island-hunt/game/engine"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, err := store.Get("k"); err != nil || got != "v" {
		t.Errorf("Expected v, got %q (%v)", got, err)
	}
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "saves")
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}

	t.Run("missing key", func(t *testing.T) {
		if _, err := store.Get(DefaultKey); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		if err := store.Set(DefaultKey, `{"a":1}`); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := store.Set(DefaultKey, `{"a":2}`); err != nil {
			t.Fatalf("Overwrite failed: %v", err)
		}

		got, err := store.Get(DefaultKey)
		if err != nil || got != `{"a":2}` {
			t.Errorf("Expected latest value, got %q (%v)", got, err)
		}

		if _, err := os.Stat(filepath.Join(dir, DefaultKey+".json")); err != nil {
			t.Errorf("Expected file per key: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, DefaultKey+".json.tmp")); !os.IsNotExist(err) {
			t.Error("Temp file should not linger")
		}
	})

	t.Run("invalid key", func(t *testing.T) {
		for _, key := range []string{"", "../escape", `a\b`, ".."} {
			if err := store.Set(key, "x"); !errors.Is(err, ErrInvalidKey) {
				t.Errorf("Set(%q): expected ErrInvalidKey, got %v", key, err)
			}
		}
	})
}

func TestPersistence(t *testing.T) {
	store := NewMemoryStore()
	p := NewPersistence(store, "")

	if p.Key() != DefaultKey {
		t.Errorf("Expected default key %s, got %s", DefaultKey, p.Key())
	}

	if _, err := p.Load(); !errors.Is(err, ErrNoSavedSession) {
		t.Errorf("Expected ErrNoSavedSession, got %v", err)
	}

	state := createTestState()
	state.Picks = []int{1}
	state.LivesRemaining = 2
	if err := p.Save(state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := p.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.LivesRemaining != 2 || got.Picks[0] != 1 {
		t.Errorf("Unexpected restored state %+v", got)
	}

	store.Set(DefaultKey, "not json")
	if _, err := p.Load(); !errors.Is(err, ErrDecode) {
		t.Errorf("Expected ErrDecode, got %v", err)
	}

	if err := p.Save(&engine.GameState{}); err == nil {
		t.Error("Expected error saving a state without map")
	}
}
