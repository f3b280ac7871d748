package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/wricardo/island-hunt/game/config"
	"github.com/wricardo/island-hunt/game/engine"
	"github.com/wricardo/island-hunt/game/provider"
	"github.com/wricardo/island-hunt/game/service"
	"github.com/wricardo/island-hunt/game/session"
	"github.com/wricardo/island-hunt/transport/mcp"
	"github.com/wricardo/island-hunt/transport/websocket"
)

// countingProvider fails every fetch and counts the attempts
type countingProvider struct {
	fetches int
}

func (p *countingProvider) FetchMap(ctx context.Context) (*engine.MapPayload, error) {
	p.fetches++
	return nil, errors.New("generator offline")
}

// withPort points the -port flag at a test value and restores it
func withPort(t *testing.T, value int) {
	t.Helper()
	original := *port
	*port = value
	t.Cleanup(func() { *port = original })
}

// withFlags points the package flags at the test values and restores them
func withFlags(t *testing.T, dir, profile string) {
	t.Helper()
	originalDir, originalProfile := *configDir, *profileName
	*configDir, *profileName = dir, profile
	t.Cleanup(func() {
		*configDir, *profileName = originalDir, originalProfile
	})
}

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName != "Island Hunt Server" {
		t.Errorf("Expected app name %q, got %q", "Island Hunt Server", AppName)
	}
}

func TestFlagDefaults(t *testing.T) {
	if *port <= 0 || *port > 65535 {
		t.Errorf("Invalid default port: %d", *port)
	}
	if *host == "" {
		t.Error("Host should have a default value")
	}
	if *configDir == "" {
		t.Error("Config directory should have a default value")
	}
}

func TestInitializeServices_OfflineProfile(t *testing.T) {
	if _, err := os.Stat("configs/offline.json"); os.IsNotExist(err) {
		t.Skip("Skipping test - offline profile not found")
	}
	withFlags(t, "configs", "offline")
	t.Setenv(config.EnvSaveDir, t.TempDir())

	gameService, mapProvider, err := initializeServices(nil)
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	if mapProvider.Status(context.Background()) != provider.StatusOnline {
		t.Error("Bundled map file should be reachable")
	}

	view, err := gameService.Start(context.Background())
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if view.Rows != 12 || view.Cols != 12 || view.IslandCount != 3 {
		t.Errorf("Expected the 12x12 sample map with 3 islands, got %+v", view)
	}
	if camera := gameService.Camera(); camera.Aspect != 1.7778 {
		t.Errorf("Expected the profile camera, got aspect %v", camera.Aspect)
	}
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	withFlags(t, "/non/existent/path", "")

	if _, _, err := initializeServices(nil); err == nil {
		t.Error("Expected error for non-existent config directory")
	}
}

func TestInitializeServices_UnknownProfile(t *testing.T) {
	withFlags(t, t.TempDir(), "missing")

	_, _, err := initializeServices(nil)
	if !errors.Is(err, config.ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
}

func TestNewSessionStore(t *testing.T) {
	store, err := newSessionStore(config.Storage{})
	if err != nil {
		t.Fatalf("newSessionStore failed: %v", err)
	}
	if _, ok := store.(*session.MemoryStore); !ok {
		t.Errorf("Expected a memory store without a dir, got %T", store)
	}

	store, err = newSessionStore(config.Storage{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("newSessionStore failed: %v", err)
	}
	if _, ok := store.(*session.FileStore); !ok {
		t.Errorf("Expected a file store with a dir, got %T", store)
	}
}

func TestMainRouter(t *testing.T) {
	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("api"))
	})
	router := newMainRouter(api, mcp.NewClient("http://127.0.0.1:1"))

	t.Run("api mounted at root", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/api/session", nil))
		if w.Body.String() != "api" {
			t.Errorf("Expected the API handler, got %q", w.Body.String())
		}
	})

	t.Run("mcp rejects GET", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/mcp", nil))
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405, got %d", w.Code)
		}
	})

	t.Run("mcp lists tools", func(t *testing.T) {
		body := `{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/mcp", strings.NewReader(body)))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		for _, tool := range []string{"game_state", "pick", "pick_3d", "restart", "describe_cell", "game_instructions"} {
			if !strings.Contains(w.Body.String(), `"`+tool+`"`) {
				t.Errorf("Expected tool %s in %s", tool, w.Body.String())
			}
		}
	})
}

func TestMCPBackend(t *testing.T) {
	t.Run("external server keeps its own session", func(t *testing.T) {
		external := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/health" {
				http.NotFound(w, r)
				return
			}
			w.Write([]byte(`{"status":"ok"}`))
		}))
		defer external.Close()
		withPort(t, external.Listener.Addr().(*net.TCPAddr).Port)

		maps := &countingProvider{}
		gameService := service.NewGameService(maps, nil, nil)

		url := mcpBackend(gameService, websocket.NewHub(), nil)
		if want := fmt.Sprintf("http://localhost:%d", *port); url != want {
			t.Errorf("Expected the external server %s, got %s", want, url)
		}
		if maps.fetches != 0 {
			t.Errorf("No map should be fetched when proxying to an external server, got %d fetches", maps.fetches)
		}
	})

	t.Run("internal server starts a session", func(t *testing.T) {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("Failed to reserve a port: %v", err)
		}
		withPort(t, listener.Addr().(*net.TCPAddr).Port)
		listener.Close()

		maps := &countingProvider{}
		gameService := service.NewGameService(maps, nil, nil)

		url := mcpBackend(gameService, websocket.NewHub(), nil)
		if !strings.HasPrefix(url, "http://127.0.0.1:") {
			t.Errorf("Expected an internal loopback server, got %s", url)
		}
		if maps.fetches != 1 {
			t.Errorf("Expected the internal backend to fetch a first map, got %d fetches", maps.fetches)
		}
	})
}
