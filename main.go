// Command island-hunt starts the Island Hunt game server.
//
// It supports two modes:
//  1. "server" (default): the HTTP server with the REST API, the WebSocket hub and an /mcp endpoint
//  2. "stdio-mcp": an MCP stdio server, backed by an internal HTTP API if none is running
//
// Flags control host/port, config directory and profile, debug logging,
// version output, and optional ngrok tunneling for easy external access
// during development.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/island-hunt/api"
	"github.com/wricardo/island-hunt/game/config"
	"github.com/wricardo/island-hunt/game/provider"
	"github.com/wricardo/island-hunt/game/service"
	"github.com/wricardo/island-hunt/game/session"
	"github.com/wricardo/island-hunt/transport/mcp"
	"github.com/wricardo/island-hunt/transport/websocket"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Island Hunt Server"
)

// Configuration flags control how the server starts and which services are enabled.
var (
	port         = flag.Int("port", 8080, "HTTP server port")
	host         = flag.String("host", "localhost", "HTTP server host")
	configDir    = flag.String("config-dir", getConfigDirDefault(), "Directory containing profiles")
	profileName  = flag.String("profile", "", "Profile to load (default: classic, or the first valid profile)")
	debug        = flag.Bool("debug", false, "Enable debug logging")
	version      = flag.Bool("version", false, "Show version information")
	ngrokEnabled = flag.Bool("ngrok", false, "Enable ngrok tunnel")
	ngrokAuth    = flag.String("ngrok-auth", "", "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	ngrokDomain  = flag.String("ngrok-domain", "", "Custom ngrok domain (optional)")
)

// startupFetchTimeout bounds the first map fetch
const startupFetchTimeout = 30 * time.Second

// getConfigDirDefault returns the default configuration directory.
// It first honors the CONFIG_DIR environment variable, then falls back to "configs".
func getConfigDirDefault() string {
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		return configDir
	}
	return "configs"
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  server, http     Run HTTP server with API, WebSocket, and MCP endpoint (default)\n")
		fmt.Fprintf(os.Stderr, "  stdio-mcp        Run MCP stdio server with internal HTTP server\n")
		fmt.Fprintf(os.Stderr, "  mcp-stdio        Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "  mcp              Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  %s  Map generator base URL\n", config.EnvAPIBaseURL)
		fmt.Fprintf(os.Stderr, "  %s      Play a map payload file instead of the generator\n", config.EnvMapFile)
		fmt.Fprintf(os.Stderr, "  %s      Directory for saved sessions\n", config.EnvSaveDir)
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                    # Run HTTP server on default port 8080\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -profile offline   # Play the bundled sample map\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s stdio-mcp          # Run MCP stdio server\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s mcp -port 9090     # Run MCP stdio server with internal HTTP on port 9090\n", os.Args[0])
	}
}

// loadDotEnv reads .env from the working directory when present
func loadDotEnv() {
	err := godotenv.Load()
	switch {
	case err == nil:
		log.Println("Loaded environment variables from .env file")
	case !os.IsNotExist(err):
		log.Printf("Warning: Error loading .env file: %v", err)
	}
}

func main() {
	loadDotEnv()
	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	logFlags := log.LstdFlags
	if *debug {
		logFlags |= log.Lshortfile
	}
	log.SetFlags(logFlags)

	mode := "server"
	if flag.NArg() > 0 {
		mode = flag.Arg(0)
	}
	log.Printf("Starting %s v%s (mode: %s)", AppName, Version, mode)

	// The hub doubles as the navigator, so it exists in every mode
	hub := websocket.NewHub()
	go hub.Run()

	gameService, mapProvider, err := initializeServices(hub)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	gameService.Subscribe(hub.Listener())

	switch mode {
	case "stdio-mcp", "mcp-stdio", "mcp":
		runStdioMCPWithInternalServer(gameService, hub, mapProvider)
	case "server", "http":
		startSession(gameService)
		runHTTPServer(gameService, hub, mapProvider)
	default:
		log.Fatalf("Unknown mode: %s. Use 'server' (default) or 'stdio-mcp'", mode)
	}
}

// startSession resumes the saved session or fetches the first map. A failed
// fetch is not fatal: clients are sent home and may start a session later.
func startSession(gameService service.GameService) {
	ctx, cancel := context.WithTimeout(context.Background(), startupFetchTimeout)
	defer cancel()

	view, err := gameService.Start(ctx)
	if err != nil {
		log.Printf("Warning: No playable session at startup: %v", err)
		return
	}
	log.Printf("Session ready: %dx%d map, %d lives, outcome %s", view.Rows, view.Cols, view.LivesRemaining, view.Outcome)
}

// newMainRouter mounts the API at the root and the MCP message endpoint at /mcp
func newMainRouter(apiServer http.Handler, mcpClient *mcp.Client) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", apiServer)
	mux.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		defer r.Body.Close()

		message, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}

		data, err := json.Marshal(mcpClient.GetMCPServer().HandleMessage(r.Context(), message))
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})
	return mux
}

// ngrokRequested reports whether the tunnel is enabled by flag or NGROK_ENABLED
func ngrokRequested() bool {
	if *ngrokEnabled {
		return true
	}
	env := os.Getenv("NGROK_ENABLED")
	return env == "true" || env == "1"
}

// runHTTPServer serves the REST API, the hub and /mcp until SIGINT or
// SIGTERM, plus an ngrok tunnel when requested
func runHTTPServer(gameService service.GameService, hub *websocket.Hub, status api.StatusChecker) {
	addr := fmt.Sprintf("%s:%d", *host, *port)
	handler := newMainRouter(
		api.NewServer(gameService, hub, status),
		mcp.NewClient("http://"+addr),
	)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api/session, WebSocket: ws://%s/ws, MCP: http://%s/mcp", addr, addr, addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if ngrokRequested() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, handler)
		}()
	}

	<-ctx.Done()
	log.Printf("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
}

// ngrokAuthToken resolves the auth token from the flag or the environment
// (both naming conventions)
func ngrokAuthToken() string {
	if *ngrokAuth != "" {
		return *ngrokAuth
	}
	if token := os.Getenv("NGROK_AUTHTOKEN"); token != "" {
		return token
	}
	return os.Getenv("NGROK_AUTH_TOKEN")
}

// runNgrokTunnel serves handler through an ngrok endpoint until ctx ends
func runNgrokTunnel(ctx context.Context, handler http.Handler) {
	authToken := ngrokAuthToken()
	if authToken == "" {
		log.Println("Warning: Ngrok enabled but no auth token provided (use -ngrok-auth, NGROK_AUTHTOKEN or NGROK_AUTH_TOKEN)")
		return
	}

	domain := *ngrokDomain
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}
	var opts []ngrokConfig.HTTPEndpointOption
	if domain != "" {
		opts = append(opts, ngrokConfig.WithDomain(domain))
		log.Printf("Using custom ngrok domain: %s", domain)
	}

	tun, err := ngrok.Listen(ctx, ngrokConfig.HTTPEndpoint(opts...), ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}
	defer tun.Close()

	log.Printf("Ngrok tunnel established: %s (API %s/api/session, MCP %s/mcp)", tun.URL(), tun.URL(), tun.URL())
	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// loadProfile resolves the selected profile and applies environment overrides
func loadProfile(manager *config.Manager, name string) (*config.Profile, error) {
	var profile *config.Profile
	if name == "" {
		profile = manager.GetDefault()
	} else {
		loaded, err := manager.LoadProfile(name)
		if err != nil {
			return nil, err
		}
		profile = loaded
	}

	profile.ApplyEnv()
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

// newSessionStore picks a file store when a save directory is configured
func newSessionStore(storage config.Storage) (session.Store, error) {
	if storage.Dir == "" {
		log.Println("Saves kept in memory (no storage dir configured)")
		return session.NewMemoryStore(), nil
	}

	store, err := session.NewFileStore(storage.Dir)
	if err != nil {
		return nil, err
	}
	log.Printf("Saves written to %s", storage.Dir)
	return store, nil
}

// initializeServices wires the profile, map provider, session store and the
// game service. navigator is told when no playable session can be established.
func initializeServices(navigator service.Navigator) (service.GameService, provider.Provider, error) {
	configManager, err := config.NewManager(*configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	profile, err := loadProfile(configManager, *profileName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load profile: %w", err)
	}
	log.Printf("Using profile %q (%s map source)", profile.Name, profile.MapSource.Kind)

	mapProvider, err := provider.FromSource(profile.MapSource)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create map provider: %w", err)
	}

	store, err := newSessionStore(profile.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session store: %w", err)
	}
	persistence := session.NewPersistence(store, profile.Storage.Key)

	gameService := service.NewGameService(mapProvider, persistence, navigator)
	if err := gameService.SetCamera(profile.CameraOrDefault()); err != nil {
		return nil, nil, fmt.Errorf("failed to apply camera: %w", err)
	}

	return gameService, mapProvider, nil
}

// mcpBackend returns the API the stdio tools proxy to. A server already
// running on -port owns its session, so only the internal server started as
// a fallback gets a session of its own.
func mcpBackend(gameService service.GameService, hub *websocket.Hub, status api.StatusChecker) string {
	externalURL := fmt.Sprintf("http://localhost:%d", *port)
	if externalAPIRunning(externalURL) {
		log.Printf("External API server found at %s, using it for MCP", externalURL)
		return externalURL
	}

	startSession(gameService)
	return startInternalAPI(gameService, hub, status)
}

// externalAPIRunning reports whether baseURL answers the health check
func externalAPIRunning(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

// startInternalAPI serves the REST API on a random loopback port
func startInternalAPI(gameService service.GameService, hub *websocket.Hub, status api.StatusChecker) string {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Fatalf("Failed to get available port: %v", err)
	}
	log.Printf("Starting internal HTTP server on %s for MCP stdio", listener.Addr())

	internal := &http.Server{Handler: api.NewServer(gameService, hub, status)}
	go func() {
		if err := internal.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Internal HTTP server error: %v", err)
		}
	}()
	return "http://" + listener.Addr().String()
}

func runStdioMCPWithInternalServer(gameService service.GameService, hub *websocket.Hub, status api.StatusChecker) {
	mcpClient := mcp.NewClient(mcpBackend(gameService, hub, status))
	log.Println("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		log.Fatalf("MCP stdio server error: %v", err)
	}
}
