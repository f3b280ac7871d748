package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/wricardo/island-hunt/game/engine"
	"github.com/wricardo/island-hunt/game/provider"
	"github.com/wricardo/island-hunt/game/service"
	"github.com/wricardo/island-hunt/game/terrain"
	"github.com/wricardo/island-hunt/transport/websocket"
)

// HomePath is where clients are sent when no playable session exists
const HomePath = "/"

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 16

// StatusChecker reports whether the map source can be reached
type StatusChecker interface {
	Status(ctx context.Context) provider.ServerStatus
}

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	status  StatusChecker
	router  *mux.Router
}

// NewServer creates a new API server. hub and status may be nil.
func NewServer(gameService service.GameService, hub *websocket.Hub, status StatusChecker) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		status:  status,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Session lifecycle
	api.HandleFunc("/session", s.handleGetSession).Methods("GET")
	api.HandleFunc("/session", s.handleNewSession).Methods("POST")
	api.HandleFunc("/session/restart", s.handleRestart).Methods("POST")

	// Game operations
	api.HandleFunc("/session/pick", s.handlePick).Methods("POST")
	api.HandleFunc("/session/pick3d", s.handlePick3D).Methods("POST")
	api.HandleFunc("/session/cell", s.handleDescribeCell).Methods("GET")

	// Presentation
	api.HandleFunc("/session/board", s.handleBoard).Methods("GET")
	api.HandleFunc("/session/surface", s.handleSurface).Methods("GET")
	api.HandleFunc("/session/camera", s.handleGetCamera).Methods("GET")
	api.HandleFunc("/session/camera", s.handleSetCamera).Methods("PUT")

	// Informational
	api.HandleFunc("/status", s.handleStatus).Methods("GET")
	api.HandleFunc("/rules", s.handleRules).Methods("GET")
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Landing
	s.router.HandleFunc(HomePath, s.handleHome).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondRedirect reports an error that sends the client back to the landing page
func respondRedirect(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error":    message,
		"redirect": HomePath,
	})
}

// respondServiceError maps service errors to HTTP statuses
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoSession):
		respondRedirect(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrFetch):
		respondRedirect(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, service.ErrOutOfBounds), errors.Is(err, terrain.ErrInvalidCamera):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// Session Handlers

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.CurrentSession()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.NewSession(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.Restart(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "New map loaded",
		"session": view,
	})
}

// Game Handlers

func (s *Server) handlePick(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Row *int `json:"row"`
		Col *int `json:"col"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Row == nil || req.Col == nil {
		respondError(w, http.StatusBadRequest, "row and col are required")
		return
	}

	resp, err := s.service.Pick(r.Context(), *req.Row, *req.Col)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	logPick(resp.Pick)
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePick3D(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NDCX *float64 `json:"ndc_x"`
		NDCY *float64 `json:"ndc_y"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.NDCX == nil || req.NDCY == nil {
		respondError(w, http.StatusBadRequest, "ndc_x and ndc_y are required")
		return
	}

	resp, err := s.service.Pick3D(r.Context(), *req.NDCX, *req.NDCY)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if resp.Result != nil {
		logPick(resp.Result.Pick)
	} else {
		log.Printf("[PICK3D] ndc=(%.3f,%.3f) miss", *req.NDCX, *req.NDCY)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDescribeCell(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	row, errRow := strconv.Atoi(query.Get("row"))
	col, errCol := strconv.Atoi(query.Get("col"))
	if errRow != nil || errCol != nil {
		respondError(w, http.StatusBadRequest, "row and col query parameters must be integers")
		return
	}

	info, err := s.service.DescribeCell(row, col)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// Presentation Handlers

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	board, err := s.service.Board()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, board)
}

func (s *Server) handleSurface(w http.ResponseWriter, r *http.Request) {
	surface, err := s.service.Surface()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"surface": surface,
		"camera":  s.service.Camera(),
	})
}

func (s *Server) handleGetCamera(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.service.Camera())
}

func (s *Server) handleSetCamera(w http.ResponseWriter, r *http.Request) {
	camera := s.service.Camera()
	if !decodeBody(w, r, &camera) {
		return
	}

	if err := s.service.SetCamera(camera); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.service.Camera())
}

// Informational Handlers

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if s.status == nil {
		respondError(w, http.StatusServiceUnavailable, "no map source configured")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status": string(s.status.Status(r.Context())),
	})
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"rules":     service.Rules,
		"max_lives": engine.MaxLives,
	})
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// handleHome is the landing page clients return to when a session cannot be played
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	_, err := s.service.CurrentSession()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"name":        "Island Hunt",
		"has_session": err == nil,
		"start":       "POST /api/session",
		"rules":       "GET /api/rules",
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "websocket updates are disabled", http.StatusNotFound)
		return
	}
	s.hub.ServeWS(w, r)
}

// logPick logs a compact line per resolved pick. It goes to the log (stderr)
// because stdout carries the MCP stream in stdio mode.
func logPick(p engine.PickResult) {
	log.Printf("[PICK] (%d,%d) kind=%s label=%d lives=%d outcome=%s",
		p.Row, p.Col, p.Kind, p.Label, p.LivesRemaining, p.Outcome)
}
