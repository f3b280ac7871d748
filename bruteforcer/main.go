package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// ErrNoSession is returned when the server has no map loaded yet
var ErrNoSession = errors.New("no session")

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

type PickResult struct {
	Kind           string  `json:"kind"`
	Row            int     `json:"row"`
	Col            int     `json:"col"`
	Label          int     `json:"label"`
	LivesRemaining int     `json:"lives_remaining"`
	Outcome        string  `json:"outcome"`
	Bearing        float64 `json:"bearing,omitempty"`
	HasBearing     bool    `json:"has_bearing"`
}

type PickResponse struct {
	Pick    PickResult   `json:"pick"`
	Session *SessionView `json:"session"`
	Message string       `json:"message"`
}

type CellInfo struct {
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	Label     int     `json:"label"`
	Water     bool    `json:"water"`
	Elevation float64 `json:"elevation"`
	Picked    bool    `json:"picked"`
}

type PickRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type RestartResponse struct {
	Message string       `json:"message"`
	Session *SessionView `json:"session"`
}

type apiError struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// do sends a request and decodes a 2xx body into result
func (c *Client) do(method, path string, body interface{}, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		json.Unmarshal(data, &apiErr)
		if resp.StatusCode == http.StatusNotFound && apiErr.Redirect != "" {
			return fmt.Errorf("%w: %s", ErrNoSession, apiErr.Error)
		}
		return fmt.Errorf("%s %s failed: %s - %s", method, path, resp.Status, strings.TrimSpace(string(data)))
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("parse %s response: %w", path, err)
	}
	return nil
}

func (c *Client) GetSession() (*SessionView, error) {
	var view SessionView
	if err := c.do(http.MethodGet, "/api/session", nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) CreateSession() (*SessionView, error) {
	var view SessionView
	if err := c.do(http.MethodPost, "/api/session", nil, &view); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &view, nil
}

func (c *Client) Restart() (*SessionView, error) {
	var resp RestartResponse
	if err := c.do(http.MethodPost, "/api/session/restart", nil, &resp); err != nil {
		return nil, fmt.Errorf("restart: %w", err)
	}
	return resp.Session, nil
}

func (c *Client) Describe(row, col int) (*CellInfo, error) {
	q := url.Values{}
	q.Set("row", fmt.Sprint(row))
	q.Set("col", fmt.Sprint(col))

	var info CellInfo
	if err := c.do(http.MethodGet, "/api/session/cell?"+q.Encode(), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) Pick(row, col int) (*PickResponse, error) {
	var resp PickResponse
	if err := c.do(http.MethodPost, "/api/session/pick", PickRequest{Row: row, Col: col}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// survey describes every stride-th cell of the board into the strategy
func survey(client *Client, strategy *SurveyStrategy, view *SessionView, stride int, delay time.Duration) (int, error) {
	calls := 0
	for _, cell := range SampleCells(view.Rows, view.Cols, stride) {
		info, err := client.Describe(cell.Row, cell.Col)
		if err != nil {
			return calls, err
		}
		strategy.Observe(*info)
		calls++
		if delay > 0 {
			time.Sleep(delay)
		}
	}
	return calls, nil
}

// playMap picks islands until the current map ends and reports whether it was won
func playMap(client *Client, view *SessionView, stride int, verbose bool, delay time.Duration) (bool, error) {
	strategy := NewSurveyStrategy()
	calls, err := survey(client, strategy, view, stride, delay)
	if err != nil {
		return false, fmt.Errorf("survey: %w", err)
	}
	log.Printf("Surveyed %d cells, found %d of %d islands", calls, len(strategy.Islands()), view.IslandCount)
	for _, label := range view.Picks {
		strategy.MarkPicked(label)
	}

	var last *Island
	for !view.GameOver {
		next, ok := strategy.NextPick(last, view.Bearing, view.HasBearing)
		if !ok && stride > 1 {
			log.Printf("No candidates left, surveying every cell")
			stride = 1
			if _, err := survey(client, strategy, view, stride, delay); err != nil {
				return false, fmt.Errorf("survey: %w", err)
			}
			continue
		}
		if !ok {
			return false, fmt.Errorf("no island left to pick with %d lives", view.LivesRemaining)
		}

		resp, err := client.Pick(next.Row, next.Col)
		if err != nil {
			return false, fmt.Errorf("pick: %w", err)
		}
		strategy.MarkPicked(next.Label)
		last = &next
		view = resp.Session

		if verbose {
			log.Printf("Pick (%d,%d) island %d mean %.1f: %s", next.Row, next.Col, next.Label, next.Mean, resp.Message)
		}
		if delay > 0 {
			time.Sleep(delay)
		}
	}

	return view.Outcome == "victory", nil
}

// currentSession loads the server's session, creating or restarting one as needed
func currentSession(client *Client) (*SessionView, error) {
	view, err := client.GetSession()
	if errors.Is(err, ErrNoSession) {
		log.Printf("No map loaded, creating a session...")
		return client.CreateSession()
	}
	if err != nil {
		return nil, err
	}
	if view.GameOver {
		log.Printf("Previous map is over (%s), restarting...", view.Outcome)
		return client.Restart()
	}
	return view, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	maxAttempts := flag.Int("max-attempts", 10, "Maximum maps to play before giving up")
	stride := flag.Int("stride", 1, "Describe every n-th row and column during the survey")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between requests in milliseconds (0 = no delay)")
	flag.Parse()

	if *stride < 1 {
		log.Fatalf("stride must be at least 1, got %d", *stride)
	}
	delay := time.Duration(*delayMs) * time.Millisecond

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	view, err := currentSession(client)
	if err != nil {
		log.Fatalf("Failed to load session: %v", err)
	}

	for attempt := 1; attempt <= *maxAttempts; attempt++ {
		log.Printf("Attempt %d: %dx%d map, %d islands, lives %d/%d",
			attempt, view.Rows, view.Cols, view.IslandCount, view.LivesRemaining, view.MaxLives)

		won, err := playMap(client, view, *stride, *verbose, delay)
		if err != nil {
			log.Fatalf("Attempt %d failed: %v", attempt, err)
		}
		if won {
			log.Printf("🏝️  Victory on attempt %d", attempt)
			os.Exit(0)
		}

		log.Printf("Attempt %d: defeat, loading a new map", attempt)
		view, err = client.Restart()
		if err != nil {
			log.Fatalf("Failed to restart: %v", err)
		}
	}

	log.Printf("Gave up after %d attempts", *maxAttempts)
	os.Exit(1)
}
