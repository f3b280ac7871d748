package hud

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// ErrNoSession is returned when the server has no playable map and asks the
// client to go back to the landing page
var ErrNoSession = errors.New("no playable session")

// Client talks to the Island Hunt server
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) call(method, path string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error    string `json:"error"`
			Redirect string `json:"redirect"`
		}
		json.Unmarshal(data, &apiErr)
		if apiErr.Redirect != "" {
			return fmt.Errorf("%w: %s", ErrNoSession, apiErr.Error)
		}
		return fmt.Errorf("%s %s: %s (body: %s)", method, path, resp.Status, string(data))
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to parse %s response: %v (body: %s)", path, err, string(data))
		}
	}
	return nil
}

// Session returns the current session, starting one when the server has none
func (c *Client) Session() (*SessionView, error) {
	var view SessionView
	err := c.call(http.MethodGet, "/api/session", nil, &view)
	if errors.Is(err, ErrNoSession) {
		err = c.call(http.MethodPost, "/api/session", nil, &view)
	}
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) Board() (*BoardView, error) {
	var board BoardView
	if err := c.call(http.MethodGet, "/api/session/board", nil, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// Pick sends a board pick and returns the updated session
func (c *Client) Pick(row, col int) (*SessionView, string, error) {
	var resp struct {
		Session *SessionView `json:"session"`
		Message string       `json:"message"`
	}
	body := map[string]int{"row": row, "col": col}
	if err := c.call(http.MethodPost, "/api/session/pick", body, &resp); err != nil {
		return nil, "", err
	}
	return resp.Session, resp.Message, nil
}

func (c *Client) Restart() (*SessionView, error) {
	var resp struct {
		Session *SessionView `json:"session"`
	}
	if err := c.call(http.MethodPost, "/api/session/restart", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Session, nil
}

// WebSocketURL derives the hub address from the base URL
func (c *Client) WebSocketURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	return u.String(), nil
}

// Subscribe connects to the hub and delivers every message on the returned
// channel until the connection drops, then closes it
func (c *Client) Subscribe() (<-chan Message, error) {
	wsURL, err := c.WebSocketURL()
	if err != nil {
		return nil, err
	}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return nil, err
	}

	out := make(chan Message, 16)
	go func() {
		defer close(out)
		defer conn.Close()
		for {
			var msg Message
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			out <- msg
		}
	}()
	return out, nil
}
