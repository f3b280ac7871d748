package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/island-hunt/game/engine"
	"github.com/wricardo/island-hunt/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Island Hunt",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Island Hunt - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Find the island with the highest average elevation. You have 3 lives; every
other island costs one the first time you pick it.

AVAILABLE TOOLS:
- game_state: Get the current session
- restart: Fetch a new map and start over
- pick: Pick the island under grid cell (row, col)
- pick_3d: Pick by pointer position on the 3D view (normalized device coordinates)
- describe_cell: Inspect a cell (label, elevation) without picking it
- map_status: Check whether the map generator is reachable
- game_instructions: Get the rules and a playing guide`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session lifecycle
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current session: lives, picked islands, compass bearing and outcome",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "restart",
		Description: "Discard the current session and start a new one on a freshly generated map",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleRestart)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "pick",
		Description: "Pick the island under grid cell (row, col). Water and already picked islands cost nothing.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row index, 0-based",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column index, 0-based",
				},
			},
			Required: []string{"row", "col"},
		},
	}, c.handlePick)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "pick_3d",
		Description: "Pick by pointer position on the 3D terrain view, in normalized device coordinates",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"ndc_x": map[string]interface{}{
					"type":        "number",
					"description": "Horizontal position from -1 (left) to 1 (right)",
				},
				"ndc_y": map[string]interface{}{
					"type":        "number",
					"description": "Vertical position from -1 (bottom) to 1 (top)",
				},
			},
			Required: []string{"ndc_x", "ndc_y"},
		},
	}, c.handlePick3D)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get detailed info about a grid cell without picking it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row index, 0-based",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column index, 0-based",
				},
			},
			Required: []string{"row", "col"},
		},
	}, c.handleDescribeCell)

	// Information
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "map_status",
		Description: "Check whether the map generator is reachable",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleMapStatus)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the game rules and a guide to the tools",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			if _, redirect := errResp["redirect"]; redirect {
				return fmt.Errorf("%s (call restart to load a new map)", msg)
			}
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// intArg reads an integer argument; JSON numbers arrive as float64
func intArg(args map[string]interface{}, name string) (int, error) {
	value, ok := args[name].(float64)
	if !ok {
		return 0, fmt.Errorf("%s is required and must be a number", name)
	}
	if value != math.Trunc(value) {
		return 0, fmt.Errorf("%s must be an integer, got %v", name, value)
	}
	return int(value), nil
}

func floatArg(args map[string]interface{}, name string) (float64, error) {
	value, ok := args[name].(float64)
	if !ok {
		return 0, fmt.Errorf("%s is required and must be a number", name)
	}
	return value, nil
}

// Tool handlers

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var view service.SessionView
	if err := c.apiCall(ctx, "GET", "/api/session", nil, &view); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSessionView(&view)), nil
}

func (c *Client) handleRestart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Message string              `json:"message"`
		Session service.SessionView `json:"session"`
	}
	if err := c.apiCall(ctx, "POST", "/api/session/restart", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := response.Message + "\n\n" + formatSessionView(&response.Session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handlePick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	row, err := intArg(args, "row")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	col, err := intArg(args, "col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response service.PickResponse
	body := map[string]int{"row": row, "col": col}
	if err := c.apiCall(ctx, "POST", "/api/session/pick", body, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatPickResponse(&response)), nil
}

func (c *Client) handlePick3D(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	x, err := floatArg(args, "ndc_x")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	y, err := floatArg(args, "ndc_y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response service.Pick3DResponse
	body := map[string]float64{"ndc_x": x, "ndc_y": y}
	if err := c.apiCall(ctx, "POST", "/api/session/pick3d", body, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !response.Hit || response.Result == nil {
		result := fmt.Sprintf("The pointer at (%.3f, %.3f) does not touch the map. Nothing was picked.", x, y)
		if response.Session != nil {
			result += "\n\n" + formatSessionView(response.Session)
		}
		return mcp.NewToolResultText(result), nil
	}
	return mcp.NewToolResultText(formatPickResponse(response.Result)), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	row, err := intArg(args, "row")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	col, err := intArg(args, "col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var info service.CellInfo
	path := fmt.Sprintf("/api/session/cell?row=%d&col=%d", row, col)
	if err := c.apiCall(ctx, "GET", path, nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Cell (%d, %d)\n", info.Row, info.Col))
	if info.Water {
		sb.WriteString("Type: Water (not an island, picking it costs nothing)\n")
	} else {
		sb.WriteString(fmt.Sprintf("Type: Island %d\n", info.Label))
		if info.Picked {
			sb.WriteString("Picked: yes (already ruled out)\n")
		} else {
			sb.WriteString("Picked: no\n")
		}
	}
	sb.WriteString(fmt.Sprintf("Elevation: %.1f\n", info.Elevation))
	sb.WriteString(fmt.Sprintf("Color: %s\n", info.Color))

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleMapStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response map[string]string
	if err := c.apiCall(ctx, "GET", "/api/status", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Map generator: %s", response["status"])), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `ISLAND HUNT - GAME INSTRUCTIONS

` + service.Rules + `

COORDINATES:
- Cells are addressed as (row, col), both 0-based
- Row 0 is the top edge of the map, col 0 the left edge
- The compass bearing is measured clockwise from north: 0 is toward row 0,
  90 is toward higher columns, 180 toward higher rows

STRATEGY TIPS:
1. Call game_state to learn the map size
2. Use describe_cell to sample elevations before committing a pick
3. After a wrong pick, follow the compass from that island toward the tallest one
4. Restart fetches a brand new map; the current session is lost

TOOLS:
- game_state, restart, pick, pick_3d, describe_cell, map_status, game_instructions`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionView(view *service.SessionView) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Map: %d rows x %d cols, %d islands\n", view.Rows, view.Cols, view.IslandCount))
	sb.WriteString(fmt.Sprintf("Lives: %d/%d\n", view.LivesRemaining, view.MaxLives))

	if len(view.Picks) > 0 {
		picks := make([]string, len(view.Picks))
		for i, label := range view.Picks {
			picks[i] = fmt.Sprintf("%d", label)
		}
		sb.WriteString(fmt.Sprintf("Wrong islands: %s\n", strings.Join(picks, ", ")))
	}

	if view.HasBearing {
		sb.WriteString(fmt.Sprintf("Compass: %.1f° (%s)\n", view.Bearing, compassPoint(view.Bearing)))
	}

	sb.WriteString(fmt.Sprintf("Outcome: %s\n", view.Outcome))
	if view.GameOver {
		sb.WriteString(fmt.Sprintf("Stars: %s\n", formatStars(view.Stars)))
	}
	if view.Message != "" {
		sb.WriteString(fmt.Sprintf("\n%s\n", view.Message))
	}

	return sb.String()
}

func formatPickResponse(resp *service.PickResponse) string {
	var sb strings.Builder

	p := resp.Pick
	sb.WriteString(fmt.Sprintf("Pick (%d, %d): %s\n", p.Row, p.Col, p.Kind))
	if p.Kind == engine.PickWrong || p.Kind == engine.PickRepeat || p.Kind == engine.PickTarget {
		sb.WriteString(fmt.Sprintf("Island: %d\n", p.Label))
	}
	if resp.Message != "" {
		sb.WriteString(resp.Message + "\n")
	}

	if resp.Session != nil {
		sb.WriteString("\n")
		sb.WriteString(formatSessionView(resp.Session))
	}
	return sb.String()
}

func formatStars(stars []bool) string {
	var sb strings.Builder
	for _, gold := range stars {
		if gold {
			sb.WriteString("★")
		} else {
			sb.WriteString("☆")
		}
	}
	return sb.String()
}

// compassPoint names the nearest of the eight principal winds
func compassPoint(deg float64) string {
	points := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	idx := int(math.Floor(math.Mod(deg+22.5, 360)/45)) % len(points)
	if idx < 0 {
		idx += len(points)
	}
	return points[idx]
}
