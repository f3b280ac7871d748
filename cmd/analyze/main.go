// Command analyze inspects Island Hunt data offline: map payloads saved from
// the generator, saved sessions, and the profiles in a config directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/island-hunt/game/config"
	"github.com/wricardo/island-hunt/game/engine"
	"github.com/wricardo/island-hunt/game/session"
)

var errInvalidFiles = errors.New("some files have errors")

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp builds the command tree
func newApp() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Inspect Island Hunt map payloads, saves and profiles",
		Commands: []*cli.Command{
			{
				Name:      "stats",
				Usage:     "Summarize the islands of a map payload",
				ArgsUsage: "<payload.json>",
				Action:    runStats,
			},
			{
				Name:      "validate",
				Usage:     "Validate map payload files or every *.json in a directory",
				ArgsUsage: "<payload.json|dir>...",
				Action:    runValidate,
			},
			{
				Name:      "bearing",
				Usage:     "Print the compass hint each wrong island would give",
				ArgsUsage: "<payload.json> [label]",
				Action:    runBearing,
			},
			{
				Name:      "decode-save",
				Usage:     "Decode a saved session document",
				ArgsUsage: "<save.json>",
				Action:    runDecodeSave,
			},
			{
				Name:  "profiles",
				Usage: "List the profiles in a config directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config-dir",
						Value: "configs",
						Usage: "Directory containing profiles",
					},
				},
				Action: runProfiles,
			},
		},
	}
}

func output(cmd *cli.Command) io.Writer {
	return cmd.Root().Writer
}

func requireArg(cmd *cli.Command, name string) (string, error) {
	arg := cmd.Args().First()
	if arg == "" {
		return "", fmt.Errorf("%s: missing %s argument", cmd.Name, name)
	}
	return arg, nil
}

func runStats(ctx context.Context, cmd *cli.Command) error {
	path, err := requireArg(cmd, "payload")
	if err != nil {
		return err
	}
	payload, err := loadPayload(path)
	if err != nil {
		return err
	}

	w := output(cmd)
	stats := analyzePayload(payload)
	total := stats.Rows * stats.Cols

	fmt.Fprintf(w, "Grid: %d x %d (%d cells)\n", stats.Rows, stats.Cols, total)
	fmt.Fprintf(w, "Water: %d cells (%.1f%%)\n", stats.WaterCells, 100*float64(stats.WaterCells)/float64(total))
	fmt.Fprintf(w, "Islands: %d\n", len(stats.Islands))
	fmt.Fprintf(w, "Target: island %d\n\n", stats.Target)

	fmt.Fprintf(w, "%-6s %6s %10s %10s %8s  %s\n", "label", "cells", "avg", "mean", "peak", "center")
	for _, island := range stats.Islands {
		avg := "-"
		if island.HasSuppliedAvg {
			avg = fmt.Sprintf("%.2f", island.SuppliedAvg)
		}
		center := "-"
		if island.HasCenter {
			center = fmt.Sprintf("(%.2f, %.2f)", island.Center.X, island.Center.Y)
		}
		marker := ""
		if island.Label == stats.Target {
			marker = "  ★ target"
		}
		fmt.Fprintf(w, "%-6d %6d %10s %10.2f %8.1f  %s%s\n",
			island.Label, island.Cells, avg, island.ComputedAvg, island.Peak, center, marker)
	}
	return nil
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("validate: missing payload argument")
	}

	var files []string
	for _, arg := range cmd.Args().Slice() {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			matches, err := filepath.Glob(filepath.Join(arg, "*.json"))
			if err != nil {
				return fmt.Errorf("error finding payload files: %w", err)
			}
			files = append(files, matches...)
			continue
		}
		files = append(files, arg)
	}

	w := output(cmd)
	allValid := true
	for _, file := range files {
		result := validatePayloadFile(file)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Errors {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Fprintln(w, "  ❌ "+err)
				}
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if !allValid {
		fmt.Fprintln(w, "❌ Some payloads have errors")
		return errInvalidFiles
	}
	fmt.Fprintln(w, "✅ All payloads are valid!")
	return nil
}

func runBearing(ctx context.Context, cmd *cli.Command) error {
	path, err := requireArg(cmd, "payload")
	if err != nil {
		return err
	}
	payload, err := loadPayload(path)
	if err != nil {
		return err
	}

	labels := engine.IslandLabels(payload)
	if arg := cmd.Args().Get(1); arg != "" {
		label, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("bearing: label must be an integer, got %q", arg)
		}
		labels = []int{label}
	}

	target, ok := payload.IslandCenterPoints[payload.Target()]
	if !ok {
		return fmt.Errorf("bearing: target island %d has no center point", payload.Target())
	}

	w := output(cmd)
	for _, label := range labels {
		if label == payload.Target() {
			continue
		}
		from, ok := payload.IslandCenterPoints[label]
		if !ok {
			fmt.Fprintf(w, "island %d: no center point\n", label)
			continue
		}
		fmt.Fprintf(w, "island %d: %.1f°\n", label, engine.BearingDegrees(from, target))
	}
	return nil
}

func runDecodeSave(ctx context.Context, cmd *cli.Command) error {
	path, err := requireArg(cmd, "save")
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	state, err := session.Decode(string(data))
	if err != nil {
		return err
	}

	w := output(cmd)
	fmt.Fprintf(w, "Map: %d x %d, %d islands, target %d\n",
		state.Map.Rows(), state.Map.Cols(), len(engine.IslandLabels(state.Map)), state.Map.Target())
	fmt.Fprintf(w, "Lives: %d/%d\n", state.LivesRemaining, engine.MaxLives)
	fmt.Fprintf(w, "Wrong picks: %v\n", state.Picks)
	if state.HasBearing {
		fmt.Fprintf(w, "Bearing: %.1f°\n", state.Bearing)
	}
	fmt.Fprintf(w, "Outcome: %s\n", state.Outcome)
	return nil
}

func runProfiles(ctx context.Context, cmd *cli.Command) error {
	manager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return err
	}

	infos, err := manager.ListProfiles()
	if err != nil {
		return err
	}

	w := output(cmd)
	for _, info := range infos {
		fmt.Fprintf(w, "%-12s %-6s %s: %s\n", info.ProfileID, info.Source, info.Name, info.Description)
	}
	fmt.Fprintf(w, "default: %s\n", manager.GetDefault().Name)
	return nil
}
