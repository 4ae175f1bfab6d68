package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/leelawheel/internal/api/handler"
	"github.com/mcoot/leelawheel/internal/api/response"
)

func newCountdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countdown <first-name> <last-name>",
		Short: "Stream a player's lock countdown",
		Long: `Connect to the player's countdown SSE endpoint and print the remaining
time once a second until the wheel opens again.

Events:
  - tick: player is still locked, remaining time attached
  - open: lock has expired, the stream ends

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return streamCountdown(cmd.Context(), args[0], args[1])
		},
	}
}

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

func streamCountdown(parent context.Context, first, last string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	body, err := client.Stream(ctx, "/api/v1/players/countdown?"+playerQuery(first, last))
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	defer func() { _ = body.Close() }()

	jsonOutput := cfg.Output == OutputJSON
	err = readEvents(body, func(event, data string) bool {
		printEvent(os.Stdout, event, data, jsonOutput)
		return event != handler.EventOpen
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}
	return nil
}

// readEvents parses an SSE stream, calling fn for every named event until
// fn returns false or the stream ends.
func readEvents(r io.Reader, fn func(event, data string) bool) error {
	scanner := bufio.NewScanner(r)
	var currentEvent string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "event: "):
			currentEvent = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		case line == "":
			if currentEvent != "" {
				if !fn(currentEvent, strings.Join(dataLines, "\n")) {
					return nil
				}
			}
			currentEvent = ""
			dataLines = nil
		}
	}
	return scanner.Err()
}

func printEvent(w io.Writer, event, data string, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		jsonData, _ := json.Marshal(SSEEvent{Time: now, Event: event, Data: data})
		fmt.Fprintln(w, string(jsonData))
		return
	}

	switch event {
	case handler.EventTick, handler.EventOpen:
		var l response.Lock
		if err := json.Unmarshal([]byte(data), &l); err == nil {
			fmt.Fprintf(w, "[%s] %s\n", now.Format("15:04:05"), renderLock(l))
			return
		}
	}
	fmt.Fprintf(w, "[%s] %s: %s\n", now.Format("15:04:05"), event, strings.ReplaceAll(data, "\n", " "))
}
