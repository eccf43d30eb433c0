// Package jsonrpc adapts the relay to the launcher wire protocol: a
// JSON request naming a method and its parameters comes in on stdin,
// one JSON response with renderable rows goes out on stdout. Matches
// the Flow Launcher plugin convention.
package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shamanicarts/ortr/internal/models"
)

// QueryHandler is the relay seam, kept narrow so tests can stub it
type QueryHandler interface {
	HandleQuery(ctx context.Context, raw string) []models.ResultItem
}

type request struct {
	Method     string   `json:"method"`
	Parameters []string `json:"parameters"`
}

type response struct {
	Result []row `json:"result"`
}

type row struct {
	Title    string  `json:"Title"`
	Subtitle string  `json:"SubTitle"`
	Action   *action `json:"JsonRPCAction,omitempty"`
}

type action struct {
	Method     string   `json:"method"`
	Parameters []string `json:"parameters"`
}

// Serve reads a single request from r, dispatches it and writes the
// response to w. The launcher invokes the plugin once per query, so
// one request per process is the whole protocol.
func Serve(ctx context.Context, handler QueryHandler, r io.Reader, w io.Writer) error {
	var req request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return fmt.Errorf("failed to decode request: %w", err)
	}
	if req.Method != "query" {
		return fmt.Errorf("unsupported method: '%v'", req.Method)
	}
	raw := ""
	if len(req.Parameters) > 0 {
		raw = req.Parameters[0]
	}

	items := handler.HandleQuery(ctx, raw)
	res := response{Result: make([]row, 0, len(items))}
	for _, item := range items {
		res.Result = append(res.Result, toRow(item))
	}
	if err := json.NewEncoder(w).Encode(res); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	return nil
}

func toRow(item models.ResultItem) row {
	out := row{
		Title:    item.Title,
		Subtitle: item.Subtitle,
	}
	switch item.Action.Kind {
	case models.ActionCopyToClipboard:
		out.Action = &action{Method: "copy_to_clipboard", Parameters: []string{item.Action.Text}}
	case models.ActionOpenInEditor:
		out.Action = &action{Method: "open_in_editor", Parameters: []string{item.Action.Text}}
	}
	return out
}
