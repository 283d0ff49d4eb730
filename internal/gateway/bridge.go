// ABOUTME: Line-delimited JSON bridge exposing the gateway over stdio
// ABOUTME: One request object per line in, one response object per line out

package gateway

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
)

// request is one inbound frame from the presentation layer.
type request struct {
	Request string          `json:"request"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// response is one outbound frame. Exactly one of Result or Error is
// set, discriminated by OK.
type response struct {
	OK     bool            `json:"ok"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Bridge reads newline-delimited JSON requests and writes one
// response line per request. Requests are handled serially in arrival
// order; a handler failure produces an error frame, never a dropped
// connection.
type Bridge struct {
	gateway *Gateway
	logger  *slog.Logger
}

// NewBridge creates a Bridge over the given gateway.
func NewBridge(g *Gateway) *Bridge {
	return &Bridge{
		gateway: g,
		logger:  slog.Default().With("component", "bridge"),
	}
}

// Serve processes requests from r until EOF or context cancellation.
// Malformed lines produce an error frame and processing continues.
func (b *Bridge) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Inline media payloads can be large; raise the line limit well
	// past bufio's default.
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	enc := json.NewEncoder(w)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			if encErr := enc.Encode(response{OK: false, Error: fmt.Sprintf("malformed request: %v", err)}); encErr != nil {
				return fmt.Errorf("writing response: %w", encErr)
			}
			continue
		}

		result, err := b.gateway.Handle(ctx, req.Request, req.Payload)

		var resp response
		if err != nil {
			resp = response{OK: false, Error: err.Error()}
		} else {
			resp = response{OK: true, Result: result}
		}
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading requests: %w", err)
	}

	b.logger.Info("bridge input closed")
	return nil
}
