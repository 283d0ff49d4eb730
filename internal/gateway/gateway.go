// ABOUTME: Request gateway mediating between the presentation layer and the journal store
// ABOUTME: Dispatches named JSON requests, validates input, and applies the content transform

package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/2389/daybook/internal/content"
	"github.com/2389/daybook/internal/export"
	"github.com/2389/daybook/internal/media"
	"github.com/2389/daybook/internal/store"
)

// Request names accepted by Handle. These are the wire names used by
// the presentation layer.
const (
	ReqGetJournal     = "get-journal"
	ReqGetAllJournals = "get-all-journals"
	ReqCreateJournal  = "create-journal"
	ReqUpdateJournal  = "update-journal"
	ReqDeleteJournal  = "delete-journal"
	ReqAutoSave       = "auto-save-journal"
	ReqSelectImage    = "select-image"
	ReqSelectVideo    = "select-video"
	ReqExportJournal  = "export-journal"
)

// ErrUnknownRequest is returned for request names outside the table.
var ErrUnknownRequest = errors.New("unknown request")

// ErrJournalNotFound is returned by export-journal when the id does
// not exist. Plain reads never fail on not-found; exporting a missing
// entry has no meaningful empty result.
var ErrJournalNotFound = errors.New("journal not found")

// ValidationError reports a missing required input field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Handler processes one decoded request payload.
type Handler func(ctx context.Context, payload json.RawMessage) (json.RawMessage, error)

// Gateway routes named requests from the presentation boundary to the
// store, minting ids on create and translating content between its
// structured and serialized forms.
type Gateway struct {
	store    store.JournalStore
	importer *media.Importer
	logger   *slog.Logger
	handlers map[string]Handler

	// newID mints journal ids; overridable in tests.
	newID func() string
}

// New creates a Gateway over the given store and file picker.
func New(s store.JournalStore, picker media.Picker) *Gateway {
	g := &Gateway{
		store:    s,
		importer: media.NewImporter(picker),
		logger:   slog.Default().With("component", "gateway"),
		newID:    uuid.NewString,
	}
	g.handlers = map[string]Handler{
		ReqGetJournal:     g.getJournal,
		ReqGetAllJournals: g.getAllJournals,
		ReqCreateJournal:  g.createJournal,
		ReqUpdateJournal:  g.updateJournal,
		ReqDeleteJournal:  g.deleteJournal,
		ReqAutoSave:       g.autoSaveJournal,
		ReqSelectImage:    g.selectImage,
		ReqSelectVideo:    g.selectVideo,
		ReqExportJournal:  g.exportJournal,
	}
	return g
}

// Handle dispatches a named request. The payload may be nil for
// requests that take no input.
func (g *Gateway) Handle(ctx context.Context, request string, payload json.RawMessage) (json.RawMessage, error) {
	handler, ok := g.handlers[request]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRequest, request)
	}

	result, err := handler(ctx, payload)
	if err != nil {
		g.logger.Warn("request failed", "request", request, "error", err)
		return nil, err
	}

	g.logger.Debug("request handled", "request", request)
	return result, nil
}

// journalView is the boundary shape of a journal: content expanded
// back to its structure.
type journalView struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Content     content.Content `json:"content"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
	IsPublished bool            `json:"isPublished"`
}

func (g *Gateway) viewOf(j *store.Journal) journalView {
	c, err := content.Decode(j.Content)
	if err != nil {
		// Recovered locally: the read proceeds with the empty structure.
		g.logger.Warn("malformed journal content, substituting empty structure", "id", j.ID, "error", err)
	}
	return journalView{
		ID:          j.ID,
		Title:       j.Title,
		Content:     c,
		CreatedAt:   j.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   j.UpdatedAt.Format(time.RFC3339),
		IsPublished: j.IsPublished,
	}
}

// journalInput is the boundary shape of an incoming record. Content
// may be a structured object or an already-serialized JSON string.
type journalInput struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
}

// serializeContent accepts either form of incoming content and
// returns the text blob the store persists.
func serializeContent(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	// Already-serialized text arrives as a JSON string.
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}

	var c content.Content
	if err := json.Unmarshal(raw, &c); err != nil {
		return "", fmt.Errorf("invalid content: %w", err)
	}
	return content.Encode(c)
}

type idPayload struct {
	ID string `json:"id"`
}

func decodeID(payload json.RawMessage) (string, error) {
	var in idPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &in); err != nil {
			return "", fmt.Errorf("invalid input: %w", err)
		}
	}
	if in.ID == "" {
		return "", &ValidationError{Field: "id"}
	}
	return in.ID, nil
}

func (g *Gateway) getJournal(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	id, err := decodeID(payload)
	if err != nil {
		return nil, err
	}

	j, err := g.store.GetJournal(ctx, id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		// Not-found is a normal outcome on the read path.
		return json.Marshal(struct{}{})
	}
	return json.Marshal(g.viewOf(j))
}

func (g *Gateway) getAllJournals(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	journals, err := g.store.ListJournals(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]journalView, len(journals))
	for i, j := range journals {
		views[i] = g.viewOf(j)
	}
	return json.Marshal(views)
}

func (g *Gateway) createJournal(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	var in journalInput
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &in); err != nil {
			return nil, fmt.Errorf("invalid input: %w", err)
		}
	}
	if in.Title == "" {
		return nil, &ValidationError{Field: "title"}
	}

	text, err := serializeContent(in.Content)
	if err != nil {
		return nil, err
	}

	j := &store.Journal{
		ID:      g.newID(),
		Title:   in.Title,
		Content: text,
	}
	if err := g.store.CreateJournal(ctx, j); err != nil {
		return nil, err
	}

	return json.Marshal(g.viewOf(j))
}

// mutationResult describes a write that addresses an existing row.
type mutationResult struct {
	ID           string `json:"id"`
	RowsAffected int64  `json:"rowsAffected"`
}

func (g *Gateway) updateJournal(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	var in journalInput
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &in); err != nil {
			return nil, fmt.Errorf("invalid input: %w", err)
		}
	}
	if in.ID == "" {
		return nil, &ValidationError{Field: "id"}
	}

	text, err := serializeContent(in.Content)
	if err != nil {
		return nil, err
	}

	affected, err := g.store.UpdateJournal(ctx, &store.Journal{
		ID:      in.ID,
		Title:   in.Title,
		Content: text,
	})
	if err != nil {
		return nil, err
	}

	return json.Marshal(mutationResult{ID: in.ID, RowsAffected: affected})
}

func (g *Gateway) deleteJournal(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	id, err := decodeID(payload)
	if err != nil {
		return nil, err
	}

	affected, err := g.store.DeleteJournal(ctx, id)
	if err != nil {
		return nil, err
	}

	return json.Marshal(mutationResult{ID: id, RowsAffected: affected})
}

func (g *Gateway) autoSaveJournal(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	var in journalInput
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &in); err != nil {
			return nil, fmt.Errorf("invalid input: %w", err)
		}
	}
	if in.ID == "" {
		return nil, &ValidationError{Field: "id"}
	}

	text, err := serializeContent(in.Content)
	if err != nil {
		return nil, err
	}

	if err := g.store.AutoSaveJournal(ctx, &store.Journal{
		ID:      in.ID,
		Title:   in.Title,
		Content: text,
	}); err != nil {
		return nil, err
	}

	return json.Marshal(mutationResult{ID: in.ID, RowsAffected: 1})
}

func (g *Gateway) selectImage(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	return g.selectMedia(ctx, media.KindImage)
}

func (g *Gateway) selectVideo(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	return g.selectMedia(ctx, media.KindVideo)
}

func (g *Gateway) selectMedia(ctx context.Context, kind media.Kind) (json.RawMessage, error) {
	sel, err := g.importer.Select(ctx, kind)
	if err != nil {
		return nil, err
	}
	if sel == nil {
		// User cancelled the picker.
		return json.Marshal(struct{}{})
	}
	return json.Marshal(sel)
}

func (g *Gateway) exportJournal(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	id, err := decodeID(payload)
	if err != nil {
		return nil, err
	}

	j, err := g.store.GetJournal(ctx, id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, fmt.Errorf("%w: %s", ErrJournalNotFound, id)
	}

	c, decErr := content.Decode(j.Content)
	if decErr != nil {
		g.logger.Warn("malformed journal content, exporting empty structure", "id", j.ID, "error", decErr)
	}

	html, err := export.HTML(j, c)
	if err != nil {
		return nil, err
	}

	return json.Marshal(map[string]string{"id": id, "html": html})
}
