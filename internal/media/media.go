// ABOUTME: Media import for journal entries via a native file picker
// ABOUTME: Encodes picked files as data URLs for inline embedding

package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Kind selects which extension allowlist a pick is restricted to.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// ErrUnsupportedExtension is returned when a picked file's extension
// is outside the allowlist for its kind.
var ErrUnsupportedExtension = errors.New("unsupported file extension")

// imageMIMEs and videoMIMEs are the fixed allowlists; extension maps
// directly to the data URL's MIME type.
var imageMIMEs = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var videoMIMEs = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
}

// Extensions returns the allowed extensions (without dot) for a kind,
// suitable for building a file-chooser filter.
func Extensions(kind Kind) []string {
	table := imageMIMEs
	if kind == KindVideo {
		table = videoMIMEs
	}
	exts := make([]string, 0, len(table))
	for ext := range table {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	return exts
}

// Picker is the native file-chooser collaborator. Pick returns the
// chosen path, or an empty string when the user cancels.
type Picker interface {
	Pick(ctx context.Context, kind Kind) (string, error)
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func(ctx context.Context, kind Kind) (string, error)

func (f PickerFunc) Pick(ctx context.Context, kind Kind) (string, error) {
	return f(ctx, kind)
}

// Selection is the result of a completed pick: the original path plus
// the file content as a self-describing data URL.
type Selection struct {
	Path   string `json:"path"`
	Base64 string `json:"base64"`
}

// Importer pairs a Picker with the encoding step.
type Importer struct {
	picker Picker
	logger *slog.Logger
}

// NewImporter creates an Importer backed by the given picker.
func NewImporter(picker Picker) *Importer {
	return &Importer{
		picker: picker,
		logger: slog.Default().With("component", "media"),
	}
}

// Select opens the picker for the given kind and encodes the chosen
// file. Returns (nil, nil) when the user cancels. The whole file is
// read into memory and encoded in one step; there is no size limit.
func (i *Importer) Select(ctx context.Context, kind Kind) (*Selection, error) {
	path, err := i.picker.Pick(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("opening file picker: %w", err)
	}
	if path == "" {
		i.logger.Debug("file pick cancelled", "kind", kind)
		return nil, nil
	}

	sel, err := Encode(path, kind)
	if err != nil {
		return nil, err
	}

	i.logger.Debug("imported media file", "kind", kind, "path", path)
	return sel, nil
}

// Encode reads the file at path and returns it as a data URL
// selection. The MIME type is resolved from the extension allowlist
// for the given kind.
func Encode(path string, kind Kind) (*Selection, error) {
	table := imageMIMEs
	if kind == KindVideo {
		table = videoMIMEs
	}

	ext := strings.ToLower(filepath.Ext(path))
	mime, ok := table[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedExtension, ext, kind)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading media file: %w", err)
	}

	return &Selection{
		Path:   path,
		Base64: fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)),
	}, nil
}
