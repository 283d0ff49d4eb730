// ABOUTME: Tests for media import and data URL encoding
// ABOUTME: Uses a stub picker; no native file chooser involved

package media

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestEncode_Image(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	path := writeTempFile(t, "photo.png", payload)

	sel, err := Encode(path, KindImage)
	require.NoError(t, err)

	assert.Equal(t, path, sel.Path)
	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)
	assert.Equal(t, want, sel.Base64)
}

func TestEncode_VideoMIMEs(t *testing.T) {
	cases := map[string]string{
		"clip.mp4":  "data:video/mp4;base64,",
		"clip.webm": "data:video/webm;base64,",
		"clip.mov":  "data:video/quicktime;base64,",
		"clip.avi":  "data:video/x-msvideo;base64,",
		"clip.mkv":  "data:video/x-matroska;base64,",
	}

	for name, prefix := range cases {
		path := writeTempFile(t, name, []byte("frames"))
		sel, err := Encode(path, KindVideo)
		require.NoError(t, err, name)
		assert.True(t, strings.HasPrefix(sel.Base64, prefix), "%s: got %s", name, sel.Base64)
	}
}

func TestEncode_UppercaseExtension(t *testing.T) {
	path := writeTempFile(t, "PHOTO.JPG", []byte("jpeg"))

	sel, err := Encode(path, KindImage)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sel.Base64, "data:image/jpeg;base64,"))
}

func TestEncode_DisallowedExtension(t *testing.T) {
	path := writeTempFile(t, "notes.txt", []byte("hi"))

	_, err := Encode(path, KindImage)
	assert.ErrorIs(t, err, ErrUnsupportedExtension)

	// Video extensions are not valid for image picks and vice versa
	mp4 := writeTempFile(t, "clip.mp4", []byte("frames"))
	_, err = Encode(mp4, KindImage)
	assert.ErrorIs(t, err, ErrUnsupportedExtension)
}

func TestImporter_Select(t *testing.T) {
	path := writeTempFile(t, "pic.gif", []byte("gif-bytes"))
	imp := NewImporter(PickerFunc(func(ctx context.Context, kind Kind) (string, error) {
		assert.Equal(t, KindImage, kind)
		return path, nil
	}))

	sel, err := imp.Select(context.Background(), KindImage)
	require.NoError(t, err)
	require.NotNil(t, sel)
	assert.Equal(t, path, sel.Path)
	assert.True(t, strings.HasPrefix(sel.Base64, "data:image/gif;base64,"))
}

func TestImporter_Cancel(t *testing.T) {
	imp := NewImporter(PickerFunc(func(ctx context.Context, kind Kind) (string, error) {
		return "", nil
	}))

	sel, err := imp.Select(context.Background(), KindVideo)
	require.NoError(t, err)
	assert.Nil(t, sel, "cancel is an empty result, not an error")
}

func TestImporter_PickerError(t *testing.T) {
	boom := errors.New("no display")
	imp := NewImporter(PickerFunc(func(ctx context.Context, kind Kind) (string, error) {
		return "", boom
	}))

	_, err := imp.Select(context.Background(), KindImage)
	assert.ErrorIs(t, err, boom)
}

func TestExtensions(t *testing.T) {
	assert.ElementsMatch(t, []string{"jpg", "jpeg", "png", "gif", "webp"}, Extensions(KindImage))
	assert.ElementsMatch(t, []string{"mp4", "webm", "mov", "avi", "mkv"}, Extensions(KindVideo))
}
