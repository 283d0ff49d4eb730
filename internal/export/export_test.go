// ABOUTME: Tests for journal-to-HTML export
// ABOUTME: Checks markdown construction and rendered output

package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/daybook/internal/content"
	"github.com/2389/daybook/internal/store"
)

func testJournal() *store.Journal {
	return &store.Journal{
		ID:        "j1",
		Title:     "Day 1",
		UpdatedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

func TestMarkdown(t *testing.T) {
	c := content.Content{
		Bullets: []string{"woke up", "went hiking"},
		Images:  []string{"data:image/png;base64,abc"},
		Videos:  []string{"data:video/mp4;base64,def"},
	}

	got := Markdown(testJournal(), c)

	assert.Contains(t, got, "# Day 1")
	assert.Contains(t, got, "_March 14, 2026_")
	assert.Contains(t, got, "- woke up")
	assert.Contains(t, got, "- went hiking")
	assert.Contains(t, got, "![image 1](data:image/png;base64,abc)")
	assert.Contains(t, got, "[video 1](data:video/mp4;base64,def)")
}

func TestHTML(t *testing.T) {
	c := content.Content{Bullets: []string{"woke up"}}

	html, err := HTML(testJournal(), c)
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>Day 1</h1>")
	assert.Contains(t, html, "<li>woke up</li>")
}

func TestHTML_EmptyContent(t *testing.T) {
	html, err := HTML(testJournal(), content.Empty())
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Day 1</h1>")
	assert.NotContains(t, html, "<li>")
}
