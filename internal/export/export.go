// ABOUTME: Renders a journal entry to standalone HTML for sharing
// ABOUTME: Builds markdown from the structured content, rendered via goldmark

package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/2389/daybook/internal/content"
	"github.com/2389/daybook/internal/store"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Markdown builds a markdown document from a journal and its decoded
// content: title as heading, bullets as a list, media as embeds.
func Markdown(j *store.Journal, c content.Content) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", j.Title)
	fmt.Fprintf(&b, "_%s_\n\n", j.UpdatedAt.Format("January 2, 2006"))

	for _, bullet := range c.Bullets {
		fmt.Fprintf(&b, "- %s\n", bullet)
	}
	if len(c.Bullets) > 0 {
		b.WriteString("\n")
	}

	for i, img := range c.Images {
		fmt.Fprintf(&b, "![image %d](%s)\n", i+1, img)
	}
	for i, vid := range c.Videos {
		fmt.Fprintf(&b, "[video %d](%s)\n", i+1, vid)
	}

	return b.String()
}

// HTML renders a journal to an HTML fragment.
func HTML(j *store.Journal, c content.Content) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(j, c)), &buf); err != nil {
		return "", fmt.Errorf("rendering journal %s: %w", j.ID, err)
	}
	return buf.String(), nil
}
