// ABOUTME: Serialization boundary for structured journal content
// ABOUTME: Pure encode/decode between Content and the stored text blob

package content

import (
	"encoding/json"
)

// Content is the structured form of a journal body: ordered bullet
// texts plus ordered image and video references.
type Content struct {
	Bullets []string `json:"bullets"`
	Images  []string `json:"images"`
	Videos  []string `json:"videos"`
}

// Empty returns a Content with all three lists present but empty.
// This is the recovery value substituted when stored text cannot be
// decoded.
func Empty() Content {
	return Content{
		Bullets: []string{},
		Images:  []string{},
		Videos:  []string{},
	}
}

// Encode serializes a Content to the text form stored in the database.
func Encode(c Content) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Decode parses stored text back into a Content. Malformed text is
// recovered locally: the empty structure is returned along with the
// parse error so callers can log it, but reads never fail on it.
func Decode(text string) (Content, error) {
	if text == "" {
		return Empty(), nil
	}

	var c Content
	if err := json.Unmarshal([]byte(text), &c); err != nil {
		return Empty(), err
	}

	// Normalize absent lists so round-trips always produce all three.
	if c.Bullets == nil {
		c.Bullets = []string{}
	}
	if c.Images == nil {
		c.Images = []string{}
	}
	if c.Videos == nil {
		c.Videos = []string{}
	}
	return c, nil
}
