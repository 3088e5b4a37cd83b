package model

import (
	"bytes"
	"encoding/json"
)

// Slide is one unit of generated content.
type Slide struct {
	Title   string       `json:"title"`
	Content SlideContent `json:"content"`
}

// ContentKind discriminates the two shapes the generator produces for a
// slide body.
type ContentKind int

const (
	// ContentPlain is a bare string body.
	ContentPlain ContentKind = iota
	// ContentStructured is an object body with a description and an
	// optional bullet list.
	ContentStructured
)

// SlideContent is the tagged variant for a slide body. The generator is
// only loosely constrained, so the wire shape is either a plain string or
// an object carrying a description/text field plus optional bullet points.
// The zero value is an empty plain body, which renders as nothing.
type SlideContent struct {
	Kind         ContentKind
	Text         string
	BulletPoints []string
}

// structuredContent mirrors the object form on the wire. Some model outputs
// use "description", others "text"; both are accepted.
type structuredContent struct {
	Description  string   `json:"description,omitempty"`
	Text         string   `json:"text,omitempty"`
	BulletPoints []string `json:"bulletPoints,omitempty"`
}

func (c *SlideContent) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*c = SlideContent{}
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*c = SlideContent{Kind: ContentPlain, Text: s}
		return nil
	}

	var obj structuredContent
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return err
	}
	text := obj.Description
	if text == "" {
		text = obj.Text
	}
	*c = SlideContent{
		Kind:         ContentStructured,
		Text:         text,
		BulletPoints: obj.BulletPoints,
	}
	return nil
}

func (c SlideContent) MarshalJSON() ([]byte, error) {
	if c.Kind == ContentPlain {
		return json.Marshal(c.Text)
	}
	return json.Marshal(structuredContent{
		Description:  c.Text,
		BulletPoints: c.BulletPoints,
	})
}

// IsEmpty reports whether there is nothing to render for this body.
func (c SlideContent) IsEmpty() bool {
	return c.Text == "" && len(c.BulletPoints) == 0
}
