package events

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry of an event description's table of contents.
type Heading struct {
	Depth int    `json:"depth"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

var markdown = goldmark.New()

// Headings lists the markdown headings of src in document order. Only plain
// text children count towards a heading's text; headings without any are
// skipped.
func Headings(src string) []Heading {
	source := []byte(src)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var (
		out     []Heading
		slugger Slugger
	)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var b strings.Builder
		for c := h.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				b.Write(t.Segment.Value(source))
			}
		}
		if b.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		out = append(out, Heading{
			Depth: h.Level,
			Text:  b.String(),
			ID:    slugger.Slug(b.String()),
		})
		return ast.WalkSkipChildren, nil
	})
	return out
}
