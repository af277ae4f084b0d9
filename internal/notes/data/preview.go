package data

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// PreviewLimit is how much content a card shows.
const PreviewLimit = 400

// DisplayTitle returns the title to show for n.
func DisplayTitle(n Note) string {
	if strings.TrimSpace(n.Title) == "" {
		return "Untitled"
	}
	return n.Title
}

// Preview flattens markdown content to one line per block (headings,
// paragraphs, list items, code), cut to max runes.
func Preview(content string, max int) string {
	source := []byte(content)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var lines []string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindParagraph, ast.KindHeading, ast.KindTextBlock:
			if t := blockText(n, source); t != "" {
				lines = append(lines, t)
			}
			return ast.WalkSkipChildren, nil
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			if t := strings.TrimRight(string(n.Lines().Value(source)), "\n"); t != "" {
				lines = append(lines, t)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	preview := strings.Join(lines, "\n")
	if max > 0 {
		runes := []rune(preview)
		if len(runes) > max {
			preview = string(runes[:max])
		}
	}
	return preview
}

// blockText joins the raw lines of a block, keeping soft line breaks that
// Node.Text would drop.
func blockText(n ast.Node, source []byte) string {
	segs := n.Lines()
	parts := make([]string, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		parts = append(parts, strings.TrimSpace(string(seg.Value(source))))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
