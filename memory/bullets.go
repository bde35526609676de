package memory

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParseBulletItems extracts the list items from a markdown document. The
// extraction prompt asks the model for a flat bulleted list, but models
// wrap it in prose, headings, or numbered lists often enough that walking
// the markdown AST is more reliable than prefix-matching lines.
func ParseBulletItems(src string) []string {
	source := []byte(src)
	root := goldmark.New().Parser().Parse(text.NewReader(source))

	var items []string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		item, ok := n.(*ast.ListItem)
		if !ok {
			return ast.WalkContinue, nil
		}
		// Only the item's first block: nested sub-lists surface as their
		// own ListItem nodes during the walk.
		block := item.FirstChild()
		if block == nil {
			return ast.WalkContinue, nil
		}
		if txt := strings.TrimSpace(string(inlineText(block, source))); txt != "" {
			items = append(items, txt)
		}
		return ast.WalkContinue, nil
	})
	return items
}

func inlineText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		default:
			if c.ChildCount() > 0 {
				buf.Write(inlineText(c, source))
			}
		}
	}
	return buf.Bytes()
}
