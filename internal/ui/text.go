package ui

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"
)

type blockKind int

const (
	blockText blockKind = iota
	blockItem
	blockPre
)

type block struct {
	kind blockKind
	text string
}

type converter struct {
	blocks []block
	cur    strings.Builder
	kind   blockKind
	// items counts the <li> elements being walked. Blocks nested inside one
	// stay bulleted.
	items int
}

// HTMLToText converts an HTML fragment into plain text wrapped at width.
// Paragraphs are separated by blank lines, list items are bulleted, links
// keep their target and preformatted text is left alone. A width of zero or
// less disables wrapping.
func HTMLToText(fragment string, width int) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, head").Remove()

	c := &converter{}
	c.walk(doc.Find("body"))
	c.flush()

	var b strings.Builder
	for i, blk := range c.blocks {
		if i > 0 {
			if blk.kind == blockItem && c.blocks[i-1].kind == blockItem {
				b.WriteString("\n")
			} else {
				b.WriteString("\n\n")
			}
		}
		switch blk.kind {
		case blockPre:
			b.WriteString(blk.text)
		case blockItem:
			b.WriteString("* ")
			b.WriteString(indent(wrap(blk.text, width-2), "  "))
		default:
			b.WriteString(wrap(blk.text, width))
		}
	}
	return b.String(), nil
}

func (c *converter) walk(s *goquery.Selection) {
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		node := child.Get(0)
		switch node.Type {
		case html.TextNode:
			c.cur.WriteString(collapseSpace(node.Data))
		case html.ElementNode:
			c.element(goquery.NodeName(child), child)
		}
	})
}

func (c *converter) element(name string, s *goquery.Selection) {
	switch name {
	case "br":
		c.cur.WriteString("\n")
	case "pre":
		c.flush()
		if text := strings.Trim(s.Text(), "\n"); strings.TrimSpace(text) != "" {
			c.blocks = append(c.blocks, block{kind: blockPre, text: text})
		}
	case "li":
		c.flush()
		c.items++
		c.kind = blockItem
		c.walk(s)
		c.flush()
		c.items--
		if c.items == 0 {
			c.kind = blockText
		}
	case "p", "div", "section", "article", "blockquote", "ul", "ol", "dl", "dt", "dd",
		"h1", "h2", "h3", "h4", "h5", "h6", "table", "tr", "hr", "header", "footer", "figure":
		c.flush()
		c.walk(s)
		c.flush()
	case "a":
		c.walk(s)
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href != "" && href != strings.TrimSpace(s.Text()) && !strings.HasPrefix(href, "#") {
			c.cur.WriteString(" <" + href + ">")
		}
	case "img":
		if alt := strings.TrimSpace(s.AttrOr("alt", "")); alt != "" {
			c.cur.WriteString("[" + alt + "]")
		}
	default:
		c.walk(s)
	}
}

func (c *converter) flush() {
	text := normaliseLines(c.cur.String())
	if text != "" {
		c.blocks = append(c.blocks, block{kind: c.kind, text: text})
	}
	c.cur.Reset()
	c.kind = blockText
	if c.items > 0 {
		c.kind = blockItem
	}
}

// collapseSpace squeezes runs of whitespace into one space, keeping a single
// leading or trailing space so adjacent inline elements stay separated.
func collapseSpace(s string) string {
	if s == "" {
		return s
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return " "
	}
	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

// normaliseLines trims every line produced by <br> and drops empty edges.
func normaliseLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

func wrap(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	out := lipgloss.NewStyle().Width(width).Render(s)
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

func indent(s, prefix string) string {
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}
