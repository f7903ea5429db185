package outline

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/headingnav/internal/doctree"
	"golang.org/x/net/html"
)

// MinDepth and MaxDepth bound the heading levels that enter the outline.
// Level 1 is the document title and is never navigable.
const (
	MinDepth = 2
	MaxDepth = 4
)

// Scan returns the qualifying headings inside the container matched by sel,
// in document order. A missing container yields nil.
func Scan(doc *html.Node, sel Selector) []doctree.RawHeading {
	var raws []doctree.RawHeading
	walkHeadings(doc, sel, func(n *html.Node, pos, level int) {
		raws = append(raws, doctree.RawHeading{
			Position: pos,
			Level:    level,
			Text:     textContent(n),
			Anchor:   strings.TrimSpace(attr(n, "id")),
		})
	})
	return raws
}

// Extract resolves an identifier for every raw heading. A heading's own
// anchor wins; otherwise the identifier is the slug of its text and is
// recorded in Outline.Assigned under the heading's position.
func Extract(raws []doctree.RawHeading) doctree.Outline {
	out := doctree.Outline{
		Entries:  make([]doctree.Entry, 0, len(raws)),
		Assigned: make(map[int]string),
	}
	for _, h := range raws {
		id := h.Anchor
		if id == "" {
			id = Slug(h.Text)
			out.Assigned[h.Position] = id
		}
		out.Entries = append(out.Entries, doctree.Entry{
			ID:    id,
			Label: h.Text,
			Depth: h.Level,
		})
	}
	return out
}

// Apply writes the identifiers recorded in o.Assigned onto the matching
// headings of doc, replacing blank id attributes, and normalizes padded
// anchors to their trimmed form so every entry ID is present on its heading.
// Applying twice is the same as applying once.
func Apply(doc *html.Node, sel Selector, o doctree.Outline) {
	walkHeadings(doc, sel, func(n *html.Node, pos, _ int) {
		raw := attr(n, "id")
		trimmed := strings.TrimSpace(raw)
		switch {
		case trimmed == "":
			if id := o.Assigned[pos]; id != "" {
				setAttr(n, "id", id)
			}
		case trimmed != raw:
			setAttr(n, "id", trimmed)
		}
	})
}

// ExtractDocument parses a rendered document, extracts its outline, and
// returns the markup with assigned identifiers applied.
func ExtractDocument(d *doctree.Document, sel Selector) (doctree.Outline, []byte, error) {
	root, err := html.Parse(bytes.NewReader(d.HTML))
	if err != nil {
		return doctree.Outline{}, nil, fmt.Errorf("parse html: %w", err)
	}
	o := Extract(Scan(root, sel))
	Apply(root, sel, o)

	body, err := renderBody(root)
	if err != nil {
		return doctree.Outline{}, nil, err
	}
	return o, body, nil
}

// FromReader extracts the outline of an HTML stream without modifying it.
func FromReader(r io.Reader, sel Selector) (doctree.Outline, error) {
	root, err := html.Parse(r)
	if err != nil {
		return doctree.Outline{}, fmt.Errorf("parse html: %w", err)
	}
	return Extract(Scan(root, sel)), nil
}

func walkHeadings(doc *html.Node, sel Selector, fn func(n *html.Node, pos, level int)) {
	container := sel.Find(doc)
	if container == nil {
		return
	}
	pos := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level >= MinDepth && level <= MaxDepth {
				fn(n, pos, level)
				pos++
				return
			}
			switch n.Data {
			case "script", "style", "template":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
}

// renderBody serializes the children of <body>, which is where the html
// parser places a fragment.
func renderBody(root *html.Node) ([]byte, error) {
	body := findElement(root, "body")
	if body == nil {
		body = root
	}
	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return nil, fmt.Errorf("render html: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// textContent returns the heading's rendered text content verbatim.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

// setAttr sets key on n, replacing an existing value.
func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
