package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/headingnav/internal/doctree"
	"github.com/dgallion1/headingnav/internal/outline"
	"golang.org/x/net/html"
)

// HTMLParser passes through pre-rendered HTML pages. Only the <body> is kept;
// site chrome (header, nav, footer) and scripts are dropped.
type HTMLParser struct {
	Container outline.Selector
}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := findTitle(doc)
	if title == "" {
		if h1 := findElement(doc, "h1"); h1 != nil {
			title = textContent(h1)
		}
	}
	if title == "" {
		title = TitleFromFilename(filename)
	}

	container := p.Container
	if container == (outline.Selector{}) {
		container = DefaultContainer
	}

	// A page that already carries its own container is served as-is,
	// attributes included.
	if c := container.Find(doc); c != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, c); err != nil {
			return nil, fmt.Errorf("render html: %w", err)
		}
		buf.WriteByte('\n')
		return &doctree.Document{
			Title: title,
			HTML:  buf.Bytes(),
		}, nil
	}

	root := findElement(doc, "body")
	if root == nil {
		root = doc
	}

	var buf bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "script", "style", "nav", "footer", "header":
				continue
			}
		}
		if err := html.Render(&buf, c); err != nil {
			return nil, fmt.Errorf("render html: %w", err)
		}
	}

	body, err := wrap(container, buf.Bytes())
	if err != nil {
		return nil, err
	}
	return &doctree.Document{
		Title: title,
		HTML:  body,
	}, nil
}

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
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if t := findElement(n, "title"); t != nil {
		return textContent(t)
	}
	return ""
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
