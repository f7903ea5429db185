package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/headingnav/internal/doctree"
	"github.com/dgallion1/headingnav/internal/outline"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrUnsupported is returned by ForFile for file types no parser handles.
var ErrUnsupported = errors.New("unsupported file extension")

// ContainerTag is the default content container. Documents are wrapped in
// the element their container selector describes, so the outline extractor
// always finds it.
const ContainerTag = "article"

// DefaultContainer is the selector used when none is configured.
var DefaultContainer = outline.Selector{Tag: ContainerTag}

// Parser renders raw content into a Document.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdx":      true,
	".html":     true,
	".htm":      true,
	".txt":      true,
}

// ForFile returns the appropriate parser for a filename. Rendered documents
// are wrapped in an element matching container.
func ForFile(filename string, container outline.Selector) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown", ".mdx":
		p := NewMarkdownParser()
		p.Container = container
		return p, nil
	case ".html", ".htm":
		return &HTMLParser{Container: container}, nil
	case ".txt":
		return &TextParser{Container: container}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// TitleFromFilename strips directory and extension from a filename.
func TitleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// wrap encloses body in an element matching sel: the selector's tag (div
// when it names none) carrying its id or class.
func wrap(sel outline.Selector, body []byte) ([]byte, error) {
	if sel == (outline.Selector{}) {
		sel = DefaultContainer
	}
	tag := sel.Tag
	if tag == "" {
		tag = "div"
	}
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	if sel.ID != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: sel.ID})
	}
	if sel.Class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: sel.Class})
	}

	// Render an empty element and split it to get matching open/close tags.
	var tagBuf bytes.Buffer
	if err := html.Render(&tagBuf, n); err != nil {
		return nil, fmt.Errorf("render container: %w", err)
	}
	closeTag := "</" + tag + ">"
	open := strings.TrimSuffix(tagBuf.String(), closeTag)

	out := make([]byte, 0, len(body)+len(open)+len(closeTag)+2)
	out = append(out, open...)
	out = append(out, '\n')
	out = append(out, body...)
	out = append(out, closeTag...)
	out = append(out, '\n')
	return out, nil
}
