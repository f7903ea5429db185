package parser

import (
	"bufio"
	"bytes"
	"html"
	"io"
	"strings"

	"github.com/dgallion1/headingnav/internal/doctree"
	"github.com/dgallion1/headingnav/internal/outline"
)

// TextParser renders plain-text notes as paragraphs. Plain text has no
// headings, so these documents always have an empty outline.
type TextParser struct {
	Container outline.Selector
}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, para := range paragraphs {
		buf.WriteString("<p>")
		buf.WriteString(html.EscapeString(para))
		buf.WriteString("</p>\n")
	}

	body, err := wrap(p.Container, buf.Bytes())
	if err != nil {
		return nil, err
	}
	return &doctree.Document{
		Title: TitleFromFilename(filename),
		HTML:  body,
	}, nil
}
