package site

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/dgallion1/headingnav/internal/doctree"
	"github.com/dgallion1/headingnav/internal/navigator"
	"github.com/nao1215/markdown"
)

// TOCLink is one rendered navigation link.
type TOCLink struct {
	ID     string
	Label  string
	Depth  int
	Indent int // Depth relative to the shallowest entry
	Active bool
}

// Links prepares the navigation links for an outline, with the active entry
// marked and indentation normalized so the shallowest heading sits at zero.
func Links(entries []doctree.Entry, active string) []TOCLink {
	if len(entries) == 0 {
		return nil
	}
	minDepth := entries[0].Depth
	for _, e := range entries {
		if e.Depth < minDepth {
			minDepth = e.Depth
		}
	}
	links := make([]TOCLink, len(entries))
	for i, e := range entries {
		links[i] = TOCLink{
			ID:     e.ID,
			Label:  e.Label,
			Depth:  e.Depth,
			Indent: e.Depth - minDepth,
			Active: active != "" && e.ID == active,
		}
	}
	return links
}

var tocTmpl = template.Must(template.New("toc").Parse(tocTemplate))

// WriteTOC renders the navigation list as an HTML fragment. Nothing is
// written for an empty outline.
func WriteTOC(w io.Writer, entries []doctree.Entry, active string) error {
	links := Links(entries, active)
	if len(links) == 0 {
		return nil
	}
	return tocTmpl.Execute(w, links)
}

// WriteMarkdown writes an outline as a nested Markdown list of fragment links.
func WriteMarkdown(w io.Writer, title string, entries []doctree.Entry) error {
	md := markdown.NewMarkdown(w)
	if title != "" {
		md.H2(title)
		md.PlainText("")
	}
	if len(entries) == 0 {
		md.PlainText("_No sections._")
		return md.Build()
	}
	for _, l := range Links(entries, "") {
		md.PlainText(fmt.Sprintf("%s- %s", strings.Repeat("  ", l.Indent), markdown.Link(linkText(l.Label), "#"+l.ID)))
	}
	return md.Build()
}

// CSS for the navigation surface. The breakpoint rule is the only thing
// that hides the list on narrow viewports; tracking keeps running.
var tocCSS = fmt.Sprintf(`nav.toc { position: sticky; top: %[1]gpx; }
nav.toc ol { list-style: none; margin: 0; padding: 0; }
nav.toc li.depth-1 { padding-left: 1rem; }
nav.toc li.depth-2 { padding-left: 2rem; }
nav.toc a.active { font-weight: 600; }
nav.toc.hidden { visibility: hidden; }
@media (max-width: %[2]gpx) { nav.toc { display: none; } }
`, navigator.LookAhead, navigator.Breakpoint-1)

const tocTemplate = `<nav class="toc hidden" aria-label="Table of contents">
<ol>
{{- range .}}
<li class="depth-{{.Indent}}"><a href="#{{.ID}}" data-id="{{.ID}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a></li>
{{- end}}
</ol>
</nav>
`

var linkTextEscaper = strings.NewReplacer(
	`\`, `\\`,
	"[", `\[`,
	"]", `\]`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
)

// linkText prepares a label for use inside a Markdown link: whitespace runs
// become single spaces and inline markup characters are backslash-escaped.
func linkText(label string) string {
	return linkTextEscaper.Replace(strings.Join(strings.Fields(label), " "))
}
