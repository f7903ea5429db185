package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/headingnav/internal/doctree"
	"github.com/dgallion1/headingnav/internal/outline"
	"github.com/dgallion1/headingnav/internal/parser"
)

// handleExtractOutline extracts the outline of a posted document. The body is
// rendered HTML unless ?filename= names another supported format, in which
// case it is rendered first. ?selector= overrides the content container.
func (s *Server) handleExtractOutline(w http.ResponseWriter, r *http.Request) {
	sel := s.cfg.Selector()
	if v := r.URL.Query().Get("selector"); v != "" {
		parsed, err := outline.ParseSelector(v)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		sel = parsed
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	var o doctree.Outline
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		o, err = outline.FromReader(bytes.NewReader(data), sel)
	} else {
		o, err = s.renderAndExtract(data, sanitizeFilename(filename), sel)
	}
	if errors.Is(err, parser.ErrUnsupported) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	entries := o.Entries
	if entries == nil {
		entries = []doctree.Entry{}
	}
	writeJSON(w, map[string]any{
		"selector": sel.String(),
		"entries":  entries,
	})
}

func (s *Server) renderAndExtract(data []byte, filename string, sel outline.Selector) (doctree.Outline, error) {
	p, err := parser.ForFile(filename, sel)
	if err != nil {
		return doctree.Outline{}, err
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return doctree.Outline{}, err
	}
	o, _, err := outline.ExtractDocument(doc, sel)
	return o, err
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
