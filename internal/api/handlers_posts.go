package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgallion1/headingnav/internal/content"
	"github.com/dgallion1/headingnav/internal/doctree"
	"github.com/dgallion1/headingnav/internal/site"
	"github.com/go-chi/chi/v5"
)

type postSummary struct {
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Path     string    `json:"path"`
	Sections int       `json:"sections"`
	Modified time.Time `json:"modified"`
}

type postOutline struct {
	Slug    string          `json:"slug"`
	Title   string          `json:"title"`
	Entries []doctree.Entry `json:"entries"`
}

// handleListPosts lists all loaded posts.
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts := s.store.List()
	out := make([]postSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, postSummary{
			Slug:     p.Slug,
			Title:    p.Title,
			Path:     p.Path,
			Sections: len(p.Outline.Entries),
			Modified: p.Modified,
		})
	}
	writeJSON(w, map[string]any{"posts": out})
}

// handleGetPost returns a post's outline as JSON, or as Markdown with
// ?format=markdown.
func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookupPost(w, r)
	if !ok {
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		entries := p.Outline.Entries
		if entries == nil {
			entries = []doctree.Entry{}
		}
		writeJSON(w, postOutline{Slug: p.Slug, Title: p.Title, Entries: entries})
	case "markdown", "md":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		if err := site.WriteMarkdown(w, p.Title, p.Outline.Entries); err != nil {
			s.log.Error("write markdown outline", "slug", p.Slug, "error", err)
		}
	default:
		jsonError(w, "format must be json or markdown", http.StatusBadRequest)
	}
}

// handlePage renders a post as a full HTML page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookupPost(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := site.WritePage(w, s.cfg.SiteTitle, p); err != nil {
		s.log.Error("render page", "slug", p.Slug, "error", err)
	}
}

// handleReload re-reads the content directory.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Reload(r.Context()); err != nil {
		jsonError(w, "reload failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"posts": s.store.Len()})
}

func (s *Server) lookupPost(w http.ResponseWriter, r *http.Request) (*content.Post, bool) {
	slug := strings.Trim(chi.URLParam(r, "*"), "/")
	if slug == "" {
		jsonError(w, "post slug is required", http.StatusBadRequest)
		return nil, false
	}
	p, err := s.store.Get(slug)
	if errors.Is(err, content.ErrNotFound) {
		jsonError(w, "post not found: "+slug, http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return p, true
}
