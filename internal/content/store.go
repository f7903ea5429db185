package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/headingnav/internal/doctree"
	"github.com/dgallion1/headingnav/internal/outline"
	"github.com/dgallion1/headingnav/internal/parser"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned when no post has the requested slug.
var ErrNotFound = errors.New("post not found")

// Post is a rendered content file with its outline.
type Post struct {
	Slug     string
	Title    string
	Path     string // Path relative to the content directory
	HTML     []byte // Rendered markup with heading identifiers applied
	Outline  doctree.Outline
	Modified time.Time
}

// Store holds the rendered posts of a content directory.
type Store struct {
	dir     string
	sel     outline.Selector
	workers int
	log     *slog.Logger

	mu    sync.RWMutex
	posts map[string]*Post
}

// NewStore creates an empty store for dir. Call Load to populate it.
func NewStore(dir string, sel outline.Selector, workers int, log *slog.Logger) *Store {
	if workers <= 0 {
		workers = 4
	}
	return &Store{
		dir:     dir,
		sel:     sel,
		workers: workers,
		log:     log,
		posts:   make(map[string]*Post),
	}
}

// Load renders every supported file under the content directory and replaces
// the store's contents. Files that fail to render are logged and skipped.
func (s *Store) Load(ctx context.Context) error {
	start := time.Now()

	var files []string
	err := filepath.WalkDir(s.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != s.dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if parser.IsSupportedExtension(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk content dir %s: %w", s.dir, err)
	}

	results := make([]*Post, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, file := range files {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			post, err := s.renderFile(file)
			if err != nil {
				s.log.Warn("skipping content file", "path", file, "error", err)
				return nil
			}
			results[i] = post
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	posts := make(map[string]*Post, len(results))
	for _, p := range results {
		if p == nil {
			continue
		}
		if prev, ok := posts[p.Slug]; ok {
			s.log.Warn("duplicate post slug", "slug", p.Slug, "kept", prev.Path, "skipped", p.Path)
			continue
		}
		posts[p.Slug] = p
	}

	s.mu.Lock()
	s.posts = posts
	s.mu.Unlock()

	s.log.Info("content loaded",
		"dir", s.dir,
		"posts", len(posts),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Reload is Load under another name, for callers reacting to content changes.
func (s *Store) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

func (s *Store) renderFile(file string) (*Post, error) {
	p, err := parser.ForFile(file, s.sel)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	doc, err := p.Parse(f, filepath.Base(file))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}

	o, body, err := outline.ExtractDocument(doc, s.sel)
	if err != nil {
		return nil, fmt.Errorf("extract outline %s: %w", file, err)
	}

	rel, err := filepath.Rel(s.dir, file)
	if err != nil {
		rel = filepath.Base(file)
	}

	return &Post{
		Slug:     SlugForPath(rel),
		Title:    doc.Title,
		Path:     filepath.ToSlash(rel),
		HTML:     body,
		Outline:  o,
		Modified: info.ModTime(),
	}, nil
}

// SlugForPath derives a post slug from its path relative to the content
// directory: "notes/Go Tips.md" becomes "notes/go-tips".
func SlugForPath(rel string) string {
	dir, file := path.Split(filepath.ToSlash(rel))
	stem := outline.Slug(parser.TitleFromFilename(file))
	if dir == "" {
		return stem
	}
	return path.Clean(dir) + "/" + stem
}

// Get returns the post with the given slug.
func (s *Store) Get(slug string) (*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[slug]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// List returns all posts, newest first, then by slug.
func (s *Store) List() []*Post {
	s.mu.RLock()
	out := make([]*Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Modified.Equal(out[j].Modified) {
			return out[i].Modified.After(out[j].Modified)
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}

// Len returns the number of loaded posts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}
