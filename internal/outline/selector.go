package outline

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Selector locates the content container. It accepts a tag name, "#id",
// ".class", or a tag qualified by one of those ("article.post", "main#content").
type Selector struct {
	Tag   string
	ID    string
	Class string
}

// ParseSelector parses a container selector.
func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Selector{}, fmt.Errorf("empty selector")
	}
	if strings.ContainsAny(s, " >+~,[]:*") {
		return Selector{}, fmt.Errorf("unsupported selector %q", s)
	}

	var sel Selector
	i := strings.IndexAny(s, "#.")
	if i < 0 {
		sel.Tag = strings.ToLower(s)
		return sel, nil
	}
	sel.Tag = strings.ToLower(s[:i])
	rest := s[i+1:]
	if rest == "" || strings.ContainsAny(rest, "#.") {
		return Selector{}, fmt.Errorf("unsupported selector %q", s)
	}
	if s[i] == '#' {
		sel.ID = rest
	} else {
		sel.Class = rest
	}
	return sel, nil
}

// MustParseSelector is like ParseSelector but panics on error.
func MustParseSelector(s string) Selector {
	sel, err := ParseSelector(s)
	if err != nil {
		panic(err)
	}
	return sel
}

func (sel Selector) String() string {
	switch {
	case sel.ID != "":
		return sel.Tag + "#" + sel.ID
	case sel.Class != "":
		return sel.Tag + "." + sel.Class
	}
	return sel.Tag
}

func (sel Selector) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if sel.Tag != "" && n.Data != sel.Tag {
		return false
	}
	if sel.ID != "" && attr(n, "id") != sel.ID {
		return false
	}
	if sel.Class != "" {
		found := false
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == sel.Class {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Find returns the first node in document order matching the selector, or nil.
func (sel Selector) Find(n *html.Node) *html.Node {
	if sel.matches(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := sel.Find(c); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
