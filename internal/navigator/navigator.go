package navigator

import (
	"github.com/dgallion1/headingnav/internal/doctree"
)

const (
	// LookAhead compensates for the fixed page header covering the top of
	// the viewport. Used both for the active-section threshold and for the
	// navigation scroll target.
	LookAhead = 100.0

	// SuppressionMargin is how far above the first heading the navigation
	// surface starts being shown.
	SuppressionMargin = 200.0

	// Breakpoint is the viewport width below which the navigation surface is
	// not displayed at all.
	Breakpoint = 1280.0
)

// State is the navigation state of one page view.
type State struct {
	Entries []doctree.Entry `json:"entries"`
	Active  string          `json:"active"`
	Visible bool            `json:"visible"`
}

// Navigator tracks the active section of one mounted page view.
//
// A Navigator is driven from a single event loop and is not safe for
// concurrent use.
type Navigator struct {
	vp      Viewport
	history History

	state  State
	unsubs []func()
	closed bool
}

// Mount creates the navigation state for a page view whose outline has been
// extracted, registers scroll and resize listeners on events, and computes
// the initial active section and visibility. events may be nil when the
// caller drives Refresh itself.
func Mount(o doctree.Outline, vp Viewport, history History, events Events) *Navigator {
	n := &Navigator{
		vp:      vp,
		history: history,
		state:   State{Entries: o.Entries},
	}
	if events != nil {
		n.unsubs = append(n.unsubs,
			events.Subscribe(EventScroll, n.Refresh),
			events.Subscribe(EventResize, n.Refresh),
		)
	}
	n.Refresh()
	return n
}

// Unmount removes the navigator's listeners and discards its state. It is
// safe to call more than once.
func (n *Navigator) Unmount() {
	if n.closed {
		return
	}
	n.closed = true
	for _, unsub := range n.unsubs {
		if unsub != nil {
			unsub()
		}
	}
	n.unsubs = nil
	n.state = State{}
}

// Refresh recomputes the active section and visibility. It is the handler
// for both scroll and resize events.
func (n *Navigator) Refresh() {
	if n.closed {
		return
	}
	n.ResolveActive()
	n.UpdateVisibility()
}

// ResolveActive marks as active the last heading, in document order, whose
// top is at or above the scroll offset plus LookAhead. When no heading has
// been reached the active identifier is empty.
func (n *Navigator) ResolveActive() {
	threshold := n.vp.ScrollOffset() + LookAhead
	active := ""
	for i := len(n.state.Entries) - 1; i >= 0; i-- {
		id := n.state.Entries[i].ID
		top, ok := n.vp.ElementTop(id)
		if ok && top <= threshold {
			active = id
			break
		}
	}
	n.state.Active = active
}

// UpdateVisibility shows the navigation surface once the viewport has
// scrolled past the first heading minus SuppressionMargin.
func (n *Navigator) UpdateVisibility() {
	if len(n.state.Entries) == 0 {
		n.state.Visible = false
		return
	}
	top, ok := n.vp.ElementTop(n.state.Entries[0].ID)
	if !ok {
		n.state.Visible = false
		return
	}
	n.state.Visible = n.vp.ScrollOffset() > top-SuppressionMargin
}

// NavigateTo smooth-scrolls to the heading with the given id, updates the
// URL fragment, and marks the heading active without waiting for the next
// scroll event. It reports false, changing nothing, when the heading no
// longer exists.
func (n *Navigator) NavigateTo(id string) bool {
	if n.closed || id == "" {
		return false
	}
	top, ok := n.vp.ElementTop(id)
	if !ok {
		return false
	}
	n.vp.ScrollTo(top - LookAhead)
	if n.history != nil {
		n.history.ReplaceFragment(id)
	}
	n.state.Active = id
	return true
}

// State returns a snapshot of the navigation state.
func (n *Navigator) State() State {
	s := n.state
	s.Entries = append([]doctree.Entry(nil), n.state.Entries...)
	return s
}

// Active returns the identifier of the active section, or "".
func (n *Navigator) Active() string { return n.state.Active }

// Visible reports whether the navigation surface should be shown.
func (n *Navigator) Visible() bool { return n.state.Visible }

// Displayed reports whether the navigation surface is actually rendered:
// visible, and the viewport at least Breakpoint wide.
func (n *Navigator) Displayed() bool {
	return n.state.Visible && n.vp.ViewportWidth() >= Breakpoint
}
