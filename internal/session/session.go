// Package session drives a Navigator from a remote page view. The browser
// reports its layout and scroll position as messages; the session keeps the
// last reported values as the navigator's viewport and queues the scroll and
// fragment updates the navigator asks for, to be sent back to the browser.
package session

import (
	"fmt"

	"github.com/dgallion1/headingnav/internal/doctree"
	"github.com/dgallion1/headingnav/internal/navigator"
	"github.com/google/uuid"
)

// Message types sent by the client.
const (
	TypeLayout   = "layout"
	TypeScroll   = "scroll"
	TypeResize   = "resize"
	TypeNavigate = "navigate"
)

// Command ops sent to the client.
const (
	OpScrollTo        = "scroll_to"
	OpReplaceFragment = "replace_fragment"
)

// Request is a client message.
type Request struct {
	Type   string             `json:"type"`
	Scroll *float64           `json:"scroll,omitempty"`
	Width  *float64           `json:"width,omitempty"`
	Tops   map[string]float64 `json:"tops,omitempty"`
	ID     string             `json:"id,omitempty"`
}

// Command asks the client to act on its viewport or address bar.
type Command struct {
	Op       string  `json:"op"`
	Offset   float64 `json:"offset,omitempty"`
	Fragment string  `json:"fragment,omitempty"`
}

// Response is sent after every handled client message.
type Response struct {
	Type      string          `json:"type"` // "state" or "error"
	SessionID string          `json:"session_id"`
	Active    string          `json:"active"`
	Visible   bool            `json:"visible"`
	Displayed bool            `json:"displayed"`
	Entries   []doctree.Entry `json:"entries,omitempty"`
	Commands  []Command       `json:"commands,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// Session is one mounted page view. It is not safe for concurrent use; the
// owner feeds it messages one at a time.
type Session struct {
	ID string

	vp  *remoteViewport
	bus *navigator.Bus
	nav *navigator.Navigator

	sentEntries bool
}

// New mounts a navigator for the outline of one page view.
func New(o doctree.Outline) *Session {
	s := &Session{
		ID:  uuid.NewString(),
		vp:  &remoteViewport{tops: make(map[string]float64)},
		bus: navigator.NewBus(),
	}
	s.nav = navigator.Mount(o, s.vp, s.vp, s.bus)
	return s
}

// Close unmounts the navigator.
func (s *Session) Close() {
	s.nav.Unmount()
}

// Handle applies one client message and returns the reply.
func (s *Session) Handle(req Request) Response {
	switch req.Type {
	case TypeLayout:
		s.vp.apply(req)
		s.nav.Refresh()
	case TypeScroll:
		if req.Scroll == nil {
			return s.errorf("scroll is required")
		}
		s.vp.scroll = *req.Scroll
		s.bus.Emit(navigator.EventScroll)
	case TypeResize:
		if req.Width == nil && req.Tops == nil {
			return s.errorf("width or tops is required")
		}
		s.vp.apply(req)
		s.bus.Emit(navigator.EventResize)
	case TypeNavigate:
		if req.ID == "" {
			return s.errorf("id is required")
		}
		s.nav.NavigateTo(req.ID)
	default:
		return s.errorf("unknown message type: %s", req.Type)
	}
	return s.state()
}

// State returns the current state without handling a message.
func (s *Session) State() Response {
	return s.state()
}

func (s *Session) state() Response {
	st := s.nav.State()
	resp := Response{
		Type:      "state",
		SessionID: s.ID,
		Active:    st.Active,
		Visible:   st.Visible,
		Displayed: s.nav.Displayed(),
		Commands:  s.vp.drain(),
	}
	if !s.sentEntries {
		resp.Entries = st.Entries
		s.sentEntries = true
	}
	return resp
}

func (s *Session) errorf(format string, args ...any) Response {
	return Response{
		Type:      "error",
		SessionID: s.ID,
		Error:     fmt.Sprintf(format, args...),
	}
}

// remoteViewport implements navigator.Viewport and navigator.History from
// the last values the client reported.
type remoteViewport struct {
	scroll  float64
	width   float64
	tops    map[string]float64
	pending []Command
}

func (v *remoteViewport) apply(req Request) {
	if req.Scroll != nil {
		v.scroll = *req.Scroll
	}
	if req.Width != nil {
		v.width = *req.Width
	}
	if req.Tops != nil {
		v.tops = req.Tops
	}
}

func (v *remoteViewport) ScrollOffset() float64  { return v.scroll }
func (v *remoteViewport) ViewportWidth() float64 { return v.width }

func (v *remoteViewport) ElementTop(id string) (float64, bool) {
	top, ok := v.tops[id]
	return top, ok
}

func (v *remoteViewport) ScrollTo(offset float64) {
	v.pending = append(v.pending, Command{Op: OpScrollTo, Offset: offset})
}

func (v *remoteViewport) ReplaceFragment(id string) {
	v.pending = append(v.pending, Command{Op: OpReplaceFragment, Fragment: "#" + id})
}

func (v *remoteViewport) drain() []Command {
	cmds := v.pending
	v.pending = nil
	return cmds
}
