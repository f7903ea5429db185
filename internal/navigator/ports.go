package navigator

// Viewport is the navigator's view of the browser window. Positions are in
// document coordinates (pixels from the top of the page).
type Viewport interface {
	// ScrollOffset returns the current vertical scroll position.
	ScrollOffset() float64
	// ElementTop returns the top position of the element with the given id.
	// ok is false when no such element exists.
	ElementTop(id string) (top float64, ok bool)
	// ViewportWidth returns the current viewport width.
	ViewportWidth() float64
	// ScrollTo starts a smooth scroll to offset.
	ScrollTo(offset float64)
}

// History updates the address bar.
type History interface {
	// ReplaceFragment sets the URL fragment to "#"+id without a jump-scroll.
	ReplaceFragment(id string)
}

// EventKind identifies a viewport event.
type EventKind int

const (
	EventScroll EventKind = iota
	EventResize
)

func (k EventKind) String() string {
	switch k {
	case EventScroll:
		return "scroll"
	case EventResize:
		return "resize"
	}
	return "unknown"
}

// Events registers listeners for viewport events. The returned function
// removes the listener.
type Events interface {
	Subscribe(kind EventKind, fn func()) (unsubscribe func())
}
