package doctree

// Document is a rendered content file, ready for outline extraction.
type Document struct {
	Title string // Document title (first h1, or filename)
	HTML  []byte // Rendered body markup, wrapped in the content container
}

// RawHeading is a heading as found in the rendered document, before an
// identifier has been resolved for it.
type RawHeading struct {
	Position int    // Index among qualifying headings, in document order
	Level    int    // 2..4
	Text     string // Rendered text content
	Anchor   string // Existing id attribute (empty if none)
}

// Entry is one navigable section marker.
type Entry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Depth int    `json:"depth"`
}

// Outline is the ordered set of entries for one document snapshot, plus the
// identifiers assigned to headings that had no anchor of their own.
type Outline struct {
	Entries []Entry

	// Assigned maps RawHeading.Position to the identifier generated for it.
	// Headings that already carried an anchor do not appear here.
	Assigned map[int]string
}

// Empty reports whether the outline has no entries.
func (o Outline) Empty() bool {
	return len(o.Entries) == 0
}

// IDs returns the entry identifiers in document order.
func (o Outline) IDs() []string {
	ids := make([]string, len(o.Entries))
	for i, e := range o.Entries {
		ids[i] = e.ID
	}
	return ids
}
