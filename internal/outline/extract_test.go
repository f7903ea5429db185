package outline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgallion1/headingnav/internal/doctree"
	"golang.org/x/net/html"
)

var article = MustParseSelector("article")

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestExtract_DocumentOrder(t *testing.T) {
	doc := parse(t, `<article>
<h1>Title</h1>
<h2>Intro</h2><p>a</p>
<h3>Setup</h3><p>b</p>
<h4>Deep</h4>
<h5>Too deep</h5>
<h2>Usage</h2>
</article>`)

	o := Extract(Scan(doc, article))
	want := []doctree.Entry{
		{ID: "intro", Label: "Intro", Depth: 2},
		{ID: "setup", Label: "Setup", Depth: 3},
		{ID: "deep", Label: "Deep", Depth: 4},
		{ID: "usage", Label: "Usage", Depth: 2},
	}
	if len(o.Entries) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(o.Entries), o.Entries)
	}
	for i, w := range want {
		if o.Entries[i] != w {
			t.Errorf("entry[%d]: expected %+v, got %+v", i, w, o.Entries[i])
		}
	}
}

func TestExtract_ExistingAnchorWins(t *testing.T) {
	doc := parse(t, `<article><h2 id="custom">API &amp; Usage!</h2><h2>API &amp; Usage!</h2></article>`)
	o := Extract(Scan(doc, article))

	if len(o.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(o.Entries))
	}
	if o.Entries[0].ID != "custom" {
		t.Errorf("expected existing anchor %q, got %q", "custom", o.Entries[0].ID)
	}
	if o.Entries[1].ID != "api-usage" {
		t.Errorf("expected generated id %q, got %q", "api-usage", o.Entries[1].ID)
	}
	if o.Entries[1].Label != "API & Usage!" {
		t.Errorf("expected label verbatim, got %q", o.Entries[1].Label)
	}
	if _, ok := o.Assigned[0]; ok {
		t.Errorf("anchored heading should not be in Assigned")
	}
	if o.Assigned[1] != "api-usage" {
		t.Errorf("expected Assigned[1] = api-usage, got %q", o.Assigned[1])
	}
}

func TestExtract_DuplicateTextCollides(t *testing.T) {
	doc := parse(t, `<article><h2>Overview</h2><h3>Overview</h3></article>`)
	o := Extract(Scan(doc, article))
	if len(o.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(o.Entries))
	}
	if o.Entries[0].ID != "overview" || o.Entries[1].ID != "overview" {
		t.Errorf("expected both ids to be %q, got %v", "overview", o.IDs())
	}
}

func TestExtract_MissingContainer(t *testing.T) {
	doc := parse(t, `<div><h2>Outside</h2></div>`)
	o := Extract(Scan(doc, article))
	if !o.Empty() {
		t.Errorf("expected empty outline, got %+v", o.Entries)
	}
}

func TestExtract_NoQualifyingHeadings(t *testing.T) {
	doc := parse(t, `<article><h1>Only a title</h1><p>Short note.</p><h5>small</h5></article>`)
	o := Extract(Scan(doc, article))
	if !o.Empty() {
		t.Errorf("expected empty outline, got %+v", o.Entries)
	}
}

func TestExtract_HeadingsOutsideContainerIgnored(t *testing.T) {
	doc := parse(t, `<header><h2>Site</h2></header><article><h2>Body</h2></article><footer><h2>Links</h2></footer>`)
	o := Extract(Scan(doc, article))
	if len(o.Entries) != 1 || o.Entries[0].ID != "body" {
		t.Errorf("expected only the article heading, got %+v", o.Entries)
	}
}

func TestExtract_NestedMarkupText(t *testing.T) {
	doc := parse(t, `<article><h2>Using <code>go test</code>
  quickly</h2></article>`)
	o := Extract(Scan(doc, article))
	if len(o.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(o.Entries))
	}
	if o.Entries[0].Label != "Using go test\n  quickly" {
		t.Errorf("unexpected label %q", o.Entries[0].Label)
	}
	if o.Entries[0].ID != "using-go-test-quickly" {
		t.Errorf("unexpected id %q", o.Entries[0].ID)
	}
}

func TestApply_Idempotent(t *testing.T) {
	d := &doctree.Document{HTML: []byte(`<article><h2>Intro</h2><h3 id="kept">Setup</h3><h2>Usage</h2></article>`)}

	first, body, err := ExtractDocument(d, article)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(body, []byte(`<h2 id="intro">`)) {
		t.Errorf("expected assigned id in markup, got %s", body)
	}
	if !bytes.Contains(body, []byte(`<h3 id="kept">`)) {
		t.Errorf("expected existing id kept, got %s", body)
	}

	second, body2, err := ExtractDocument(&doctree.Document{HTML: body}, article)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(first.IDs(), ",") != strings.Join(second.IDs(), ",") {
		t.Errorf("ids changed between extractions: %v vs %v", first.IDs(), second.IDs())
	}
	if len(second.Assigned) != 0 {
		t.Errorf("expected nothing assigned on second pass, got %v", second.Assigned)
	}
	if !bytes.Equal(body, body2) {
		t.Errorf("markup changed on second pass:\n%s\n%s", body, body2)
	}
}

func TestFromReader(t *testing.T) {
	o, err := FromReader(strings.NewReader(`<main id="content"><h2>One</h2><h4>Two</h4></main>`), MustParseSelector("#content"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(o.IDs(), ","); got != "one,two" {
		t.Errorf("expected one,two, got %s", got)
	}
	if o.Entries[1].Depth != 4 {
		t.Errorf("expected depth 4, got %d", o.Entries[1].Depth)
	}
}

func TestApply_BlankAnchorReplaced(t *testing.T) {
	d := &doctree.Document{HTML: []byte(`<article><h2 id=" ">Intro</h2><h3 id="">Setup</h3></article>`)}

	o, body, err := ExtractDocument(d, article)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(o.IDs(), ","); got != "intro,setup" {
		t.Fatalf("expected intro,setup, got %s", got)
	}
	out := string(body)
	if !strings.Contains(out, `<h2 id="intro">Intro</h2>`) || !strings.Contains(out, `<h3 id="setup">Setup</h3>`) {
		t.Errorf("expected generated ids on the headings, got %s", out)
	}
	if strings.Count(out, "id=") != 2 {
		t.Errorf("expected blank ids replaced, not duplicated, got %s", out)
	}
}

func TestApply_PaddedAnchorTrimmed(t *testing.T) {
	d := &doctree.Document{HTML: []byte(`<article><h2 id=" intro ">Intro</h2></article>`)}

	o, body, err := ExtractDocument(d, article)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(o.Entries) != 1 || o.Entries[0].ID != "intro" {
		t.Fatalf("expected entry intro, got %+v", o.Entries)
	}
	if !strings.Contains(string(body), `<h2 id="intro">`) {
		t.Errorf("expected heading id trimmed to match the entry, got %s", body)
	}

	again, body2, err := ExtractDocument(&doctree.Document{HTML: body}, article)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Entries[0].ID != "intro" || !bytes.Equal(body, body2) {
		t.Errorf("expected a stable second pass, got %+v / %s", again.Entries, body2)
	}
}

// Every entry identifier must be present on a heading of the served markup.
func TestExtractDocument_EntryIDsPresentOnHeadings(t *testing.T) {
	d := &doctree.Document{HTML: []byte(`<article><h2 id="  ">A</h2><h2 id=" b ">B</h2><h3>C c</h3><h4 id="d">D</h4></article>`)}
	o, body, err := ExtractDocument(d, article)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	anchors := map[string]bool{}
	for _, h := range Scan(parse(t, string(body)), article) {
		anchors[h.Anchor] = true
	}
	for _, e := range o.Entries {
		if !anchors[e.ID] {
			t.Errorf("entry id %q not present on served heading: %s", e.ID, body)
		}
	}
	if !strings.Contains(string(body), `id="b"`) {
		t.Errorf("expected padded anchor trimmed in markup, got %s", body)
	}
}
