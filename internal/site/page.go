package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/dgallion1/headingnav/internal/content"
)

// PageData is the input of the post page template.
type PageData struct {
	SiteTitle string
	Title     string
	Slug      string
	Body      template.HTML
	TOC       template.HTML
	CSS       template.CSS
}

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// WritePage renders a full HTML page for a post, with its navigation list.
func WritePage(w io.Writer, siteTitle string, p *content.Post) error {
	var toc bytes.Buffer
	if err := WriteTOC(&toc, p.Outline.Entries, ""); err != nil {
		return fmt.Errorf("render toc: %w", err)
	}
	return pageTmpl.Execute(w, PageData{
		SiteTitle: siteTitle,
		Title:     p.Title,
		Slug:      p.Slug,
		Body:      template.HTML(p.HTML),
		TOC:       template.HTML(toc.String()),
		CSS:       template.CSS(tocCSS),
	})
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | {{.SiteTitle}}</title>
<style>{{.CSS}}</style>
</head>
<body data-slug="{{.Slug}}">
<header class="site-header"><a href="/">{{.SiteTitle}}</a></header>
<div class="layout">
{{.Body}}
{{.TOC}}
</div>
<script>
(function () {
  var nav = document.querySelector("nav.toc");
  if (!nav || !window.WebSocket) return;
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws/posts/" + document.body.dataset.slug);
  function tops() {
    var out = {};
    nav.querySelectorAll("a[data-id]").forEach(function (a) {
      var el = document.getElementById(a.dataset.id);
      if (el) out[a.dataset.id] = el.getBoundingClientRect().top + window.scrollY;
    });
    return out;
  }
  function send(msg) { if (ws.readyState === 1) ws.send(JSON.stringify(msg)); }
  ws.onopen = function () {
    send({type: "layout", scroll: window.scrollY, width: window.innerWidth, tops: tops()});
  };
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type !== "state") return;
    nav.classList.toggle("hidden", !msg.visible);
    nav.querySelectorAll("a[data-id]").forEach(function (a) {
      a.classList.toggle("active", a.dataset.id === msg.active);
    });
    (msg.commands || []).forEach(function (c) {
      if (c.op === "scroll_to") window.scrollTo({top: c.offset, behavior: "smooth"});
      if (c.op === "replace_fragment") history.replaceState(null, "", c.fragment);
    });
  };
  window.addEventListener("scroll", function () { send({type: "scroll", scroll: window.scrollY}); }, {passive: true});
  window.addEventListener("resize", function () { send({type: "resize", width: window.innerWidth, tops: tops()}); });
  nav.addEventListener("click", function (ev) {
    var a = ev.target.closest("a[data-id]");
    if (!a) return;
    ev.preventDefault();
    send({type: "navigate", id: a.dataset.id});
  });
})();
</script>
</body>
</html>
`
