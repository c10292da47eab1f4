// Package render produces the HTML grid view of a curated result page.
package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/artloci/nearby/internal/domain/hit"
)

// Page carries everything the grid template needs.
type Page struct {
	Title string
	Hits  []hit.Hit
}

// Renderer renders curated hits as an HTML product grid.
type Renderer struct {
	tmpl *template.Template
}

// New parses the grid template.
func New() (*Renderer, error) {
	tmpl, err := template.New("grid").Funcs(template.FuncMap{
		"price": formatPrice,
		"km":    formatKM,
	}).Parse(gridTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse grid template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the grid page for p to w.
func (r *Renderer) Render(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = "Nearby products"
	}
	if err := r.tmpl.Execute(w, p); err != nil {
		return fmt.Errorf("render grid: %w", err)
	}
	return nil
}

func formatPrice(h hit.Hit) string {
	if !h.HasPrice {
		return ""
	}
	return fmt.Sprintf("€%.2f", h.Price)
}

func formatKM(meters float64) string {
	if meters <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

const gridTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,sans-serif;margin:0;background:#fafafa;color:#222}
h1{font-size:1.3rem;margin:1rem}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(220px,1fr));gap:1rem;padding:1rem}
.card{background:#fff;border-radius:8px;overflow:hidden;box-shadow:0 1px 3px rgba(0,0,0,.12)}
.card img{width:100%;aspect-ratio:4/3;object-fit:cover;display:block;background:#eee}
.card .body{padding:.6rem .8rem}
.card .title{font-size:.95rem;margin:0 0 .3rem}
.card .meta{display:flex;justify-content:space-between;font-size:.85rem;color:#666}
.card .badge{display:inline-block;font-size:.7rem;background:#1a6;color:#fff;border-radius:3px;padding:.1rem .35rem;margin-bottom:.3rem}
.empty{margin:3rem auto;text-align:center;color:#888}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Hits}}<div class="grid">
{{range .Hits}}<div class="card">
{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}" loading="lazy">{{end}}
<div class="body">
{{if .Featured}}<span class="badge">Featured</span>{{end}}
<p class="title">{{.Title}}</p>
<div class="meta"><span>{{price .}}</span><span>{{km .DistanceM}}</span></div>
</div>
</div>
{{end}}</div>
{{else}}<p class="empty">No products found nearby.</p>{{end}}
</body>
</html>
`
