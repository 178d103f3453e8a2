// Package render turns view state into HTML.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"math"

	"github.com/actuallystonmai/movie-reviews/internal/domain"
	"github.com/actuallystonmai/movie-reviews/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	smallImageHeight = 300
	fullImageHeight  = 450
	starCount        = 5
)

var cardTmpl = template.Must(
	template.New("card").Funcs(baseFuncs()).ParseFS(templateFS, "templates/base.html", "templates/card.html"),
)

type cardData struct {
	Movie       domain.Movie
	Small       bool
	ImageHeight int
}

// Card renders one movie. small selects the compact grid layout: vertical,
// shorter poster, smaller heading and no description.
func Card(m domain.Movie, small bool) (template.HTML, error) {
	data := cardData{Movie: m, Small: small, ImageHeight: fullImageHeight}
	if small {
		data.ImageHeight = smallImageHeight
	}

	var buf bytes.Buffer
	if err := cardTmpl.ExecuteTemplate(&buf, "card", data); err != nil {
		return "", fmt.Errorf("render card for movie %d: %w", m.ID, err)
	}
	return template.HTML(buf.String()), nil
}

type ListPage struct {
	State view.ListState
	Flash string
}

type DetailPage struct {
	State view.DetailState
	Flash string
}

// RatingOptions lists the selectable widget ratings, 0 to 5 in half steps.
func (DetailPage) RatingOptions() []float64 {
	opts := make([]float64, 0, starCount*2+1)
	for i := 0; i <= starCount*2; i++ {
		opts = append(opts, float64(i)/2)
	}
	return opts
}

type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, name := range []string{"list", "detail"} {
		tmpl, err := template.New(name).Funcs(pageFuncs()).ParseFS(templateFS,
			"templates/base.html",
			"templates/card.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

func (r *Renderer) List(w io.Writer, page ListPage) error {
	return r.execute(w, "list", page)
}

func (r *Renderer) Detail(w io.Writer, page DetailPage) error {
	return r.execute(w, "detail", page)
}

// execute renders into a buffer first so a template error never leaves a
// half-written page.
func (r *Renderer) execute(w io.Writer, name string, data any) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("render %s page: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Static returns the embedded stylesheet tree.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func baseFuncs() template.FuncMap {
	return template.FuncMap{
		"stars":         StarFills,
		"displayRating": domain.ToDisplayScale,
	}
}

func pageFuncs() template.FuncMap {
	funcs := baseFuncs()
	funcs["card"] = Card
	return funcs
}

// StarFills returns, for each of the five stars, how full it is in percent
// for a 0-5 value, at a precision of a tenth of a star.
func StarFills(value float64) []int {
	fills := make([]int, starCount)
	for i := range fills {
		f := math.Max(0, math.Min(1, value-float64(i)))
		fills[i] = int(math.Round(f*10)) * 10
	}
	return fills
}
