package web

import (
	"embed"
	"html/template"
	"io/fs"
	"strings"

	"github.com/s0up4200/cinerecomenda/movies"
	"github.com/s0up4200/cinerecomenda/render"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// PlaceholderPath is where the placeholder poster is served
const PlaceholderPath = "/placeholder-movie.svg"

func parseTemplates(images movies.ImageResolver) (*template.Template, error) {
	funcs := template.FuncMap{
		"imageURL":    images.URL,
		"truncate":    render.Truncate,
		"rating":      render.FormatRating,
		"ratingTier":  func(v float64) string { return string(render.RatingTier(v)) },
		"runtime":     render.FormatRuntime,
		"money":       render.FormatMoney,
		"count":       render.FormatCount,
		"releaseDate": render.FormatReleaseDate,
		"year":        render.FormatYear,
		"upper":       strings.ToUpper,
	}

	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

func staticFiles() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
