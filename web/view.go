package web

import (
	"net/url"
	"strconv"

	"github.com/s0up4200/cinerecomenda/catalog"
	"github.com/s0up4200/cinerecomenda/match"
	"github.com/s0up4200/cinerecomenda/movies"
	"github.com/s0up4200/cinerecomenda/pagination"
	"github.com/s0up4200/cinerecomenda/session"
)

// Query parameters used by the form on top of the filter keys
const (
	paramMode   = "mode"
	paramSubmit = "submit"
	paramMatch  = "match"
)

type option struct {
	Value    string
	Label    string
	Selected bool
}

type cardView struct {
	Movie         movies.Movie
	Featured      bool
	TitleLimit    int
	OverviewLimit int
}

type link struct {
	Href     string
	Disabled bool
}

type pageLink struct {
	Label   string
	Href    string
	Current bool
	Gap     bool
}

type pagerView struct {
	Prev  link
	Next  link
	Pages []pageLink
}

type indexView struct {
	Mode      movies.RecommendationType
	ModeLinks struct {
		Collection string
		Single     string
	}
	Filters   movies.Filters
	Genres    []option
	Decades   []option
	Moods     []option
	Languages []option
	SortKeys  []option
	Match     string
	Loading   bool
	Error     string

	Featured     *cardView
	Collection   bool
	Cards        []cardView
	Page         int
	TotalPages   int
	TotalResults int
	Pager        *pagerView
}

type detailsView struct {
	PageTitle string
	Back      string
	Details   *movies.MovieDetails
	Error     string
}

type limits struct {
	title    int
	overview int
}

// formQuery rebuilds the query string for the current filters
func formQuery(filters movies.Filters, mode movies.RecommendationType, expression string) url.Values {
	v := filters.WithPage(0).Values()
	v.Set(paramMode, string(mode))
	if expression != "" {
		v.Set(paramMatch, expression)
	}
	return v
}

func pageHref(base url.Values, page int) string {
	v := url.Values{}
	for k, vals := range base {
		v[k] = append([]string(nil), vals...)
	}
	v.Set(paramSubmit, "1")
	v.Set(movies.ParamPage, strconv.Itoa(page))
	return "/?" + v.Encode()
}

func newIndexView(snap session.Snapshot, matcher *match.Matcher, expression string, lim limits) indexView {
	f := snap.Filters
	view := indexView{
		Mode:    snap.Mode,
		Filters: f,
		Match:   expression,
		Loading: snap.Loading(),
		Error:   snap.Error,
	}

	// Switching mode keeps the filters but drops results.
	for _, mode := range []movies.RecommendationType{movies.TypeCollection, movies.TypeSingle} {
		href := "/?" + formQuery(f, mode, expression).Encode()
		if mode.IsSingle() {
			view.ModeLinks.Single = href
		} else {
			view.ModeLinks.Collection = href
		}
	}

	for _, g := range catalog.Genres() {
		view.Genres = append(view.Genres, option{
			Value:    strconv.Itoa(g.ID),
			Label:    g.Name,
			Selected: f.HasGenre(g.ID),
		})
	}
	for _, d := range catalog.Decades() {
		view.Decades = append(view.Decades, option{
			Value:    strconv.Itoa(d.Year),
			Label:    d.Label,
			Selected: f.Decade == d.Year,
		})
	}
	for _, m := range catalog.Moods() {
		view.Moods = append(view.Moods, option{Value: m.Tag, Label: m.Label, Selected: f.Mood == m.Tag})
	}
	for _, l := range catalog.Languages() {
		view.Languages = append(view.Languages, option{Value: l.Code, Label: l.Name, Selected: f.OriginalLanguage == l.Code})
	}
	for _, key := range catalog.SortKeys() {
		for _, dir := range []string{".desc", ".asc"} {
			value := key + dir
			view.SortKeys = append(view.SortKeys, option{Value: value, Label: value, Selected: f.SortBy == value})
		}
	}

	if snap.Single != nil {
		view.Featured = &cardView{
			Movie:         *snap.Single,
			Featured:      true,
			TitleLimit:    lim.title,
			OverviewLimit: lim.overview,
		}
	}

	if snap.Collection != nil {
		results := snap.Collection.Results
		if matcher != nil {
			results = matcher.Apply(results)
		}

		view.Collection = true
		view.Page = snap.Page
		view.TotalPages = snap.Collection.TotalPages
		view.TotalResults = snap.Collection.TotalResults
		for _, m := range results {
			view.Cards = append(view.Cards, cardView{Movie: m, TitleLimit: lim.title, OverviewLimit: lim.overview})
		}
	}

	if snap.ShowPagination {
		view.Pager = newPagerView(snap.Pages, snap.Page, snap.TotalPages(), formQuery(f, snap.Mode, expression))
	}

	return view
}

func newPagerView(items []pagination.Item, current, total int, base url.Values) *pagerView {
	pv := &pagerView{}

	if prev, ok := pagination.Previous(current); ok {
		pv.Prev = link{Href: pageHref(base, prev)}
	} else {
		pv.Prev = link{Disabled: true}
	}
	if next, ok := pagination.Next(current, total); ok {
		pv.Next = link{Href: pageHref(base, next)}
	} else {
		pv.Next = link{Disabled: true}
	}

	for _, item := range items {
		pl := pageLink{Label: item.Label(), Gap: item.Gap, Current: item.IsCurrent(current)}
		if !item.Gap && !pl.Current {
			pl.Href = pageHref(base, item.Page)
		}
		pv.Pages = append(pv.Pages, pl)
	}

	return pv
}
