package match

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/cinerecomenda/catalog"
	"github.com/s0up4200/cinerecomenda/movies"
)

// DefaultCacheSize is the number of compiled expressions kept by NewCompiler
const DefaultCacheSize = 64

// Matcher is a compiled expression ready to be evaluated against movies.
// It is safe for concurrent use.
type Matcher struct {
	expression string
	program    *vm.Program
	funcs      map[string]any
	now        func() time.Time
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCacheSize sets how many compiled expressions are kept. Zero disables caching.
func WithCacheSize(size int) CompilerOption {
	return func(c *Compiler) {
		if size <= 0 {
			c.cache = nil
			return
		}
		c.cache = newLRUCache[*Matcher](size)
	}
}

// WithFunctions adds helper functions available to expressions
func WithFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.funcs, funcs)
	}
}

// Compiler turns expressions into Matchers
type Compiler struct {
	funcs map[string]any
	cache *lruCache[*Matcher]
	now   func() time.Time
}

// NewCompiler creates a compiler with the default helpers and cache
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{
		funcs: make(map[string]any),
		cache: newLRUCache[*Matcher](DefaultCacheSize),
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compile compiles an expression. Unknown variables and non-boolean results
// are rejected here rather than at evaluation time.
func (c *Compiler) Compile(expression string) (*Matcher, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	if c.cache != nil {
		if m, ok := c.cache.get(expression); ok {
			return m, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.environment(movies.Movie{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	m := &Matcher{
		expression: expression,
		program:    program,
		funcs:      c.funcs,
		now:        c.now,
	}

	if c.cache != nil {
		c.cache.put(expression, m)
	}

	return m, nil
}

// CachedCount returns the number of cached expressions
func (c *Compiler) CachedCount() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.size()
}

// ClearCache drops every cached expression
func (c *Compiler) ClearCache() {
	if c.cache != nil {
		c.cache.clear()
	}
}

// Expression returns the source expression
func (m *Matcher) Expression() string {
	return m.expression
}

// Eval evaluates the expression for one movie
func (m *Matcher) Eval(movie movies.Movie) (bool, error) {
	out, err := expr.Run(m.program, buildEnvironment(movie, m.funcs, m.now))
	if err != nil {
		return false, &EvaluationError{Expression: m.expression, MovieTitle: movie.Title, Err: err}
	}
	return out.(bool), nil
}

// Match reports whether the movie satisfies the expression. Evaluation
// errors count as no match.
func (m *Matcher) Match(movie movies.Movie) bool {
	ok, err := m.Eval(movie)
	return err == nil && ok
}

// Apply returns the movies that match, keeping their order
func (m *Matcher) Apply(list []movies.Movie) []movies.Movie {
	out := make([]movies.Movie, 0, len(list))
	for _, movie := range list {
		if m.Match(movie) {
			out = append(out, movie)
		}
	}
	return out
}

// ApplyResponse returns a copy of the page holding only matching movies.
// Page counts are left untouched since they describe the remote result.
func (m *Matcher) ApplyResponse(resp *movies.RecommendationsResponse) *movies.RecommendationsResponse {
	if resp == nil {
		return nil
	}
	narrowed := *resp
	narrowed.Results = m.Apply(resp.Results)
	return &narrowed
}

func (c *Compiler) environment(movie movies.Movie) map[string]any {
	return buildEnvironment(movie, c.funcs, c.now)
}

// buildEnvironment exposes one movie and the helper functions to an expression
func buildEnvironment(movie movies.Movie, custom map[string]any, now func() time.Time) map[string]any {
	env := make(map[string]any, 24+len(custom))

	genreNames := catalog.GenreNames(movie.GenreIDs)
	year := movie.Year()

	env["Title"] = movie.Title
	env["Overview"] = movie.Overview
	env["ReleaseDate"] = movie.ReleaseDate
	env["Year"] = year
	env["Rating"] = movie.VoteAverage
	env["Votes"] = movie.VoteCount
	env["Language"] = movie.OriginalLanguage
	env["GenreIDs"] = movie.GenreIDs
	env["Genres"] = genreNames
	env["HasPoster"] = movie.PosterPath != ""

	env["hasGenre"] = func(name string) bool {
		for _, g := range genreNames {
			if strings.EqualFold(g, name) {
				return true
			}
		}
		return false
	}
	env["inDecade"] = func(start int) bool {
		return year != 0 && year >= start && year < start+10
	}
	env["releasedWithin"] = func(years int) bool {
		released, ok := movie.Released()
		return ok && !released.Before(now().AddDate(-years, 0, 0))
	}
	env["contains"] = func(s, sub string) bool {
		return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
	}
	env["startsWith"] = func(s, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
	}
	env["endsWith"] = func(s, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(s), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper

	maps.Copy(env, custom)

	return env
}
