// Package web serves the recommendation form as server rendered HTML.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/s0up4200/cinerecomenda/match"
	"github.com/s0up4200/cinerecomenda/movies"
	"github.com/s0up4200/cinerecomenda/pagination"
	"github.com/s0up4200/cinerecomenda/render"
	"github.com/s0up4200/cinerecomenda/session"
)

// DefaultListenAddr is used when no address is configured
const DefaultListenAddr = "127.0.0.1:3000"

const shutdownTimeout = 5 * time.Second

// Config wires the server to the API and display settings
type Config struct {
	API             movies.API
	Images          movies.ImageResolver
	Compiler        *match.Compiler
	MaxVisiblePages int
	TitleLimit      int
	OverviewLimit   int
	Logger          zerolog.Logger
}

// Server renders the form, results and details pages
type Server struct {
	api        movies.API
	compiler   *match.Compiler
	maxVisible int
	limits     limits
	templates  *template.Template
	logger     zerolog.Logger
}

// New parses the templates and creates a server
func New(cfg Config) (*Server, error) {
	if cfg.API == nil {
		return nil, errors.New("web: API client is required")
	}
	if cfg.Images.BaseURL == "" {
		cfg.Images = movies.NewImageResolver("", cfg.Images.Placeholder)
	}
	if cfg.Compiler == nil {
		cfg.Compiler = match.NewCompiler()
	}
	if cfg.TitleLimit == 0 {
		cfg.TitleLimit = render.DefaultTitleLimit
	}
	if cfg.OverviewLimit == 0 {
		cfg.OverviewLimit = render.DefaultOverviewLimit
	}

	tmpl, err := parseTemplates(cfg.Images)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		api:        cfg.API,
		compiler:   cfg.Compiler,
		maxVisible: cfg.MaxVisiblePages,
		limits:     limits{title: cfg.TitleLimit, overview: cfg.OverviewLimit},
		templates:  tmpl,
		logger:     cfg.Logger,
	}, nil
}

// Handler returns the routes of the web UI
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/movies/{id}", s.handleDetails)
	r.Get(PlaceholderPath, s.handlePlaceholder)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(staticFiles())))

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultListenAddr
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info().Str("addr", ln.Addr().String()).Msg("Web UI listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("Shutting down web UI")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// handleIndex builds a fresh session from the query string. Without the
// submit parameter it only renders the form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	status := http.StatusOK

	filters, parseErr := movies.ParseFilters(query)

	mode := movies.DefaultRecommendationType
	if raw := query.Get(paramMode); raw != "" {
		parsed, err := movies.ParseRecommendationType(raw)
		if err != nil && parseErr == nil {
			parseErr = err
		}
		if err == nil {
			mode = parsed
		}
	}

	expression := strings.TrimSpace(query.Get(paramMatch))
	var matcher *match.Matcher
	if expression != "" {
		m, err := s.compiler.Compile(expression)
		if err != nil && parseErr == nil {
			parseErr = err
		}
		matcher = m
	}

	page := filters.Page
	filters.Page = 0

	sess := session.New(s.api, s.logger,
		session.WithFilters(filters),
		session.WithMode(mode),
		session.WithMaxVisiblePages(s.maxVisible),
	)

	var preflightErr error
	if parseErr != nil {
		preflightErr = parseErr
	} else if query.Has(paramSubmit) {
		ctx := movies.ContextWithRequestID(r.Context(), chimiddleware.GetReqID(r.Context()))
		var err error
		if mode.IsSingle() || page <= 1 {
			err = sess.Submit(ctx)
		} else {
			err = sess.FetchPage(ctx, page)
		}
		if errors.Is(err, session.ErrNoCollection) || errors.Is(err, session.ErrRequestInFlight) ||
			errors.Is(err, pagination.ErrPageOutOfRange) {
			preflightErr = err
		}
	}

	view := newIndexView(sess.Snapshot(), matcher, expression, s.limits)
	if preflightErr != nil {
		view.Error = preflightErr.Error()
		status = http.StatusBadRequest
	}

	s.render(w, status, "index.html", view)
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	view := detailsView{PageTitle: "Movie details", Back: "/"}
	if ref := r.Referer(); ref != "" && sameOrigin(ref, r) {
		view.Back = ref
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		view.Error = movies.ErrInvalidMovieID.Error()
		s.render(w, http.StatusBadRequest, "details.html", view)
		return
	}

	ctx := movies.ContextWithRequestID(r.Context(), chimiddleware.GetReqID(r.Context()))
	details, err := s.api.GetMovieDetails(ctx, id)
	if err != nil {
		status := http.StatusBadGateway
		if movies.IsNotFound(err) {
			status = http.StatusNotFound
		}
		s.logger.Warn().Err(err).Int64("movie_id", id).Msg("Failed to load movie details")
		view.Error = err.Error()
		s.render(w, status, "details.html", view)
		return
	}

	view.Details = details
	view.PageTitle = details.Title
	s.render(w, http.StatusOK, "details.html", view)
}

func (s *Server) handlePlaceholder(w http.ResponseWriter, r *http.Request) {
	data, err := staticFS.ReadFile("static" + PlaceholderPath)
	if err != nil {
		http.Error(w, "placeholder missing", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}

// render executes into a buffer so a template error never leaves a half written page
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error().Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func sameOrigin(ref string, r *http.Request) bool {
	return strings.HasPrefix(ref, "http://"+r.Host+"/") || strings.HasPrefix(ref, "https://"+r.Host+"/")
}
