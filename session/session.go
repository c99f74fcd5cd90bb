// Package session holds the state of one recommendation form: the filters
// being edited, the recommendation mode, the current page, and the
// lifecycle of the request that fills the results.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cinerecomenda/movies"
	"github.com/s0up4200/cinerecomenda/pagination"
)

// Common errors
var (
	// ErrRequestInFlight indicates a fetch was started while another one runs
	ErrRequestInFlight = errors.New("a request is already in progress")
	// ErrNoCollection indicates a page change without a collection to page through
	ErrNoCollection = errors.New("no collection to page through")
)

// State is the lifecycle state of the form
type State int

const (
	// StateIdle means nothing has been requested since the last reset
	StateIdle State = iota
	// StateLoading means a request is in flight
	StateLoading
	// StateSuccess means the last request produced a result
	StateSuccess
	// StateError means the last request failed
	StateError
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Observer is called with a snapshot after every state change
type Observer func(Snapshot)

// Option configures a Session
type Option func(*Session)

// WithMaxVisiblePages sets the size of the pagination strip
func WithMaxVisiblePages(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxVisible = n
		}
	}
}

// WithObserver registers a callback for state changes
func WithObserver(fn Observer) Option {
	return func(s *Session) {
		if fn != nil {
			s.observers = append(s.observers, fn)
		}
	}
}

// WithFilters sets the initial filters
func WithFilters(f movies.Filters) Option {
	return func(s *Session) {
		s.filters = f
	}
}

// WithMode sets the initial recommendation mode
func WithMode(mode movies.RecommendationType) Option {
	return func(s *Session) {
		s.mode = mode
	}
}

// Session is the form orchestration state machine
type Session struct {
	api        movies.Recommender
	logger     zerolog.Logger
	maxVisible int
	observers  []Observer

	mu         sync.Mutex
	filters    movies.Filters
	mode       movies.RecommendationType
	state      State
	page       int
	single     *movies.Movie
	collection *movies.RecommendationsResponse
	errMsg     string
}

// New creates a session in the idle state
func New(api movies.Recommender, logger zerolog.Logger, opts ...Option) *Session {
	s := &Session{
		api:        api,
		logger:     logger,
		maxVisible: pagination.DefaultMaxVisible,
		mode:       movies.DefaultRecommendationType,
		state:      StateIdle,
		page:       1,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Filters returns the filters being edited
func (s *Session) Filters() movies.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneFilters(s.filters)
}

// SetFilters replaces the filters. Results stay until the next fetch.
func (s *Session) SetFilters(f movies.Filters) {
	s.mu.Lock()
	s.filters = cloneFilters(f)
	s.mu.Unlock()
}

// UpdateFilters applies fn to a copy of the filters and stores the result
func (s *Session) UpdateFilters(fn func(movies.Filters) movies.Filters) {
	s.mu.Lock()
	s.filters = fn(cloneFilters(s.filters))
	s.mu.Unlock()
}

// ToggleGenre selects or deselects a genre
func (s *Session) ToggleGenre(id int) {
	s.UpdateFilters(func(f movies.Filters) movies.Filters {
		return f.ToggleGenre(id)
	})
}

// Mode returns the current recommendation mode
func (s *Session) Mode() movies.RecommendationType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode switches the recommendation mode. Switching to a different mode
// clears results and errors and returns to idle.
func (s *Session) SetMode(mode movies.RecommendationType) error {
	if _, err := movies.ParseRecommendationType(string(mode)); err != nil {
		return err
	}

	s.mu.Lock()
	if s.state == StateLoading {
		s.mu.Unlock()
		return ErrRequestInFlight
	}
	if s.mode == mode {
		s.mu.Unlock()
		return nil
	}
	s.mode = mode
	s.clearResultsLocked()
	s.state = StateIdle
	s.page = 1
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Debug().Str("mode", string(mode)).Msg("Recommendation mode changed")
	s.notify(snap)
	return nil
}

// Reset clears filters, results and errors and returns to collection mode
func (s *Session) Reset() error {
	s.mu.Lock()
	if s.state == StateLoading {
		s.mu.Unlock()
		return ErrRequestInFlight
	}
	s.filters = movies.Filters{}
	s.mode = movies.DefaultRecommendationType
	s.clearResultsLocked()
	s.state = StateIdle
	s.page = 1
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// Submit starts a new search from the first page
func (s *Session) Submit(ctx context.Context) error {
	return s.fetch(ctx, 1)
}

// ChangePage loads another page of the current collection
func (s *Session) ChangePage(ctx context.Context, page int) error {
	s.mu.Lock()
	collection := s.collection
	mode := s.mode
	s.mu.Unlock()

	if mode.IsSingle() || collection == nil {
		return ErrNoCollection
	}
	if _, err := pagination.Jump(page, collection.TotalPages); err != nil {
		return err
	}
	return s.fetch(ctx, page)
}

// FetchPage loads a page with no collection to check it against, for
// callers that rebuild a session from a link. Pages past the last one come
// back empty.
func (s *Session) FetchPage(ctx context.Context, page int) error {
	if s.Mode().IsSingle() {
		return ErrNoCollection
	}
	if _, err := pagination.Jump(page, movies.MaxPage); err != nil {
		return err
	}
	return s.fetch(ctx, page)
}

// NextPage loads the page after the current one
func (s *Session) NextPage(ctx context.Context) error {
	snap := s.Snapshot()
	if snap.Collection == nil {
		return ErrNoCollection
	}
	next, ok := pagination.Next(snap.Page, snap.Collection.TotalPages)
	if !ok {
		return fmt.Errorf("%w: already on the last page", pagination.ErrPageOutOfRange)
	}
	return s.ChangePage(ctx, next)
}

// PrevPage loads the page before the current one
func (s *Session) PrevPage(ctx context.Context) error {
	snap := s.Snapshot()
	if snap.Collection == nil {
		return ErrNoCollection
	}
	prev, ok := pagination.Previous(snap.Page)
	if !ok {
		return fmt.Errorf("%w: already on the first page", pagination.ErrPageOutOfRange)
	}
	return s.ChangePage(ctx, prev)
}

// fetch runs one request. The lock is never held across the network call.
func (s *Session) fetch(ctx context.Context, page int) error {
	s.mu.Lock()
	if s.state == StateLoading {
		s.mu.Unlock()
		return ErrRequestInFlight
	}
	s.state = StateLoading
	s.errMsg = ""
	mode := s.mode
	filters := cloneFilters(s.filters)
	if mode.IsSingle() {
		s.single = nil
		s.collection = nil
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)

	log := s.logger.With().Str("mode", string(mode)).Int("page", page).Logger()
	log.Debug().Msg("Fetching recommendations")

	var (
		single     *movies.Movie
		collection *movies.RecommendationsResponse
		err        error
	)
	if mode.IsSingle() {
		single, err = s.api.GetRandomRecommendation(ctx, filters)
	} else {
		collection, err = s.api.GetRecommendations(ctx, filters.WithPage(page))
	}

	s.mu.Lock()
	if err != nil {
		s.state = StateError
		s.errMsg = err.Error()
	} else {
		s.state = StateSuccess
		if mode.IsSingle() {
			s.single = single
			s.collection = nil
		} else {
			s.collection = collection
			s.single = nil
			s.page = page
		}
	}
	snap = s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		log.Warn().Err(err).Msg("Recommendation request failed")
	}
	s.notify(snap)
	return err
}

func (s *Session) clearResultsLocked() {
	s.single = nil
	s.collection = nil
	s.errMsg = ""
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:      s.state,
		Mode:       s.mode,
		Filters:    cloneFilters(s.filters),
		Page:       s.page,
		Single:     s.single,
		Collection: s.collection,
		Error:      s.errMsg,
	}
	if s.collection != nil && s.collection.TotalPages > 1 && s.state != StateLoading {
		snap.ShowPagination = true
		snap.Pages = pagination.Window(s.page, s.collection.TotalPages, s.maxVisible)
	}
	return snap
}

func (s *Session) notify(snap Snapshot) {
	for _, fn := range s.observers {
		fn(snap)
	}
}

func cloneFilters(f movies.Filters) movies.Filters {
	f.GenreIDs = slices.Clone(f.GenreIDs)
	return f
}
