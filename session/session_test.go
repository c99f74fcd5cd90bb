package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cinerecomenda/movies"
	"github.com/s0up4200/cinerecomenda/pagination"
)

// mockRecommender implements movies.Recommender for testing
type mockRecommender struct {
	mu         sync.Mutex
	collection *movies.RecommendationsResponse
	single     *movies.Movie
	err        error

	// Track calls for verification
	lastFilters movies.Filters
	listCalls   int
	randomCalls int

	// block, when set, holds a request until it is closed
	block   chan struct{}
	started chan struct{}
}

func (m *mockRecommender) GetRecommendations(ctx context.Context, filters movies.Filters) (*movies.RecommendationsResponse, error) {
	m.wait()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	m.lastFilters = filters
	if m.err != nil {
		return nil, m.err
	}
	resp := *m.collection
	resp.Page = filters.Page
	return &resp, nil
}

func (m *mockRecommender) GetRandomRecommendation(ctx context.Context, filters movies.Filters) (*movies.Movie, error) {
	m.wait()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.randomCalls++
	m.lastFilters = filters
	if m.err != nil {
		return nil, m.err
	}
	return m.single, nil
}

func (m *mockRecommender) wait() {
	if m.started != nil {
		m.started <- struct{}{}
	}
	if m.block != nil {
		<-m.block
	}
}

func (m *mockRecommender) setErr(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

func newMock() *mockRecommender {
	return &mockRecommender{
		collection: &movies.RecommendationsResponse{
			Results:      []movies.Movie{{ID: 1, Title: "Alien"}, {ID: 2, Title: "Aliens"}},
			TotalPages:   10,
			TotalResults: 200,
		},
		single: &movies.Movie{ID: 3, Title: "Arrival"},
	}
}

func TestNewSessionIsIdle(t *testing.T) {
	s := New(newMock(), zerolog.Nop())
	snap := s.Snapshot()

	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, movies.TypeCollection, snap.Mode)
	assert.Equal(t, 1, snap.Page)
	assert.False(t, snap.HasResults())
	assert.False(t, snap.ShowPagination)
}

func TestSubmitCollection(t *testing.T) {
	api := newMock()
	s := New(api, zerolog.Nop(), WithFilters(movies.Filters{GenreIDs: []int{28}, Page: 9}))

	require.NoError(t, s.Submit(context.Background()))

	snap := s.Snapshot()
	assert.Equal(t, StateSuccess, snap.State)
	assert.Equal(t, 1, snap.Page)
	require.NotNil(t, snap.Collection)
	assert.Nil(t, snap.Single)
	assert.Len(t, snap.Collection.Results, 2)
	assert.Equal(t, 1, api.lastFilters.Page, "submit always starts from the first page")
	assert.Equal(t, []int{28}, api.lastFilters.GenreIDs)

	assert.True(t, snap.ShowPagination)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "...", "10"}, pagination.Labels(snap.Pages))
}

func TestSubmitSingle(t *testing.T) {
	api := newMock()
	s := New(api, zerolog.Nop(), WithMode(movies.TypeSingle))

	require.NoError(t, s.Submit(context.Background()))

	snap := s.Snapshot()
	assert.Equal(t, StateSuccess, snap.State)
	require.NotNil(t, snap.Single)
	assert.Equal(t, "Arrival", snap.Single.Title)
	assert.Nil(t, snap.Collection)
	assert.False(t, snap.ShowPagination)
	assert.Equal(t, 1, api.randomCalls)
	assert.Zero(t, api.listCalls)
}

func TestSubmitError(t *testing.T) {
	api := newMock()
	api.setErr(errors.New("error fetching recommendations: Bad Gateway"))
	s := New(api, zerolog.Nop())

	err := s.Submit(context.Background())
	require.Error(t, err)

	snap := s.Snapshot()
	assert.Equal(t, StateError, snap.State)
	assert.Equal(t, "error fetching recommendations: Bad Gateway", snap.Error)
	assert.False(t, snap.HasResults())
}

func TestErrorClearedOnNextFetch(t *testing.T) {
	api := newMock()
	api.setErr(errors.New("boom"))
	s := New(api, zerolog.Nop())

	require.Error(t, s.Submit(context.Background()))

	api.setErr(nil)
	require.NoError(t, s.Submit(context.Background()))

	snap := s.Snapshot()
	assert.Equal(t, StateSuccess, snap.State)
	assert.Empty(t, snap.Error)
}

func TestSetModeClearsResultsAndErrors(t *testing.T) {
	t.Run("results", func(t *testing.T) {
		s := New(newMock(), zerolog.Nop())
		require.NoError(t, s.Submit(context.Background()))
		require.True(t, s.Snapshot().HasResults())

		require.NoError(t, s.SetMode(movies.TypeSingle))

		snap := s.Snapshot()
		assert.Equal(t, StateIdle, snap.State)
		assert.Equal(t, movies.TypeSingle, snap.Mode)
		assert.False(t, snap.HasResults())
		assert.False(t, snap.ShowPagination)
	})

	t.Run("errors", func(t *testing.T) {
		api := newMock()
		api.setErr(errors.New("boom"))
		s := New(api, zerolog.Nop(), WithMode(movies.TypeSingle))
		require.Error(t, s.Submit(context.Background()))

		require.NoError(t, s.SetMode(movies.TypeCollection))

		snap := s.Snapshot()
		assert.Equal(t, StateIdle, snap.State)
		assert.Empty(t, snap.Error)
	})

	t.Run("same mode keeps results", func(t *testing.T) {
		s := New(newMock(), zerolog.Nop())
		require.NoError(t, s.Submit(context.Background()))

		require.NoError(t, s.SetMode(movies.TypeCollection))
		assert.Equal(t, StateSuccess, s.Snapshot().State)
	})

	t.Run("invalid mode", func(t *testing.T) {
		s := New(newMock(), zerolog.Nop())
		require.Error(t, s.SetMode("both"))
	})
}

func TestReset(t *testing.T) {
	s := New(newMock(), zerolog.Nop(),
		WithMode(movies.TypeSingle),
		WithFilters(movies.Filters{Decade: 1990, Mood: "happy"}),
	)
	require.NoError(t, s.Submit(context.Background()))

	require.NoError(t, s.Reset())

	snap := s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, movies.TypeCollection, snap.Mode)
	assert.True(t, snap.Filters.IsZero())
	assert.Equal(t, 1, snap.Page)
	assert.False(t, snap.HasResults())
}

func TestChangePage(t *testing.T) {
	api := newMock()
	s := New(api, zerolog.Nop())

	assert.ErrorIs(t, s.ChangePage(context.Background(), 2), ErrNoCollection)

	require.NoError(t, s.Submit(context.Background()))
	require.NoError(t, s.ChangePage(context.Background(), 5))

	snap := s.Snapshot()
	assert.Equal(t, 5, snap.Page)
	assert.Equal(t, 5, api.lastFilters.Page)
	assert.Equal(t, []string{"1", "...", "4", "5", "6", "...", "10"}, pagination.Labels(snap.Pages))

	err := s.ChangePage(context.Background(), 11)
	assert.ErrorIs(t, err, pagination.ErrPageOutOfRange)
	assert.Equal(t, 5, s.Snapshot().Page)
}

func TestNextAndPrevPage(t *testing.T) {
	s := New(newMock(), zerolog.Nop())
	require.NoError(t, s.Submit(context.Background()))

	assert.ErrorIs(t, s.PrevPage(context.Background()), pagination.ErrPageOutOfRange)

	require.NoError(t, s.NextPage(context.Background()))
	assert.Equal(t, 2, s.Snapshot().Page)

	require.NoError(t, s.ChangePage(context.Background(), 10))
	assert.ErrorIs(t, s.NextPage(context.Background()), pagination.ErrPageOutOfRange)

	require.NoError(t, s.PrevPage(context.Background()))
	assert.Equal(t, 9, s.Snapshot().Page)
}

func TestFailedPageChangeKeepsCollection(t *testing.T) {
	api := newMock()
	s := New(api, zerolog.Nop())
	require.NoError(t, s.Submit(context.Background()))

	api.setErr(errors.New("boom"))
	require.Error(t, s.ChangePage(context.Background(), 3))

	snap := s.Snapshot()
	assert.Equal(t, StateError, snap.State)
	assert.Equal(t, 1, snap.Page)
	assert.NotNil(t, snap.Collection)
}

func TestPageChangeInSingleMode(t *testing.T) {
	s := New(newMock(), zerolog.Nop(), WithMode(movies.TypeSingle))
	require.NoError(t, s.Submit(context.Background()))
	assert.ErrorIs(t, s.ChangePage(context.Background(), 2), ErrNoCollection)
}

func TestObserverSeesLifecycle(t *testing.T) {
	var states []State
	var paginationWhileLoading bool
	s := New(newMock(), zerolog.Nop(), WithObserver(func(snap Snapshot) {
		states = append(states, snap.State)
		if snap.Loading() && snap.ShowPagination {
			paginationWhileLoading = true
		}
	}))

	require.NoError(t, s.Submit(context.Background()))
	require.NoError(t, s.ChangePage(context.Background(), 2))
	require.NoError(t, s.SetMode(movies.TypeSingle))

	assert.Equal(t, []State{StateLoading, StateSuccess, StateLoading, StateSuccess, StateIdle}, states)
	assert.False(t, paginationWhileLoading)
}

func TestSingleModeClearsBeforeLoading(t *testing.T) {
	var loadingSnap Snapshot
	api := newMock()
	s := New(api, zerolog.Nop(), WithMode(movies.TypeSingle), WithObserver(func(snap Snapshot) {
		if snap.Loading() {
			loadingSnap = snap
		}
	}))

	require.NoError(t, s.Submit(context.Background()))
	require.NoError(t, s.Submit(context.Background()))

	assert.Nil(t, loadingSnap.Single)
	assert.Equal(t, 2, api.randomCalls)
}

func TestOneRequestInFlight(t *testing.T) {
	api := newMock()
	api.block = make(chan struct{})
	api.started = make(chan struct{}, 1)
	s := New(api, zerolog.Nop())

	done := make(chan error, 1)
	go func() {
		done <- s.Submit(context.Background())
	}()
	<-api.started

	assert.Equal(t, StateLoading, s.Snapshot().State)
	assert.ErrorIs(t, s.Submit(context.Background()), ErrRequestInFlight)
	assert.ErrorIs(t, s.SetMode(movies.TypeSingle), ErrRequestInFlight)
	assert.ErrorIs(t, s.Reset(), ErrRequestInFlight)

	close(api.block)
	require.NoError(t, <-done)
	assert.Equal(t, StateSuccess, s.Snapshot().State)
	assert.Equal(t, 1, api.listCalls)
}

func TestFilterEditing(t *testing.T) {
	s := New(newMock(), zerolog.Nop())

	s.ToggleGenre(28)
	s.ToggleGenre(12)
	s.UpdateFilters(func(f movies.Filters) movies.Filters {
		f.Decade = 2000
		return f
	})
	assert.Equal(t, movies.Filters{GenreIDs: []int{28, 12}, Decade: 2000}, s.Filters())

	s.ToggleGenre(28)
	s.ToggleGenre(12)
	assert.Nil(t, s.Filters().GenreIDs)

	f := movies.Filters{GenreIDs: []int{18}}
	s.SetFilters(f)
	f.GenreIDs[0] = 99
	assert.Equal(t, []int{18}, s.Filters().GenreIDs)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "success", StateSuccess.String())
	assert.Equal(t, "error", StateError.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestFetchPage(t *testing.T) {
	api := newMock()
	s := New(api, zerolog.Nop())

	require.NoError(t, s.FetchPage(context.Background(), 4))
	snap := s.Snapshot()
	assert.Equal(t, StateSuccess, snap.State)
	assert.Equal(t, 4, snap.Page)
	assert.Equal(t, 4, api.lastFilters.Page)
	assert.Equal(t, 1, api.listCalls)

	assert.ErrorIs(t, s.FetchPage(context.Background(), 0), pagination.ErrPageOutOfRange)
	assert.ErrorIs(t, s.FetchPage(context.Background(), movies.MaxPage+1), pagination.ErrPageOutOfRange)

	single := New(api, zerolog.Nop(), WithMode(movies.TypeSingle))
	assert.ErrorIs(t, single.FetchPage(context.Background(), 2), ErrNoCollection)
}
