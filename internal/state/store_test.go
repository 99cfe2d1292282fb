package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/five82/jester/internal/jokes"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeAPI returns canned payloads and records calls.
type fakeAPI struct {
	random     string
	category   string
	search     string
	categories []string
	err        error

	calls []Kind
	// seen captures the store state observed while the request is in flight.
	store *Store
	seen  []Snapshot
}

func (f *fakeAPI) observe(kind Kind) {
	f.calls = append(f.calls, kind)
	if f.store != nil {
		f.seen = append(f.seen, f.store.Snapshot())
	}
}

func (f *fakeAPI) FetchRandom(context.Context) (string, error) {
	f.observe(KindRandom)
	return f.random, f.err
}

func (f *fakeAPI) FetchByCategory(_ context.Context, category string) (jokes.CategoryJoke, error) {
	f.observe(KindCategory)
	if f.err != nil {
		return jokes.CategoryJoke{}, f.err
	}
	return jokes.CategoryJoke{Joke: f.category, Category: category}, nil
}

func (f *fakeAPI) Search(context.Context, string) (string, error) {
	f.observe(KindSearch)
	return f.search, f.err
}

func (f *fakeAPI) ListCategories(context.Context) ([]string, error) {
	f.observe(KindCategories)
	return f.categories, f.err
}

// ignoreBookkeeping compares only the fields of the application state proper.
var ignoreBookkeeping = cmpopts.IgnoreFields(Snapshot{}, "Phases", "Dispatched", "UpdatedAt")

func TestDispatch_AllOperationsClearErrorAndSetLoadingBeforeResolution(t *testing.T) {
	requests := []Request{RandomRequest(), CategoryRequest("animal"), SearchRequest("kick"), CategoriesRequest()}
	for _, req := range requests {
		t.Run(req.Kind.String(), func(t *testing.T) {
			s := NewStore()
			// Leave an error behind so the dispatch has something to clear.
			s.Resolve(Result{Request: Request{Kind: req.Kind}, Err: errors.New("earlier failure")})
			require.NotEmpty(t, s.Snapshot().Err)

			api := &fakeAPI{random: "r", category: "c", search: "s", categories: []string{"a"}, store: s}
			s.Dispatch(context.Background(), api, req)

			require.Len(t, api.seen, 1)
			inFlight := api.seen[0]
			assert.True(t, inFlight.Loading, "loading while in flight")
			assert.Empty(t, inFlight.Err, "error cleared on dispatch")
			assert.Equal(t, PhasePending, inFlight.Phase(req.Kind))
		})
	}
}

func TestFetchRandom_Success(t *testing.T) {
	s := NewStore()
	snap := s.FetchRandom(context.Background(), &fakeAPI{random: "X"})

	want := Snapshot{Joke: "X", HasJoke: true, HasFetched: true}
	if diff := cmp.Diff(want, snap, ignoreBookkeeping); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, PhaseFulfilled, snap.Phase(KindRandom))
	assert.Equal(t, uint64(1), snap.Dispatched[KindRandom])
}

func TestFetchRandom_ClearsPreviousCategory(t *testing.T) {
	s := NewStore()
	s.FetchByCategory(context.Background(), &fakeAPI{category: "Y"}, "animal")
	snap := s.FetchRandom(context.Background(), &fakeAPI{random: "X"})

	assert.Equal(t, "X", snap.Joke)
	assert.False(t, snap.HasCategory)
	assert.Empty(t, snap.Category)
}

func TestFetchByCategory_Success(t *testing.T) {
	s := NewStore()
	snap := s.FetchByCategory(context.Background(), &fakeAPI{category: "Y"}, "animal")

	want := Snapshot{Joke: "Y", HasJoke: true, Category: "animal", HasCategory: true, HasFetched: true}
	if diff := cmp.Diff(want, snap, ignoreBookkeeping); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_EmptyResultUsesSpecificMessage(t *testing.T) {
	s := NewStore()
	s.FetchRandom(context.Background(), &fakeAPI{random: "old"})

	notFound := &jokes.Failure{Kind: jokes.EmptySearchResult, Op: "search jokes", Message: jokes.NoJokeFoundMessage}
	snap := s.Search(context.Background(), &fakeAPI{err: notFound}, "zzz")

	assert.Equal(t, "No joke found for this query", snap.Err)
	assert.False(t, snap.HasJoke)
	assert.Empty(t, snap.Joke)
	assert.False(t, snap.Loading)
	assert.True(t, snap.HasFetched)
	assert.Equal(t, PhaseRejected, snap.Phase(KindSearch))
}

func TestSearch_GenericFailureFallsBack(t *testing.T) {
	s := NewStore()
	snap := s.Search(context.Background(), &fakeAPI{err: errors.New("connection reset")}, "kick")

	assert.Equal(t, FailedJokeMessage, snap.Err)
	assert.False(t, snap.HasJoke)
}

func TestJokeFailures_UseGenericMessage(t *testing.T) {
	network := &jokes.Failure{Kind: jokes.NetworkOrParse, Op: "fetch random joke", Err: errors.New("timeout")}
	for _, req := range []Request{RandomRequest(), CategoryRequest("animal")} {
		t.Run(req.Kind.String(), func(t *testing.T) {
			s := NewStore()
			snap := s.Dispatch(context.Background(), &fakeAPI{err: network}, req)
			assert.Equal(t, FailedJokeMessage, snap.Err)
			assert.False(t, snap.HasJoke)
			assert.True(t, snap.HasFetched)
		})
	}
}

func TestListCategories_SuccessKeepsOrderAndLeavesFetchedFlag(t *testing.T) {
	s := NewStore()
	snap := s.ListCategories(context.Background(), &fakeAPI{categories: []string{"animal", "career"}})

	assert.Equal(t, []string{"animal", "career"}, snap.Categories)
	assert.False(t, snap.HasFetched, "category prefetch must not flip HasFetched")
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Err)
}

func TestListCategories_DoesNotTouchJokeFields(t *testing.T) {
	s := NewStore()
	s.FetchByCategory(context.Background(), &fakeAPI{category: "Y"}, "animal")

	api := &fakeAPI{categories: []string{"dev"}, store: s}
	s.ListCategories(context.Background(), api)
	inFlight := api.seen[0]
	assert.Equal(t, "Y", inFlight.Joke, "dispatch keeps joke")
	assert.Equal(t, "animal", inFlight.Category, "dispatch keeps category")

	snap := s.ListCategories(context.Background(), &fakeAPI{err: errors.New("boom")})
	assert.Equal(t, FailedCategoriesMessage, snap.Err)
	assert.Equal(t, "Y", snap.Joke)
	assert.True(t, snap.HasJoke)
	assert.Equal(t, "animal", snap.Category)
	assert.Equal(t, []string{"dev"}, snap.Categories, "failed reload keeps cached list")
}

func TestListCategories_FailureBeforeFirstFetchLeavesFlagFalse(t *testing.T) {
	s := NewStore()
	snap := s.ListCategories(context.Background(), &fakeAPI{err: errors.New("boom")})
	assert.False(t, snap.HasFetched)
	assert.Equal(t, PhaseRejected, snap.Phase(KindCategories))
}

func TestHasFetched_IsMonotonic(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Snapshot().HasFetched)

	req := s.Begin(RandomRequest())
	assert.False(t, s.Snapshot().HasFetched, "pending is not resolved")

	s.Resolve(Result{Request: req, Err: errors.New("boom")})
	assert.True(t, s.Snapshot().HasFetched)

	s.FetchRandom(context.Background(), &fakeAPI{random: "X"})
	s.ListCategories(context.Background(), &fakeAPI{categories: []string{"a"}})
	s.Begin(SearchRequest("q"))
	assert.True(t, s.Snapshot().HasFetched)
}

func TestRecoveryAfterFailure(t *testing.T) {
	s := NewStore()
	s.FetchRandom(context.Background(), &fakeAPI{err: errors.New("offline")})
	snap := s.FetchRandom(context.Background(), &fakeAPI{random: "back"})

	assert.Empty(t, snap.Err)
	assert.Equal(t, "back", snap.Joke)
	assert.True(t, snap.HasJoke)
}

func TestOverlappingRequests_LastResolutionWins(t *testing.T) {
	s := NewStore()
	first := s.Begin(SearchRequest("slow"))
	second := s.Begin(RandomRequest())

	s.Resolve(Result{Request: second, Joke: "fast"})
	assert.False(t, s.Snapshot().Loading, "first resolution clears loading")

	s.Resolve(Result{Request: first, Joke: "slow"})
	assert.Equal(t, "slow", s.Snapshot().Joke)
}

func TestStaleGuard_DropsOlderSameKindResolution(t *testing.T) {
	s := NewStore(WithStaleGuard())
	first := s.Begin(SearchRequest("one"))
	second := s.Begin(SearchRequest("two"))
	require.Equal(t, uint64(1), first.Seq)
	require.Equal(t, uint64(2), second.Seq)

	assert.True(t, s.Resolve(Result{Request: second, Joke: "two"}))
	assert.False(t, s.Resolve(Result{Request: first, Joke: "one"}))
	assert.Equal(t, "two", s.Snapshot().Joke)

	// Different kinds are tracked separately.
	cat := s.Begin(CategoryRequest("dev"))
	assert.True(t, s.Resolve(Result{Request: cat, Joke: "dev joke", Category: "dev"}))
}

func TestSnapshot_ClonesCategories(t *testing.T) {
	s := NewStore()
	s.ListCategories(context.Background(), &fakeAPI{categories: []string{"animal", "career"}})

	snap := s.Snapshot()
	snap.Categories[0] = "mutated"
	assert.Equal(t, "animal", s.Snapshot().Categories[0])
}

func TestSubscribe_ReceivesEveryTransition(t *testing.T) {
	s := NewStore()
	var got []Snapshot
	unsubscribe := s.Subscribe(func(snap Snapshot) { got = append(got, snap) })

	s.FetchRandom(context.Background(), &fakeAPI{random: "X"})
	require.Len(t, got, 2)
	assert.True(t, got[0].Loading)
	assert.Equal(t, PhasePending, got[0].Phase(KindRandom))
	assert.False(t, got[1].Loading)
	assert.Equal(t, "X", got[1].Joke)

	unsubscribe()
	s.FetchRandom(context.Background(), &fakeAPI{random: "Y"})
	assert.Len(t, got, 2)
}

func TestWithClock_StampsUpdates(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewStore(WithClock(func() time.Time { return fixed }))
	s.Begin(RandomRequest())
	assert.Equal(t, fixed, s.Snapshot().UpdatedAt)
}

func TestPerform_NilAPI(t *testing.T) {
	res := Perform(context.Background(), nil, RandomRequest())
	assert.Error(t, res.Err)

	s := NewStore()
	snap := s.Dispatch(context.Background(), nil, RandomRequest())
	assert.Equal(t, FailedJokeMessage, snap.Err)
}

func TestZeroValueStoreIsUsable(t *testing.T) {
	var s Store
	snap := s.FetchRandom(context.Background(), &fakeAPI{random: "X"})
	assert.Equal(t, "X", snap.Joke)
}

func TestKindAndPhaseStrings(t *testing.T) {
	assert.Equal(t, "fetch_random", KindRandom.String())
	assert.Equal(t, "list_categories", KindCategories.String())
	assert.Equal(t, "unknown", Kind(42).String())
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "rejected", PhaseRejected.String())
	assert.Equal(t, PhaseIdle, Snapshot{}.Phase(Kind(-1)))
}
