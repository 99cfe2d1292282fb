package state

import (
	"context"
	"fmt"

	"github.com/five82/jester/internal/jokes"
)

// API is the subset of the joke client the store's actions call.
type API interface {
	FetchRandom(ctx context.Context) (string, error)
	FetchByCategory(ctx context.Context, category string) (jokes.CategoryJoke, error)
	Search(ctx context.Context, query string) (string, error)
	ListCategories(ctx context.Context) ([]string, error)
}

var _ API = (*jokes.Client)(nil)

// Request describes one dispatch of an asynchronous action.
type Request struct {
	Kind     Kind
	Category string
	Query    string
	Seq      uint64 // assigned by Begin
}

// Result is the outcome of performing a Request.
type Result struct {
	Request    Request
	Joke       string
	Category   string
	Categories []string
	Err        error
}

// RandomRequest asks for a random joke.
func RandomRequest() Request { return Request{Kind: KindRandom} }

// CategoryRequest asks for a random joke from category.
func CategoryRequest(category string) Request {
	return Request{Kind: KindCategory, Category: category}
}

// SearchRequest asks for a joke matching query.
func SearchRequest(query string) Request {
	return Request{Kind: KindSearch, Query: query}
}

// CategoriesRequest asks for the category list.
func CategoriesRequest() Request { return Request{Kind: KindCategories} }

// Perform runs the network half of req. It never touches a Store, so it is
// safe to call from any goroutine.
func Perform(ctx context.Context, api API, req Request) Result {
	res := Result{Request: req}
	if api == nil {
		res.Err = fmt.Errorf("%s: no api client", req.Kind)
		return res
	}
	switch req.Kind {
	case KindRandom:
		res.Joke, res.Err = api.FetchRandom(ctx)
	case KindCategory:
		var cj jokes.CategoryJoke
		cj, res.Err = api.FetchByCategory(ctx, req.Category)
		res.Joke, res.Category = cj.Joke, cj.Category
	case KindSearch:
		res.Joke, res.Err = api.Search(ctx, req.Query)
	case KindCategories:
		res.Categories, res.Err = api.ListCategories(ctx)
	default:
		res.Err = fmt.Errorf("unknown request kind %d", req.Kind)
	}
	return res
}

// Dispatch runs the full lifecycle of req on the calling goroutine and
// returns the resulting snapshot.
func (s *Store) Dispatch(ctx context.Context, api API, req Request) Snapshot {
	req = s.Begin(req)
	s.Resolve(Perform(ctx, api, req))
	return s.Snapshot()
}

// FetchRandom dispatches a random joke request.
func (s *Store) FetchRandom(ctx context.Context, api API) Snapshot {
	return s.Dispatch(ctx, api, RandomRequest())
}

// FetchByCategory dispatches a joke-by-category request.
func (s *Store) FetchByCategory(ctx context.Context, api API, category string) Snapshot {
	return s.Dispatch(ctx, api, CategoryRequest(category))
}

// Search dispatches a joke search.
func (s *Store) Search(ctx context.Context, api API, query string) Snapshot {
	return s.Dispatch(ctx, api, SearchRequest(query))
}

// ListCategories dispatches a category list load.
func (s *Store) ListCategories(ctx context.Context, api API) Snapshot {
	return s.Dispatch(ctx, api, CategoriesRequest())
}

func failureMessage(kind Kind, err error) string {
	if msg := jokes.UserMessage(err); msg != "" {
		return msg
	}
	if kind == KindCategories {
		return FailedCategoriesMessage
	}
	return FailedJokeMessage
}
