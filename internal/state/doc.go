// Package state holds the application state and the lifecycle of the four
// asynchronous joke operations.
//
// # Overview
//
// A Store owns one Snapshot-shaped state value: the current joke and its
// category, the cached category list, the last error, the loading flag and
// the "has fetched once" flag. It is mutated only through the request
// lifecycle; observers read copies.
//
// # Lifecycle
//
// Every operation runs through the same state machine:
//
//	Idle ──Begin──> Pending ──Resolve(ok)──> Fulfilled
//	                   │
//	                   └─────Resolve(err)──> Rejected
//
// Fulfilled and Rejected are not sticky: a new Begin re-enters Pending.
// There is no cancelled phase; an in-flight request always resolves.
//
// The lifecycle is split into three calls so an event loop can own all
// mutation while I/O runs elsewhere:
//
//	req := store.Begin(state.SearchRequest("kick"))  // Loading=true, Err=""
//	res := state.Perform(ctx, client, req)           // network only
//	store.Resolve(res)                               // fulfilled or rejected
//
// Dispatch runs all three on the calling goroutine.
//
// # Transition Contract
//
// On Begin: Loading is set and Err cleared. Joke fields are left as they are.
//
// On success: Loading is cleared, Err cleared, and the payload applied.
// Random and search set the joke and clear the category; category sets both;
// the category list replaces Categories.
//
// On failure: Loading is cleared, the joke is cleared and Err set to the
// failure's user message, or "Failed to fetch joke" when it has none.
//
// Category list loading is a background prefetch. It never sets HasFetched,
// never touches the joke fields, and on failure reports "Failed to fetch
// categories".
//
// # Overlapping Requests
//
// Requests are not cancelled. When two are in flight, the one that resolves
// last wins, whatever the dispatch order. Each Begin assigns a per-kind
// sequence number; WithStaleGuard makes Resolve drop results older than the
// latest dispatch of the same kind. The guard is off by default.
//
// # Concurrency Model
//
// The Store guards its state with a sync.RWMutex, so Snapshot may be called
// from any goroutine. Subscribers are called synchronously, outside the lock,
// after each mutation with their own copy of the state.
package state
