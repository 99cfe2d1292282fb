package state

import (
	"sync"
	"time"
)

// Kind identifies one of the four asynchronous operations.
type Kind int

const (
	KindRandom Kind = iota
	KindCategory
	KindSearch
	KindCategories

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindRandom:
		return "fetch_random"
	case KindCategory:
		return "fetch_by_category"
	case KindSearch:
		return "search"
	case KindCategories:
		return "list_categories"
	default:
		return "unknown"
	}
}

// touchesJoke reports whether the operation drives the joke display. Category
// list loading is a background prefetch and leaves joke fields and
// HasFetched alone.
func (k Kind) touchesJoke() bool {
	return k != KindCategories
}

// Phase is the lifecycle position of one kind of request.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseFulfilled
	PhaseRejected
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseFulfilled:
		return "fulfilled"
	case PhaseRejected:
		return "rejected"
	default:
		return "idle"
	}
}

// Default failure messages used when a failure carries no specific message.
const (
	FailedJokeMessage       = "Failed to fetch joke"
	FailedCategoriesMessage = "Failed to fetch categories"
)

// Snapshot is a copy of the application state at a point in time.
type Snapshot struct {
	Joke        string
	HasJoke     bool
	Category    string
	HasCategory bool
	Categories  []string
	Err         string
	Loading     bool
	HasFetched  bool

	Phases     [kindCount]Phase
	Dispatched [kindCount]uint64
	UpdatedAt  time.Time
}

// Phase returns the lifecycle phase of kind.
func (s Snapshot) Phase(kind Kind) Phase {
	if kind < 0 || kind >= kindCount {
		return PhaseIdle
	}
	return s.Phases[kind]
}

// Option configures a Store.
type Option func(*Store)

// WithStaleGuard makes Resolve discard results whose request is older than
// the latest dispatch of the same kind. Without it the last resolution wins
// regardless of dispatch order.
func WithStaleGuard() Option {
	return func(s *Store) { s.staleGuard = true }
}

// WithClock overrides time.Now for UpdatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store owns the application state. The zero value is ready to use; each
// Store is independent, so tests can build as many as they need.
type Store struct {
	mu          sync.RWMutex
	snapshot    Snapshot
	staleGuard  bool
	now         func() time.Time
	subscribers map[int]func(Snapshot)
	nextSubID   int
}

// NewStore builds a Store with the given options.
func NewStore(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cloneLocked()
}

// Subscribe registers fn to be called with a fresh snapshot after every
// mutation. Callbacks run synchronously on the mutating goroutine and must
// not call back into the Store's mutators. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscribers == nil {
		s.subscribers = make(map[int]func(Snapshot))
	}
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Begin moves req's kind to pending: Loading is set and Err cleared. The
// returned request carries the sequence number assigned to this dispatch.
func (s *Store) Begin(req Request) Request {
	s.mu.Lock()
	s.snapshot.Dispatched[req.Kind]++
	req.Seq = s.snapshot.Dispatched[req.Kind]
	s.snapshot.Phases[req.Kind] = PhasePending
	s.snapshot.Loading = true
	s.snapshot.Err = ""
	s.stampLocked()
	snap, subs := s.notifyLocked()
	s.mu.Unlock()

	publish(subs, snap)
	return req
}

// Resolve applies the outcome of a request: fulfilled when res.Err is nil,
// rejected otherwise. It reports false when the stale guard discarded it.
func (s *Store) Resolve(res Result) bool {
	kind := res.Request.Kind

	s.mu.Lock()
	if s.staleGuard && res.Request.Seq != 0 && res.Request.Seq < s.snapshot.Dispatched[kind] {
		s.mu.Unlock()
		return false
	}

	snap := &s.snapshot
	snap.Loading = false
	if kind.touchesJoke() {
		snap.HasFetched = true
	}

	if res.Err != nil {
		snap.Phases[kind] = PhaseRejected
		snap.Err = failureMessage(kind, res.Err)
		if kind.touchesJoke() {
			snap.Joke, snap.HasJoke = "", false
		}
	} else {
		snap.Phases[kind] = PhaseFulfilled
		snap.Err = ""
		switch kind {
		case KindRandom, KindSearch:
			snap.Joke, snap.HasJoke = res.Joke, true
			snap.Category, snap.HasCategory = "", false
		case KindCategory:
			snap.Joke, snap.HasJoke = res.Joke, true
			snap.Category, snap.HasCategory = res.Category, true
		case KindCategories:
			snap.Categories = cloneStrings(res.Categories)
		}
	}
	s.stampLocked()
	out, subs := s.notifyLocked()
	s.mu.Unlock()

	publish(subs, out)
	return true
}

func (s *Store) stampLocked() {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	s.snapshot.UpdatedAt = now()
}

func (s *Store) cloneLocked() Snapshot {
	snap := s.snapshot
	snap.Categories = cloneStrings(s.snapshot.Categories)
	return snap
}

func (s *Store) notifyLocked() (Snapshot, []func(Snapshot)) {
	if len(s.subscribers) == 0 {
		return Snapshot{}, nil
	}
	subs := make([]func(Snapshot), 0, len(s.subscribers))
	for id := 0; id < s.nextSubID; id++ {
		if fn, ok := s.subscribers[id]; ok {
			subs = append(subs, fn)
		}
	}
	return s.cloneLocked(), subs
}

func publish(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		own := snap
		own.Categories = cloneStrings(snap.Categories)
		fn(own)
	}
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	dup := make([]string, len(values))
	copy(dup, values)
	return dup
}
