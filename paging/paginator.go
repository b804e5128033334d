package paging

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"sync"

	"github.com/ncobase/listing/ecode"
)

// ErrSuperseded is returned when a response arrives for a session that was
// replaced by Initialize or Reset while the request was in flight. The
// response is discarded.
var ErrSuperseded = errors.New("paging: session superseded")

// Status is the paginator session state.
type Status int

const (
	StatusIdle Status = iota
	StatusLoadingInitial
	StatusReady
	StatusLoadingMore
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoadingInitial:
		return "loading_initial"
	case StatusReady:
		return "ready"
	case StatusLoadingMore:
		return "loading_more"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is a snapshot of a pagination session.
type State[T any] struct {
	Status         Status
	Key            string
	Items          []T
	Total          int
	HasMore        bool
	LoadingInitial bool
	LoadingMore    bool
	Err            error
}

// IsError reports whether the last fetch failed.
func (s State[T]) IsError() bool { return s.Err != nil }

// ErrKind returns the kind of the last failure.
func (s State[T]) ErrKind() ecode.Kind { return ecode.KindOf(s.Err) }

// Option configures a Paginator.
type Option[T any] func(*Paginator[T])

// WithOnChange registers the subscriber notified after every state change.
// It is called outside the paginator lock.
func WithOnChange[T any](fn func(State[T])) Option[T] {
	return func(p *Paginator[T]) { p.onChange = fn }
}

// WithCursorParam sets the query parameter carrying the cursor, "after" by
// default.
func WithCursorParam[T any](name string) Option[T] {
	return func(p *Paginator[T]) { p.cursorParam = name }
}

// WithPageSizeParam sets the query parameter carrying the page size,
// "pageSize" by default.
func WithPageSizeParam[T any](name string) Option[T] {
	return func(p *Paginator[T]) { p.sizeParam = name }
}

// Paginator accumulates cursor-paged results for one session at a time.
// A session is keyed by the initial URL passed to Initialize.
type Paginator[T any] struct {
	fetcher     Fetcher[T]
	cursorParam string
	sizeParam   string
	onChange    func(State[T])

	mu       sync.Mutex
	gen      uint64
	pageSize int
	cursor   string
	state    State[T]
}

// New creates a paginator using fetcher for every page.
func New[T any](fetcher Fetcher[T], opts ...Option[T]) *Paginator[T] {
	p := &Paginator[T]{
		fetcher:     fetcher,
		cursorParam: "after",
		sizeParam:   "pageSize",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Initialize starts a new session for rawURL, discarding all prior state,
// and fetches the first page. It blocks until the page arrives.
func (p *Paginator[T]) Initialize(ctx context.Context, rawURL string, pageSize int) error {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.pageSize = pageSize
	p.cursor = ""
	p.state = State[T]{Status: StatusLoadingInitial, Key: rawURL, LoadingInitial: true}
	reqURL, err := p.pageURL(rawURL, "")
	if err != nil {
		p.state.LoadingInitial = false
		p.state.Status = StatusFailed
		p.state.Err = err
	}
	snap := p.snapshotLocked()
	p.mu.Unlock()
	p.notify(snap)
	if err != nil {
		return err
	}

	page, err := p.fetch(ctx, reqURL)

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return ErrSuperseded
	}
	p.state.LoadingInitial = false
	if err != nil {
		p.state.Status = StatusFailed
		p.state.Err = err
	} else {
		p.state.Status = StatusReady
		p.state.Items = append([]T(nil), page.Items...)
		p.state.Total = page.Total
		// An empty first page never has more, whatever the backend claims.
		p.state.HasMore = len(page.Items) > 0 && page.HasNext
		p.cursor = page.Cursor
	}
	snap = p.snapshotLocked()
	p.mu.Unlock()
	p.notify(snap)
	return err
}

// LoadMore fetches the next page and appends it. It reports whether a
// request was issued: nothing is fetched when there are no more pages, no
// cursor is known or a load is already in flight. A failed load keeps the
// accumulated items, the cursor and HasMore so it can be retried.
func (p *Paginator[T]) LoadMore(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if !p.state.HasMore || p.cursor == "" || p.state.LoadingMore || p.state.LoadingInitial {
		p.mu.Unlock()
		return false, nil
	}
	gen := p.gen
	reqURL, err := p.pageURL(p.state.Key, p.cursor)
	if err != nil {
		p.mu.Unlock()
		return false, err
	}
	p.state.LoadingMore = true
	p.state.Status = StatusLoadingMore
	p.state.Err = nil
	snap := p.snapshotLocked()
	p.mu.Unlock()
	p.notify(snap)

	page, err := p.fetch(ctx, reqURL)

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return true, ErrSuperseded
	}
	p.state.LoadingMore = false
	if err != nil {
		p.state.Status = StatusFailed
		p.state.Err = err
	} else {
		p.state.Status = StatusReady
		p.state.Items = append(p.state.Items, page.Items...)
		p.state.Total = page.Total
		p.state.HasMore = page.HasNext
		p.cursor = page.Cursor
	}
	snap = p.snapshotLocked()
	p.mu.Unlock()
	p.notify(snap)
	return true, err
}

// Reset abandons the current session. In-flight responses are discarded.
func (p *Paginator[T]) Reset() {
	p.mu.Lock()
	p.gen++
	p.cursor = ""
	p.pageSize = 0
	p.state = State[T]{}
	snap := p.snapshotLocked()
	p.mu.Unlock()
	p.notify(snap)
}

// Snapshot returns a copy of the current state.
func (p *Paginator[T]) Snapshot() State[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Items returns a copy of the accumulated items.
func (p *Paginator[T]) Items() []T {
	return p.Snapshot().Items
}

// HasMore reports whether LoadMore can fetch another page.
func (p *Paginator[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.HasMore
}

func (p *Paginator[T]) snapshotLocked() State[T] {
	s := p.state
	if p.state.Items != nil {
		s.Items = append([]T(nil), p.state.Items...)
	}
	return s
}

func (p *Paginator[T]) notify(s State[T]) {
	if p.onChange != nil {
		p.onChange(s)
	}
}

func (p *Paginator[T]) fetch(ctx context.Context, reqURL string) (*Page[T], error) {
	if p.fetcher == nil {
		return nil, ecode.ConfigurationError("paginate", ecode.FieldIsRequired("fetcher"))
	}
	page, err := p.fetcher.Fetch(ctx, reqURL)
	if err != nil {
		if ecode.KindOf(err) == ecode.KindNone {
			err = ecode.NetworkError("fetch", err)
		}
		return nil, err
	}
	if page == nil {
		return nil, ecode.InvalidResponseError("fetch", ecode.FieldIsEmpty("page"))
	}
	return page.Normalize(), nil
}

// pageURL appends the page size and, for non-initial pages, the cursor.
func (p *Paginator[T]) pageURL(rawURL, cursor string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || rawURL == "" {
		return "", ecode.ConfigurationError("paginate", ecode.FieldIsInvalid("url "+strconv.Quote(rawURL)))
	}
	if p.pageSize <= 0 && cursor == "" {
		return u.String(), nil
	}
	q := u.Query()
	if p.pageSize > 0 {
		q.Set(p.sizeParam, strconv.Itoa(p.pageSize))
	}
	if cursor != "" {
		q.Set(p.cursorParam, cursor)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
