package paging

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ncobase/listing/ecode"
)

// stubFetcher serves pages keyed by the "after" parameter of the request.
type stubFetcher struct {
	mu    sync.Mutex
	pages map[string]*Page[int]
	errs  map[string]error
	urls  []string
}

func (s *stubFetcher) Fetch(_ context.Context, raw string) (*Page[int], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urls = append(s.urls, raw)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	after := u.Query().Get("after")
	if err := s.errs[after]; err != nil {
		return nil, err
	}
	page, ok := s.pages[after]
	if !ok {
		return nil, errors.New("no page for cursor " + after)
	}
	cp := *page
	return &cp, nil
}

func (s *stubFetcher) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.urls)
}

func twoPageFetcher() *stubFetcher {
	return &stubFetcher{
		pages: map[string]*Page[int]{
			"":   {Items: []int{1, 2, 3}, Total: 5, HasNext: true, Cursor: "c1"},
			"c1": {Items: []int{4, 5}, Total: 5, HasNext: false},
		},
		errs: map[string]error{},
	}
}

func TestPaginatorInitializeAndLoadMore(t *testing.T) {
	f := twoPageFetcher()
	p := New[int](f)
	ctx := context.Background()

	if err := p.Initialize(ctx, "https://example.com/api/search?site=main", 3); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	s := p.Snapshot()
	if !reflect.DeepEqual(s.Items, []int{1, 2, 3}) || !s.HasMore || s.Total != 5 {
		t.Fatalf("unexpected state after initialize: %+v", s)
	}
	if s.Status != StatusReady {
		t.Errorf("expected ready, got %v", s.Status)
	}

	issued, err := p.LoadMore(ctx)
	if err != nil || !issued {
		t.Fatalf("load more: issued=%v err=%v", issued, err)
	}
	s = p.Snapshot()
	if !reflect.DeepEqual(s.Items, []int{1, 2, 3, 4, 5}) || s.HasMore {
		t.Fatalf("unexpected state after load more: %+v", s)
	}

	issued, err = p.LoadMore(ctx)
	if issued || err != nil {
		t.Errorf("load more without next page must be a no-op")
	}
	if f.calls() != 2 {
		t.Errorf("expected 2 fetches, got %d", f.calls())
	}
}

func TestPaginatorRequestURLs(t *testing.T) {
	f := twoPageFetcher()
	p := New[int](f)
	ctx := context.Background()
	_ = p.Initialize(ctx, "https://example.com/api/search?site=main", 3)
	_, _ = p.LoadMore(ctx)

	first, _ := url.Parse(f.urls[0])
	if first.Query().Get("after") != "" {
		t.Errorf("initial request must not carry a cursor: %s", f.urls[0])
	}
	if first.Query().Get("pageSize") != "3" || first.Query().Get("site") != "main" {
		t.Errorf("unexpected initial request %s", f.urls[0])
	}
	second, _ := url.Parse(f.urls[1])
	if second.Query().Get("after") != "c1" {
		t.Errorf("expected cursor c1 in %s", f.urls[1])
	}
}

func TestPaginatorEmptyFirstPageHasNoMore(t *testing.T) {
	f := &stubFetcher{pages: map[string]*Page[int]{
		"": {Items: []int{}, HasNext: true, Cursor: "c1"},
	}}
	p := New[int](f)
	if err := p.Initialize(context.Background(), "https://example.com/s", 10); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if p.HasMore() {
		t.Fatalf("empty first page must never have more")
	}
	if issued, _ := p.LoadMore(context.Background()); issued {
		t.Errorf("load more must not fire after empty first page")
	}
}

func TestPaginatorMissingCursorForcesNoMore(t *testing.T) {
	f := &stubFetcher{pages: map[string]*Page[int]{
		"": {Items: []int{1}, HasNext: true},
	}}
	p := New[int](f)
	_ = p.Initialize(context.Background(), "https://example.com/s", 10)
	if p.HasMore() {
		t.Errorf("page without cursor must not report more")
	}
}

func TestPaginatorConcurrentLoadMoreIssuesOneRequest(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var loadCalls int32

	fetcher := FetchFunc[int](func(_ context.Context, raw string) (*Page[int], error) {
		u, _ := url.Parse(raw)
		if u.Query().Get("after") == "" {
			return &Page[int]{Items: []int{1, 2, 3}, HasNext: true, Cursor: "c1"}, nil
		}
		atomic.AddInt32(&loadCalls, 1)
		close(entered)
		<-release
		return &Page[int]{Items: []int{4, 5}}, nil
	})

	p := New[int](fetcher)
	ctx := context.Background()
	if err := p.Initialize(ctx, "https://example.com/s", 3); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := p.LoadMore(ctx)
		done <- err
	}()
	<-entered

	if !p.Snapshot().LoadingMore {
		t.Errorf("expected loading more while request is in flight")
	}
	issued, err := p.LoadMore(ctx)
	if issued || err != nil {
		t.Errorf("second load more must be dropped, issued=%v err=%v", issued, err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("load more: %v", err)
	}
	if n := atomic.LoadInt32(&loadCalls); n != 1 {
		t.Fatalf("expected exactly one load request, got %d", n)
	}
	if got := p.Items(); !reflect.DeepEqual(got, []int{1, 2, 3, 4, 5}) {
		t.Errorf("unexpected items %v", got)
	}
}

func TestPaginatorFailedLoadMoreKeepsProgress(t *testing.T) {
	f := twoPageFetcher()
	f.errs["c1"] = errors.New("connection reset")
	p := New[int](f)
	ctx := context.Background()
	_ = p.Initialize(ctx, "https://example.com/s", 3)

	issued, err := p.LoadMore(ctx)
	if !issued || err == nil {
		t.Fatalf("expected failed load more, issued=%v err=%v", issued, err)
	}
	if ecode.KindOf(err) != ecode.KindNetwork {
		t.Errorf("expected network kind, got %v", ecode.KindOf(err))
	}
	s := p.Snapshot()
	if !reflect.DeepEqual(s.Items, []int{1, 2, 3}) || !s.HasMore || s.LoadingMore {
		t.Fatalf("failed load more must keep state, got %+v", s)
	}
	if !s.IsError() || s.ErrKind() != ecode.KindNetwork {
		t.Errorf("expected surfaced network error, got %v", s.Err)
	}

	f.mu.Lock()
	delete(f.errs, "c1")
	f.mu.Unlock()

	if _, err := p.LoadMore(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
	s = p.Snapshot()
	if !reflect.DeepEqual(s.Items, []int{1, 2, 3, 4, 5}) || s.IsError() {
		t.Errorf("retry must succeed, got %+v", s)
	}
	if f.urls[1] != f.urls[2] {
		t.Errorf("retry must reuse the same cursor: %s vs %s", f.urls[1], f.urls[2])
	}
}

func TestPaginatorFailedInitialize(t *testing.T) {
	f := &stubFetcher{errs: map[string]error{"": errors.New("dial tcp: refused")}}
	p := New[int](f)
	err := p.Initialize(context.Background(), "https://example.com/s", 3)
	if err == nil {
		t.Fatalf("expected error")
	}
	s := p.Snapshot()
	if len(s.Items) != 0 || s.HasMore || !s.IsError() || s.Status != StatusFailed {
		t.Fatalf("unexpected state after failed initialize: %+v", s)
	}
	if issued, _ := p.LoadMore(context.Background()); issued {
		t.Errorf("load more must not fire after failed initialize")
	}
	if f.calls() != 1 {
		t.Errorf("failed initialize must not retry, got %d calls", f.calls())
	}
}

func TestPaginatorClassifiedErrorsPassThrough(t *testing.T) {
	fetcher := FetchFunc[int](func(context.Context, string) (*Page[int], error) {
		return nil, ecode.InvalidResponseError("decode", "data missing")
	})
	p := New[int](fetcher)
	err := p.Initialize(context.Background(), "https://example.com/s", 3)
	if ecode.KindOf(err) != ecode.KindInvalidResponse {
		t.Fatalf("expected invalid response kind, got %v", err)
	}
}

func TestPaginatorNilPageIsInvalidResponse(t *testing.T) {
	fetcher := FetchFunc[int](func(context.Context, string) (*Page[int], error) {
		return nil, nil
	})
	p := New[int](fetcher)
	err := p.Initialize(context.Background(), "https://example.com/s", 3)
	if ecode.KindOf(err) != ecode.KindInvalidResponse {
		t.Fatalf("expected invalid response kind, got %v", err)
	}
}

func TestPaginatorSwitchingURLResetsState(t *testing.T) {
	var p *Paginator[int]
	var during State[int]

	fetcher := FetchFunc[int](func(_ context.Context, raw string) (*Page[int], error) {
		u, _ := url.Parse(raw)
		if u.Path == "/old" {
			return &Page[int]{Items: []int{1, 2, 3}, HasNext: true, Cursor: "c1"}, nil
		}
		during = p.Snapshot()
		return &Page[int]{Items: []int{9}}, nil
	})
	p = New[int](fetcher)
	ctx := context.Background()

	_ = p.Initialize(ctx, "https://example.com/old", 3)
	if len(p.Items()) != 3 {
		t.Fatalf("expected 3 items in old session")
	}
	if err := p.Initialize(ctx, "https://example.com/new", 3); err != nil {
		t.Fatalf("initialize new: %v", err)
	}
	if len(during.Items) != 0 || !during.LoadingInitial || during.Key != "https://example.com/new" {
		t.Fatalf("state must be reset before new fetch resolves, got %+v", during)
	}
	if got := p.Items(); !reflect.DeepEqual(got, []int{9}) {
		t.Errorf("expected new session items, got %v", got)
	}
}

func TestPaginatorDiscardsStaleResponse(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	fetcher := FetchFunc[int](func(_ context.Context, raw string) (*Page[int], error) {
		u, _ := url.Parse(raw)
		if u.Path == "/slow" {
			close(entered)
			<-release
			return &Page[int]{Items: []int{1, 2, 3}, HasNext: true, Cursor: "c1"}, nil
		}
		return &Page[int]{Items: []int{7, 8}}, nil
	})
	p := New[int](fetcher)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- p.Initialize(ctx, "https://example.com/slow", 3) }()
	<-entered

	if err := p.Initialize(ctx, "https://example.com/fast", 3); err != nil {
		t.Fatalf("initialize fast: %v", err)
	}
	close(release)

	select {
	case err := <-done:
		if !errors.Is(err, ErrSuperseded) {
			t.Fatalf("expected ErrSuperseded, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("stale initialize did not return")
	}
	s := p.Snapshot()
	if !reflect.DeepEqual(s.Items, []int{7, 8}) || s.Key != "https://example.com/fast" {
		t.Fatalf("stale response must be discarded, got %+v", s)
	}
}

func TestPaginatorDiscardsStaleLoadMore(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	fetcher := FetchFunc[int](func(_ context.Context, raw string) (*Page[int], error) {
		u, _ := url.Parse(raw)
		switch {
		case u.Path == "/b":
			return &Page[int]{Items: []int{9}}, nil
		case u.Query().Get("after") == "c1":
			close(entered)
			<-release
			return &Page[int]{Items: []int{2, 3}}, nil
		default:
			return &Page[int]{Items: []int{1}, HasNext: true, Cursor: "c1"}, nil
		}
	})
	p := New[int](fetcher)
	ctx := context.Background()

	if err := p.Initialize(ctx, "https://example.com/a", 1); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	type result struct {
		issued bool
		err    error
	}
	done := make(chan result, 1)
	go func() {
		issued, err := p.LoadMore(ctx)
		done <- result{issued, err}
	}()
	<-entered

	if err := p.Initialize(ctx, "https://example.com/b", 1); err != nil {
		t.Fatalf("initialize b: %v", err)
	}
	close(release)

	select {
	case r := <-done:
		if !r.issued || !errors.Is(r.err, ErrSuperseded) {
			t.Fatalf("expected issued stale load with ErrSuperseded, got %v %v", r.issued, r.err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("stale load more did not return")
	}
	s := p.Snapshot()
	if !reflect.DeepEqual(s.Items, []int{9}) || s.LoadingMore || s.HasMore || s.Key != "https://example.com/b" {
		t.Fatalf("stale page must be discarded, got %+v", s)
	}
}

func TestPaginatorOnChange(t *testing.T) {
	var statuses []Status
	p := New[int](twoPageFetcher(), WithOnChange(func(s State[int]) {
		statuses = append(statuses, s.Status)
	}))
	ctx := context.Background()
	_ = p.Initialize(ctx, "https://example.com/s", 3)
	_, _ = p.LoadMore(ctx)

	want := []Status{StatusLoadingInitial, StatusReady, StatusLoadingMore, StatusReady}
	if !reflect.DeepEqual(statuses, want) {
		t.Errorf("expected transitions %v, got %v", want, statuses)
	}
}

func TestPaginatorCustomParams(t *testing.T) {
	f := &stubFetcher{pages: map[string]*Page[int]{"": {Items: []int{1}}}}
	p := New[int](f, WithPageSizeParam[int]("first"), WithCursorParam[int]("cursor"))
	_ = p.Initialize(context.Background(), "https://example.com/s", 4)
	u, _ := url.Parse(f.urls[0])
	if u.Query().Get("first") != "4" {
		t.Errorf("expected custom page size param in %s", f.urls[0])
	}
}

func TestPaginatorReset(t *testing.T) {
	p := New[int](twoPageFetcher())
	_ = p.Initialize(context.Background(), "https://example.com/s", 3)
	p.Reset()
	s := p.Snapshot()
	if s.Status != StatusIdle || len(s.Items) != 0 || s.HasMore {
		t.Errorf("expected idle state after reset, got %+v", s)
	}
}

func TestPaginatorInvalidURL(t *testing.T) {
	p := New[int](twoPageFetcher())
	err := p.Initialize(context.Background(), "", 3)
	if ecode.KindOf(err) != ecode.KindConfiguration {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	p := New[int](twoPageFetcher())
	_ = p.Initialize(context.Background(), "https://example.com/s", 3)
	items := p.Items()
	items[0] = 100
	if p.Items()[0] != 1 {
		t.Errorf("snapshot must not alias internal state")
	}
}
