// Package feed keeps the state of one "load more" session over a subreddit's
// hot listings: the cursor, the accumulated items and the single in-flight
// request.
//
// All state lives on the goroutine running Run. Public methods and fetch
// completions are queued onto it, so Sink methods are always called from
// that goroutine and never concurrently.
package feed

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/huynhtran1509/reddit-uva/internal/collector"
	"github.com/huynhtran1509/reddit-uva/internal/domain"
)

var (
	// ErrUnexpectedPayload is reported when a fetch succeeded but did not hold a page of children.
	ErrUnexpectedPayload = errors.New("response is not a listing page")

	// ErrNotALink is reported by Open for indexes that do not hold a link with a URL.
	ErrNotALink = errors.New("item is not a link")
)

// Fetcher issues one page request. *collector.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, subreddit string, page collector.PageOptions, onComplete func(collector.Result)) (collector.Handle, error)
}

// Sink receives everything the session wants shown.
type Sink interface {
	// Render gets the full ordered sequence after every change. The slice is a copy.
	Render(items []domain.Listing)
	NotifyError(err error)
	OpenLink(url string)
}

type Feed struct {
	fetcher   Fetcher
	subreddit string
	sink      Sink
	logger    *slog.Logger

	events chan func()
	quit   chan struct{}

	// Owned by the Run goroutine.
	ctx        context.Context
	after      string
	exhausted  bool
	loading    bool
	items      []domain.Listing
	seen       map[string]bool
	current    collector.Handle
	generation uint64
}

func New(fetcher Fetcher, subreddit string, sink Sink, logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.Default()
	}
	return &Feed{
		fetcher:   fetcher,
		subreddit: subreddit,
		sink:      sink,
		logger:    logger.With("subreddit", subreddit),
		events:    make(chan func(), 16),
		quit:      make(chan struct{}),
		seen:      make(map[string]bool),
	}
}

// Run processes queued work until ctx is done, then cancels any in-flight
// request. It must be called exactly once.
func (f *Feed) Run(ctx context.Context) error {
	f.ctx = ctx
	defer close(f.quit)
	defer func() {
		if f.current != nil {
			f.current.Cancel()
			f.current = nil
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-f.events:
			fn()
		}
	}
}

// LoadNext requests the page after the cursor unless one is already loading
// or the listing is exhausted.
func (f *Feed) LoadNext() {
	f.post(f.loadNext)
}

// ReachedItem is the "last visible item" trigger: it loads the next page when
// index is the last accumulated item.
func (f *Feed) ReachedItem(index int) {
	f.post(func() {
		if index == len(f.items)-1 {
			f.loadNext()
		}
	})
}

// Reset cancels the in-flight request, forgets the cursor and items, and
// starts again from the first page.
func (f *Feed) Reset() {
	f.post(f.reset)
}

// Open hands the URL of the link at index to the sink.
func (f *Feed) Open(index int) {
	f.post(func() { f.open(index) })
}

func (f *Feed) post(fn func()) {
	select {
	case f.events <- fn:
	case <-f.quit:
	}
}

func (f *Feed) loadNext() {
	if f.loading || f.exhausted {
		return
	}
	f.loading = true

	gen := f.generation
	page := collector.PageOptions{After: f.after}
	if f.after != "" {
		page.Count = len(f.items)
	}

	h, err := f.fetcher.Fetch(f.ctx, f.subreddit, page, func(res collector.Result) {
		f.post(func() { f.complete(gen, res) })
	})
	if err != nil {
		f.loading = false
		f.logger.Error("failed to start fetch", "error", err)
		f.sink.NotifyError(err)
		return
	}
	f.current = h
	f.logger.Debug("loading page", "after", f.after, "count", page.Count)
}

func (f *Feed) complete(gen uint64, res collector.Result) {
	if gen != f.generation {
		f.logger.Debug("dropping result from before reset")
		return
	}
	f.current = nil
	f.loading = false

	if res.Err != nil {
		f.sink.NotifyError(res.Err)
		return
	}

	page, ok := res.Listing.Page()
	if !ok || !page.HasChildren() {
		f.sink.NotifyError(errors.Wrapf(ErrUnexpectedPayload, "kind %s", res.Listing.Kind()))
		return
	}

	if page.After != nil && *page.After != "" {
		f.after = *page.After
	} else {
		f.exhausted = true
	}

	added := 0
	for _, child := range page.Children {
		if link, ok := child.Link(); ok && link.ID != "" {
			if f.seen[link.ID] {
				continue
			}
			f.seen[link.ID] = true
		}
		f.items = append(f.items, child)
		added++
	}

	f.logger.Info("page loaded", "added", added, "total", len(f.items), "exhausted", f.exhausted)
	f.render()
}

func (f *Feed) reset() {
	if f.current != nil {
		f.current.Cancel()
		f.current = nil
	}
	f.generation++
	f.after = ""
	f.exhausted = false
	f.loading = false
	f.items = nil
	f.seen = make(map[string]bool)

	f.render()
	f.loadNext()
}

func (f *Feed) open(index int) {
	if index < 0 || index >= len(f.items) {
		f.sink.NotifyError(errors.Wrapf(ErrNotALink, "index %d out of range", index))
		return
	}
	link, ok := f.items[index].Link()
	if !ok || link.URL == "" {
		f.sink.NotifyError(errors.Wrapf(ErrNotALink, "index %d", index))
		return
	}
	f.sink.OpenLink(link.URL)
}

func (f *Feed) render() {
	out := make([]domain.Listing, len(f.items))
	copy(out, f.items)
	f.sink.Render(out)
}
