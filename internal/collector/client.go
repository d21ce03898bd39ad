package collector

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/huynhtran1509/reddit-uva/internal/domain"
)

const (
	DefaultBaseURL   = "https://api.reddit.com"
	DefaultUserAgent = "reddit-uva/1.0"

	// Hot pages are a few hundred KB at most.
	maxBodyBytes = 8 << 20
)

// Regex for valid subreddit names
var subNameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{2,21}$`)

// PageOptions selects a page. Zero values are left out of the query.
type PageOptions struct {
	After string
	Count int
}

// Client fetches hot listings. It is safe for concurrent use; the underlying
// http.Client and limiter are shared by every request.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    *url.URL
	userAgent  string
	logger     *slog.Logger
}

type Option func(*Client)

// WithLimiter paces outgoing requests.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient builds a client against baseURL (scheme and host, optionally a path prefix).
func NewClient(httpClient *http.Client, baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("base url %q is not absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	c := &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		baseURL:    u,
		userAgent:  DefaultUserAgent,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchHotListings requests one page of /r/{subreddit}/hot and reports the
// outcome to onComplete exactly once, unless the returned request is
// cancelled first. URL problems are returned here and never reach onComplete.
func (c *Client) FetchHotListings(ctx context.Context, subreddit string, page PageOptions, onComplete func(Result)) (*Request, error) {
	u, err := c.hotURL(subreddit, page)
	if err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithCancel(ctx)
	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u.String(), nil)
	if err != nil {
		cancel()
		return nil, errors.Wrap(ErrInvalidURL, err.Error())
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	r := newRequest(cancel, onComplete)
	c.logger.Debug("fetching hot listings", "request_id", r.ID(), "url", u.String())

	go c.run(reqCtx, r, httpReq)
	return r, nil
}

func (c *Client) hotURL(subreddit string, page PageOptions) (*url.URL, error) {
	if !subNameRegex.MatchString(subreddit) {
		return nil, errors.Wrapf(ErrInvalidURL, "subreddit %q", subreddit)
	}
	if page.Count < 0 {
		return nil, errors.Wrapf(ErrInvalidURL, "count %d", page.Count)
	}
	if strings.IndexFunc(page.After, unicode.IsControl) >= 0 {
		return nil, errors.Wrapf(ErrInvalidURL, "after %q", page.After)
	}

	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/r/" + subreddit + "/hot"
	u.RawPath = ""
	q := url.Values{}
	if page.After != "" {
		q.Set("after", page.After)
	}
	if page.Count != 0 {
		q.Set("count", strconv.Itoa(page.Count))
	}
	u.RawQuery = q.Encode()
	return &u, nil
}

func (c *Client) run(ctx context.Context, r *Request, req *http.Request) {
	defer r.finish()

	start := time.Now()
	res := c.do(ctx, req)

	if !r.deliver(res) {
		observe(outcomeCancelled, time.Since(start))
		c.logger.Debug("request cancelled, result dropped", "request_id", r.ID())
		return
	}
	observe(outcomeOf(res.Err), time.Since(start))

	if res.Err != nil {
		c.logger.Warn("fetch failed", "request_id", r.ID(), "error", res.Err)
		return
	}
	c.logger.Debug("fetch complete", "request_id", r.ID(), "elapsed_ms", time.Since(start).Milliseconds())
}

func (c *Client) do(ctx context.Context, req *http.Request) Result {
	// Wait for token
	if err := c.limiter.Wait(ctx); err != nil {
		return Result{Err: errors.Wrap(ErrInvalidResponse, err.Error())}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Err: errors.Wrap(ErrInvalidResponse, err.Error())}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{Err: errors.Wrap(ErrInvalidResponse, err.Error())}
	}
	return handleResponse(resp.StatusCode, body)
}

// handleResponse classifies a fully read response.
func handleResponse(status int, body []byte) Result {
	if status < 200 || status >= 300 {
		return Result{Err: &HTTPError{StatusCode: status}}
	}
	listing, err := domain.DecodeOneFromBytes(body)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Listing: listing}
}

// Fetch is FetchHotListings returning the request as a Handle.
func (c *Client) Fetch(ctx context.Context, subreddit string, page PageOptions, onComplete func(Result)) (Handle, error) {
	r, err := c.FetchHotListings(ctx, subreddit, page, onComplete)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// FetchPage is a blocking FetchHotListings. If ctx ends first the request is
// cancelled and ctx's error returned.
func (c *Client) FetchPage(ctx context.Context, subreddit string, page PageOptions) (domain.Listing, error) {
	done := make(chan Result, 1)
	r, err := c.FetchHotListings(ctx, subreddit, page, func(res Result) { done <- res })
	if err != nil {
		return domain.Listing{}, err
	}

	select {
	case res := <-done:
		return res.Listing, res.Err
	case <-ctx.Done():
		r.Cancel()
		return domain.Listing{}, ctx.Err()
	}
}
