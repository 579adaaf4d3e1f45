package wanikani

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"math"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/vytor/wkstats/internal/cache"
	"github.com/vytor/wkstats/internal/errors"
	"github.com/vytor/wkstats/internal/logger"
	"github.com/vytor/wkstats/internal/models"
	"github.com/vytor/wkstats/internal/monitoring"
	"github.com/vytor/wkstats/internal/timeutil"
)

const (
	DefaultBaseURL  = "https://api.wanikani.com/v2/"
	DefaultRevision = "20170710"

	revisionHeader = "Wanikani-Revision"
	maxBodyBytes   = 32 << 20
)

// Client talks to the WaniKani v2 API. It never retries: a failed call is
// returned to the caller as an UPSTREAM_ERROR.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	baseURL    string
	revision   string
	limiter    *rate.Limiter
	cache      *cache.Cache
	metrics    *monitoring.Metrics
	clock      timeutil.Clock
	loc        *time.Location
	tracer     trace.Tracer
	log        *logger.Logger
	inflight   singleflight.Group
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each upstream request. It is applied to a copy of the
// HTTP client, so a client passed to WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		c.baseURL = u
	}
}

func WithRevision(rev string) Option {
	return func(c *Client) { c.revision = rev }
}

// WithRateLimit paces outgoing requests to perMinute. Zero disables pacing.
func WithRateLimit(perMinute int) Option {
	return func(c *Client) {
		if perMinute <= 0 {
			c.limiter = nil
			return
		}
		burst := perMinute / 6
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
	}
}

// WithCache memoizes successful responses.
func WithCache(mc *cache.Cache) Option {
	return func(c *Client) { c.cache = mc }
}

func WithMetrics(m *monitoring.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithClock(clock timeutil.Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// WithLocation sets the timezone timestamps are converted to.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.loc = loc }
}

func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    DefaultBaseURL,
		revision:   DefaultRevision,
		clock:      timeutil.SystemClock{},
		loc:        time.UTC,
		tracer:     otel.Tracer("github.com/vytor/wkstats/internal/wanikani"),
		log:        logger.Default().WithPrefix("wanikani"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Location is the timezone the client converts timestamps to.
func (c *Client) Location() *time.Location {
	return c.loc
}

// Clock is the time source used for "now".
func (c *Client) Clock() timeutil.Clock {
	return c.clock
}

// Endpoint resolves a resource name such as "assignments" against the base URL.
func (c *Client) Endpoint(name string) string {
	return c.baseURL + strings.TrimPrefix(name, "/")
}

func (c *Client) resolve(rawURL string, params url.Values) (*url.URL, error) {
	if !strings.Contains(rawURL, "://") {
		rawURL = c.Endpoint(rawURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if len(params) > 0 {
		q := u.Query()
		for k, vs := range params {
			q.Del(k)
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u, nil
}

// Fetch issues one authenticated GET and returns the decoded envelope. Error
// envelopes (for example code 401) are returned as values, not errors; only
// transport failures, timeouts and non-JSON bodies fail. Concurrent calls for
// the same URL, params and token share a single upstream request.
func (c *Client) Fetch(ctx context.Context, token, rawURL string, params url.Values) (*Response, error) {
	u, err := c.resolve(rawURL, params)
	if err != nil {
		return nil, errors.NewUpstreamError("invalid request url", err)
	}
	endpoint := path.Base(u.Path)
	log := logger.FromContext(ctx).WithPrefix("wanikani").WithField("endpoint", endpoint)

	base := *u
	base.RawQuery = ""
	key := cache.Key(base.String(), u.Query(), token)

	if c.cache != nil {
		if body, ok := c.cache.Get(key); ok {
			c.metrics.ObserveCache(true)
			var out Response
			if err := json.Unmarshal(body, &out); err == nil {
				log.Debug("cache hit for %s", u.Path)
				return &out, nil
			}
		}
		c.metrics.ObserveCache(false)
	}

	v, err, shared := c.inflight.Do(key, func() (any, error) {
		return c.get(ctx, log, token, u, endpoint, key)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Debug("shared in-flight request for %s", u.Path)
	}
	out := *v.(*Response)
	return &out, nil
}

// get performs the upstream round trip behind Fetch.
func (c *Client) get(ctx context.Context, log *logger.Logger, token string, u *url.URL, endpoint, key string) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.metrics.ObserveUpstream(endpoint, "throttled", 0)
			return nil, errors.NewUpstreamError("rate limit wait aborted", err)
		}
	}

	ctx, span := c.tracer.Start(ctx, "wanikani.GET "+endpoint, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("wanikani.endpoint", endpoint), attribute.String("url.path", u.Path))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, errors.NewUpstreamError("failed to create request", err)
	}
	req.Header.Set(revisionHeader, c.revision)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	log.Debug("fetching %s", u.Path)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(endpoint, "transport_error", time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		log.Error("request failed: %v", err)
		return nil, errors.NewUpstreamError(fmt.Sprintf("request to %s failed", endpoint), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.metrics.ObserveUpstream(endpoint, "transport_error", time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "read error")
		log.Error("failed to read response body: %v", err)
		return nil, errors.NewUpstreamError(fmt.Sprintf("reading %s response failed", endpoint), err)
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		c.metrics.ObserveUpstream(endpoint, "invalid_body", time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "non-JSON body")
		snippet := body
		if len(snippet) > 256 {
			snippet = snippet[:256]
		}
		log.Error("non-JSON response: status=%d, body=%s", resp.StatusCode, string(snippet))
		return nil, errors.NewUpstreamError(fmt.Sprintf("%s returned a non-JSON body (status %d)", endpoint, resp.StatusCode), err)
	}
	if out.Code == 0 && resp.StatusCode >= http.StatusBadRequest {
		out.Code = resp.StatusCode
	}

	if out.IsError() {
		c.metrics.ObserveUpstream(endpoint, "error_envelope", time.Since(start))
		span.SetStatus(codes.Error, out.Error)
		log.Warn("error envelope: code=%d, error=%s", out.Code, out.Error)
		return &out, nil
	}

	c.metrics.ObserveUpstream(endpoint, "ok", time.Since(start))
	if c.cache != nil {
		c.cache.Add(key, body)
	}
	return &out, nil
}

func envelopeError(endpoint string, resp *Response) error {
	return errors.NewUpstreamError(
		fmt.Sprintf("%s returned error %d", endpoint, resp.Code),
		fmt.Errorf("%s", resp.Error),
	)
}

// ValidateCredential checks token against the user endpoint. An unauthorized
// token yields a nil profile and nil error: a bad token is an expected outcome.
func (c *Client) ValidateCredential(ctx context.Context, token string) (*models.UserProfile, error) {
	log := logger.FromContext(ctx).WithPrefix("wanikani")

	resp, err := c.Fetch(ctx, token, "user", nil)
	if err != nil {
		return nil, err
	}
	if resp.Code == http.StatusUnauthorized {
		log.Info("credential rejected by upstream")
		return nil, nil
	}
	if resp.IsError() {
		return nil, envelopeError("user", resp)
	}

	var data userData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		log.Error("failed to decode user data: %v", err)
		return nil, errors.NewUpstreamError("user returned an unexpected payload", err)
	}

	profile := &models.UserProfile{
		Username:   data.Username,
		Level:      data.Level,
		ProfileURL: data.ProfileURL,
	}
	joined, err := timeutil.ParseTimestamp(data.StartedAt, c.loc)
	if err != nil {
		return nil, err
	}
	if joined != nil {
		profile.JoinedAt = *joined
		elapsed := timeutil.Now(c.clock, c.loc).Sub(*joined)
		profile.ElapsedDays = int(math.Floor(timeutil.DurationToDays(elapsed)))
	}

	log.Debug("credential valid for %s", profile.Username)
	return profile, nil
}

// Paginate lazily walks a collection, following pages.next_url until it is
// null. Pages are fetched strictly in order. Every call starts again from
// rawURL; the sequence cannot be resumed. An error ends the sequence.
func (c *Client) Paginate(ctx context.Context, token, rawURL string, params url.Values) iter.Seq2[*Response, error] {
	return func(yield func(*Response, error) bool) {
		log := logger.FromContext(ctx).WithPrefix("wanikani")
		next, query := rawURL, params
		for page := 1; next != ""; page++ {
			resp, err := c.Fetch(ctx, token, next, query)
			if err == nil && resp.IsError() {
				err = envelopeError(path.Base(strings.SplitN(next, "?", 2)[0]), resp)
			}
			if err != nil {
				yield(nil, err)
				return
			}
			log.Debug("page %d of %s received", page, resp.Object)
			if !yield(resp, nil) {
				return
			}
			next, query = resp.NextURL(), nil
		}
	}
}

func records[T any](pages iter.Seq2[*Response, error]) iter.Seq2[[]T, error] {
	return func(yield func([]T, error) bool) {
		for resp, err := range pages {
			if err != nil {
				yield(nil, err)
				return
			}
			var res []resource[T]
			if err := json.Unmarshal(resp.Data, &res); err != nil {
				yield(nil, errors.NewUpstreamError(fmt.Sprintf("%s page has an unexpected payload", resp.Object), err))
				return
			}
			out := make([]T, len(res))
			for i, r := range res {
				out[i] = r.Data
			}
			if !yield(out, nil) {
				return
			}
		}
	}
}

// Assignments yields every started, visible assignment one page at a time.
func (c *Client) Assignments(ctx context.Context, token string) iter.Seq2[[]models.Assignment, error] {
	params := url.Values{}
	params.Set("srs_stages", "1,2,3,4,5,6,7,8,9")
	params.Set("hidden", "false")
	return records[models.Assignment](c.Paginate(ctx, token, "assignments", params))
}

// LevelProgressions yields level records one page at a time.
func (c *Client) LevelProgressions(ctx context.Context, token string) iter.Seq2[[]models.LevelProgression, error] {
	return records[models.LevelProgression](c.Paginate(ctx, token, "level_progressions", nil))
}

// Invalidate drops memoized responses for token.
func (c *Client) Invalidate(token string) int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Invalidate(token)
}
