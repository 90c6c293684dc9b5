// Package apiclient calls the platform REST APIs the resident service
// depends on. Every failure to reach an API, or to get a usable answer from
// it, surfaces as *AccessError so callers can treat upstream problems as one
// error kind.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"resident/pkg/platform/circuit"
	"resident/pkg/platform/sentinel"
	"resident/pkg/requestcontext"
)

// APIName keys the endpoint table.
type APIName string

const (
	OTPGen         APIName = "OTP_GEN_URL"
	IDRepoIdentity APIName = "IDREPO_IDENTITY_URL"
	AIDStatus      APIName = "AID_STATUS_URL"
	IDAToken       APIName = "IDA_TOKEN_URL"
)

const (
	headerRequestID = "X-Request-ID"
	maxResponseSize = 4 << 20
	tracerName      = "resident/internal/apiclient"
)

// AccessError reports that an API could not be reached or did not answer
// with a usable 2xx JSON body. StatusCode is zero when no response arrived.
type AccessError struct {
	API        APIName
	StatusCode int
	Err        error
}

func (e *AccessError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api %s: status %d: %v", e.API, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("api %s: %v", e.API, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// IsAccessError reports whether err is, or wraps, an *AccessError.
func IsAccessError(err error) bool {
	var ae *AccessError
	return errors.As(err, &ae)
}

// Client issues JSON requests against the configured endpoint table. Each
// API has its own circuit breaker so one failing upstream does not block
// calls to the others.
type Client struct {
	endpoints   map[APIName]string
	http        *http.Client
	breakers    map[APIName]*circuit.Breaker
	breakerOpts []circuit.Option
	tracer      trace.Tracer
	metrics     *Metrics
	logger      *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds each call, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithBreakerOptions configures the per-API circuit breakers.
func WithBreakerOptions(opts ...circuit.Option) Option {
	return func(c *Client) {
		c.breakerOpts = append(c.breakerOpts, opts...)
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New builds a client over endpoints, keyed by API name.
func New(endpoints map[string]string, opts ...Option) *Client {
	c := &Client{
		endpoints: make(map[APIName]string, len(endpoints)),
		http:      &http.Client{Timeout: 10 * time.Second},
		breakers:  make(map[APIName]*circuit.Breaker, len(endpoints)),
		tracer:    otel.Tracer(tracerName),
		logger:    slog.Default(),
	}
	for name, u := range endpoints {
		c.endpoints[APIName(name)] = u
	}
	for _, opt := range opts {
		opt(c)
	}
	for api := range c.endpoints {
		c.breakers[api] = circuit.New("apiclient."+string(api), c.breakerOpts...)
	}
	return c
}

// PostAPI sends body as JSON to api and decodes the response into out.
func (c *Client) PostAPI(ctx context.Context, api APIName, body, out any) error {
	target, err := c.resolve(api, nil, nil)
	if err != nil {
		return err
	}
	return c.do(ctx, api, http.MethodPost, target, body, out)
}

// GetAPI fills {name} placeholders in the endpoint from pathParams, appends
// query and decodes the response into out.
func (c *Client) GetAPI(ctx context.Context, api APIName, pathParams map[string]string, query url.Values, out any) error {
	target, err := c.resolve(api, pathParams, query)
	if err != nil {
		return err
	}
	return c.do(ctx, api, http.MethodGet, target, nil, out)
}

func (c *Client) resolve(api APIName, pathParams map[string]string, query url.Values) (string, error) {
	tmpl, ok := c.endpoints[api]
	if !ok || tmpl == "" {
		return "", &AccessError{API: api, Err: errors.New("endpoint not configured")}
	}
	for k, v := range pathParams {
		tmpl = strings.ReplaceAll(tmpl, "{"+k+"}", url.PathEscape(v))
	}
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(tmpl, "?") {
			sep = "&"
		}
		tmpl += sep + query.Encode()
	}
	return tmpl, nil
}

func (c *Client) do(ctx context.Context, api APIName, method, target string, body, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "apiclient."+string(api),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("resident.api", string(api)),
		),
	)
	start := time.Now()
	status := 0
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		c.metrics.observe(api, status, err, time.Since(start))
	}()

	breaker := c.breakers[api]
	if !breaker.Allow() {
		return &AccessError{API: api, Err: fmt.Errorf("circuit open: %w", sentinel.ErrUnavailable)}
	}

	var reader io.Reader
	if body != nil {
		payload, mErr := json.Marshal(body)
		if mErr != nil {
			return &AccessError{API: api, Err: fmt.Errorf("marshal request: %w", mErr)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &AccessError{API: api, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		req.Header.Set(headerRequestID, requestID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.recordFailure(ctx, api, breaker)
		return &AccessError{API: api, Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode
	span.SetAttributes(attribute.Int("http.response.status_code", status))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		c.recordFailure(ctx, api, breaker)
		return &AccessError{API: api, StatusCode: status, Err: fmt.Errorf("read response: %w", err)}
	}

	if status >= http.StatusInternalServerError {
		c.recordFailure(ctx, api, breaker)
		return &AccessError{API: api, StatusCode: status, Err: fmt.Errorf("upstream error: %s", snippet(raw))}
	}
	breaker.RecordSuccess()
	if status < 200 || status > 299 {
		return &AccessError{API: api, StatusCode: status, Err: fmt.Errorf("unexpected status: %s", snippet(raw))}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &AccessError{API: api, StatusCode: status, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

// recordFailure counts a failed call against api's breaker. Calls the caller
// abandoned (cancelled or past its own deadline) say nothing about the
// upstream and are not counted.
func (c *Client) recordFailure(ctx context.Context, api APIName, breaker *circuit.Breaker) {
	if ctx.Err() != nil {
		return
	}
	if _, change := breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "upstream circuit opened",
			"api", string(api),
			"breaker", breaker.Name(),
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}

func snippet(raw []byte) string {
	const limit = 256
	s := strings.TrimSpace(string(raw))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
