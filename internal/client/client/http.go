package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/authz"
	"github.com/dmitrijs2005/storefront/internal/client/metrics"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/google/uuid"
)

// HTTPClient is safe for concurrent use.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	metrics *metrics.Metrics
	log     logging.Logger

	products   *Resource[models.Product]
	categories *Resource[models.Category]
	users      *Resource[models.User]
	orders     *Resource[models.Order]
}

type options struct {
	base      http.RoundTripper
	navigator Navigator
	metrics   *metrics.Metrics
	log       logging.Logger
}

type Option func(*options)

// WithTransport replaces the innermost transport (http.DefaultTransport).
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.base = rt }
}

func WithNavigator(n Navigator) Option {
	return func(o *options) { o.navigator = n }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

func New(baseURL string, session Session, opts ...Option) *HTTPClient {
	o := options{
		base:      http.DefaultTransport,
		navigator: noopNavigator{},
		log:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	var rt http.RoundTripper = &unauthorizedTransport{
		next:      o.base,
		session:   session,
		navigator: o.navigator,
		entry:     authz.FallbackPath,
		metrics:   o.metrics,
		log:       o.log,
	}
	rt = &authTransport{next: rt, session: session}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: rt},
		metrics: o.metrics,
		log:     o.log,
	}
	c.products = newResource[models.Product](c, "product", "products", "/product/find/%s")
	c.categories = newResource[models.Category](c, "category", "categories", "/category/find/%s")
	c.users = newResource[models.User](c, "user", "users", "/user/find/name/%s")
	c.orders = newResource[models.Order](c, "order", "orders", "")
	return c
}

func (c *HTTPClient) Products() *Resource[models.Product]     { return c.products }
func (c *HTTPClient) Categories() *Resource[models.Category] { return c.categories }
func (c *HTTPClient) Users() *Resource[models.User]          { return c.users }
func (c *HTTPClient) Orders() *Resource[models.Order]        { return c.orders }

// apiError is the error body of the remote API. message is either a
// string or a list of strings.
type apiError struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error"`
}

func (e apiError) messages() []string {
	if len(e.Message) > 0 {
		var one string
		if json.Unmarshal(e.Message, &one) == nil && one != "" {
			return []string{one}
		}
		var many []string
		if json.Unmarshal(e.Message, &many) == nil && len(many) > 0 {
			return many
		}
	}
	if e.Error != "" {
		return []string{e.Error}
	}
	return nil
}

// doJSON sends body as JSON and decodes a 2xx response into out. resource
// labels metrics and logs.
func (c *HTTPClient) doJSON(ctx context.Context, resource, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordRequest(resource, method, "error", time.Since(start).Seconds())
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.log.Error(ctx, "request failed", "request_id", requestID, "method", method, "path", path, "err", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.metrics.RecordRequest(resource, method, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())
	c.log.Debug(ctx, "request done",
		"request_id", requestID,
		"method", method, "path", path, "status", resp.StatusCode)

	resBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return mapStatus(resp.StatusCode, resBody)
	}

	if out == nil || len(bytes.TrimSpace(resBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resBody, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}

func mapStatus(code int, body []byte) error {
	var apiErr apiError
	_ = json.Unmarshal(body, &apiErr)
	msgs := apiErr.messages()

	var sentinel error
	switch code {
	case http.StatusBadRequest:
		return common.NewValidationError(msgs...)
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusForbidden:
		sentinel = ErrForbidden
	case http.StatusNotFound:
		sentinel = ErrNotFound
	default:
		msg := strings.Join(msgs, "; ")
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return &StatusError{Code: code, Message: msg}
	}

	if len(msgs) == 0 {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, strings.Join(msgs, "; "))
}
