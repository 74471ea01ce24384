package client

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
)

// maxTotal bounds the page count accepted from the server.
const maxTotal = math.MaxInt32

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page is one list or search result. Total is the server's page count and
// is at least 1.
type Page[T any] struct {
	Items []T
	Total int
}

// Resource is the uniform route family of one API resource:
//
//	GET    /{name}/all?page=&limit=
//	POST   /{name}/create
//	PUT    /{name}/update/{id}
//	DELETE /{name}/delete/{id}
//	GET    findPath with the escaped term
type Resource[T any] struct {
	c *HTTPClient
	// name is the singular route segment, plural the envelope key.
	name     string
	plural   string
	findPath string
}

func newResource[T any](c *HTTPClient, name, plural, findPath string) *Resource[T] {
	return &Resource[T]{c: c, name: name, plural: plural, findPath: findPath}
}

func (r *Resource[T]) Name() string { return r.name }

// List fetches one page; page and limit below 1 fall back to 1 and 10.
func (r *Resource[T]) List(ctx context.Context, page, limit int) (Page[T], error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("limit", fmt.Sprint(limit))

	return r.fetchPage(ctx, fmt.Sprintf("/%s/all?%s", r.name, q.Encode()))
}

func (r *Resource[T]) FindByName(ctx context.Context, name string) (Page[T], error) {
	if r.findPath == "" {
		return Page[T]{}, fmt.Errorf("%s find by name: %w", r.name, ErrNotSupported)
	}
	return r.fetchPage(ctx, fmt.Sprintf(r.findPath, url.PathEscape(name)))
}

func (r *Resource[T]) Create(ctx context.Context, payload any) error {
	return r.c.doJSON(ctx, r.name, http.MethodPost, fmt.Sprintf("/%s/create", r.name), payload, nil)
}

func (r *Resource[T]) Update(ctx context.Context, id int64, payload any) error {
	return r.c.doJSON(ctx, r.name, http.MethodPut, fmt.Sprintf("/%s/update/%d", r.name, id), payload, nil)
}

func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.c.doJSON(ctx, r.name, http.MethodDelete, fmt.Sprintf("/%s/delete/%d", r.name, id), nil, nil)
}

func (r *Resource[T]) fetchPage(ctx context.Context, path string) (Page[T], error) {
	var env struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := r.c.doJSON(ctx, r.name, http.MethodGet, path, nil, &env); err != nil {
		return Page[T]{}, err
	}

	page, err := decodePage[T](env.Data, r.plural)
	if err != nil {
		r.c.log.Warn(ctx, "unexpected list response", "resource", r.name, "path", path, "err", err)
		return Page[T]{}, err
	}
	return page, nil
}

// decodePage reads {<plural>: [...], total: N} out of the data object.
// A missing data object or list key, or values of the wrong shape, are
// ErrMalformedResponse, as is a total that is fractional or beyond
// maxTotal. A null list is an empty page.
func decodePage[T any](data map[string]json.RawMessage, plural string) (Page[T], error) {
	if data == nil {
		return Page[T]{}, fmt.Errorf("%w: missing data object", ErrMalformedResponse)
	}

	raw, ok := data[plural]
	if !ok {
		return Page[T]{}, fmt.Errorf("%w: missing %q list", ErrMalformedResponse, plural)
	}

	items := []T{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return Page[T]{}, fmt.Errorf("%w: %q: %w", ErrMalformedResponse, plural, err)
	}
	if items == nil {
		items = []T{}
	}

	total := 1
	if rawTotal, ok := data["total"]; ok {
		var n *float64
		if err := json.Unmarshal(rawTotal, &n); err != nil {
			return Page[T]{}, fmt.Errorf("%w: total: %w", ErrMalformedResponse, err)
		}
		if n != nil {
			if *n != math.Trunc(*n) || math.Abs(*n) > maxTotal {
				return Page[T]{}, fmt.Errorf("%w: total %v is not a page count", ErrMalformedResponse, *n)
			}
			if *n > 1 {
				total = int(*n)
			}
		}
	}

	return Page[T]{Items: items, Total: total}, nil
}
