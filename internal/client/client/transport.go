package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/client/metrics"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/google/uuid"
)

// Session is the part of the session store the gateway needs.
type Session interface {
	GetToken() (string, bool)
	Clear(ctx context.Context) error
}

// Navigator requests a move to another view. Implementations must not
// block: the request is honoured after the current operation finishes.
type Navigator interface {
	Navigate(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

type noopNavigator struct{}

func (noopNavigator) Navigate(string) {}

// authTransport attaches the bearer credential when one is stored.
type authTransport struct {
	next    http.RoundTripper
	session Session
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if token, ok := t.session.GetToken(); ok && token != "" {
		r.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	} else {
		r.Header.Del(common.AuthorizationHeaderName)
	}
	if r.Header.Get(common.RequestIDHeaderName) == "" {
		r.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}
	return t.next.RoundTrip(r)
}

// unauthorizedTransport invalidates the session on any 401.
type unauthorizedTransport struct {
	next      http.RoundTripper
	session   Session
	navigator Navigator
	entry     string
	metrics   *metrics.Metrics
	log       logging.Logger
}

func (t *unauthorizedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	ctx := req.Context()
	t.metrics.RecordUnauthorized()
	t.log.Warn(ctx, "session rejected by server",
		"request_id", req.Header.Get(common.RequestIDHeaderName),
		"path", req.URL.Path)

	if cerr := t.session.Clear(ctx); cerr != nil {
		t.log.Error(ctx, "failed to clear session", "err", cerr)
	}
	t.navigator.Navigate(t.entry)

	return resp, nil
}
