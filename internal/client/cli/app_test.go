package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/authz"
	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/identity"
	"github.com/dmitrijs2005/storefront/internal/client/metrics"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSession is an in-memory session store.
type memSession struct {
	mu    sync.Mutex
	token string
}

func (m *memSession) GetToken() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *memSession) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memSession) Clear(context.Context) error {
	return m.SetToken(context.Background(), "")
}

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

type call struct {
	Method, Path string
	Body         string
}

// backend is a canned storefront API.
type backend struct {
	mu    sync.Mutex
	calls []call

	loginToken string
	usersCode  int
}

func (b *backend) record(r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call{Method: r.Method, Path: r.URL.Path, Body: string(body)})
}

func (b *backend) find(method, path string) (call, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.calls {
		if c.Method == method && c.Path == path {
			return c, true
		}
	}
	return call{}, false
}

func (b *backend) handler() http.Handler {
	reply := func(w http.ResponseWriter, code int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(v)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		if b.loginToken == "" {
			reply(w, http.StatusUnauthorized, map[string]any{"message": "Unauthorized"})
			return
		}
		reply(w, http.StatusOK, map[string]any{"data": map[string]any{"access_token": b.loginToken}})
	})
	mux.HandleFunc("GET /product/all", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]any{"data": map[string]any{
			"products": []map[string]any{
				{"id": 1, "name": "mug", "price": 9.5, "stock": 3, "category_id": 2},
				{"id": 2, "name": "kettle", "price": 30, "stock": 1, "category_id": 9},
			},
			"total": 1,
		}})
	})
	mux.HandleFunc("GET /product/1", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]any{"data": map[string]any{
			"id": 1, "name": "mug", "price": 9.5, "stock": 3,
			"category": map[string]any{"id": 2, "name": "Kitchen"},
		}})
	})
	mux.HandleFunc("GET /category/all", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]any{"data": map[string]any{
			"categories": []map[string]any{{"id": 2, "name": "Kitchen"}},
			"total":      1,
		}})
	})
	mux.HandleFunc("GET /user/all", func(w http.ResponseWriter, r *http.Request) {
		code := b.usersCode
		if code == 0 {
			code = http.StatusOK
		}
		reply(w, code, map[string]any{"data": map[string]any{"users": []any{}, "total": 1}})
	})
	mux.HandleFunc("POST /order/create", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusCreated, map[string]any{"data": map[string]any{}})
	})
	mux.HandleFunc("DELETE /product/delete/{id}", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]any{"data": map[string]any{}})
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		r.Body = io.NopCloser(strings.NewReader(""))
		mux.ServeHTTP(w, r)
	})
}

type harness struct {
	app     *App
	out     *bytes.Buffer
	session *memSession
	backend *backend
}

// newHarness wires the real gateway, services and gate against a canned
// backend. input feeds the prompts.
func newHarness(t *testing.T, input string, token string) *harness {
	t.Helper()

	origPw := getPassword
	getPassword = func(r *bufio.Reader, w io.Writer) (string, error) {
		return GetSimpleText(r, "Enter password", w)
	}
	t.Cleanup(func() { getPassword = origPw })

	b := &backend{}
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	sess := &memSession{token: token}
	nav := NewNavigation()
	m := metrics.New()
	log := logging.Nop()

	api := client.New(srv.URL, sess,
		client.WithNavigator(nav),
		client.WithMetrics(m),
		client.WithLogger(log),
	)
	dec := identity.NewDecoder(sess, log)

	out := &bytes.Buffer{}
	app := NewApp(Deps{
		In:         strings.NewReader(input),
		Out:        out,
		Log:        log,
		Auth:       services.NewAuthService(api, sess, dec),
		Catalog:    services.NewCatalogService(api.Products(), api, dec),
		Gate:       authz.NewGate(dec, authz.DefaultRoutes),
		API:        api,
		Navigation: nav,
		Metrics:    m,
	})
	return &harness{app: app, out: out, session: sess, backend: b}
}

func TestApp_AnonymousAdminRouteRedirectsToLogin(t *testing.T) {
	h := newHarness(t, "", "")

	require.NoError(t, h.app.goTo(context.Background(), "/products-admin"))
	assert.Equal(t, authz.LoginPath, h.app.location)
	_, called := h.backend.find(http.MethodGet, "/product/all")
	assert.False(t, called)
}

func TestApp_UserOnAdminRouteFallsBack(t *testing.T) {
	h := newHarness(t, "", mintToken(t, jwt.MapClaims{"sub": "7", "role": "user"}))

	require.NoError(t, h.app.goTo(context.Background(), "/users"))
	assert.Equal(t, authz.FallbackPath, h.app.location)
}

func TestApp_UnknownPathFallsBack(t *testing.T) {
	h := newHarness(t, "", "")

	require.NoError(t, h.app.goTo(context.Background(), "/nowhere"))
	assert.Equal(t, authz.FallbackPath, h.app.location)
}

func TestApp_AdminLoginLandsOnProductsAdmin(t *testing.T) {
	h := newHarness(t, "ana@shop.test\nsecret\n", "")
	h.backend.loginToken = mintToken(t, jwt.MapClaims{"sub": 1, "name": "ana", "role": "admin"})

	require.NoError(t, h.app.Login(context.Background()))

	assert.Equal(t, authz.ProductsAdminPath, h.app.location)
	out := h.out.String()
	assert.Contains(t, out, "Welcome, Ana!")
	assert.Contains(t, out, "Kitchen")
	assert.Contains(t, out, "Page 1 of 1")
	assert.Contains(t, h.app.status(context.Background()), "(ana admin)")
}

func TestApp_LoginFailureStaysPut(t *testing.T) {
	h := newHarness(t, "ana@shop.test\nwrong\n", "")
	require.NoError(t, h.app.goTo(context.Background(), authz.LoginPath))

	err := h.app.Login(context.Background())

	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.Contains(t, h.out.String(), "Incorrect email or password")
	_, ok := h.session.GetToken()
	assert.False(t, ok)
}

func TestApp_ProductOrder(t *testing.T) {
	h := newHarness(t, "", mintToken(t, jwt.MapClaims{"sub": "7", "name": "bob", "role": "user"}))
	ctx := context.Background()

	require.NoError(t, h.app.goTo(ctx, "/products/1"))
	assert.Contains(t, h.out.String(), "Mug")

	require.NoError(t, h.app.exec(ctx, "order", []string{"2"}))

	c, ok := h.backend.find(http.MethodPost, "/order/create")
	require.True(t, ok)
	assert.JSONEq(t, `{"user_id":7,"order_details":[{"product_id":1,"quantity":2}]}`, c.Body)
	assert.Contains(t, h.out.String(), "Thank you for your order, Bob!")
	assert.Equal(t, authz.FallbackPath, h.app.location)
}

func TestApp_AnonymousOrderGoesToLogin(t *testing.T) {
	h := newHarness(t, "", "")
	ctx := context.Background()

	require.NoError(t, h.app.goTo(ctx, "/products/1"))
	require.NoError(t, h.app.exec(ctx, "order", nil))

	assert.Equal(t, authz.LoginPath, h.app.location)
	_, ok := h.backend.find(http.MethodPost, "/order/create")
	assert.False(t, ok)
}

func TestApp_UnauthorizedClearsSessionAndReturnsHome(t *testing.T) {
	h := newHarness(t, "", mintToken(t, jwt.MapClaims{"sub": 1, "role": "admin"}))
	h.backend.usersCode = http.StatusUnauthorized
	ctx := context.Background()

	require.NoError(t, h.app.goTo(ctx, authz.UsersAdminPath))
	assert.Equal(t, authz.UsersAdminPath, h.app.location)

	h.app.settle(ctx)

	assert.Equal(t, authz.FallbackPath, h.app.location)
	_, ok := h.session.GetToken()
	assert.False(t, ok)
	assert.Contains(t, h.out.String(), "Session ended")
}

func TestApp_DeleteProductConfirmed(t *testing.T) {
	h := newHarness(t, "y\n", mintToken(t, jwt.MapClaims{"sub": 1, "role": "admin"}))
	ctx := context.Background()
	require.NoError(t, h.app.goTo(ctx, authz.ProductsAdminPath))

	require.NoError(t, h.app.exec(ctx, "delete", []string{"1"}))

	_, ok := h.backend.find(http.MethodDelete, "/product/delete/1")
	assert.True(t, ok)
	assert.Contains(t, h.out.String(), "[ok] Deleted: The product has been deleted.")
}

func TestApp_DeleteProductDeclined(t *testing.T) {
	h := newHarness(t, "n\n", mintToken(t, jwt.MapClaims{"sub": 1, "role": "admin"}))
	ctx := context.Background()
	require.NoError(t, h.app.goTo(ctx, authz.ProductsAdminPath))

	require.NoError(t, h.app.exec(ctx, "delete", []string{"1"}))

	_, ok := h.backend.find(http.MethodDelete, "/product/delete/1")
	assert.False(t, ok)
}

func TestApp_ProductSaveShowsValidation(t *testing.T) {
	h := newHarness(t, "", mintToken(t, jwt.MapClaims{"sub": 1, "role": "admin"}))
	ctx := context.Background()
	require.NoError(t, h.app.goTo(ctx, authz.ProductsAdminPath))

	require.NoError(t, h.app.exec(ctx, "add", nil))
	require.NoError(t, h.app.exec(ctx, "set", []string{"price", "abc"}))
	err := h.app.exec(ctx, "save", nil)

	require.Error(t, err)
	out := h.out.String()
	assert.Contains(t, out, "[error] Validation error:")
	assert.Contains(t, out, "  - name must not be empty")
	assert.Contains(t, out, "  - price must be a number")
	_, ok := h.backend.find(http.MethodPost, "/product/create")
	assert.False(t, ok)
}

func TestApp_OrdersAreNotSearchable(t *testing.T) {
	h := newHarness(t, "", mintToken(t, jwt.MapClaims{"sub": 1, "role": "admin"}))
	h.app.view = h.app.ordersView()

	require.NoError(t, h.app.exec(context.Background(), "search", []string{"x"}))
	assert.Contains(t, h.out.String(), "Search is not available for orders")
}

func TestApp_RunREPL(t *testing.T) {
	h := newHarness(t, "whoami\nbogus\nexit\n", "")

	h.app.Run(context.Background())

	out := h.out.String()
	assert.Contains(t, out, "Welcome to the storefront CLI")
	assert.Contains(t, out, "sf /> ")
	assert.Contains(t, out, "Not logged in")
	assert.Contains(t, out, "Unknown command: bogus")
	assert.Contains(t, out, "Bye!")
}

func TestOrderRow(t *testing.T) {
	total := 19.0
	o := models.Order{
		ID:   5,
		User: &models.User{ID: 7, Name: "bob"},
		OrderDetails: []models.OrderDetail{
			{Product: &models.Product{Name: "mug"}, Quantity: 2},
			{Product: &models.Product{Name: "kettle"}, Quantity: 1},
		},
		TotalAmount: &total,
		Status:      models.OrderShipped,
	}

	assert.Equal(t, []string{"5", "7 bob", "mug (+1)", "2", "19", "shipped"}, orderRow(o))
	assert.Equal(t, []string{"0", "-", "-", "-", "-", "-"}, orderRow(models.Order{}))
}
