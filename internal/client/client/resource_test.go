package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResource_Routes(t *testing.T) {
	srv, reqs := newServer(t, 200, `{"data":{"products":[],"categories":[],"users":[],"orders":[]}}`)
	c := New(srv.URL, &fakeSession{})
	ctx := context.Background()

	_, err := c.Products().List(ctx, 2, 10)
	require.NoError(t, err)
	require.NoError(t, c.Products().Create(ctx, models.ProductPayload{Name: "x"}))
	require.NoError(t, c.Categories().Update(ctx, 5, models.Category{Name: "c"}))
	require.NoError(t, c.Orders().Delete(ctx, 9))
	_, err = c.Products().FindByName(ctx, "tornillo")
	require.NoError(t, err)
	_, err = c.Categories().FindByName(ctx, "caja de herramientas")
	require.NoError(t, err)
	_, err = c.Users().FindByName(ctx, "ana")
	require.NoError(t, err)

	got := reqs.all()
	want := []struct{ method, path, query string }{
		{http.MethodGet, "/product/all", "limit=10&page=2"},
		{http.MethodPost, "/product/create", ""},
		{http.MethodPut, "/category/update/5", ""},
		{http.MethodDelete, "/order/delete/9", ""},
		{http.MethodGet, "/product/find/tornillo", ""},
		{http.MethodGet, "/category/find/caja%20de%20herramientas", ""},
		{http.MethodGet, "/user/find/name/ana", ""},
	}
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w.method, got[i].Method, "request %d", i)
		assert.Equal(t, w.path, got[i].Path, "request %d", i)
		assert.Equal(t, w.query, got[i].Query, "request %d", i)
	}
	assert.Equal(t, "application/json", got[1].Header.Get("Content-Type"))
}

func TestResource_ListDecodesEnvelope(t *testing.T) {
	srv, _ := newServer(t, 200, `{"data":{"products":[{"id":1,"name":"clavo","price":1,"stock":2,"category":{"id":3,"name":"x"}}],"total":4}}`)

	page, err := New(srv.URL, &fakeSession{}).Products().List(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(3), page.Items[0].CategoryRef())
}

func TestResource_SearchWithNoResults(t *testing.T) {
	srv, _ := newServer(t, 200, `{"data":{"products":[],"total":0}}`)

	page, err := New(srv.URL, &fakeSession{}).Products().FindByName(context.Background(), "tornillo")

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 1, page.Total)
}

func TestResource_MalformedEnvelopes(t *testing.T) {
	bodies := map[string]string{
		"no data":        `{"products":[]}`,
		"data not obj":   `{"data":[1,2]}`,
		"wrong key":      `{"data":{"category":[]}}`,
		"list not array": `{"data":{"categories":{"id":1}}}`,
		"bad total":      `{"data":{"categories":[],"total":"many"}}`,
		"fraction total": `{"data":{"categories":[],"total":2.5}}`,
		"huge total":     `{"data":{"categories":[],"total":1e300}}`,
		"not json":       `<html>`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv, _ := newServer(t, 200, body)
			_, err := New(srv.URL, &fakeSession{}).Categories().FindByName(context.Background(), "x")
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestDecodePage_NullListAndTotal(t *testing.T) {
	srv, _ := newServer(t, 200, `{"data":{"users":null,"total":null}}`)

	page, err := New(srv.URL, &fakeSession{}).Users().List(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Equal(t, []models.User{}, page.Items)
	assert.Equal(t, 1, page.Total)
}

func TestOrders_FindByNameNotSupported(t *testing.T) {
	srv, reqs := newServer(t, 200, `{}`)

	_, err := New(srv.URL, &fakeSession{}).Orders().FindByName(context.Background(), "x")

	assert.ErrorIs(t, err, ErrNotSupported)
	assert.Empty(t, reqs.all())
}

func TestResource_Name(t *testing.T) {
	c := New("http://x", &fakeSession{})
	assert.Equal(t, "product", c.Products().Name())
	assert.Equal(t, "category", c.Categories().Name())
	assert.Equal(t, "user", c.Users().Name())
	assert.Equal(t, "order", c.Orders().Name())
}
