package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// Login exchanges credentials for an access token. The token is returned,
// not stored.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Data *struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, "auth", http.MethodPost, "/auth/login", req, &out); err != nil {
		return "", err
	}
	if out.Data == nil || out.Data.AccessToken == "" {
		return "", fmt.Errorf("%w: missing access_token", ErrMalformedResponse)
	}
	return out.Data.AccessToken, nil
}

func (c *HTTPClient) Register(ctx context.Context, r models.Registration) error {
	return c.doJSON(ctx, "auth", http.MethodPost, "/auth/register", r, nil)
}

func (c *HTTPClient) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var out struct {
		Data *models.Product `json:"data"`
	}
	if err := c.doJSON(ctx, "product", http.MethodGet, fmt.Sprintf("/product/%d", id), nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, fmt.Errorf("%w: missing product", ErrMalformedResponse)
	}
	return out.Data, nil
}

// FindUserByEmail uses the users envelope of the name search.
func (c *HTTPClient) FindUserByEmail(ctx context.Context, email string) (Page[models.User], error) {
	return c.users.fetchPage(ctx, "/user/find/email/"+url.PathEscape(email))
}

func (c *HTTPClient) CreateOrder(ctx context.Context, req models.OrderRequest) error {
	return c.orders.Create(ctx, req)
}
