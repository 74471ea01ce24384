package services

import (
	"context"
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// CatalogPageSize is the page size of the public catalog.
const CatalogPageSize = 10

var ErrLoginRequired = errors.New("login required")

// ProductReader is the gateway surface the public catalog reads.
type ProductReader interface {
	List(ctx context.Context, page, limit int) (client.Page[models.Product], error)
	FindByName(ctx context.Context, name string) (client.Page[models.Product], error)
}

type CatalogClient interface {
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	CreateOrder(ctx context.Context, req models.OrderRequest) error
}

// CatalogService is the public storefront: browsing, product detail and
// ordering.
type CatalogService interface {
	List(ctx context.Context, page int, term string) ([]models.Product, error)
	Product(ctx context.Context, id int64) (*models.Product, error)
	// PlaceOrder orders quantity units of productID for the logged-in user
	// and returns the capitalised name to thank.
	PlaceOrder(ctx context.Context, productID int64, quantity int) (string, error)
}

type catalogService struct {
	products ProductReader
	client   CatalogClient
	ids      IdentitySource
}

func NewCatalogService(products ProductReader, c CatalogClient, ids IdentitySource) CatalogService {
	return &catalogService{products: products, client: c, ids: ids}
}

// List returns one catalog page, or the name search results when term is
// set. Names are capitalised for display.
func (s *catalogService) List(ctx context.Context, page int, term string) ([]models.Product, error) {
	var (
		p   client.Page[models.Product]
		err error
	)
	if term != "" {
		p, err = s.products.FindByName(ctx, term)
	} else {
		p, err = s.products.List(ctx, max(page, 1), CatalogPageSize)
	}
	if err != nil {
		return nil, err
	}

	out := make([]models.Product, len(p.Items))
	for i, item := range p.Items {
		item.Name = Capitalize(item.Name)
		out[i] = item
	}
	return out, nil
}

func (s *catalogService) Product(ctx context.Context, id int64) (*models.Product, error) {
	p, err := s.client.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = Capitalize(p.Name)
	return p, nil
}

func (s *catalogService) PlaceOrder(ctx context.Context, productID int64, quantity int) (string, error) {
	id, ok := s.ids.Decode(ctx)
	if !ok {
		return "", ErrLoginRequired
	}

	userID, err := id.UserID()
	if err != nil {
		return "", err
	}

	req := models.OrderRequest{
		UserID:       userID,
		OrderDetails: []models.OrderLine{{ProductID: productID, Quantity: max(quantity, 1)}},
	}
	if err := s.client.CreateOrder(ctx, req); err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}
	return Capitalize(id.Name), nil
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
