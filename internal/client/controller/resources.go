package controller

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/metrics"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

type (
	Products   = Controller[models.Product, models.ProductDraft]
	Categories = Controller[models.Category, models.CategoryDraft]
	Users      = Controller[models.User, models.UserDraft]
	Orders     = Controller[models.Order, models.OrderDraft]
)

// NewProducts validates drafts locally and shows save failures to the user.
func NewProducts(api API[models.Product], d Dialogs, log logging.Logger, m *metrics.Metrics) *Products {
	return New(Resource[models.Product, models.ProductDraft]{
		Name:     "products",
		Noun:     "product",
		API:      api,
		Template: models.NewProductDraft,
		ToDraft:  models.ProductDraftOf,
		ItemID:   func(p models.Product) int64 { return p.ID },
		DraftID:  func(d models.ProductDraft) int64 { return d.ID },
		Payload: func(d models.ProductDraft) (any, error) {
			return d.Payload()
		},
		Searchable:        true,
		SurfaceSaveErrors: true,
	}, d, log, m)
}

func NewCategories(api API[models.Category], d Dialogs, log logging.Logger, m *metrics.Metrics) *Categories {
	return New(Resource[models.Category, models.CategoryDraft]{
		Name:     "categories",
		Noun:     "category",
		API:      api,
		Template: func() models.CategoryDraft { return models.CategoryDraft{} },
		ToDraft:  models.CategoryDraftOf,
		ItemID:   func(c models.Category) int64 { return c.ID },
		DraftID:  func(d models.CategoryDraft) int64 { return d.ID },
		Payload: func(d models.CategoryDraft) (any, error) {
			return d.Payload()
		},
		Searchable: true,
	}, d, log, m)
}

// EmailFinder looks users up by exact email.
type EmailFinder interface {
	FindUserByEmail(ctx context.Context, email string) (client.Page[models.User], error)
}

// userSearch sends terms that look like an email address to the email
// lookup and everything else to the name search.
type userSearch struct {
	API[models.User]
	byEmail EmailFinder
}

func (u userSearch) FindByName(ctx context.Context, term string) (client.Page[models.User], error) {
	if u.byEmail != nil && strings.Contains(term, "@") {
		return u.byEmail.FindUserByEmail(ctx, term)
	}
	return u.API.FindByName(ctx, term)
}

// NewUsers reports a single page for every search result.
func NewUsers(api API[models.User], byEmail EmailFinder, d Dialogs, log logging.Logger, m *metrics.Metrics) *Users {
	return New(Resource[models.User, models.UserDraft]{
		Name:     "users",
		Noun:     "user",
		API:      userSearch{API: api, byEmail: byEmail},
		Template: models.NewUserDraft,
		ToDraft:  models.UserDraftOf,
		ItemID:   func(u models.User) int64 { return u.ID },
		DraftID:  func(d models.UserDraft) int64 { return d.ID },
		Payload: func(d models.UserDraft) (any, error) {
			return d.Payload()
		},
		Searchable:  true,
		SearchTotal: func(client.Page[models.User]) int { return 1 },
	}, d, log, m)
}

func NewOrders(api API[models.Order], d Dialogs, log logging.Logger, m *metrics.Metrics) *Orders {
	return New(Resource[models.Order, models.OrderDraft]{
		Name:     "orders",
		Noun:     "order",
		API:      api,
		Template: models.NewOrderDraft,
		ToDraft:  models.OrderDraftOf,
		ItemID:   func(o models.Order) int64 { return o.ID },
		DraftID:  func(d models.OrderDraft) int64 { return d.ID },
		Payload: func(d models.OrderDraft) (any, error) {
			return d.Payload()
		},
	}, d, log, m)
}
