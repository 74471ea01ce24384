package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/storefront/internal/client/authz"
)

// view is the state and command set behind one route. A new view is built
// on every navigation; its state is dropped when the user leaves.
type view interface {
	enter(ctx context.Context) error
	help() []string
	handle(ctx context.Context, cmd string, args []string) (bool, error)
}

func (a *App) buildView(r authz.Route, params map[string]string) (view, error) {
	switch r.Pattern {
	case authz.FallbackPath:
		return &messageView{app: a, text: "Storefront home. Browse the catalog with 'go /products'."}, nil
	case authz.LoginPath:
		return &messageView{app: a, text: "Type 'login' to sign in or 'go /register' to create an account."}, nil
	case authz.RegisterPath:
		return &messageView{app: a, text: "Type 'register' to create an account."}, nil
	case authz.CatalogPath:
		return &catalogView{app: a, page: 1}, nil
	case authz.ProductDetailPath:
		id, err := strconv.ParseInt(params["id"], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid product id %q", params["id"])
		}
		return &productView{app: a, id: id}, nil
	case authz.ProductsAdminPath:
		return a.productsAdminView(), nil
	case authz.CategoriesPath:
		return a.categoriesView(), nil
	case authz.UsersAdminPath:
		return a.usersView(), nil
	case authz.OrdersAdminPath:
		return a.ordersView(), nil
	}
	return nil, fmt.Errorf("no view for %s", r.Pattern)
}

// messageView is a static entry point.
type messageView struct {
	app  *App
	text string
}

func (v *messageView) enter(context.Context) error {
	v.app.println(v.text)
	return nil
}

func (v *messageView) help() []string { return nil }

func (v *messageView) handle(context.Context, string, []string) (bool, error) {
	return false, nil
}
