package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/authz"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/services"
)

// catalogView is the public product list. Paging forward has no upper
// bound; the server answers past the end with an empty page.
type catalogView struct {
	app  *App
	page int
	term string
}

func (v *catalogView) enter(ctx context.Context) error {
	return v.list(ctx)
}

func (v *catalogView) help() []string {
	return []string{"list", "next", "prev", "search [term]", "show <id>"}
}

func (v *catalogView) handle(ctx context.Context, cmd string, args []string) (bool, error) {
	switch cmd {
	case "list":
		return true, v.list(ctx)
	case "next":
		v.page++
		return true, v.list(ctx)
	case "prev":
		if v.page > 1 {
			v.page--
		}
		return true, v.list(ctx)
	case "search":
		v.term = strings.Join(args, " ")
		return true, v.list(ctx)
	case "show":
		if len(args) == 0 {
			v.app.println("Usage: show <id>")
			return true, nil
		}
		return true, v.app.goTo(ctx, "/products/"+args[0])
	}
	return false, nil
}

func (v *catalogView) list(ctx context.Context) error {
	items, err := v.app.catalog.List(ctx, v.page, v.term)
	if err != nil {
		v.app.log.Error(ctx, "failed to fetch catalog", "page", v.page, "term", v.term, "err", err)
		v.app.println("Error:", err)
		return err
	}

	rows := make([][]string, 0, len(items))
	for _, p := range items {
		rows = append(rows, []string{formatID(p.ID), p.Name, formatPrice(p.Price), p.Description})
	}
	RenderTable(v.app.out, []string{"ID", "Name", "Price", "Description"}, rows)
	if v.term != "" {
		v.app.printf("Search: %q\n", v.term)
	} else {
		v.app.printf("Page %d\n", v.page)
	}
	return nil
}

// productView shows one product and places orders for it.
type productView struct {
	app     *App
	id      int64
	product *models.Product
}

func (v *productView) enter(ctx context.Context) error {
	p, err := v.app.catalog.Product(ctx, v.id)
	if err != nil {
		v.app.log.Error(ctx, "failed to fetch product", "id", v.id, "err", err)
		v.app.println("Error:", err)
		return err
	}
	v.product = p

	category := "-"
	if p.Category != nil {
		category = p.Category.Name
	}
	RenderTable(v.app.out, []string{"Field", "Value"}, [][]string{
		{"name", p.Name},
		{"category", category},
		{"price", formatPrice(p.Price)},
		{"stock", strconv.Itoa(p.Stock)},
		{"description", orDash(p.Description)},
	})
	return nil
}

func (v *productView) help() []string {
	return []string{"order [quantity]"}
}

func (v *productView) handle(ctx context.Context, cmd string, args []string) (bool, error) {
	if cmd != "order" {
		return false, nil
	}
	if v.product == nil {
		v.app.println("Product is not loaded")
		return true, nil
	}

	qty := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			v.app.println("Usage: order [quantity]")
			return true, nil
		}
		qty = n
	}

	name, err := v.app.catalog.PlaceOrder(ctx, v.product.ID, qty)
	if errors.Is(err, services.ErrLoginRequired) {
		return true, v.app.goTo(ctx, authz.LoginPath)
	}
	if err != nil {
		v.app.log.Error(ctx, "failed to create order", "product", v.product.ID, "err", err)
		v.app.dialogs.Error(ctx, "Error", "Could not create the order: "+err.Error())
		return true, err
	}

	v.app.dialogs.Success(ctx, "Order created",
		fmt.Sprintf("Thank you for your order, %s! We will contact you as soon as possible.", name))
	return true, v.app.goTo(ctx, authz.FallbackPath)
}
