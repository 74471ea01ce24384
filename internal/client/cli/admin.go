package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/controller"
	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// categoryLookupLimit bounds the category list fetched to label products.
const categoryLookupLimit = 100

// crudView drives a controller from the REPL. The list and the form are
// rendered from the controller state after every command.
type crudView[T, D any] struct {
	app     *App
	ctl     *controller.Controller[T, D]
	headers []string
	row     func(T) []string
	fields  func(D) []models.Field
	set     func(*D, string, string) error
	// prepare runs once on enter, before the first fetch.
	prepare func(ctx context.Context)
}

func (v *crudView[T, D]) enter(ctx context.Context) error {
	if v.prepare != nil {
		v.prepare(ctx)
	}
	if err := v.ctl.FetchPage(ctx, 1); err != nil {
		v.app.println("Could not load", v.ctl.Name()+":", err)
	}
	v.render()
	return nil
}

func (v *crudView[T, D]) help() []string {
	cmds := []string{"list", "next", "prev"}
	if v.ctl.Searchable() {
		cmds = append(cmds, "search [term]")
	}
	return append(cmds, "add", "edit <id>", "set <field> <value>", "form", "save", "cancel", "delete <id>")
}

func (v *crudView[T, D]) handle(ctx context.Context, cmd string, args []string) (bool, error) {
	var err error
	switch cmd {
	case "list":
		err = v.ctl.Refresh(ctx)
	case "next":
		err = v.ctl.Next(ctx)
	case "prev":
		err = v.ctl.Prev(ctx)
	case "search":
		err = v.ctl.Search(ctx, strings.Join(args, " "))
		if errors.Is(err, controller.ErrNotSearchable) {
			v.app.printf("Search is not available for %s\n", v.ctl.Name())
			return true, nil
		}
	case "add":
		v.ctl.OpenAdd()
		v.renderForm()
		return true, nil
	case "edit":
		id, ok := v.idArg(args, "edit <id>")
		if !ok {
			return true, nil
		}
		if err := v.ctl.OpenEdit(id); err != nil {
			v.app.println("Error:", err)
			return true, err
		}
		v.renderForm()
		return true, nil
	case "set":
		return true, v.setField(args)
	case "form":
		v.renderForm()
		return true, nil
	case "save":
		if err := v.ctl.Save(ctx); err != nil {
			if errors.Is(err, controller.ErrModalClosed) {
				v.app.println("Nothing to save, use add or edit first")
			} else {
				v.app.println("Not saved, the form is still open")
			}
			return true, err
		}
		v.app.println("Saved")
	case "cancel":
		v.ctl.Close()
		v.app.println("Form closed")
		return true, nil
	case "delete":
		id, ok := v.idArg(args, "delete <id>")
		if !ok {
			return true, nil
		}
		deleted, err := v.ctl.Delete(ctx, id)
		if err != nil || !deleted {
			return true, err
		}
	default:
		return false, nil
	}

	if err != nil && !errors.Is(err, controller.ErrStale) {
		v.app.println("Error:", err)
	}
	v.render()
	return true, err
}

func (v *crudView[T, D]) idArg(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		v.app.println("Usage:", usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		v.app.println("Usage:", usage)
		return 0, false
	}
	return id, true
}

func (v *crudView[T, D]) setField(args []string) error {
	if len(args) < 1 {
		v.app.println("Usage: set <field> <value>")
		return nil
	}
	field, value := args[0], strings.Join(args[1:], " ")

	err := v.ctl.EditDraft(func(d *D) error {
		return v.set(d, field, value)
	})
	switch {
	case errors.Is(err, controller.ErrModalClosed):
		v.app.println("No open form, use add or edit first")
	case errors.Is(err, models.ErrUnknownField):
		v.app.println("Unknown field:", field)
	case err != nil:
		v.app.println("Error:", err)
	default:
		v.renderForm()
	}
	return err
}

func (v *crudView[T, D]) render() {
	s := v.ctl.State()

	rows := make([][]string, 0, len(s.Items))
	for _, item := range s.Items {
		rows = append(rows, v.row(item))
	}
	RenderTable(v.app.out, v.headers, rows)

	if s.SearchTerm != "" {
		v.app.printf("Search: %q  ", s.SearchTerm)
	}
	v.app.printf("Page %d of %d\n", s.CurrentPage, s.TotalPages)
	if s.ModalOpen {
		v.app.println("A form is open (form, set, save, cancel)")
	}
}

func (v *crudView[T, D]) renderForm() {
	s := v.ctl.State()
	if !s.ModalOpen {
		v.app.println("No open form")
		return
	}

	fields := v.fields(s.Draft)
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, []string{f.Name, f.Value})
	}
	RenderTable(v.app.out, []string{"Field", "Value"}, rows)
}

func (a *App) productsAdminView() view {
	categories := map[int64]string{}

	v := &crudView[models.Product, models.ProductDraft]{
		app:     a,
		ctl:     controller.NewProducts(a.api.Products(), a.dialogs, a.log, a.metrics),
		headers: []string{"ID", "Name", "Category", "Price", "Stock"},
		row: func(p models.Product) []string {
			name, ok := categories[p.CategoryRef()]
			if !ok && p.Category != nil {
				name = p.Category.Name
			}
			return []string{formatID(p.ID), p.Name, orDash(name), formatPrice(p.Price), strconv.Itoa(p.Stock)}
		},
		fields: models.ProductDraft.Fields,
		set:    (*models.ProductDraft).Set,
	}
	v.prepare = func(ctx context.Context) {
		page, err := a.api.Categories().List(ctx, 1, categoryLookupLimit)
		if err != nil {
			a.log.Warn(ctx, "failed to load categories", "err", err)
			return
		}
		for _, c := range page.Items {
			categories[c.ID] = c.Name
		}
	}
	return v
}

func (a *App) categoriesView() view {
	return &crudView[models.Category, models.CategoryDraft]{
		app:     a,
		ctl:     controller.NewCategories(a.api.Categories(), a.dialogs, a.log, a.metrics),
		headers: []string{"ID", "Name", "Description"},
		row: func(c models.Category) []string {
			return []string{formatID(c.ID), c.Name, orDash(c.Description)}
		},
		fields: models.CategoryDraft.Fields,
		set:    (*models.CategoryDraft).Set,
	}
}

func (a *App) usersView() view {
	return &crudView[models.User, models.UserDraft]{
		app:     a,
		ctl:     controller.NewUsers(a.api.Users(), a.api, a.dialogs, a.log, a.metrics),
		headers: []string{"ID", "Name", "Email", "Telephone", "Role"},
		row: func(u models.User) []string {
			return []string{formatID(u.ID), u.Name, u.Email, orDash(u.Telephone), orDash(u.Role)}
		},
		fields: models.UserDraft.Fields,
		set:    (*models.UserDraft).Set,
	}
}

func (a *App) ordersView() view {
	return &crudView[models.Order, models.OrderDraft]{
		app:     a,
		ctl:     controller.NewOrders(a.api.Orders(), a.dialogs, a.log, a.metrics),
		headers: []string{"ID", "User", "Product", "Quantity", "Total", "Status"},
		row:     orderRow,
		fields:  models.OrderDraft.Fields,
		set:     (*models.OrderDraft).Set,
	}
}

// orderRow shows the first line of an order; the rest are counted.
func orderRow(o models.Order) []string {
	user := "-"
	if o.User != nil {
		user = fmt.Sprintf("%d %s", o.User.ID, o.User.Name)
	}

	product, qty := "-", "-"
	if len(o.OrderDetails) > 0 {
		d := o.OrderDetails[0]
		if d.Product != nil {
			product = d.Product.Name
		}
		if extra := len(o.OrderDetails) - 1; extra > 0 {
			product += fmt.Sprintf(" (+%d)", extra)
		}
		qty = strconv.Itoa(d.Quantity)
	}

	total := "-"
	if o.TotalAmount != nil {
		total = formatPrice(*o.TotalAmount)
	}
	return []string{formatID(o.ID), user, product, qty, total, orDash(string(o.Status))}
}
