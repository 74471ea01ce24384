package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/common"
)

var ErrUnknownField = errors.New("unknown field")

// Field is one labelled form value, in display order.
type Field struct {
	Name  string
	Value string
}

// ProductDraft holds the product form as typed text.
type ProductDraft struct {
	ID          int64
	Name        string
	Description string
	Price       string
	Stock       string
	CategoryID  string
}

// ProductPayload is the validated product write.
type ProductPayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryID  int64   `json:"category_id"`
}

func NewProductDraft() ProductDraft {
	return ProductDraft{Price: "0", Stock: "0", CategoryID: "1"}
}

func ProductDraftOf(p Product) ProductDraft {
	return ProductDraft{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Stock:       strconv.Itoa(p.Stock),
		CategoryID:  strconv.FormatInt(p.CategoryRef(), 10),
	}
}

func (d ProductDraft) Fields() []Field {
	return []Field{
		{"name", d.Name},
		{"description", d.Description},
		{"price", d.Price},
		{"stock", d.Stock},
		{"category_id", d.CategoryID},
	}
}

func (d *ProductDraft) Set(field, value string) error {
	switch field {
	case "name":
		d.Name = value
	case "description":
		d.Description = value
	case "price":
		d.Price = value
	case "stock":
		d.Stock = value
	case "category_id":
		d.CategoryID = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// Payload validates the draft: name non-empty, price a number ≥ 0 (a
// decimal comma is accepted), stock and category_id integers. All failures
// are reported together.
func (d ProductDraft) Payload() (ProductPayload, error) {
	var msgs []string
	p := ProductPayload{Name: strings.TrimSpace(d.Name), Description: d.Description}

	if p.Name == "" {
		msgs = append(msgs, "name must not be empty")
	}

	price, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(d.Price), ",", ".", 1), 64)
	switch {
	case err != nil, math.IsNaN(price), math.IsInf(price, 0):
		msgs = append(msgs, "price must be a number")
	case price < 0:
		msgs = append(msgs, "price must not be negative")
	default:
		p.Price = price
	}

	if p.Stock, err = strconv.Atoi(strings.TrimSpace(d.Stock)); err != nil {
		msgs = append(msgs, "stock must be an integer")
	}
	if p.CategoryID, err = strconv.ParseInt(strings.TrimSpace(d.CategoryID), 10, 64); err != nil {
		msgs = append(msgs, "category_id must be an integer")
	}

	if len(msgs) > 0 {
		return ProductPayload{}, common.NewValidationError(msgs...)
	}
	return p, nil
}

type CategoryDraft struct {
	ID          int64
	Name        string
	Description string
}

func CategoryDraftOf(c Category) CategoryDraft {
	return CategoryDraft{ID: c.ID, Name: c.Name, Description: c.Description}
}

func (d CategoryDraft) Fields() []Field {
	return []Field{{"name", d.Name}, {"description", d.Description}}
}

func (d *CategoryDraft) Set(field, value string) error {
	switch field {
	case "name":
		d.Name = value
	case "description":
		d.Description = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

func (d CategoryDraft) Payload() (Category, error) {
	return Category{Name: d.Name, Description: d.Description}, nil
}

type UserDraft struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	Telephone string
	Role      string
}

func NewUserDraft() UserDraft {
	return UserDraft{Role: "user"}
}

// UserDraftOf never carries the password over; an empty password is left
// out of updates.
func UserDraftOf(u User) UserDraft {
	return UserDraft{ID: u.ID, Name: u.Name, Email: u.Email, Telephone: u.Telephone, Role: u.Role}
}

func (d UserDraft) Fields() []Field {
	pw := ""
	if d.Password != "" {
		pw = "********"
	}
	return []Field{
		{"name", d.Name},
		{"email", d.Email},
		{"password", pw},
		{"telephone", d.Telephone},
		{"role", d.Role},
	}
}

func (d *UserDraft) Set(field, value string) error {
	switch field {
	case "name":
		d.Name = value
	case "email":
		d.Email = value
	case "password":
		d.Password = value
	case "telephone":
		d.Telephone = value
	case "role":
		d.Role = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

func (d UserDraft) Payload() (User, error) {
	return User{
		Name:      d.Name,
		Email:     d.Email,
		Password:  d.Password,
		Telephone: d.Telephone,
		Role:      d.Role,
	}, nil
}

// OrderLineDraft is one order line as typed text.
type OrderLineDraft struct {
	ProductID string
	Quantity  int
}

type OrderDraft struct {
	ID      int64
	UserID  string
	Details []OrderLineDraft
	Status  OrderStatus
}

func NewOrderDraft() OrderDraft {
	return OrderDraft{Details: []OrderLineDraft{{}}, Status: OrderPending}
}

// OrderDraftOf flattens the nested order into ids. An order without
// details gets one empty line; a missing status becomes pending.
func OrderDraftOf(o Order) OrderDraft {
	d := OrderDraft{ID: o.ID, Status: o.Status}
	if o.User != nil {
		d.UserID = strconv.FormatInt(o.User.ID, 10)
	}
	for _, det := range o.OrderDetails {
		line := OrderLineDraft{Quantity: det.Quantity}
		if det.Product != nil {
			line.ProductID = strconv.FormatInt(det.Product.ID, 10)
		}
		d.Details = append(d.Details, line)
	}
	if len(d.Details) == 0 {
		d.Details = []OrderLineDraft{{}}
	}
	if d.Status == "" {
		d.Status = OrderPending
	}
	return d
}

func (d OrderDraft) Fields() []Field {
	f := []Field{{"user_id", d.UserID}}
	if len(d.Details) > 0 {
		f = append(f,
			Field{"product_id", d.Details[0].ProductID},
			Field{"quantity", strconv.Itoa(d.Details[0].Quantity)},
		)
	}
	return append(f, Field{"status", string(d.Status)})
}

// Set edits the order; product_id and quantity address the first line.
func (d *OrderDraft) Set(field, value string) error {
	if len(d.Details) == 0 {
		d.Details = []OrderLineDraft{{}}
	}
	switch field {
	case "user_id":
		d.UserID = value
	case "product_id":
		d.Details[0].ProductID = value
	case "quantity":
		q, err := strconv.Atoi(value)
		if err != nil {
			return common.NewValidationError("quantity must be an integer")
		}
		d.Details[0].Quantity = q
	case "status":
		s := OrderStatus(strings.ToLower(value))
		if !s.Valid() {
			return common.NewValidationError(fmt.Sprintf("status must be one of %v", OrderStatuses))
		}
		d.Status = s
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

func (d OrderDraft) Payload() (OrderRequest, error) {
	var msgs []string
	req := OrderRequest{Status: d.Status}

	uid, err := strconv.ParseInt(strings.TrimSpace(d.UserID), 10, 64)
	if err != nil {
		msgs = append(msgs, "user_id must be an integer")
	}
	req.UserID = uid

	for i, line := range d.Details {
		pid, err := strconv.ParseInt(strings.TrimSpace(line.ProductID), 10, 64)
		if err != nil {
			msgs = append(msgs, fmt.Sprintf("line %d: product_id must be an integer", i+1))
			continue
		}
		req.OrderDetails = append(req.OrderDetails, OrderLine{ProductID: pid, Quantity: line.Quantity})
	}

	if len(msgs) > 0 {
		return OrderRequest{}, common.NewValidationError(msgs...)
	}
	return req, nil
}
