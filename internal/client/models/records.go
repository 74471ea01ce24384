// Package models defines the storefront records exchanged with the remote
// API and the editable drafts behind the admin forms.
package models

// Category groups products.
type Category struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Product is a catalog item. Category is populated on reads; writes use
// CategoryID.
type Product struct {
	ID          int64     `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    *Category `json:"category,omitempty"`
	CategoryID  int64     `json:"category_id,omitempty"`
}

// CategoryRef returns the id of the product's category, preferring the
// nested record over the flat field.
func (p Product) CategoryRef() int64 {
	if p.Category != nil {
		return p.Category.ID
	}
	return p.CategoryID
}

type User struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Telephone string `json:"telephone,omitempty"`
	Role      string `json:"role,omitempty"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
)

var OrderStatuses = []OrderStatus{OrderPending, OrderConfirmed, OrderShipped, OrderDelivered}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type OrderDetail struct {
	ID       int64    `json:"id,omitempty"`
	Product  *Product `json:"product,omitempty"`
	Quantity int      `json:"quantity"`
}

// Order as returned by the API. TotalAmount is computed server-side and
// may be missing.
type Order struct {
	ID           int64         `json:"id,omitempty"`
	User         *User         `json:"user,omitempty"`
	OrderDetails []OrderDetail `json:"orderDetails,omitempty"`
	TotalAmount  *float64      `json:"total_amount,omitempty"`
	Status       OrderStatus   `json:"status,omitempty"`
}

// OrderLine is one product/quantity pair of an order write.
type OrderLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderRequest is the body of order create and update calls.
type OrderRequest struct {
	UserID       int64       `json:"user_id"`
	OrderDetails []OrderLine `json:"order_details"`
	Status       OrderStatus `json:"status,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Telephone string `json:"telephone"`
}
