package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderCustomer is the shipping/payment form captured by value at checkout.
// Later profile edits never change a placed order.
type OrderCustomer struct {
	FirstName     string `bson:"first_name" json:"firstName"`
	LastName      string `bson:"last_name" json:"lastName"`
	Address       string `bson:"address" json:"address"`
	PostalCode    string `bson:"postal_code" json:"postalCode"`
	City          string `bson:"city" json:"city"`
	Email         string `bson:"email" json:"email"`
	Phone         string `bson:"phone" json:"phone"`
	PaymentMethod string `bson:"payment_method" json:"paymentMethod"`
}

// OrderItem is a line-item snapshot. Name and Price are copied from the
// product at placement time and are never updated afterwards.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

// Order represents a completed purchase
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Customer  OrderCustomer      `bson:"customer" json:"customer"`
	Items     []OrderItem        `bson:"items" json:"items"`
	Total     float64            `bson:"total" json:"total"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// OrderItemDetail is a line-item snapshot joined with the live product record,
// for the admin listing. Product is nil when the product has been deleted.
type OrderItemDetail struct {
	OrderItem
	Product *Product `json:"product"`
}

// OrderDetail is an order joined with the owning user's username and live
// product details, as returned by the admin listing.
type OrderDetail struct {
	ID        primitive.ObjectID `json:"id"`
	UserID    primitive.ObjectID `json:"user_id"`
	Username  string             `json:"username"`
	Customer  OrderCustomer      `json:"customer"`
	Items     []OrderItemDetail  `json:"items"`
	Total     float64            `json:"total"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}
