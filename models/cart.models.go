package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem represents one (user, product) row in the cart collection.
// At most one row exists per pair; re-adding a product increments Quantity.
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// CartItemDetail is a cart row joined with the live product record.
// Product is nil when the referenced product has been deleted.
type CartItemDetail struct {
	CartItem
	Product *Product `json:"product"`
}
