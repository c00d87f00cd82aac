package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Changes18/poepoe/models"
)

// Store lookups that match nothing return apperrors.ErrNotFound; every other
// error is a raw driver failure for the caller to report as internal.

// UserStore defines the interface for user data access
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, update UserUpdate) (*models.User, error)
}

// UserUpdate carries the profile fields to change; empty fields are left as is
type UserUpdate struct {
	Username string
	Password string
}

// ProductStore defines the interface for catalog data access
type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Insert(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CartStore defines the interface for cart data access. All reads and writes
// are scoped to the owning user.
type CartStore interface {
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error)
	// AddOrIncrement atomically increments the quantity of the (user, product)
	// row, inserting it when absent, and returns the resulting item.
	AddOrIncrement(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.CartItem, error)
	SetQuantity(ctx context.Context, id, userID primitive.ObjectID, quantity int) (*models.CartItem, error)
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

// OrderFilter narrows the admin order listing. Search is a case-insensitive
// substring match against the customer name and email; Status is exact.
type OrderFilter struct {
	Search string
	Status string
}

// OrderStore defines the interface for order data access
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) (*models.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
