package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Changes18/poepoe/apperrors"
	"github.com/Changes18/poepoe/middleware"
	"github.com/Changes18/poepoe/models"
	"github.com/Changes18/poepoe/repository"
)

// CartController handles cart-related requests
type CartController struct {
	Carts    repository.CartStore
	Products repository.ProductStore
}

// NewCartController creates a new CartController
func NewCartController(carts repository.CartStore, products repository.ProductStore) *CartController {
	return &CartController{Carts: carts, Products: products}
}

// joinProduct attaches the live product record to a cart item. A vanished
// product leaves the Product field nil rather than failing the read.
func (cc *CartController) joinProduct(ctx context.Context, item models.CartItem) models.CartItemDetail {
	detail := models.CartItemDetail{CartItem: item}
	if product, err := cc.Products.FindByID(ctx, item.ProductID); err == nil {
		detail.Product = product
	}
	return detail
}

// GetCart retrieves the caller's cart, each item joined with product details
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apperrors.HandleError(w, apperrors.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := cc.Carts.ListByUser(ctx, user.ID)
	if err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Error fetching cart", err))
		return
	}

	details := make([]models.CartItemDetail, 0, len(items))
	for _, item := range items {
		details = append(details, cc.joinProduct(ctx, item))
	}

	writeJSON(w, http.StatusOK, details)
}

// AddToCart adds a product to the caller's cart, incrementing the quantity
// when the product is already present
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apperrors.HandleError(w, apperrors.ErrUnauthorized)
		return
	}

	var body struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apperrors.HandleError(w, apperrors.InvalidInput("Invalid input"))
		return
	}

	productID, err := primitive.ObjectIDFromHex(body.ProductID)
	if err != nil {
		apperrors.HandleError(w, apperrors.InvalidInput("Invalid product ID"))
		return
	}

	quantity := body.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		apperrors.HandleError(w, apperrors.InvalidInput("Quantity must be a positive number"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	product, err := cc.Products.FindByID(ctx, productID)
	if errors.Is(err, apperrors.ErrNotFound) {
		apperrors.HandleError(w, apperrors.NotFound("Product not found"))
		return
	}
	if err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Error adding to cart", err))
		return
	}

	item, err := cc.Carts.AddOrIncrement(ctx, user.ID, productID, quantity)
	if err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Error adding to cart", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Item added to cart",
		"cartItem": models.CartItemDetail{CartItem: *item, Product: product},
	})
}

// UpdateCartItem sets the quantity of a cart item. A quantity of zero or
// below deletes the item; this is a documented policy, not an error.
func (cc *CartController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apperrors.HandleError(w, apperrors.ErrUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		apperrors.HandleError(w, apperrors.InvalidInput("Invalid cart item ID"))
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apperrors.HandleError(w, apperrors.InvalidInput("Invalid input"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if body.Quantity <= 0 {
		err := cc.Carts.Delete(ctx, id, user.ID)
		if errors.Is(err, apperrors.ErrNotFound) {
			apperrors.HandleError(w, apperrors.NotFound("Cart item not found"))
			return
		}
		if err != nil {
			apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Error updating cart", err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Cart item removed",
		})
		return
	}

	item, err := cc.Carts.SetQuantity(ctx, id, user.ID, body.Quantity)
	if errors.Is(err, apperrors.ErrNotFound) {
		apperrors.HandleError(w, apperrors.NotFound("Cart item not found"))
		return
	}
	if err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Error updating cart", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Cart updated",
		"cartItem": cc.joinProduct(ctx, *item),
	})
}

// RemoveFromCart deletes a cart item owned by the caller
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apperrors.HandleError(w, apperrors.ErrUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		apperrors.HandleError(w, apperrors.InvalidInput("Invalid cart item ID"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err = cc.Carts.Delete(ctx, id, user.ID)
	if errors.Is(err, apperrors.ErrNotFound) {
		apperrors.HandleError(w, apperrors.NotFound("Cart item not found"))
		return
	}
	if err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Error removing from cart", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Cart item removed",
	})
}

// ClearCart deletes every cart item owned by the caller. Clearing an already
// empty cart succeeds.
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apperrors.HandleError(w, apperrors.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := cc.Carts.Clear(ctx, user.ID); err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Error clearing cart", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Cart cleared",
	})
}
