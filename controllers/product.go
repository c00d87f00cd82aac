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
	"github.com/Changes18/poepoe/cache"
	"github.com/Changes18/poepoe/models"
	"github.com/Changes18/poepoe/repository"
)

// ProductController handles catalog requests. Reads go through the cache-aside
// layer; every write invalidates it.
type ProductController struct {
	Products repository.ProductStore
	Cache    *cache.ProductCache
}

// NewProductController creates a new ProductController
func NewProductController(products repository.ProductStore, productCache *cache.ProductCache) *ProductController {
	return &ProductController{Products: products, Cache: productCache}
}

func validateProduct(p *models.Product) error {
	if p.Name == "" {
		return apperrors.InvalidInput("Product name is required")
	}
	if p.Price <= 0 {
		return apperrors.InvalidInput("Product price must be a positive number")
	}
	if p.Image == "" {
		return apperrors.InvalidInput("Product image is required")
	}
	return nil
}

// GetProducts retrieves all products
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if products, ok := pc.Cache.GetList(ctx); ok {
		writeJSON(w, http.StatusOK, products)
		return
	}

	products, err := pc.Products.List(ctx)
	if err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Error fetching products", err))
		return
	}

	pc.Cache.SetListAsync(products)
	writeJSON(w, http.StatusOK, products)
}

// GetProductByID retrieves a single product
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	idHex := mux.Vars(r)["id"]
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		apperrors.HandleError(w, apperrors.InvalidInput("Invalid product ID"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if product, ok := pc.Cache.Get(ctx, idHex); ok {
		writeJSON(w, http.StatusOK, product)
		return
	}

	product, err := pc.Products.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		apperrors.HandleError(w, apperrors.NotFound("Product not found"))
		return
	}
	if err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Error fetching product", err))
		return
	}

	pc.Cache.SetAsync(product)
	writeJSON(w, http.StatusOK, product)
}

// CreateProduct handles adding a new product (admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		apperrors.HandleError(w, apperrors.InvalidInput("Invalid input"))
		return
	}
	if err := validateProduct(&product); err != nil {
		apperrors.HandleError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	created, err := pc.Products.Insert(ctx, &product)
	if err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Error creating product", err))
		return
	}

	pc.Cache.Invalidate(ctx, "")
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Product created",
		"product": created,
	})
}

// UpdateProduct handles updating a product (admin only)
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	idHex := mux.Vars(r)["id"]
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		apperrors.HandleError(w, apperrors.InvalidInput("Invalid product ID"))
		return
	}

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		apperrors.HandleError(w, apperrors.InvalidInput("Invalid input"))
		return
	}
	if err := validateProduct(&product); err != nil {
		apperrors.HandleError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	updated, err := pc.Products.Update(ctx, id, &product)
	if errors.Is(err, apperrors.ErrNotFound) {
		apperrors.HandleError(w, apperrors.NotFound("Product not found"))
		return
	}
	if err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Error updating product", err))
		return
	}

	pc.Cache.Invalidate(ctx, idHex)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product updated",
		"product": updated,
	})
}

// DeleteProduct handles deleting a product (admin only)
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	idHex := mux.Vars(r)["id"]
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		apperrors.HandleError(w, apperrors.InvalidInput("Invalid product ID"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err = pc.Products.Delete(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		apperrors.HandleError(w, apperrors.NotFound("Product not found"))
		return
	}
	if err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Error deleting product", err))
		return
	}

	pc.Cache.Invalidate(ctx, idHex)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product deleted",
	})
}
