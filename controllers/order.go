package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Changes18/poepoe/apperrors"
	"github.com/Changes18/poepoe/logger"
	"github.com/Changes18/poepoe/middleware"
	"github.com/Changes18/poepoe/models"
	"github.com/Changes18/poepoe/repository"
	"github.com/Changes18/poepoe/utils"
)

// OrderController handles checkout and the admin order surface
type OrderController struct {
	Orders       repository.OrderStore
	Products     repository.ProductStore
	Users        repository.UserStore
	EmailService *utils.EmailService
}

// NewOrderController creates a new OrderController
func NewOrderController(orders repository.OrderStore, products repository.ProductStore, users repository.UserStore, emailService *utils.EmailService) *OrderController {
	return &OrderController{
		Orders:       orders,
		Products:     products,
		Users:        users,
		EmailService: emailService,
	}
}

type checkoutCustomer struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Address       string `json:"address"`
	PostalCode    string `json:"postalCode"`
	City          string `json:"city"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"paymentMethod"`
}

func (c checkoutCustomer) validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"firstName", c.FirstName},
		{"lastName", c.LastName},
		{"address", c.Address},
		{"postalCode", c.PostalCode},
		{"city", c.City},
		{"email", c.Email},
		{"phone", c.Phone},
		{"paymentMethod", c.PaymentMethod},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return apperrors.InvalidInput(fmt.Sprintf("Missing required field: %s", f.name))
		}
	}
	return nil
}

// CreateOrder places an order from an explicit item list. The cart is not
// read here and not cleared here; the client clears it with a separate call
// once the order is confirmed.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apperrors.HandleError(w, apperrors.ErrUnauthorized)
		return
	}

	var body struct {
		Customer checkoutCustomer `json:"customer"`
		Items    []struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		} `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apperrors.HandleError(w, apperrors.InvalidInput("Invalid input"))
		return
	}
	if err := body.Customer.validate(); err != nil {
		apperrors.HandleError(w, err)
		return
	}
	if len(body.Items) == 0 {
		apperrors.HandleError(w, apperrors.InvalidInput("Order must contain at least one item"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// Resolve every product before writing anything; the total is computed
	// here and any client-supplied total is ignored.
	var total float64
	orderItems := make([]models.OrderItem, 0, len(body.Items))
	for _, item := range body.Items {
		if item.Quantity <= 0 {
			apperrors.HandleError(w, apperrors.InvalidInput("Item quantity must be a positive number"))
			return
		}
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			apperrors.HandleError(w, apperrors.InvalidInput(fmt.Sprintf("Invalid product ID: %s", item.ProductID)))
			return
		}
		product, err := oc.Products.FindByID(ctx, productID)
		if errors.Is(err, apperrors.ErrNotFound) {
			apperrors.HandleError(w, apperrors.NotFound(fmt.Sprintf("Product %s not found", item.ProductID)))
			return
		}
		if err != nil {
			apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Failed to create order", err))
			return
		}

		total += product.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	order := &models.Order{
		UserID: user.ID,
		Customer: models.OrderCustomer{
			FirstName:     body.Customer.FirstName,
			LastName:      body.Customer.LastName,
			Address:       body.Customer.Address,
			PostalCode:    body.Customer.PostalCode,
			City:          body.Customer.City,
			Email:         body.Customer.Email,
			Phone:         body.Customer.Phone,
			PaymentMethod: body.Customer.PaymentMethod,
		},
		Items:     orderItems,
		Total:     total,
		Status:    models.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	created, err := oc.Orders.Insert(ctx, order)
	if err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Failed to create order", err))
		return
	}

	if oc.EmailService.Enabled() {
		go func(order models.Order) {
			if err := oc.EmailService.SendOrderConfirmationEmail(&order); err != nil {
				logger.Log.Warn("Failed to send order confirmation",
					zap.String("order_id", order.ID.Hex()), zap.Error(err))
			}
		}(*created)
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order created successfully",
		"order":   created,
	})
}

// GetOrders lists all orders (admin only), joined with the owning user's
// username and live product details. Supports optional search and status
// query parameters, applied server-side.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	filter := repository.OrderFilter{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orders, err := oc.Orders.List(ctx, filter)
	if err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Failed to retrieve orders", err))
		return
	}

	details := make([]models.OrderDetail, 0, len(orders))
	for _, order := range orders {
		detail := models.OrderDetail{
			ID:        order.ID,
			UserID:    order.UserID,
			Customer:  order.Customer,
			Total:     order.Total,
			Status:    order.Status,
			CreatedAt: order.CreatedAt,
			Items:     make([]models.OrderItemDetail, 0, len(order.Items)),
		}
		if owner, err := oc.Users.FindByID(ctx, order.UserID); err == nil {
			detail.Username = owner.Username
		}
		for _, item := range order.Items {
			itemDetail := models.OrderItemDetail{OrderItem: item}
			if product, err := oc.Products.FindByID(ctx, item.ProductID); err == nil {
				itemDetail.Product = product
			}
			detail.Items = append(detail.Items, itemDetail)
		}
		details = append(details, detail)
	}

	writeJSON(w, http.StatusOK, details)
}

// UpdateOrderStatus sets an order's status (admin only). The value must be
// one of the known statuses; any status may follow any other.
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		apperrors.HandleError(w, apperrors.InvalidInput("Invalid order ID"))
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		apperrors.HandleError(w, apperrors.InvalidInput("Invalid input"))
		return
	}
	if !models.ValidOrderStatus(body.Status) {
		apperrors.HandleError(w, apperrors.InvalidInput("Invalid order status"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := oc.Orders.UpdateStatus(ctx, id, body.Status)
	if errors.Is(err, apperrors.ErrNotFound) {
		apperrors.HandleError(w, apperrors.NotFound("Order not found"))
		return
	}
	if err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Failed to update order", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order status updated",
		"order":   order,
	})
}

// DeleteOrder removes an order permanently (admin only)
func (oc *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		apperrors.HandleError(w, apperrors.InvalidInput("Invalid order ID"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err = oc.Orders.Delete(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		apperrors.HandleError(w, apperrors.NotFound("Order not found"))
		return
	}
	if err != nil {
		apperrors.HandleError(w, apperrors.New(http.StatusInternalServerError, "Failed to delete order", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order deleted",
	})
}
