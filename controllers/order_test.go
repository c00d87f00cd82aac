package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Changes18/poepoe/controllers"
	"github.com/Changes18/poepoe/models"
	"github.com/Changes18/poepoe/utils"
)

func validCustomer() map[string]interface{} {
	return map[string]interface{}{
		"firstName":     "Ivan",
		"lastName":      "Petrov",
		"address":       "Lenina 1",
		"postalCode":    "123456",
		"city":          "Moscow",
		"email":         "ivan@example.com",
		"phone":         "+79990000000",
		"paymentMethod": "card",
	}
}

func newOrderRouter(oc *controllers.OrderController, user *models.User) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/orders", oc.CreateOrder).Methods("POST")
	router.HandleFunc("/orders", oc.GetOrders).Methods("GET")
	router.HandleFunc("/orders/{id}", oc.UpdateOrderStatus).Methods("PUT")
	router.HandleFunc("/orders/{id}", oc.DeleteOrder).Methods("DELETE")
	return withUser(user, router)
}

func TestCreateOrder_ComputesTotalAndSnapshots(t *testing.T) {
	users := newMockUserStore()
	products := newMockProductStore()
	orders := newMockOrderStore()
	user := users.add(&models.User{Username: "ivan", Role: "user"})
	productA := products.add(&models.Product{Name: "Alpha", Price: 10, Image: "a.jpg"})
	productB := products.add(&models.Product{Name: "Beta", Price: 5, Image: "b.jpg"})

	handler := newOrderRouter(controllers.NewOrderController(orders, products, users, utils.NewEmailService("", "")), user)

	rr := doJSON(t, handler, "POST", "/orders", map[string]interface{}{
		"customer": validCustomer(),
		"items": []map[string]interface{}{
			{"productId": productA.ID.Hex(), "quantity": 2},
			{"productId": productB.ID.Hex(), "quantity": 1},
		},
		// client-supplied totals are ignored
		"total": 1,
	})
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		Order models.Order `json:"order"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 25.0, resp.Order.Total)
	assert.Equal(t, models.OrderStatusPending, resp.Order.Status)
	assert.Len(t, resp.Order.Items, 2)
	assert.Equal(t, "Alpha", resp.Order.Items[0].Name)
	assert.Equal(t, 10.0, resp.Order.Items[0].Price)
	assert.Equal(t, "Beta", resp.Order.Items[1].Name)
	assert.Equal(t, 5.0, resp.Order.Items[1].Price)

	// Snapshots are decoupled from later product edits
	productA.Price = 999
	stored := orders.orders[resp.Order.ID]
	assert.Equal(t, 10.0, stored.Items[0].Price)
	assert.Equal(t, 25.0, stored.Total)
}

func TestCreateOrder_UnknownProduct_NothingWritten(t *testing.T) {
	users := newMockUserStore()
	products := newMockProductStore()
	orders := newMockOrderStore()
	user := users.add(&models.User{Username: "ivan", Role: "user"})
	known := products.add(&models.Product{Name: "Alpha", Price: 10, Image: "a.jpg"})

	handler := newOrderRouter(controllers.NewOrderController(orders, products, users, utils.NewEmailService("", "")), user)

	missing := primitive.NewObjectID().Hex()
	rr := doJSON(t, handler, "POST", "/orders", map[string]interface{}{
		"customer": validCustomer(),
		"items": []map[string]interface{}{
			{"productId": known.ID.Hex(), "quantity": 1},
			{"productId": missing, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), missing)
	assert.Empty(t, orders.orders, "no order record may be created on a failed placement")
}

func TestCreateOrder_MissingCustomerField(t *testing.T) {
	users := newMockUserStore()
	products := newMockProductStore()
	orders := newMockOrderStore()
	user := users.add(&models.User{Username: "ivan", Role: "user"})
	product := products.add(&models.Product{Name: "Alpha", Price: 10, Image: "a.jpg"})

	handler := newOrderRouter(controllers.NewOrderController(orders, products, users, utils.NewEmailService("", "")), user)

	customer := validCustomer()
	customer["email"] = ""
	rr := doJSON(t, handler, "POST", "/orders", map[string]interface{}{
		"customer": customer,
		"items":    []map[string]interface{}{{"productId": product.ID.Hex(), "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, orders.orders)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	users := newMockUserStore()
	products := newMockProductStore()
	orders := newMockOrderStore()
	user := users.add(&models.User{Username: "ivan", Role: "user"})

	handler := newOrderRouter(controllers.NewOrderController(orders, products, users, utils.NewEmailService("", "")), user)

	rr := doJSON(t, handler, "POST", "/orders", map[string]interface{}{
		"customer": validCustomer(),
		"items":    []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetOrders_JoinsUsernameAndFilters(t *testing.T) {
	users := newMockUserStore()
	products := newMockProductStore()
	orders := newMockOrderStore()
	admin := users.add(&models.User{Username: "admin", Role: "admin"})
	buyer := users.add(&models.User{Username: "ivan", Role: "user"})
	product := products.add(&models.Product{Name: "Alpha", Price: 10, Image: "a.jpg"})

	handler := newOrderRouter(controllers.NewOrderController(orders, products, users, utils.NewEmailService("", "")), buyer)

	rr := doJSON(t, handler, "POST", "/orders", map[string]interface{}{
		"customer": validCustomer(),
		"items":    []map[string]interface{}{{"productId": product.ID.Hex(), "quantity": 1}},
	})
	assert.Equal(t, http.StatusCreated, rr.Code)

	other := validCustomer()
	other["firstName"] = "Maria"
	other["email"] = "maria@example.com"
	rr = doJSON(t, handler, "POST", "/orders", map[string]interface{}{
		"customer": other,
		"items":    []map[string]interface{}{{"productId": product.ID.Hex(), "quantity": 2}},
	})
	assert.Equal(t, http.StatusCreated, rr.Code)

	adminHandler := newOrderRouter(controllers.NewOrderController(orders, products, users, utils.NewEmailService("", "")), admin)

	rr = doJSON(t, adminHandler, "GET", "/orders", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	var details []models.OrderDetail
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &details))
	assert.Len(t, details, 2)
	for _, d := range details {
		assert.Equal(t, "ivan", d.Username)
		assert.NotNil(t, d.Items[0].Product)
	}

	rr = doJSON(t, adminHandler, "GET", "/orders?search=maria", nil)
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &details))
	assert.Len(t, details, 1)
	assert.Equal(t, "Maria", details[0].Customer.FirstName)

	rr = doJSON(t, adminHandler, "GET", "/orders?status=completed", nil)
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &details))
	assert.Empty(t, details)
}

func TestUpdateOrderStatus(t *testing.T) {
	users := newMockUserStore()
	products := newMockProductStore()
	orders := newMockOrderStore()
	admin := users.add(&models.User{Username: "admin", Role: "admin"})

	first, err := orders.Insert(context.Background(), &models.Order{UserID: admin.ID, Status: models.OrderStatusPending})
	assert.NoError(t, err)
	second, err := orders.Insert(context.Background(), &models.Order{UserID: admin.ID, Status: models.OrderStatusPending})
	assert.NoError(t, err)

	handler := newOrderRouter(controllers.NewOrderController(orders, products, users, utils.NewEmailService("", "")), admin)

	rr := doJSON(t, handler, "PUT", "/orders/"+first.ID.Hex(), map[string]interface{}{"status": "completed"})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "completed", orders.orders[first.ID].Status)
	assert.Equal(t, "pending", orders.orders[second.ID].Status, "other orders must be unaffected")

	rr = doJSON(t, handler, "PUT", "/orders/"+first.ID.Hex(), map[string]interface{}{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "values outside the enumerated set are rejected")

	rr = doJSON(t, handler, "PUT", "/orders/"+primitive.NewObjectID().Hex(), map[string]interface{}{"status": "completed"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteOrder(t *testing.T) {
	users := newMockUserStore()
	products := newMockProductStore()
	orders := newMockOrderStore()
	admin := users.add(&models.User{Username: "admin", Role: "admin"})

	order, err := orders.Insert(context.Background(), &models.Order{UserID: admin.ID, Status: models.OrderStatusPending})
	assert.NoError(t, err)

	handler := newOrderRouter(controllers.NewOrderController(orders, products, users, utils.NewEmailService("", "")), admin)

	rr := doJSON(t, handler, "DELETE", "/orders/"+order.ID.Hex(), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, orders.orders)

	rr = doJSON(t, handler, "DELETE", "/orders/"+order.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
