package controllers_test

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Changes18/poepoe/apperrors"
	"github.com/Changes18/poepoe/models"
	"github.com/Changes18/poepoe/repository"
)

// --- Mock user store ---

type mockUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (m *mockUserStore) add(user *models.User) *models.User {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.ID] = user
	return user
}

func (m *mockUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (m *mockUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockUserStore) Insert(_ context.Context, user *models.User) (*models.User, error) {
	return m.add(user), nil
}

func (m *mockUserStore) Update(_ context.Context, id primitive.ObjectID, update repository.UserUpdate) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if update.Username != "" {
		user.Username = update.Username
	}
	if update.Password != "" {
		user.Password = update.Password
	}
	return user, nil
}

// --- Mock product store ---

type mockProductStore struct {
	products map[primitive.ObjectID]*models.Product
}

func newMockProductStore() *mockProductStore {
	return &mockProductStore{products: make(map[primitive.ObjectID]*models.Product)}
}

func (m *mockProductStore) add(product *models.Product) *models.Product {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	m.products[product.ID] = product
	return product
}

func (m *mockProductStore) List(_ context.Context) ([]models.Product, error) {
	result := []models.Product{}
	for _, p := range m.products {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return p, nil
}

func (m *mockProductStore) Insert(_ context.Context, product *models.Product) (*models.Product, error) {
	return m.add(product), nil
}

func (m *mockProductStore) Update(_ context.Context, id primitive.ObjectID, product *models.Product) (*models.Product, error) {
	existing, ok := m.products[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	existing.Name = product.Name
	existing.Price = product.Price
	existing.Image = product.Image
	existing.Description = product.Description
	return existing, nil
}

func (m *mockProductStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.products[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

// --- Mock cart store ---

type mockCartStore struct {
	items map[primitive.ObjectID]*models.CartItem
}

func newMockCartStore() *mockCartStore {
	return &mockCartStore{items: make(map[primitive.ObjectID]*models.CartItem)}
}

func (m *mockCartStore) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	result := []models.CartItem{}
	for _, item := range m.items {
		if item.UserID == userID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (m *mockCartStore) AddOrIncrement(_ context.Context, userID, productID primitive.ObjectID, quantity int) (*models.CartItem, error) {
	for _, item := range m.items {
		if item.UserID == userID && item.ProductID == productID {
			item.Quantity += quantity
			return item, nil
		}
	}
	item := &models.CartItem{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	m.items[item.ID] = item
	return item, nil
}

func (m *mockCartStore) SetQuantity(_ context.Context, id, userID primitive.ObjectID, quantity int) (*models.CartItem, error) {
	item, ok := m.items[id]
	if !ok || item.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	item.Quantity = quantity
	return item, nil
}

func (m *mockCartStore) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	item, ok := m.items[id]
	if !ok || item.UserID != userID {
		return apperrors.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockCartStore) Clear(_ context.Context, userID primitive.ObjectID) error {
	for id, item := range m.items {
		if item.UserID == userID {
			delete(m.items, id)
		}
	}
	return nil
}

// --- Mock order store ---

type mockOrderStore struct {
	orders map[primitive.ObjectID]*models.Order
}

func newMockOrderStore() *mockOrderStore {
	return &mockOrderStore{orders: make(map[primitive.ObjectID]*models.Order)}
}

func (m *mockOrderStore) Insert(_ context.Context, order *models.Order) (*models.Order, error) {
	order.ID = primitive.NewObjectID()
	m.orders[order.ID] = order
	return order, nil
}

func (m *mockOrderStore) List(_ context.Context, filter repository.OrderFilter) ([]models.Order, error) {
	result := []models.Order{}
	search := strings.ToLower(filter.Search)
	for _, order := range m.orders {
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		if search != "" {
			haystack := strings.ToLower(order.Customer.FirstName + " " + order.Customer.LastName + " " + order.Customer.Email)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		result = append(result, *order)
	}
	return result, nil
}

func (m *mockOrderStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	order.Status = status
	return order, nil
}

func (m *mockOrderStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.orders[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}
