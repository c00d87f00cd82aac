package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Changes18/poepoe/apperrors"
	"github.com/Changes18/poepoe/models"
)

// MongoCartStore implements CartStore on a MongoDB collection holding one
// document per (user, product) pair.
type MongoCartStore struct {
	collection *mongo.Collection
}

// NewMongoCartStore creates a cart store backed by the "cart_items" collection
func NewMongoCartStore(db *mongo.Database) *MongoCartStore {
	return &MongoCartStore{collection: db.Collection("cart_items")}
}

func (s *MongoCartStore) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []models.CartItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddOrIncrement performs a single upsert with $inc so two concurrent adds of
// the same product can never lose an update or produce duplicate rows. The
// inserted document gets user_id and product_id from the filter.
func (s *MongoCartStore) AddOrIncrement(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.CartItem, error) {
	filter := bson.M{"user_id": userID, "product_id": productID}
	update := bson.M{"$inc": bson.M{"quantity": quantity}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var item models.CartItem
	if err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *MongoCartStore) SetQuantity(ctx context.Context, id, userID primitive.ObjectID, quantity int) (*models.CartItem, error) {
	filter := bson.M{"_id": id, "user_id": userID}
	update := bson.M{"$set": bson.M{"quantity": quantity}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item models.CartItem
	err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *MongoCartStore) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Clear removes every cart row of the user; clearing an empty cart is a no-op
func (s *MongoCartStore) Clear(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
