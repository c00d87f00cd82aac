package repository

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Changes18/poepoe/apperrors"
	"github.com/Changes18/poepoe/models"
)

// MongoOrderStore implements OrderStore on a MongoDB collection
type MongoOrderStore struct {
	collection *mongo.Collection
}

// NewMongoOrderStore creates an order store backed by the "orders" collection
func NewMongoOrderStore(db *mongo.Database) *MongoOrderStore {
	return &MongoOrderStore{collection: db.Collection("orders")}
}

func (s *MongoOrderStore) Insert(ctx context.Context, order *models.Order) (*models.Order, error) {
	result, err := s.collection.InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}
	order.ID = result.InsertedID.(primitive.ObjectID)
	return order, nil
}

func (s *MongoOrderStore) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"customer.first_name": pattern},
			bson.M{"customer.last_name": pattern},
			bson.M{"customer.email": pattern},
		}
	}

	cursor, err := s.collection.Find(ctx, query, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *MongoOrderStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	var order models.Order
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}}, opts).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *MongoOrderStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
