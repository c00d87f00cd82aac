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

// MongoProductStore implements ProductStore on a MongoDB collection
type MongoProductStore struct {
	collection *mongo.Collection
}

// NewMongoProductStore creates a product store backed by the "products" collection
func NewMongoProductStore(db *mongo.Database) *MongoProductStore {
	return &MongoProductStore{collection: db.Collection("products")}
}

func (s *MongoProductStore) List(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *MongoProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *MongoProductStore) Insert(ctx context.Context, product *models.Product) (*models.Product, error) {
	result, err := s.collection.InsertOne(ctx, product)
	if err != nil {
		return nil, err
	}
	product.ID = result.InsertedID.(primitive.ObjectID)
	return product, nil
}

func (s *MongoProductStore) Update(ctx context.Context, id primitive.ObjectID, product *models.Product) (*models.Product, error) {
	set := bson.M{
		"name":        product.Name,
		"price":       product.Price,
		"image":       product.Image,
		"description": product.Description,
	}

	var updated models.Product
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MongoProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
