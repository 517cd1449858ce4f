package storage

import (
	"context"
	"time"

	"fakestore_back_end/internal/database"
	"fakestore_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoProductStore struct {
	coll *mongo.Collection
}

func NewMongoProductStore(db *mongo.Database) *MongoProductStore {
	return &MongoProductStore{coll: db.Collection(database.ProductsCollection)}
}

var _ ProductStore = (*MongoProductStore)(nil)

func (s *MongoProductStore) Upsert(ctx context.Context, p models.Product) (*models.Product, error) {
	now := time.Now()

	var saved models.Product
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": p.ID},
		bson.M{
			"$set": bson.M{
				"title":       p.Title,
				"price":       p.Price,
				"image":       p.Image,
				"description": p.Description,
				"category":    p.Category,
				"updated_at":  now,
			},
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&saved)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *MongoProductStore) GetByIDs(ctx context.Context, ids []string) (map[string]models.Product, error) {
	result := make(map[string]models.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	for _, p := range products {
		result[p.ID] = p
	}
	return result, nil
}
