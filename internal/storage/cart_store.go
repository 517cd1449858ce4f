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

type MongoCartStore struct {
	coll *mongo.Collection
}

func NewMongoCartStore(db *mongo.Database) *MongoCartStore {
	return &MongoCartStore{coll: db.Collection(database.CartsCollection)}
}

var _ CartStore = (*MongoCartStore)(nil)

func (s *MongoCartStore) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$setOnInsert": bson.M{
			"items":   []models.CartItem{},
			"date":    time.Now(),
			"version": int64(0),
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&cart)
	if err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

// Replace écrase la liste complète des lignes du panier. L'écriture est
// conditionnée sur la version lue : si un remplacement concurrent est passé
// entre-temps, on relit et on réessaie un nombre borné de fois.
func (s *MongoCartStore) Replace(ctx context.Context, userID string, items []models.CartItem) (*models.Cart, error) {
	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		// une ligne à quantité <= 0 est supprimée, jamais stockée à zéro
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}

	for attempt := 0; attempt < 3; attempt++ {
		cart, err := s.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}

		res, err := s.coll.UpdateOne(ctx,
			bson.M{"_id": userID, "version": cart.Version},
			bson.M{
				"$set": bson.M{"items": kept, "date": time.Now()},
				"$inc": bson.M{"version": int64(1)},
			},
		)
		if err != nil {
			return nil, err
		}
		if res.ModifiedCount == 1 {
			return s.GetOrCreate(ctx, userID)
		}
		// version dépassée : un autre remplacement est passé avant nous
	}
	return nil, ErrVersionConflict
}

func (s *MongoCartStore) SetItemQuantity(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	// le panier doit exister (pas de get-or-create ici : 404 sinon)
	err := s.coll.FindOne(ctx, bson.M{"_id": userID}).Err()
	if err == mongo.ErrNoDocuments {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	var update bson.M
	if quantity <= 0 {
		update = bson.M{
			"$pull": bson.M{"items": bson.M{"product_id": productID}},
			"$set":  bson.M{"date": time.Now()},
			"$inc":  bson.M{"version": int64(1)},
		}
	} else {
		update = bson.M{
			"$set": bson.M{"items.$.quantity": quantity, "date": time.Now()},
			"$inc": bson.M{"version": int64(1)},
		}
	}

	filter := bson.M{"_id": userID, "items.product_id": productID}
	res, err := s.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrItemNotFound
	}

	return s.GetOrCreate(ctx, userID)
}

func (s *MongoCartStore) Clear(ctx context.Context, userID string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$set": bson.M{"items": []models.CartItem{}, "date": time.Now()},
			"$inc": bson.M{"version": int64(1)},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}
