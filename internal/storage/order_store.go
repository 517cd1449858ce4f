package storage

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"fakestore_back_end/internal/database"
	"fakestore_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoOrderStore struct {
	client *mongo.Client
	orders *mongo.Collection
	carts  *mongo.Collection
}

func NewMongoOrderStore(client *mongo.Client, db *mongo.Database) *MongoOrderStore {
	return &MongoOrderStore{
		client: client,
		orders: db.Collection(database.OrdersCollection),
		carts:  db.Collection(database.CartsCollection),
	}
}

var _ OrderStore = (*MongoOrderStore)(nil)

// CreateAndClearCart insère la commande puis vide le panier dans une seule
// transaction MongoDB : un crash entre les deux écritures ne laisse jamais
// un panier périmé derrière une commande créée. Sur un déploiement sans
// replica set (transactions indisponibles), on retombe sur les deux
// écritures séquentielles.
func (s *MongoOrderStore) CreateAndClearCart(ctx context.Context, order *models.Order) (*models.Order, error) {
	session, err := s.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, s.createAndClear(sc, order)
	})
	if err != nil && transactionsUnsupported(err) {
		log.Println("⚠️  Transactions MongoDB indisponibles — écritures séquentielles")
		if err := s.createAndClear(ctx, order); err != nil {
			return nil, err
		}
		return order, nil
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *MongoOrderStore) createAndClear(ctx context.Context, order *models.Order) error {
	if _, err := s.orders.InsertOne(ctx, order); err != nil {
		return err
	}

	// vidage best-effort : l'absence de panier est loggée, pas une erreur
	res, err := s.carts.UpdateOne(ctx,
		bson.M{"_id": order.UserID},
		bson.M{
			"$set": bson.M{"items": []models.CartItem{}, "date": time.Now()},
			"$inc": bson.M{"version": int64(1)},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		log.Printf("⚠️  Aucun panier à vider pour l'utilisateur %s après création de commande", order.UserID)
	}
	return nil
}

func transactionsUnsupported(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 20 {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "Transaction numbers")
}

func (s *MongoOrderStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.orders.Find(ctx, bson.M{"user_id": userID}, opts)
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

func (s *MongoOrderStore) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	var current models.Order
	err := s.orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(&current)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(current.Status, status) {
		return nil, ErrIllegalTransition
	}

	var updated models.Order
	err = s.orders.FindOneAndUpdate(ctx,
		// condition sur le statut courant : la transition reste valide même
		// si deux mises à jour arrivent en même temps
		bson.M{"_id": orderID, "status": current.Status},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrIllegalTransition
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
