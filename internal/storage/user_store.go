package storage

import (
	"context"
	"errors"
	"strings"

	"fakestore_back_end/internal/database"
	"fakestore_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{coll: db.Collection(database.UsersCollection)}
}

var _ UserStore = (*MongoUserStore)(nil)

func (s *MongoUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	// email déjà pris ?
	err := s.coll.FindOne(ctx, bson.M{"email": user.Email}).Err()
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// id public séquentiel = nombre d'utilisateurs + 1. L'index unique sur
	// "id" ferme la course entre deux inscriptions simultanées.
	for attempt := 0; attempt < 3; attempt++ {
		count, err := s.coll.CountDocuments(ctx, bson.M{})
		if err != nil {
			return nil, err
		}
		user.PublicID = int(count) + 1 + attempt

		_, err = s.coll.InsertOne(ctx, user)
		if err == nil {
			return user, nil
		}
		if mongo.IsDuplicateKeyError(err) {
			// collision email : deux inscriptions simultanées sur la même
			// adresse ont passé le pré-contrôle, inutile de réessayer
			if isEmailDuplicateKey(err) {
				return nil, ErrEmailTaken
			}
			// collision sur l'id public séquentiel : on recompte et réessaie
			continue
		}
		return nil, err
	}
	return nil, ErrRetryExhausted
}

// isEmailDuplicateKey distingue, dans une erreur de clé dupliquée, l'index
// unique sur email de celui sur l'id public.
func isEmailDuplicateKey(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if strings.Contains(e.Message, "email") {
				return true
			}
		}
		return false
	}
	return strings.Contains(err.Error(), "email")
}

func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) GetByPublicID(ctx context.Context, publicID int) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"id": publicID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) Update(ctx context.Context, publicID int, upd UserUpdate) (*models.User, error) {
	set := bson.M{}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Password != nil {
		set["password"] = *upd.Password
	}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if len(set) == 0 {
		return s.GetByPublicID(ctx, publicID)
	}

	var user models.User
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"id": publicID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) Delete(ctx context.Context, publicID int) (*models.User, error) {
	var user models.User
	err := s.coll.FindOneAndDelete(ctx, bson.M{"id": publicID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) List(ctx context.Context, limit int64, descending bool) ([]models.User, error) {
	sort := 1
	if descending {
		sort = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: sort}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
