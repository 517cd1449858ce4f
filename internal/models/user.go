package models

type User struct {
	// _id Mongo (hex), jamais exposé directement
	ID string `bson:"_id" json:"-"`
	// id public séquentiel, utilisé dans les routes /users/:id
	PublicID int    `bson:"id" json:"id"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"`
	Name     string `bson:"name" json:"name"`
}
