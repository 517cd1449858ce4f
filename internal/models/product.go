package models

import "time"

// Product est un article du catalogue. Il est créé ou écrasé à la volée
// dès qu'un client le référence en modifiant son panier (last-writer-wins).
type Product struct {
	// _id = identifiant externe fourni par le client
	ID          string    `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Price       float64   `bson:"price" json:"price"`
	Image       string    `bson:"image" json:"image"`
	Description string    `bson:"description" json:"description"`
	Category    string    `bson:"category" json:"category"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
