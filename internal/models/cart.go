package models

import "time"

// Cart : exactement un panier par utilisateur (_id = userID).
// Invariant : toute ligne présente a une quantité >= 1 ; une quantité <= 0
// supprime la ligne, elle n'est jamais stockée à zéro.
type Cart struct {
	UserID string     `bson:"_id" json:"userId"`
	Items  []CartItem `bson:"items" json:"items"`
	Date   time.Time  `bson:"date" json:"date"`
	// Compteur de révision pour les écritures conditionnelles (remplacement complet)
	Version int64 `bson:"version" json:"-"`
}

type CartItem struct {
	ProductID string `bson:"product_id" json:"productId"`
	Quantity  int    `bson:"quantity" json:"quantity"`
}
