package models

import "time"

// Statuts de commande
const (
	OrderStatusNew       = "new"
	OrderStatusPaid      = "paid"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Transitions autorisées. "delivered" et "cancelled" sont terminaux.
var orderTransitions = map[string][]string{
	OrderStatusNew:       {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusDelivered},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// IsValidOrderStatus vérifie que le statut appartient à l'énumération.
func IsValidOrderStatus(status string) bool {
	_, ok := orderTransitions[status]
	return ok
}

// CanTransition vérifie que le passage from -> to est autorisé.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order est un instantané immuable du panier au moment du checkout.
// Les items copient titre/prix/image : un changement ultérieur du catalogue
// ne modifie jamais une commande passée. Seul le statut est mutable.
type Order struct {
	ID        string      `bson:"_id" json:"id"`
	UserID    string      `bson:"user_id" json:"-"`
	Items     []OrderItem `bson:"items" json:"items"`
	Total     float64     `bson:"total" json:"total"`
	Status    string      `bson:"status" json:"status"`
	CreatedAt time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time   `bson:"updated_at" json:"updatedAt"`
}

type OrderItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Title     string  `bson:"title" json:"title"`
	Price     float64 `bson:"price" json:"price"`
	Image     string  `bson:"image" json:"image"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// ComputeTotal calcule Σ(prix × quantité) des items.
func ComputeTotal(items []OrderItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
