// Package storage isole l'accès MongoDB derrière des interfaces, ce qui
// permet aux handlers d'être testés avec des implémentations en mémoire.
package storage

import (
	"context"

	"fakestore_back_end/internal/models"
)

// UserUpdate : champs modifiables d'un profil (nil = inchangé).
type UserUpdate struct {
	Email    *string
	Password *string
	Name     *string
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByPublicID(ctx context.Context, publicID int) (*models.User, error)
	Update(ctx context.Context, publicID int, upd UserUpdate) (*models.User, error)
	Delete(ctx context.Context, publicID int) (*models.User, error)
	List(ctx context.Context, limit int64, descending bool) ([]models.User, error)
}

type ProductStore interface {
	// Upsert crée ou écrase le produit par son identifiant externe
	// (last-writer-wins, pas de versionnage).
	Upsert(ctx context.Context, p models.Product) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Product, error)
}

type CartStore interface {
	// GetOrCreate retourne le panier de l'utilisateur, en créant un panier
	// vide persisté si aucun n'existe. Jamais une erreur "not found".
	GetOrCreate(ctx context.Context, userID string) (*models.Cart, error)
	// Replace remplace la liste complète des lignes. Écriture conditionnelle
	// sur le compteur de version pour éliminer les pertes de mise à jour
	// entre remplacements concurrents.
	Replace(ctx context.Context, userID string, items []models.CartItem) (*models.Cart, error)
	// SetItemQuantity fixe la quantité d'une ligne ; une quantité <= 0
	// supprime la ligne. ErrCartNotFound / ErrItemNotFound sinon.
	SetItemQuantity(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error)
	Clear(ctx context.Context, userID string) error
}

type OrderStore interface {
	// CreateAndClearCart persiste la commande puis vide le panier de
	// l'utilisateur dans la même transaction MongoDB.
	CreateAndClearCart(ctx context.Context, order *models.Order) (*models.Order, error)
	// ListByUser retourne les commandes de l'utilisateur, les plus récentes
	// en premier.
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	// UpdateStatus applique la table de transitions ; ErrIllegalTransition
	// si le passage n'est pas autorisé.
	UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error)
}
