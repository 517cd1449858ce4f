package storeclient

import (
	"context"
	"errors"
	"sync"
)

// Statut d'une collection du miroir local : le tri-état
// chargement / erreur / succès, plus l'état initial.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Resource : l'état d'une collection mise en miroir. En cas d'échec, Data
// garde la dernière valeur connue pour que l'affichage ne se vide pas.
type Resource[T any] struct {
	Status Status
	Data   T
	Err    error
}

var ErrEmptyCart = errors.New("panier vide")

// Store maintient un miroir du panier et des commandes côté serveur.
// Il est rafraîchi par des appels explicites (à l'affichage d'un écran,
// après chaque mutation), jamais par push : cohérence à terme assumée.
// Aucune écriture optimiste — on attend la réponse du serveur avant de
// mettre à jour la vue (plus lent mais toujours juste).
type Store struct {
	api *Client

	mu        sync.RWMutex
	cart      Resource[Cart]
	orders    Resource[[]Order]
	newOrders int
}

func NewStore(api *Client) *Store {
	return &Store{api: api}
}

func (s *Store) Cart() Resource[Cart] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart
}

func (s *Store) Orders() Resource[[]Order] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders
}

// NewOrderCount : nombre de commandes créées non encore consultées
// (badge de l'onglet commandes).
func (s *Store) NewOrderCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newOrders
}

func (s *Store) MarkOrdersSeen() {
	s.mu.Lock()
	s.newOrders = 0
	s.mu.Unlock()
}

func (s *Store) setCartLoading() {
	s.mu.Lock()
	s.cart.Status = StatusLoading
	s.mu.Unlock()
}

func (s *Store) commitCart(cart *Cart, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.cart.Status = StatusFailed
		s.cart.Err = err
		return err
	}
	s.cart = Resource[Cart]{Status: StatusSucceeded, Data: *cart}
	return nil
}

// RefreshCart recharge le panier depuis le serveur (point d'invalidation :
// affichage de l'écran panier).
func (s *Store) RefreshCart(ctx context.Context) error {
	s.setCartLoading()
	cart, err := s.api.FetchCart(ctx)
	return s.commitCart(cart, err)
}

// ReplaceCart pousse la liste complète au serveur puis reflète sa réponse.
func (s *Store) ReplaceCart(ctx context.Context, lines []ReplaceLine) error {
	s.setCartLoading()
	cart, err := s.api.ReplaceCart(ctx, lines)
	return s.commitCart(cart, err)
}

// SetItemQuantity fixe la quantité d'une ligne (<= 0 la supprime) et
// reflète la réponse serveur.
func (s *Store) SetItemQuantity(ctx context.Context, productID string, quantity int) error {
	s.setCartLoading()
	cart, err := s.api.SetItemQuantity(ctx, productID, quantity)
	return s.commitCart(cart, err)
}

// RefreshOrders recharge la liste des commandes (point d'invalidation :
// affichage de l'écran commandes).
func (s *Store) RefreshOrders(ctx context.Context) error {
	s.mu.Lock()
	s.orders.Status = StatusLoading
	s.mu.Unlock()

	orders, err := s.api.ListOrders(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.orders.Status = StatusFailed
		s.orders.Err = err
		return err
	}
	s.orders = Resource[[]Order]{Status: StatusSucceeded, Data: orders}
	return nil
}

// Checkout transforme le miroir du panier en commande. Le panier local
// n'est vidé qu'après confirmation du serveur (qui vide aussi le panier
// serveur dans la même opération).
func (s *Store) Checkout(ctx context.Context) (*Order, error) {
	s.mu.RLock()
	items := make([]OrderItem, 0, len(s.cart.Data.Items))
	for _, line := range s.cart.Data.Items {
		items = append(items, OrderItem{
			ProductID: line.ProductID,
			Title:     line.Title,
			Price:     line.Price,
			Image:     line.Image,
			Quantity:  line.Quantity,
		})
	}
	s.mu.RUnlock()

	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order, err := s.api.CreateOrder(ctx, items)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cart = Resource[Cart]{
		Status: StatusSucceeded,
		Data:   Cart{UserID: s.cart.Data.UserID, Items: []CartItem{}},
	}
	s.newOrders++
	s.mu.Unlock()

	// la liste des commandes est re-téléchargée, pas patchée localement
	_ = s.RefreshOrders(ctx)

	return order, nil
}
