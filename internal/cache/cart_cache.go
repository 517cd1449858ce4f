// Package cache décore les stores MongoDB avec un cache Redis lecture-directe
// (read-through). Les clés sont invalidées à chaque mutation : le cache ne
// sert jamais un panier ou une liste de commandes périmés après écriture.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"fakestore_back_end/internal/models"
	"fakestore_back_end/internal/storage"

	"github.com/redis/go-redis/v9"
)

const (
	CartCacheTTL   = 5 * time.Minute
	OrdersCacheTTL = 5 * time.Minute
)

func cartKey(userID string) string   { return "cart:" + userID }
func ordersKey(userID string) string { return "orders:" + userID }

// --- Panier ---

type CachedCartStore struct {
	inner storage.CartStore
	redis *redis.Client
}

func NewCachedCartStore(inner storage.CartStore, rdb *redis.Client) *CachedCartStore {
	return &CachedCartStore{inner: inner, redis: rdb}
}

var _ storage.CartStore = (*CachedCartStore)(nil)

func (s *CachedCartStore) GetOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	data, err := s.redis.Get(ctx, cartKey(userID)).Result()
	if err == nil && data != "" {
		var cart models.Cart
		if json.Unmarshal([]byte(data), &cart) == nil {
			return &cart, nil
		}
	}

	cart, err := s.inner.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if jsonData, err := json.Marshal(cart); err == nil {
		s.redis.Set(ctx, cartKey(userID), jsonData, CartCacheTTL)
	}
	return cart, nil
}

func (s *CachedCartStore) Replace(ctx context.Context, userID string, items []models.CartItem) (*models.Cart, error) {
	cart, err := s.inner.Replace(ctx, userID, items)
	if err != nil {
		return nil, err
	}
	s.redis.Del(ctx, cartKey(userID))
	return cart, nil
}

func (s *CachedCartStore) SetItemQuantity(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	cart, err := s.inner.SetItemQuantity(ctx, userID, productID, quantity)
	if err != nil {
		return nil, err
	}
	s.redis.Del(ctx, cartKey(userID))
	return cart, nil
}

func (s *CachedCartStore) Clear(ctx context.Context, userID string) error {
	if err := s.inner.Clear(ctx, userID); err != nil {
		return err
	}
	s.redis.Del(ctx, cartKey(userID))
	return nil
}

// --- Commandes ---

type CachedOrderStore struct {
	inner storage.OrderStore
	redis *redis.Client
}

func NewCachedOrderStore(inner storage.OrderStore, rdb *redis.Client) *CachedOrderStore {
	return &CachedOrderStore{inner: inner, redis: rdb}
}

var _ storage.OrderStore = (*CachedOrderStore)(nil)

func (s *CachedOrderStore) CreateAndClearCart(ctx context.Context, order *models.Order) (*models.Order, error) {
	created, err := s.inner.CreateAndClearCart(ctx, order)
	if err != nil {
		return nil, err
	}
	// la création touche la liste des commandes ET le panier
	s.redis.Del(ctx, ordersKey(order.UserID), cartKey(order.UserID))
	return created, nil
}

func (s *CachedOrderStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	data, err := s.redis.Get(ctx, ordersKey(userID)).Result()
	if err == nil && data != "" {
		var orders []models.Order
		if json.Unmarshal([]byte(data), &orders) == nil {
			return orders, nil
		}
	}

	orders, err := s.inner.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if jsonData, err := json.Marshal(orders); err == nil {
		s.redis.Set(ctx, ordersKey(userID), jsonData, OrdersCacheTTL)
	}
	return orders, nil
}

func (s *CachedOrderStore) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	updated, err := s.inner.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	s.redis.Del(ctx, ordersKey(updated.UserID))
	return updated, nil
}
