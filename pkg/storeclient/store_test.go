package storeclient_test

import (
	"context"
	"testing"

	"fakestore_back_end/pkg/storeclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_InitialStateIdle(t *testing.T) {
	srv := newFakeServer(t, &fakeAPI{})
	store := storeclient.NewStore(loggedInClient(t, srv))

	assert.Equal(t, storeclient.StatusIdle, store.Cart().Status)
	assert.Equal(t, storeclient.StatusIdle, store.Orders().Status)
	assert.Zero(t, store.NewOrderCount())
}

func TestStore_RefreshCartSucceeds(t *testing.T) {
	api := &fakeAPI{items: []storeclient.CartItem{{ProductID: "1", Title: "P1", Price: 10, Quantity: 2}}}
	srv := newFakeServer(t, api)
	store := storeclient.NewStore(loggedInClient(t, srv))

	require.NoError(t, store.RefreshCart(context.Background()))

	cart := store.Cart()
	assert.Equal(t, storeclient.StatusSucceeded, cart.Status)
	require.Len(t, cart.Data.Items, 1)
	assert.Equal(t, "1", cart.Data.Items[0].ProductID)
}

func TestStore_RefreshCartFailureKeepsLastData(t *testing.T) {
	api := &fakeAPI{items: []storeclient.CartItem{{ProductID: "1", Title: "P1", Price: 10, Quantity: 2}}}
	srv := newFakeServer(t, api)
	store := storeclient.NewStore(loggedInClient(t, srv))
	ctx := context.Background()

	require.NoError(t, store.RefreshCart(ctx))

	api.mu.Lock()
	api.failCartFetch = true
	api.mu.Unlock()

	err := store.RefreshCart(ctx)
	require.Error(t, err)

	// échec : statut failed, mais la dernière donnée connue reste affichable
	cart := store.Cart()
	assert.Equal(t, storeclient.StatusFailed, cart.Status)
	assert.Error(t, cart.Err)
	assert.Len(t, cart.Data.Items, 1)
}

func TestStore_ReplaceCartAwaitsServer(t *testing.T) {
	srv := newFakeServer(t, &fakeAPI{})
	store := storeclient.NewStore(loggedInClient(t, srv))

	err := store.ReplaceCart(context.Background(), []storeclient.ReplaceLine{
		{Product: storeclient.Product{ID: "1", Title: "P1", Price: 4}, Quantity: 3},
	})
	require.NoError(t, err)

	// le miroir reflète la réponse serveur, pas l'intention locale
	cart := store.Cart()
	assert.Equal(t, storeclient.StatusSucceeded, cart.Status)
	require.Len(t, cart.Data.Items, 1)
	assert.Equal(t, 3, cart.Data.Items[0].Quantity)
}

func TestStore_CheckoutClearsCartAndCountsOrder(t *testing.T) {
	api := &fakeAPI{items: []storeclient.CartItem{{ProductID: "1", Title: "P1", Price: 10, Quantity: 2}}}
	srv := newFakeServer(t, api)
	store := storeclient.NewStore(loggedInClient(t, srv))
	ctx := context.Background()

	require.NoError(t, store.RefreshCart(ctx))

	order, err := store.Checkout(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20.0, order.Total)
	assert.Equal(t, "new", order.Status)

	// panier local vidé seulement après confirmation serveur
	cart := store.Cart()
	assert.Equal(t, storeclient.StatusSucceeded, cart.Status)
	assert.Empty(t, cart.Data.Items)

	// badge de commandes non consultées
	assert.Equal(t, 1, store.NewOrderCount())
	store.MarkOrdersSeen()
	assert.Zero(t, store.NewOrderCount())

	// la liste des commandes a été re-téléchargée
	orders := store.Orders()
	assert.Equal(t, storeclient.StatusSucceeded, orders.Status)
	require.Len(t, orders.Data, 1)
	assert.Equal(t, order.ID, orders.Data[0].ID)
}

func TestStore_CheckoutEmptyCart(t *testing.T) {
	srv := newFakeServer(t, &fakeAPI{})
	store := storeclient.NewStore(loggedInClient(t, srv))
	ctx := context.Background()

	require.NoError(t, store.RefreshCart(ctx))

	_, err := store.Checkout(ctx)
	assert.ErrorIs(t, err, storeclient.ErrEmptyCart)
}

func TestStore_RefreshOrders(t *testing.T) {
	api := &fakeAPI{orders: []storeclient.Order{{ID: "o1", Status: "new", Total: 5}}}
	srv := newFakeServer(t, api)
	store := storeclient.NewStore(loggedInClient(t, srv))

	require.NoError(t, store.RefreshOrders(context.Background()))

	orders := store.Orders()
	assert.Equal(t, storeclient.StatusSucceeded, orders.Status)
	require.Len(t, orders.Data, 1)
	assert.Equal(t, "o1", orders.Data[0].ID)
}
