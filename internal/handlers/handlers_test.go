package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"time"

	"fakestore_back_end/internal/models"
	"fakestore_back_end/internal/storage"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Fausses implémentations en mémoire des stores ---

type fakeUserStore struct {
	users []*models.User
	// force une erreur de lecture pour tester le chemin 500
	getByEmailErr error
}

var _ storage.UserStore = (*fakeUserStore)(nil)

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, storage.ErrEmailTaken
		}
	}
	user.PublicID = len(f.users) + 1
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if f.getByEmailErr != nil {
		return nil, f.getByEmailErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeUserStore) GetByPublicID(_ context.Context, publicID int) (*models.User, error) {
	for _, u := range f.users {
		if u.PublicID == publicID {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeUserStore) Update(_ context.Context, publicID int, upd storage.UserUpdate) (*models.User, error) {
	for _, u := range f.users {
		if u.PublicID == publicID {
			if upd.Email != nil {
				u.Email = *upd.Email
			}
			if upd.Password != nil {
				u.Password = *upd.Password
			}
			if upd.Name != nil {
				u.Name = *upd.Name
			}
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeUserStore) Delete(_ context.Context, publicID int) (*models.User, error) {
	for i, u := range f.users {
		if u.PublicID == publicID {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeUserStore) List(_ context.Context, limit int64, descending bool) ([]models.User, error) {
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if descending {
			return out[i].PublicID > out[j].PublicID
		}
		return out[i].PublicID < out[j].PublicID
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeProductStore struct {
	products map[string]models.Product
}

var _ storage.ProductStore = (*fakeProductStore)(nil)

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: make(map[string]models.Product)}
}

func (f *fakeProductStore) Upsert(_ context.Context, p models.Product) (*models.Product, error) {
	p.UpdatedAt = time.Now()
	if existing, ok := f.products[p.ID]; ok {
		p.CreatedAt = existing.CreatedAt
	} else {
		p.CreatedAt = p.UpdatedAt
	}
	f.products[p.ID] = p
	return &p, nil
}

func (f *fakeProductStore) GetByIDs(_ context.Context, ids []string) (map[string]models.Product, error) {
	result := make(map[string]models.Product)
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

type fakeCartStore struct {
	carts map[string]*models.Cart
	// force l'échec du remplacement pour tester le chemin 409
	replaceErr error
}

var _ storage.CartStore = (*fakeCartStore)(nil)

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[string]*models.Cart)}
}

func (f *fakeCartStore) GetOrCreate(_ context.Context, userID string) (*models.Cart, error) {
	if cart, ok := f.carts[userID]; ok {
		return cart, nil
	}
	cart := &models.Cart{UserID: userID, Items: []models.CartItem{}, Date: time.Now()}
	f.carts[userID] = cart
	return cart, nil
}

func (f *fakeCartStore) Replace(ctx context.Context, userID string, items []models.CartItem) (*models.Cart, error) {
	if f.replaceErr != nil {
		return nil, f.replaceErr
	}
	cart, _ := f.GetOrCreate(ctx, userID)
	kept := []models.CartItem{}
	for _, item := range items {
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	cart.Items = kept
	cart.Date = time.Now()
	cart.Version++
	return cart, nil
}

func (f *fakeCartStore) SetItemQuantity(_ context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	cart, ok := f.carts[userID]
	if !ok {
		return nil, storage.ErrCartNotFound
	}
	for i, item := range cart.Items {
		if item.ProductID == productID {
			if quantity <= 0 {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			} else {
				cart.Items[i].Quantity = quantity
			}
			cart.Date = time.Now()
			cart.Version++
			return cart, nil
		}
	}
	return nil, storage.ErrItemNotFound
}

func (f *fakeCartStore) Clear(_ context.Context, userID string) error {
	cart, ok := f.carts[userID]
	if !ok {
		return storage.ErrCartNotFound
	}
	cart.Items = []models.CartItem{}
	cart.Version++
	return nil
}

type fakeOrderStore struct {
	orders []models.Order
	carts  *fakeCartStore
	// force une erreur de création pour tester le chemin 500
	createErr error
}

var _ storage.OrderStore = (*fakeOrderStore)(nil)

func newFakeOrderStore(carts *fakeCartStore) *fakeOrderStore {
	return &fakeOrderStore{carts: carts}
}

func (f *fakeOrderStore) CreateAndClearCart(ctx context.Context, order *models.Order) (*models.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.orders = append(f.orders, *order)
	if f.carts != nil {
		// vidage best-effort, comme le vrai store
		_ = f.carts.Clear(ctx, order.UserID)
	}
	return order, nil
}

func (f *fakeOrderStore) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, orderID, status string) (*models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return nil, storage.ErrInvalidStatus
	}
	for i := range f.orders {
		if f.orders[i].ID == orderID {
			if !models.CanTransition(f.orders[i].Status, status) {
				return nil, storage.ErrIllegalTransition
			}
			f.orders[i].Status = status
			f.orders[i].UpdatedAt = time.Now()
			return &f.orders[i], nil
		}
	}
	return nil, storage.ErrOrderNotFound
}

// --- Aides ---

const testUserID = "64f0c2a9e1b2c3d4e5f60001"

// authStub remplace le middleware JWT : injecte directement user_id.
func authStub() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", testUserID)
		c.Next()
	}
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}
