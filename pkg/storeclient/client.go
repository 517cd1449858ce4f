// Package storeclient est le SDK Go du backend fake-store : un client HTTP
// typé plus un miroir local de l'état serveur (panier, commandes) pour un
// rendu immédiat côté client.
package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// --- Types miroir du JSON serveur ---

type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

type CartItem struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

type Cart struct {
	UserID string     `json:"userId"`
	Date   time.Time  `json:"date"`
	Items  []CartItem `json:"products"`
}

// ReplaceLine : une ligne envoyée au remplacement complet du panier,
// avec les attributs produit que le serveur upsertera en passant.
type ReplaceLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type OrderItem struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

type Order struct {
	ID        string      `json:"id"`
	Status    string      `json:"status"`
	Total     float64     `json:"total"`
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// APIError porte le code HTTP et le message renvoyés par le serveur.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// --- Client ---

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenStore persiste le token entre les sessions (stockage local
// sous la clé fixe "userToken").
func WithTokenStore(ts TokenStore) Option {
	return func(c *Client) { c.tokens = ts }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tokens != nil {
		if token, err := c.tokens.Load(); err == nil && token != "" {
			c.token = token
		}
	}
	return c
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	if c.tokens != nil {
		_ = c.tokens.Save(token)
	}
}

// Logout oublie le token, en mémoire et dans le stockage local.
func (c *Client) Logout() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	if c.tokens != nil {
		_ = c.tokens.Clear()
	}
}

// --- Opérations ---

// Login échange email + mot de passe contre un token (validité une heure,
// pas de refresh : l'expiration force une reconnexion).
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp, false); err != nil {
		return err
	}
	c.setToken(resp.Token)
	return nil
}

// Verify vérifie la validité du token courant auprès du serveur.
func (c *Client) Verify(ctx context.Context) (bool, error) {
	var resp struct {
		Valid bool `json:"valid"`
	}
	err := c.do(ctx, http.MethodGet, "/auth/verify", nil, &resp, true)
	if apiErr, ok := err.(*APIError); ok && apiErr.StatusCode == http.StatusUnauthorized {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return resp.Valid, nil
}

func (c *Client) FetchCart(ctx context.Context) (*Cart, error) {
	var cart Cart
	if err := c.do(ctx, http.MethodGet, "/carts/user", nil, &cart, true); err != nil {
		return nil, err
	}
	return &cart, nil
}

// la forme POST/PUT imbrique l'objet produit dans chaque ligne
type fullCartResponse struct {
	UserID   string    `json:"userId"`
	Date     time.Time `json:"date"`
	Products []struct {
		Product  Product `json:"product"`
		Quantity int     `json:"quantity"`
	} `json:"products"`
}

func (r *fullCartResponse) flatten() *Cart {
	cart := &Cart{UserID: r.UserID, Date: r.Date, Items: []CartItem{}}
	for _, line := range r.Products {
		cart.Items = append(cart.Items, CartItem{
			ProductID: line.Product.ID,
			Title:     line.Product.Title,
			Price:     line.Product.Price,
			Image:     line.Product.Image,
			Quantity:  line.Quantity,
		})
	}
	return cart
}

// ReplaceCart pousse la liste complète des lignes (remplacement, pas fusion).
func (c *Client) ReplaceCart(ctx context.Context, lines []ReplaceLine) (*Cart, error) {
	if lines == nil {
		lines = []ReplaceLine{}
	}
	var resp fullCartResponse
	body := map[string]interface{}{"products": lines}
	if err := c.do(ctx, http.MethodPost, "/carts", body, &resp, true); err != nil {
		return nil, err
	}
	return resp.flatten(), nil
}

// SetItemQuantity fixe la quantité d'une ligne ; <= 0 la supprime.
func (c *Client) SetItemQuantity(ctx context.Context, productID string, quantity int) (*Cart, error) {
	var resp fullCartResponse
	body := map[string]int{"quantity": quantity}
	path := "/carts/items/" + productID
	if err := c.do(ctx, http.MethodPut, path, body, &resp, true); err != nil {
		return nil, err
	}
	return resp.flatten(), nil
}

func (c *Client) CreateOrder(ctx context.Context, items []OrderItem) (*Order, error) {
	var order Order
	body := map[string]interface{}{"items": items}
	if err := c.do(ctx, http.MethodPost, "/orders", body, &order, true); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	orders := []Order{}
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders, true); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) (*Order, error) {
	var order Order
	body := map[string]string{"status": status}
	path := "/orders/" + orderID + "/status"
	if err := c.do(ctx, http.MethodPatch, path, body, &order, true); err != nil {
		return nil, err
	}
	return &order, nil
}

// --- Plomberie HTTP ---

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, auth bool) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.Token())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		msg := payload.Error
		if msg == "" {
			msg = payload.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
