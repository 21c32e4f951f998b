package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gaming_club_backend/internal/models"
)

const (
	apiPrefix      = "/api/v1"
	defaultTimeout = 10 * time.Second
)

// Client is the Go SDK for the gaming club backend. Reads of catalog and
// member data go through an in-process TTL cache; every mutation
// invalidates the cache partitions it touches.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *SessionStore
	cache      *Cache
}

// New creates a client against baseURL using the given session store.
// Requests time out after ten seconds.
func New(baseURL string, session *SessionStore) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		session:    session,
		cache:      NewCache(),
	}
}

// Session exposes the session store backing this client.
func (c *Client) Session() *SessionStore {
	return c.session
}

// do performs one API request, attaching the bearer token when a session
// is active. Every failure surfaces as *APIError.
func (c *Client) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: "failed to encode request body: " + err.Error(), Status: 0}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return &APIError{Message: "failed to build request: " + err.Error(), Status: 0}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: "request failed: " + err.Error(), Status: 0}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Message: "failed to read response: " + err.Error(), Status: resp.StatusCode}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var envelope serverErrorBody
		if jsonErr := json.Unmarshal(data, &envelope); jsonErr == nil && envelope.Error.Message != "" {
			return &APIError{
				Message: envelope.Error.Message,
				Status:  resp.StatusCode,
				Details: envelope.Error.Details,
			}
		}
		return &APIError{Message: http.StatusText(resp.StatusCode), Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &APIError{Message: "failed to decode response: " + err.Error(), Status: resp.StatusCode}
		}
	}
	return nil
}

// listPage matches the backend's pagination envelope.
type listPage[T any] struct {
	Data     []T `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// fetchList returns the cached collection when its staleness window has
// not elapsed, otherwise fetches and caches it.
func fetchList[T any](c *Client, path, key string, ttl time.Duration) ([]T, error) {
	var items []T
	if c.cache.Get(key, &items) {
		return items, nil
	}
	var page listPage[T]
	if err := c.do(http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	items = page.Data
	if items == nil {
		items = []T{}
	}
	c.cache.Set(key, items, ttl)
	return items, nil
}

func fetchItem[T any](c *Client, path, key string, ttl time.Duration) (*T, error) {
	var item T
	if c.cache.Get(key, &item) {
		return &item, nil
	}
	if err := c.do(http.MethodGet, path, nil, &item); err != nil {
		return nil, err
	}
	c.cache.Set(key, item, ttl)
	return &item, nil
}

// --- Auth ---

type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password,omitempty"`
	Role        string `json:"role"`
}

type RegisterRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Password    string `json:"password,omitempty"`
}

type authResponse struct {
	Member       *models.Member `json:"member"`
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
}

// Login authenticates by phone number and role and stores the session.
func (c *Client) Login(req LoginRequest) (*models.Member, error) {
	var resp authResponse
	if err := c.do(http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	c.session.Set(resp.Member, resp.AccessToken, resp.RefreshToken)
	return resp.Member, nil
}

// Register creates a new member account and stores the session.
func (c *Client) Register(req RegisterRequest) (*models.Member, error) {
	var resp authResponse
	if err := c.do(http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	c.session.Set(resp.Member, resp.AccessToken, resp.RefreshToken)
	return resp.Member, nil
}

// Logout ends the session. The server call is best-effort; the local
// session and cached member data are cleared regardless.
func (c *Client) Logout() {
	if c.session.IsAuthenticated() {
		_ = c.do(http.MethodPost, "/auth/logout", nil, nil)
	}
	c.session.Clear()
	c.cache.InvalidateResource("members")
	c.cache.InvalidateResource("recharges")
	c.cache.InvalidateResource("transactions")
}

// CurrentMember fetches the member behind the active session.
func (c *Client) CurrentMember() (*models.Member, error) {
	if !c.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	var member models.Member
	if err := c.do(http.MethodGet, "/auth/me", nil, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// --- Members ---

type CreateMemberRequest struct {
	Name        string  `json:"name"`
	PhoneNumber string  `json:"phoneNumber"`
	Email       *string `json:"email,omitempty"`
	Role        string  `json:"role,omitempty"`
	Balance     float64 `json:"balance"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

type UpdateMemberRequest struct {
	Name        *string  `json:"name,omitempty"`
	PhoneNumber *string  `json:"phoneNumber,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Role        *string  `json:"role,omitempty"`
	Balance     *float64 `json:"balance,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

func (c *Client) Members() ([]models.Member, error) {
	return fetchList[models.Member](c, "/members", "members", membersTTL)
}

func (c *Client) Member(id int64) (*models.Member, error) {
	return fetchItem[models.Member](c, fmt.Sprintf("/members/%d", id), itemKey("members", id), membersTTL)
}

func (c *Client) CreateMember(req CreateMemberRequest) (*models.Member, error) {
	var member models.Member
	if err := c.do(http.MethodPost, "/members", req, &member); err != nil {
		return nil, err
	}
	c.cache.Invalidate("members")
	return &member, nil
}

func (c *Client) UpdateMember(id int64, req UpdateMemberRequest) (*models.Member, error) {
	var member models.Member
	if err := c.do(http.MethodPut, fmt.Sprintf("/members/%d", id), req, &member); err != nil {
		return nil, err
	}
	c.cache.Invalidate("members", itemKey("members", id))
	return &member, nil
}

func (c *Client) DeleteMember(id int64) error {
	if err := c.do(http.MethodDelete, fmt.Sprintf("/members/%d", id), nil, nil); err != nil {
		return err
	}
	c.cache.Invalidate("members", itemKey("members", id))
	return nil
}

// SearchMember looks up a member profile by exact phone number.
func (c *Client) SearchMember(phone string) (*models.MemberProfile, error) {
	var profile models.MemberProfile
	payload := map[string]string{"phone": phone}
	if err := c.do(http.MethodPost, "/members/search", payload, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// --- Games ---

type CreateGameRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Genre       string  `json:"genre"`
	Status      string  `json:"status,omitempty"`
	Price       float64 `json:"price"`
}

type UpdateGameRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Genre       *string  `json:"genre,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

func (c *Client) Games() ([]models.Game, error) {
	return fetchList[models.Game](c, "/games", "games", gamesTTL)
}

func (c *Client) Game(id int64) (*models.Game, error) {
	return fetchItem[models.Game](c, fmt.Sprintf("/games/%d", id), itemKey("games", id), gamesTTL)
}

func (c *Client) CreateGame(req CreateGameRequest) (*models.Game, error) {
	var game models.Game
	if err := c.do(http.MethodPost, "/games", req, &game); err != nil {
		return nil, err
	}
	c.cache.Invalidate("games")
	return &game, nil
}

func (c *Client) UpdateGame(id int64, req UpdateGameRequest) (*models.Game, error) {
	var game models.Game
	if err := c.do(http.MethodPut, fmt.Sprintf("/games/%d", id), req, &game); err != nil {
		return nil, err
	}
	c.cache.Invalidate("games", itemKey("games", id))
	return &game, nil
}

func (c *Client) DeleteGame(id int64) error {
	if err := c.do(http.MethodDelete, fmt.Sprintf("/games/%d", id), nil, nil); err != nil {
		return err
	}
	c.cache.Invalidate("games", itemKey("games", id))
	return nil
}

// --- Products ---

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Tags        string  `json:"tags"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Tags        *string  `json:"tags,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
}

func (c *Client) Products() ([]models.Product, error) {
	return fetchList[models.Product](c, "/products", "products", productsTTL)
}

func (c *Client) Product(id int64) (*models.Product, error) {
	return fetchItem[models.Product](c, fmt.Sprintf("/products/%d", id), itemKey("products", id), productsTTL)
}

func (c *Client) CreateProduct(req CreateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := c.do(http.MethodPost, "/products", req, &product); err != nil {
		return nil, err
	}
	c.cache.Invalidate("products")
	return &product, nil
}

func (c *Client) UpdateProduct(id int64, req UpdateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := c.do(http.MethodPut, fmt.Sprintf("/products/%d", id), req, &product); err != nil {
		return nil, err
	}
	c.cache.Invalidate("products", itemKey("products", id))
	return &product, nil
}

func (c *Client) DeleteProduct(id int64) error {
	if err := c.do(http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil); err != nil {
		return err
	}
	c.cache.Invalidate("products", itemKey("products", id))
	return nil
}

// --- Recharges ---

type RechargeRequest struct {
	MemberID      int64   `json:"memberId"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
}

func (c *Client) Recharges() ([]models.Recharge, error) {
	return fetchList[models.Recharge](c, "/recharges", "recharges", rechargesTTL)
}

func (c *Client) Recharge(id int64) (*models.Recharge, error) {
	return fetchItem[models.Recharge](c, fmt.Sprintf("/recharges/%d", id), itemKey("recharges", id), rechargesTTL)
}

func (c *Client) RechargesByMember(memberID int64) ([]models.Recharge, error) {
	var recharges []models.Recharge
	key := itemKey("recharges/member", memberID)
	if c.cache.Get(key, &recharges) {
		return recharges, nil
	}
	if err := c.do(http.MethodGet, fmt.Sprintf("/recharges/member/%d", memberID), nil, &recharges); err != nil {
		return nil, err
	}
	c.cache.Set(key, recharges, rechargesTTL)
	return recharges, nil
}

// CreateRecharge tops up a member's balance. The member's cached entries
// are invalidated and, when the member owns the active session, the
// session balance is updated.
func (c *Client) CreateRecharge(req RechargeRequest) (*models.Recharge, error) {
	var recharge models.Recharge
	if err := c.do(http.MethodPost, "/recharges", req, &recharge); err != nil {
		return nil, err
	}
	c.invalidateAfterBalanceChange(req.MemberID)
	c.refreshSessionBalance(req.MemberID)
	return &recharge, nil
}

// --- Transactions ---

func (c *Client) Transactions() ([]models.Transaction, error) {
	return fetchList[models.Transaction](c, "/transactions", "transactions", transactionsTTL)
}

func (c *Client) Transaction(id int64) (*models.Transaction, error) {
	return fetchItem[models.Transaction](c, fmt.Sprintf("/transactions/%d", id), itemKey("transactions", id), transactionsTTL)
}

func (c *Client) TransactionsByMember(memberID int64) ([]models.Transaction, error) {
	var transactions []models.Transaction
	key := itemKey("transactions/member", memberID)
	if c.cache.Get(key, &transactions) {
		return transactions, nil
	}
	if err := c.do(http.MethodGet, fmt.Sprintf("/transactions/member/%d", memberID), nil, &transactions); err != nil {
		return nil, err
	}
	c.cache.Set(key, transactions, transactionsTTL)
	return transactions, nil
}

// --- Purchases ---

// PurchaseGame buys a game for a member in one backend call. Guard
// checks against cached data reject obviously doomed purchases before
// any network traffic; the backend remains the authority either way.
func (c *Client) PurchaseGame(memberID, gameID int64) (*models.Transaction, error) {
	game, err := c.Game(gameID)
	if err != nil {
		return nil, err
	}
	if game.Status != models.GameStatusActive {
		return nil, ErrGameUnavailable
	}
	member, err := c.Member(memberID)
	if err != nil {
		return nil, err
	}
	if member.Balance < game.Price {
		return nil, ErrInsufficientFunds
	}

	var tx models.Transaction
	payload := map[string]int64{"memberId": memberID, "gameId": gameID}
	if err := c.do(http.MethodPost, "/purchases/game", payload, &tx); err != nil {
		return nil, err
	}
	c.invalidateAfterBalanceChange(memberID)
	c.refreshSessionBalance(memberID)
	return &tx, nil
}

// PurchaseProduct buys quantity units of a product for a member in one
// backend call.
func (c *Client) PurchaseProduct(memberID, productID int64, quantity int) (*models.Transaction, error) {
	if quantity < 1 {
		return nil, &APIError{Message: "quantity must be at least 1", Status: http.StatusBadRequest}
	}
	product, err := c.Product(productID)
	if err != nil {
		return nil, err
	}
	if product.Stock < quantity {
		return nil, ErrOutOfStock
	}
	member, err := c.Member(memberID)
	if err != nil {
		return nil, err
	}
	if member.Balance < product.Price*float64(quantity) {
		return nil, ErrInsufficientFunds
	}

	var tx models.Transaction
	payload := map[string]any{"memberId": memberID, "productId": productID, "quantity": quantity}
	if err := c.do(http.MethodPost, "/purchases/product", payload, &tx); err != nil {
		return nil, err
	}
	c.invalidateAfterBalanceChange(memberID)
	c.cache.Invalidate("products", itemKey("products", productID))
	c.refreshSessionBalance(memberID)
	return &tx, nil
}

// invalidateAfterBalanceChange drops every cache partition a balance
// mutation can stale: the member entries plus their recharge and
// transaction histories.
func (c *Client) invalidateAfterBalanceChange(memberID int64) {
	c.cache.Invalidate(
		"members",
		itemKey("members", memberID),
		"recharges",
		itemKey("recharges/member", memberID),
		"transactions",
		itemKey("transactions/member", memberID),
	)
}

// refreshSessionBalance re-reads the member and syncs the session copy
// when the mutated member owns the active session.
func (c *Client) refreshSessionBalance(memberID int64) {
	current := c.session.Member()
	if current == nil || current.ID != memberID {
		return
	}
	member, err := c.Member(memberID)
	if err != nil {
		return
	}
	c.session.UpdateBalance(member.Balance)
}
