package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"gaming_club_backend/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, NewSessionStore(""))
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/games", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, map[string]any{"data": []models.Game{}, "total": 0})
	})

	c := newTestClient(t, mux)
	c.Session().Set(sessionMember(), "token-123", "")

	_, err := c.Games()
	require.NoError(t, err)
	require.Equal(t, "Bearer token-123", gotAuth)
}

func TestServerErrorIsNormalized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/games/9", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]any{
			"error": map[string]string{
				"code":    "NOT_FOUND",
				"message": "Game not found.",
				"details": "no game with ID 9",
			},
		})
	})

	c := newTestClient(t, mux)

	_, err := c.Game(9)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected *APIError, got %T", err)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Equal(t, "Game not found.", apiErr.Message)
	require.Equal(t, "no game with ID 9", apiErr.Details)
}

func TestNonJSONErrorBodyStillNormalized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/games", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway exploded", http.StatusBadGateway)
	})

	c := newTestClient(t, mux)

	_, err := c.Games()
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestGamesListIsCached(t *testing.T) {
	hits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/games", func(w http.ResponseWriter, r *http.Request) {
		hits++
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data":  []models.Game{{ID: 1, Name: "Gran Turismo 7"}},
			"total": 1,
		})
	})

	c := newTestClient(t, mux)

	first, err := c.Games()
	require.NoError(t, err)
	second, err := c.Games()
	require.NoError(t, err)

	require.Equal(t, 1, hits, "second read should come from cache")
	require.Equal(t, first, second)
}

func TestCreateGameInvalidatesListCache(t *testing.T) {
	listHits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/games", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			writeJSON(t, w, http.StatusCreated, models.Game{ID: 2, Name: "Elden Ring"})
			return
		}
		listHits++
		writeJSON(t, w, http.StatusOK, map[string]any{"data": []models.Game{}, "total": 0})
	})

	c := newTestClient(t, mux)

	_, err := c.Games()
	require.NoError(t, err)

	_, err = c.CreateGame(CreateGameRequest{Name: "Elden Ring", Description: "Open-world action RPG from FromSoftware.", Genre: "rpg", Price: 60})
	require.NoError(t, err)

	_, err = c.Games()
	require.NoError(t, err)
	require.Equal(t, 2, listHits, "list should be refetched after a create")
}

func TestLoginStoresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"member":        sessionMember(),
			"access_token":  "granted-access",
			"refresh_token": "granted-refresh",
		})
	})

	c := newTestClient(t, mux)

	member, err := c.Login(LoginRequest{PhoneNumber: "7010000001", Role: models.RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, int64(9), member.ID)
	require.Equal(t, "granted-access", c.Session().AccessToken())
	require.True(t, c.Session().IsAuthenticated())
}

func TestPurchaseGameGuardBlocksInsufficientFunds(t *testing.T) {
	purchaseCalled := false
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/games/5", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.Game{ID: 5, Status: models.GameStatusActive, Price: 60})
	})
	mux.HandleFunc("/api/v1/members/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.Member{ID: 1, Balance: 10, IsActive: true})
	})
	mux.HandleFunc("/api/v1/purchases/game", func(w http.ResponseWriter, r *http.Request) {
		purchaseCalled = true
	})

	c := newTestClient(t, mux)

	_, err := c.PurchaseGame(1, 5)
	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.False(t, purchaseCalled, "guard must reject before any purchase request")
}

func TestPurchaseGameGuardBlocksInactiveGame(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/games/5", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.Game{ID: 5, Status: models.GameStatusComingSoon, Price: 60})
	})

	c := newTestClient(t, mux)

	_, err := c.PurchaseGame(1, 5)
	require.ErrorIs(t, err, ErrGameUnavailable)
}

func TestPurchaseProductGuardBlocksOutOfStock(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/products/3", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.Product{ID: 3, Price: 25, Stock: 1})
	})

	c := newTestClient(t, mux)

	_, err := c.PurchaseProduct(1, 3, 2)
	require.ErrorIs(t, err, ErrOutOfStock)
}

func TestPurchaseGameSyncsSessionBalance(t *testing.T) {
	memberHits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/games/5", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.Game{ID: 5, Status: models.GameStatusActive, Price: 60})
	})
	mux.HandleFunc("/api/v1/members/9", func(w http.ResponseWriter, r *http.Request) {
		memberHits++
		balance := 120.0
		if memberHits > 1 {
			balance = 60.0
		}
		writeJSON(t, w, http.StatusOK, models.Member{ID: 9, Balance: balance, IsActive: true})
	})
	mux.HandleFunc("/api/v1/purchases/game", func(w http.ResponseWriter, r *http.Request) {
		gameID := int64(5)
		writeJSON(t, w, http.StatusCreated, models.Transaction{
			ID:       1,
			MemberID: 9,
			Kind:     models.TxKindGamePurchase,
			GameID:   &gameID,
			Quantity: 1,
			Amount:   60,
			Status:   models.TxStatusCompleted,
		})
	})

	c := newTestClient(t, mux)
	c.Session().Set(sessionMember(), "token", "")

	txn, err := c.PurchaseGame(9, 5)
	require.NoError(t, err)
	require.Equal(t, models.TxKindGamePurchase, txn.Kind)
	require.Equal(t, 60.0, txn.Amount)

	require.Equal(t, 60.0, c.Session().Member().Balance)
	require.GreaterOrEqual(t, memberHits, 2, "member should be refetched after the purchase")
}
