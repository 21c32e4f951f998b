package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"gaming_club_backend/internal/models"
	"gaming_club_backend/pkg/utils"
)

func newAuthRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"memberID": c.GetInt64("memberID"),
			"role":     c.GetString("memberRole"),
		})
	})
	engine.GET("/protected", handlers...)
	return engine
}

func doRequest(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	rec := doRequest(newAuthRouter(), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	for _, header := range []string{"token-without-scheme", "Basic abc", "Bearer"} {
		rec := doRequest(newAuthRouter(), header)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rec.Code)
		}
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	rec := doRequest(newAuthRouter(), "Bearer not-a-real-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddlewareValidTokenSetsContext(t *testing.T) {
	token, err := utils.GenerateAccessToken(42, "Dana", models.RoleAdmin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec := doRequest(newAuthRouter(), "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !containsAll(body, `"memberID":42`, `"role":"ADMIN"`) {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestRoleAuthMiddlewareForbidsWrongRole(t *testing.T) {
	token, err := utils.GenerateAccessToken(7, "Arman", models.RoleUser)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec := doRequest(newAuthRouter(RoleAuthMiddleware(models.RoleAdmin)), "Bearer "+token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRoleAuthMiddlewareAllowsListedRole(t *testing.T) {
	token, err := utils.GenerateAccessToken(7, "Arman", models.RoleUser)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	rec := doRequest(newAuthRouter(RoleAuthMiddleware(models.RoleAdmin, models.RoleUser)), "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
