package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"organicroots/config"
	"organicroots/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{AppEnv: "test", AuthSecret: "test-secret"}
}

func protectedRouter(roles ...string) *gin.Engine {
	router := gin.New()
	group := router.Group("/api/admin")
	group.Use(AuthMiddleware(), RequireRoles(roles...))
	group.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":   c.GetString("user_id"),
			"role": c.GetString("user_role"),
		})
	})
	return router
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body %q: %v", rec.Body.String(), err)
	}
	return body["error"]
}

func TestAnonymousRequestRejected(t *testing.T) {
	router := protectedRouter("admin")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := errorBody(t, rec); got != "Unauthorized" {
		t.Fatalf("error = %q, want %q", got, "Unauthorized")
	}
}

func TestAnonymousBrowserRedirectedToLogin(t *testing.T) {
	router := protectedRouter("admin")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("Location = %q, want /login", loc)
	}
}

func TestTamperedCookieRejected(t *testing.T) {
	router := protectedRouter("admin")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: utils.AuthCookieName, Value: "not.a.token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestInsufficientRoleForbidden(t *testing.T) {
	router := protectedRouter("admin")

	token, err := utils.IssueToken("u1", "shopper@example.com", "user", "")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: utils.AuthCookieName, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if got := errorBody(t, rec); got != "Forbidden" {
		t.Fatalf("error = %q, want %q", got, "Forbidden")
	}
}

func TestSuperAdminNotInAdminOnlyRoutes(t *testing.T) {
	// Routes gated on the admin role alone reject super_admin too.
	router := protectedRouter("admin")

	token, err := utils.IssueToken("u2", "root@example.com", "super_admin", "")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: utils.AuthCookieName, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestAllowedRolePassesWithContext(t *testing.T) {
	router := protectedRouter("admin", "super_admin")

	token, err := utils.IssueToken("u3", "admin@example.com", "super_admin", "Root")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: utils.AuthCookieName, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["id"] != "u3" || body["role"] != "super_admin" {
		t.Fatalf("body = %v", body)
	}
}

func TestBearerHeaderFallback(t *testing.T) {
	router := protectedRouter("admin")

	token, err := utils.IssueToken("u4", "cli@example.com", "admin", "")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
}
