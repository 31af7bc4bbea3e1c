package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nss-backend/internal/auth"
	"nss-backend/internal/config"
	"nss-backend/internal/models"
)

func testAuthMiddleware() (*AuthMiddleware, *auth.JWTManager) {
	jwt := auth.NewJWTManager(&config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "nss-backend"},
	})
	return NewAuthMiddleware(jwt), jwt
}

func okHandler(t *testing.T, wantUserID, wantRole string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, _ := GetUserIDFromContext(r.Context()); id != wantUserID {
			t.Errorf("context user id = %q, want %q", id, wantUserID)
		}
		if role, _ := GetRoleFromContext(r.Context()); role != wantRole {
			t.Errorf("context role = %q, want %q", role, wantRole)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthHeader(t *testing.T) {
	m, jwt := testAuthMiddleware()
	token, _ := jwt.Generate("vol-1", models.RoleVolunteer, "")

	handler := m.RequireAuth(okHandler(t, "vol-1", models.RoleVolunteer))

	req := httptest.NewRequest(http.MethodGet, "/api/attendance/history", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("valid token rejected: %d %s", rr.Code, rr.Body.String())
	}
}

func TestRequireAuthQueryToken(t *testing.T) {
	m, jwt := testAuthMiddleware()
	token, _ := jwt.Generate("men-1", models.RoleMentor, "")

	handler := m.RequireAuth(okHandler(t, "men-1", models.RoleMentor))

	req := httptest.NewRequest(http.MethodGet, "/api/attendance/session/ws?token="+token, nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("query token rejected: %d %s", rr.Code, rr.Body.String())
	}
}

func TestRequireAuthRejects(t *testing.T) {
	m, _ := testAuthMiddleware()
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without credentials")
	}))

	for _, header := range []string{"", "Bearer garbage", "Basic dXNlcg=="} {
		req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rr.Code)
		}
	}
}

func TestRequireRole(t *testing.T) {
	m, jwt := testAuthMiddleware()
	issuerOnly := m.RequireRole(models.RoleMentor, models.RoleSecretary)

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := m.RequireAuth(issuerOnly(final))

	cases := []struct {
		role string
		want int
	}{
		{models.RoleMentor, http.StatusOK},
		{models.RoleSecretary, http.StatusOK},
		{models.RoleVolunteer, http.StatusForbidden},
	}
	for _, tc := range cases {
		token, _ := jwt.Generate("user-1", tc.role, "")
		req := httptest.NewRequest(http.MethodPost, "/api/attendance/session/start", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != tc.want {
			t.Errorf("role %s: status = %d, want %d", tc.role, rr.Code, tc.want)
		}
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("fourth request in the window should be rejected")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("different client should not share the window")
	}
}
