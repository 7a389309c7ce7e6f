package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/giftflowhq/giftflow-backend/pkg/auth"
	"github.com/giftflowhq/giftflow-backend/pkg/config"
	"github.com/giftflowhq/giftflow-backend/pkg/enums"
)

func testJWT() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "giftflow", ExpirationMinutes: 60}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, role enums.UserRole) (string, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	token, err := pkgauth.MintAccessToken(cfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: userID,
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token, userID
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(testJWT(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler := Auth(testJWT(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	otherCfg := config.JWTConfig{Secret: "other", Issuer: "giftflow", ExpirationMinutes: 60}
	token, _ := mintTestToken(t, otherCfg, enums.UserRoleStaff)

	handler := Auth(testJWT(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthAllowsValidToken(t *testing.T) {
	cfg := testJWT()
	token, userID := mintTestToken(t, cfg, enums.UserRoleAdmin)

	var captured struct {
		user string
		role string
	}
	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.user = UserIDFromContext(r.Context())
		captured.role = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.user != userID.String() {
		t.Fatalf("expected user %s got %s", userID, captured.user)
	}
	if captured.role != string(enums.UserRoleAdmin) {
		t.Fatalf("expected role admin got %s", captured.role)
	}
}

func TestRequireRole(t *testing.T) {
	cfg := testJWT()
	token, _ := mintTestToken(t, cfg, enums.UserRoleStaff)

	handler := Auth(cfg, nil)(RequireRole(string(enums.UserRoleAdmin), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestCronSecret(t *testing.T) {
	handler := CronSecret("s3cret", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reminders/check", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/reminders/check", nil)
	req.Header.Set("x-cron-secret", "s3cret")
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
