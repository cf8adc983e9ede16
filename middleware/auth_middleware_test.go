package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"crosspost/models"
	"crosspost/services"
)

func protectedHandler(t *testing.T, auth *services.AuthService) (http.Handler, *string) {
	t.Helper()

	var seenUserID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = UserID(r)
		w.WriteHeader(http.StatusOK)
	})
	return AdminMiddleware(auth)(inner), &seenUserID
}

func TestAdminMiddleware(t *testing.T) {
	auth := services.NewAuthService(nil, []byte("test-secret"))

	adminToken, err := auth.GenerateToken(&models.User{ID: "admin-1", IsAdmin: true})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	userToken, err := auth.GenerateToken(&models.User{ID: "user-1", IsAdmin: false})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid admin token", "Bearer " + adminToken, http.StatusOK},
		{"non-admin token", "Bearer " + userToken, http.StatusForbidden},
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := protectedHandler(t, auth)

			req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAdminMiddlewareSetsUserID(t *testing.T) {
	auth := services.NewAuthService(nil, []byte("test-secret"))
	token, err := auth.GenerateToken(&models.User{ID: "admin-1", IsAdmin: true})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	handler, seenUserID := protectedHandler(t, auth)
	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if *seenUserID != "admin-1" {
		t.Fatalf("UserID in context = %q, want admin-1", *seenUserID)
	}
}
