package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/prestigebuild/siteapi/internal/auth"
)

type fakeVerifier struct {
	claims *auth.Claims
	err    error
}

func (f *fakeVerifier) VerifyToken(_ string) (*auth.Claims, error) {
	return f.claims, f.err
}

func protectedRouter(verifier TokenVerifier, requiredRole string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	m := NewAuthMiddleware(verifier)

	router := gin.New()

	group := router.Group("/admin")
	group.Use(m.RequireAuth())

	if requiredRole != "" {
		group.Use(m.RequireRole(requiredRole))
	}

	group.GET("/ping", func(c *gin.Context) {
		username, _ := UsernameFromContext(c)
		c.JSON(http.StatusOK, gin.H{"username": username})
	})

	return router
}

func TestRequireAuth(t *testing.T) {
	adminClaims := &auth.Claims{UserID: "u1", Username: "admin", Role: "admin"}

	tests := []struct {
		name       string
		header     string
		verifier   *fakeVerifier
		wantStatus int
	}{
		{
			name:       "valid token",
			header:     "Bearer good-token",
			verifier:   &fakeVerifier{claims: adminClaims},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			header:     "",
			verifier:   &fakeVerifier{claims: adminClaims},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic dXNlcjpwYXNz",
			verifier:   &fakeVerifier{claims: adminClaims},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty bearer",
			header:     "Bearer ",
			verifier:   &fakeVerifier{claims: adminClaims},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			header:     "Bearer expired",
			verifier:   &fakeVerifier{err: errors.New("token is expired")},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := protectedRouter(tc.verifier, "")

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)

			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{name: "admin passes", role: "admin", wantStatus: http.StatusOK},
		{name: "other role forbidden", role: "editor", wantStatus: http.StatusForbidden},
		{name: "empty role treated as missing identity", role: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verifier := &fakeVerifier{claims: &auth.Claims{UserID: "u1", Username: "someone", Role: tc.role}}

			router := protectedRouter(verifier, "admin")

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
			req.Header.Set("Authorization", "Bearer token")
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}
