package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	protected := AdminAuth("secret-token")(next)

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{name: "valid token", token: "secret-token", wantStatus: http.StatusNoContent},
		{name: "wrong token", token: "wrong", wantStatus: http.StatusUnauthorized},
		{name: "missing token", token: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil)
			if tt.token != "" {
				req.Header.Set("X-Admin-Token", tt.token)
			}

			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
