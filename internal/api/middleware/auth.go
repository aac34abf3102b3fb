package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/avtoblesk/booking-service/internal/api/handlers"
)

const adminTokenHeader = "X-Admin-Token"

const msgUnauthorized = "требуется токен администратора"

// AdminAuth проверяет админский токен в заголовке X-Admin-Token.
// Сравнение за константное время, чтобы не утекала длина совпавшего префикса.
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(adminTokenHeader)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
