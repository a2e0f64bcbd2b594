package middleware

import (
	"net/http"

	"github.com/RowdyKGZ/python12-shop/internal/constants"
	"github.com/RowdyKGZ/python12-shop/internal/token"
	"github.com/RowdyKGZ/python12-shop/pkg/api"
	"github.com/RowdyKGZ/python12-shop/pkg/apperr"
)

// 驗證ctx是否有token payload
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Context().Value(constants.AuthorizationPayloadKey).(*token.Payload)
		if !ok {
			api.ErrorJSON(w, int(apperr.UnauthenticatedCode), apperr.New(apperr.UnauthenticatedCode, "unauthenticated"), apperr.ErrStrMap[apperr.UnauthenticatedCode])
			return
		}
		next.ServeHTTP(w, r)
	})
}
