package middleware

import (
	"net/http"

	"github.com/tahweela/tahweela-backend/api/responses"
	"github.com/tahweela/tahweela-backend/pkg/enums"
	pkgerrors "github.com/tahweela/tahweela-backend/pkg/errors"
	"github.com/tahweela/tahweela-backend/pkg/logger"
)

// RequireUserType lets the request through only for the listed account types.
func RequireUserType(logg *logger.Logger, allowed ...enums.UserType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current := UserTypeFromContext(r.Context())
			for _, t := range allowed {
				if current == t {
					next.ServeHTTP(w, r)
					return
				}
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "account type not permitted"))
		})
	}
}
