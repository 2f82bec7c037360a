package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/user"
	"github.com/nimbus-hr/timesheet-backend-go/internal/handler/http/response"
)

// RequireReviewer restricts an endpoint to roles that may approve or reject
// submissions (manager or owner).
func RequireReviewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		if !user.CanReview(user.Role(roleStr)) {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
