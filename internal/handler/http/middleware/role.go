package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/opsdesk/opsdesk-backend-go/internal/handler/http/response"
)

func claimsRoleAndDepartment(r *http.Request) (user.Role, string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", false
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return "", "", false
	}
	department, _ := claims["department"].(string)

	return user.Role(role), department, true
}

// RequireAdmin admits admin and superAdmin roles only.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _, ok := claimsRoleAndDepartment(r)
		if !ok {
			response.Unauthorized(w, "Missing role claim")
			return
		}

		if role != user.RoleAdmin && role != user.RoleSuperAdmin {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdminOrHR guards the admin attendance surface: listing every user's
// records, editing records and exporting.
func RequireAdminOrHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, department, ok := claimsRoleAndDepartment(r)
		if !ok {
			response.Unauthorized(w, "Missing role claim")
			return
		}

		if !user.CanViewAllAttendance(role, department) {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireHR guards holiday registry writes.
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, department, ok := claimsRoleAndDepartment(r)
		if !ok {
			response.Unauthorized(w, "Missing role claim")
			return
		}

		if !user.CanManageHolidays(role, department) {
			response.HandleError(w, user.ErrHRAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
