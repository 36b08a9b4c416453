package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/winco-group/attendance-backend-go/internal/domain/auth"
	"github.com/winco-group/attendance-backend-go/internal/domain/employee"
	"github.com/winco-group/attendance-backend-go/internal/handler/http/response"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// HROnly gates routes to employees with the hr role.
func HROnly(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		role, err := RoleFromContext(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if role != employee.RoleHR {
			response.Forbidden(w, "HR role required")
			return
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hfn)
}

// EmployeeIDFromContext extracts the authenticated employee ID from the
// verified token claims.
func EmployeeIDFromContext(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", auth.ErrInvalidToken
	}
	return employeeID, nil
}

// RoleFromContext extracts the authenticated employee's role from the
// verified token claims.
func RoleFromContext(r *http.Request) (employee.Role, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return "", auth.ErrInvalidToken
	}
	return employee.Role(role), nil
}
