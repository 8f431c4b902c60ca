package http

import (
	"net/http"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/approval"
	"github.com/go-chi/jwtauth/v5"
)

// employeeIDFromContext extracts employee_id from JWT context
func employeeIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if employeeID, ok := claims["employee_id"].(string); ok {
		return employeeID
	}
	return ""
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}

// statusFilter reads the optional ?status= filter of the request listings.
func statusFilter(r *http.Request) (*approval.Status, error) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return nil, nil
	}
	status, err := approval.ParseStatus(raw)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
