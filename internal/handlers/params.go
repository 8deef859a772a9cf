package handlers

import (
	"net/http"
	"strings"

	"haulcentral/internal/models"
)

// pathParam reads a route parameter stored by pat as a ":name" query value,
// falling back to the net/http PathValue API. An empty value is a
// validation error naming the parameter.
func pathParam(r *http.Request, name string) (string, error) {
	val := strings.TrimSpace(r.URL.Query().Get(":" + name))
	if val == "" {
		val = strings.TrimSpace(r.PathValue(name))
	}
	if val == "" {
		return "", &models.ValidationError{Field: name, Reason: "is required"}
	}
	return val, nil
}
