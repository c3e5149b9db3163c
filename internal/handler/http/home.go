package http

import (
	"net/http"

	"github.com/tarmachan/storefront/pkg/httputil"
)

// HomePayload is the landing response for the storefront root.
type HomePayload struct {
	Name     string            `json:"name"`
	Tagline  string            `json:"tagline"`
	Version  string            `json:"version"`
	Sections map[string]string `json:"sections"`
}

// HomeHandler serves the landing payload.
type HomeHandler struct {
	version string
}

// NewHomeHandler creates a new home handler.
func NewHomeHandler(version string) *HomeHandler {
	return &HomeHandler{version: version}
}

// Home handles GET /
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: HomePayload{
			Name:    "Tarmachan Storefront",
			Tagline: "Small-batch goods, shipped from the workshop",
			Version: h.version,
			Sections: map[string]string{
				"products":   "/api/v1/products",
				"categories": "/api/v1/categories",
			},
		},
	})
}
