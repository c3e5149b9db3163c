package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tarmachan/storefront/internal/domain"
	"github.com/tarmachan/storefront/internal/service"
	"github.com/tarmachan/storefront/pkg/httputil"
)

// CatalogHandler handles HTTP requests for the public catalog endpoints.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// ListProducts handles GET /api/v1/products
// @Summary List products
// @Description Returns products with composable sorting, category filtering, and search
// @Tags catalog
// @Produce json
// @Param sort query string false "Sort key" Enums(name,category,price,rating,created_at)
// @Param direction query string false "Sort direction" Enums(asc,desc)
// @Param category query string false "Comma-separated category names"
// @Param q query string false "Case-insensitive substring search on name and description"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/products [get]
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	query := service.ListQuery{
		SortKey:   params.Get("sort"),
		Direction: params.Get("direction"),
	}

	if query.SortKey != "" && !domain.IsValidSortKey(query.SortKey) {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "INVALID_PARAMETER",
				Message: "sort must be one of: " + strings.Join(domain.ValidSortKeys(), ", "),
			},
		})
		return
	}

	if v := params.Get("category"); v != "" {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				query.CategoryNames = append(query.CategoryNames, name)
			}
		}
	}

	// A submitted-but-empty q is distinct from an absent one: the former
	// bounces back to the unfiltered listing with an error notice.
	if params.Has("q") {
		q := params.Get("q")
		query.Search = &q
	}

	result, err := h.service.ListProducts(r.Context(), query)
	if err != nil {
		if errors.Is(err, service.ErrEmptySearch) {
			httputil.WriteRedirect(w, "/api/v1/products",
				httputil.Error("You didn't enter any search criteria!"),
			)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// GetProduct handles GET /api/v1/products/{id}
// @Summary Get product detail
// @Description Returns a product with its comments (newest first) and a freshly resynced rating
// @Tags catalog
// @Produce json
// @Param id path string true "Product UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/products/{id} [get]
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	result, err := h.service.GetProductDetail(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: categories})
}
