package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tarmachan/storefront/internal/service"
	"github.com/tarmachan/storefront/internal/storage"
	apperrors "github.com/tarmachan/storefront/pkg/errors"
	"github.com/tarmachan/storefront/pkg/httputil"
	"github.com/tarmachan/storefront/pkg/validator"
)

// maxImageSize limits uploaded product images to 8MB.
const maxImageSize = 8 << 20

// ProductAdminHandler handles the store-owner product management endpoints.
type ProductAdminHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewProductAdminHandler creates a new product admin HTTP handler.
func NewProductAdminHandler(svc *service.CatalogService, logger *slog.Logger) *ProductAdminHandler {
	return &ProductAdminHandler{
		service: svc,
		logger:  logger,
	}
}

// ProductForm is the multipart form state for creating or editing a product.
// It is echoed back on validation failure so the client can redisplay it.
type ProductForm struct {
	Name        string  `json:"name" validate:"required,min=1,max=500"`
	Description string  `json:"description"`
	CategoryID  *string `json:"category_id" validate:"omitempty,uuid"`
	Price       int64   `json:"price" validate:"gte=0"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// CreateProduct handles POST /api/v1/products
func (h *ProductAdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	form, input, ok := h.parseProductForm(w, r, "Failed to add product. Please ensure the form is valid.")
	if !ok {
		return
	}

	product, err := h.service.CreateProduct(r.Context(), actorFromRequest(r), input)
	if err != nil {
		if redirectForbidden(w, err) {
			return
		}
		if errors.Is(err, apperrors.ErrInvalidInput) {
			httputil.WriteValidationError(w, err,
				httputil.Error("Failed to add product. Please ensure the form is valid."), form)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteRedirect(w, "/api/v1/products/"+product.ID,
		httputil.Success("Successfully added product!"),
	)
}

// EditProduct handles GET /api/v1/products/{id}/edit
func (h *ProductAdminHandler) EditProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.service.GetProductForEdit(r.Context(), actorFromRequest(r), id.String())
	if err != nil {
		if redirectForbidden(w, err) {
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	form := ProductForm{
		Name:        product.Name,
		Description: product.Description,
		CategoryID:  product.CategoryID,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data:    form,
		Notices: []httputil.Notice{httputil.Info("You are editing " + product.Name)},
	})
}

// UpdateProduct handles PUT /api/v1/products/{id}
func (h *ProductAdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	form, input, ok := h.parseProductForm(w, r, "Failed to update product. Please ensure the form is valid.")
	if !ok {
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), actorFromRequest(r), id.String(), input)
	if err != nil {
		if redirectForbidden(w, err) {
			return
		}
		if errors.Is(err, apperrors.ErrInvalidInput) {
			httputil.WriteValidationError(w, err,
				httputil.Error("Failed to update product. Please ensure the form is valid."), form)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteRedirect(w, "/api/v1/products/"+product.ID,
		httputil.Success("Successfully updated product!"),
	)
}

// DeleteProduct handles DELETE /api/v1/products/{id}
func (h *ProductAdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), actorFromRequest(r), id.String()); err != nil {
		if redirectForbidden(w, err) {
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteRedirect(w, "/api/v1/products",
		httputil.Success("Product deleted!"),
	)
}

// parseProductForm reads the multipart product form, validates it, and builds
// the service input. On failure it writes the error response (echoing the
// submitted form) and returns ok=false.
func (h *ProductAdminHandler) parseProductForm(w http.ResponseWriter, r *http.Request, failureNotice string) (*ProductForm, *service.ProductInput, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+(1<<20))

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Notices: []httputil.Notice{httputil.Error(failureNotice)},
			Error:   &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to parse multipart form: " + err.Error()},
		})
		return nil, nil, false
	}

	form := &ProductForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}

	if v := r.FormValue("category_id"); v != "" {
		form.CategoryID = &v
	}

	if v := r.FormValue("price"); v != "" {
		price, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httputil.WriteValidationError(w, apperrors.InvalidInput("price must be a whole number of cents"),
				httputil.Error(failureNotice), form)
			return nil, nil, false
		}
		form.Price = price
	}

	if err := validator.Validate(form); err != nil {
		httputil.WriteValidationError(w, err, httputil.Error(failureNotice), form)
		return nil, nil, false
	}

	input := &service.ProductInput{
		Name:        form.Name,
		Description: form.Description,
		CategoryID:  form.CategoryID,
		Price:       form.Price,
	}

	if file, header, err := r.FormFile("image"); err == nil {
		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		input.Image = &storage.UploadInput{
			Key:         uuid.New().String() + "-" + header.Filename,
			ContentType: contentType,
			Size:        header.Size,
			Data:        file,
		}
	}

	return form, input, true
}

// redirectForbidden converts an authorization failure into the storefront's
// soft form: bounce home with an error notice instead of a hard 403.
func redirectForbidden(w http.ResponseWriter, err error) bool {
	if errors.Is(err, apperrors.ErrForbidden) {
		httputil.WriteRedirect(w, "/", httputil.Error("Sorry, only store owners can do that."))
		return true
	}
	return false
}
