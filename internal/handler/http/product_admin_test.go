package http

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tarmachan/storefront/internal/domain"
	"github.com/tarmachan/storefront/internal/storage"
	apperrors "github.com/tarmachan/storefront/pkg/errors"
)

// =============================================================================
// Test helpers
// =============================================================================

// productForm builds a multipart body from the given fields, optionally
// attaching an image file.
func productForm(t *testing.T, fields map[string]string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if image != nil {
		part, err := writer.CreateFormFile("image", "mug.jpg")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func authedRequest(method, target, token string, body *bytes.Buffer, contentType string) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

// =============================================================================
// POST /api/v1/products - CreateProduct
// =============================================================================

func TestCreateProduct_Success(t *testing.T) {
	router, repos := newTestRouter()

	repos.products.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Name == "Harris Tweed Scarf" && p.Slug == "harris-tweed-scarf" && p.Price == 4500
	})).Return(nil)

	body, contentType := productForm(t, map[string]string{
		"name":        "Harris Tweed Scarf",
		"description": "Woven on the island.",
		"price":       "4500",
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/products", adminToken, body, contentType))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Contains(t, rec.Header().Get("Location"), "/api/v1/products/")
	assert.Contains(t, noticeTexts(resp), "Successfully added product!")
	repos.products.AssertExpectations(t)
}

func TestCreateProduct_StoresImage(t *testing.T) {
	router, repos := newTestRouter()

	repos.images.On("Upload", mock.Anything, mock.MatchedBy(func(in *storage.UploadInput) bool {
		return in.Size == 3 && in.Key != ""
	})).Return(&storage.UploadResult{Key: "abc-mug.jpg", URL: "/media/images/abc-mug.jpg"}, nil)
	repos.products.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.ImageURL == "/media/images/abc-mug.jpg"
	})).Return(nil)

	body, contentType := productForm(t, map[string]string{
		"name":  "Thistle Mug",
		"price": "2400",
	}, []byte("jpg"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/products", adminToken, body, contentType))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	repos.images.AssertExpectations(t)
	repos.products.AssertExpectations(t)
}

func TestCreateProduct_NonAdminRedirectsHome(t *testing.T) {
	router, repos := newTestRouter()

	body, contentType := productForm(t, map[string]string{
		"name":  "Harris Tweed Scarf",
		"price": "4500",
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/products", customerToken, body, contentType))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	resp := decodeResponse(t, rec)
	assert.Contains(t, noticeTexts(resp), "Sorry, only store owners can do that.")
	repos.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProduct_Unauthenticated(t *testing.T) {
	router, _ := newTestRouter()

	body, contentType := productForm(t, map[string]string{"name": "Mug"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateProduct_MissingNameEchoesForm(t *testing.T) {
	router, repos := newTestRouter()

	body, contentType := productForm(t, map[string]string{
		"description": "Woven on the island.",
		"price":       "4500",
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/products", adminToken, body, contentType))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Fields, "Name")
	assert.Contains(t, noticeTexts(resp), "Failed to add product. Please ensure the form is valid.")

	// The submitted form state comes back for redisplay.
	form := resp.Data.(map[string]any)
	assert.Equal(t, "Woven on the island.", form["description"])

	repos.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProduct_NonNumericPrice(t *testing.T) {
	router, repos := newTestRouter()

	body, contentType := productForm(t, map[string]string{
		"name":  "Harris Tweed Scarf",
		"price": "a lot",
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/products", adminToken, body, contentType))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
	repos.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// =============================================================================
// GET /api/v1/products/{id}/edit - EditProduct
// =============================================================================

func TestEditProduct_ReturnsPrefilledForm(t *testing.T) {
	router, repos := newTestRouter()

	repos.products.On("GetByID", mock.Anything, testProductID).Return(sampleProduct(), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/products/"+testProductID+"/edit", adminToken, nil, ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	form := resp.Data.(map[string]any)
	assert.Equal(t, "Thistle Mug", form["name"])
	assert.Contains(t, noticeTexts(resp), "You are editing Thistle Mug")
}

func TestEditProduct_NonAdminRedirectsHome(t *testing.T) {
	router, repos := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/products/"+testProductID+"/edit", customerToken, nil, ""))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	repos.products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

// =============================================================================
// PUT /api/v1/products/{id} - UpdateProduct
// =============================================================================

func TestUpdateProduct_Success(t *testing.T) {
	router, repos := newTestRouter()

	repos.products.On("GetByID", mock.Anything, testProductID).Return(sampleProduct(), nil)
	repos.products.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Name == "Heather Mug" && p.Slug == "heather-mug"
	})).Return(nil)

	body, contentType := productForm(t, map[string]string{
		"name":  "Heather Mug",
		"price": "2600",
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/v1/products/"+testProductID, adminToken, body, contentType))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/api/v1/products/"+testProductID, rec.Header().Get("Location"))
	resp := decodeResponse(t, rec)
	assert.Contains(t, noticeTexts(resp), "Successfully updated product!")
	repos.products.AssertExpectations(t)
}

func TestUpdateProduct_ValidationFailure(t *testing.T) {
	router, repos := newTestRouter()

	body, contentType := productForm(t, map[string]string{
		"price": "2600",
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/v1/products/"+testProductID, adminToken, body, contentType))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Contains(t, noticeTexts(resp), "Failed to update product. Please ensure the form is valid.")
	repos.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// =============================================================================
// DELETE /api/v1/products/{id} - DeleteProduct
// =============================================================================

func TestDeleteProduct_Success(t *testing.T) {
	router, repos := newTestRouter()

	repos.products.On("GetByID", mock.Anything, testProductID).Return(sampleProduct(), nil)
	repos.products.On("Delete", mock.Anything, testProductID).Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/v1/products/"+testProductID, adminToken, nil, ""))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/api/v1/products", rec.Header().Get("Location"))
	resp := decodeResponse(t, rec)
	assert.Contains(t, noticeTexts(resp), "Product deleted!")
	repos.products.AssertExpectations(t)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	router, repos := newTestRouter()

	repos.products.On("GetByID", mock.Anything, testProductID).
		Return(nil, apperrors.NotFound("product", testProductID))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/v1/products/"+testProductID, adminToken, nil, ""))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	repos.products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteProduct_NonAdminRedirectsHome(t *testing.T) {
	router, repos := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/v1/products/"+testProductID, customerToken, nil, ""))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	resp := decodeResponse(t, rec)
	assert.Contains(t, noticeTexts(resp), "Sorry, only store owners can do that.")
	repos.products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
