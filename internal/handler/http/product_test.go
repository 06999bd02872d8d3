package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/catalog-admin/internal/domain"
	"github.com/utafrali/catalog-admin/internal/event"
	"github.com/utafrali/catalog-admin/internal/repository"
	"github.com/utafrali/catalog-admin/internal/service"
	"github.com/utafrali/catalog-admin/internal/storage/memory"
	apperrors "github.com/utafrali/catalog-admin/pkg/errors"
	"github.com/utafrali/catalog-admin/pkg/httputil"
	pkgkafka "github.com/utafrali/catalog-admin/pkg/kafka"
)

const (
	testProductID  = "550e8400-e29b-41d4-a716-446655440001"
	testCategoryID = "550e8400-e29b-41d4-a716-446655440002"
)

// =============================================================================
// Mock repositories
// =============================================================================

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*domain.ProductWithCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductWithCategory), args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]domain.ProductWithCategory, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.ProductWithCategory), args.Int(1), args.Error(2)
}

func (m *mockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) ExistsByProductID(ctx context.Context, productID string) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

// =============================================================================
// Test helpers
// =============================================================================

func handlerTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func handlerTestEventProducer() *event.Producer {
	logger := handlerTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	return event.NewProducer(kafkaProducer, logger)
}

func testAssets() AssetURLs {
	return AssetURLs{BaseURL: "http://localhost:8001", PublicPrefix: "/storage/"}
}

func productTestHandler(productRepo *mockProductRepo, categoryRepo *mockCategoryRepo, orderRepo *mockOrderRepo) *ProductHandler {
	logger := handlerTestLogger()
	store := memory.New("/storage/")
	svc := service.NewProductService(
		productRepo, categoryRepo, orderRepo, store, handlerTestEventProducer(), logger, "product_images/")
	return NewProductHandler(svc, testAssets(), "product_images/", logger)
}

func productRouter(handler *ProductHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/admin/products", func(r chi.Router) {
		r.Get("/", handler.ListProducts)
		r.Post("/", handler.CreateProduct)
		r.Get("/{id}", handler.GetProduct)
		r.Put("/{id}", handler.UpdateProduct)
		r.Delete("/{id}", handler.DeleteProduct)
		r.Get("/{id}/can-delete", handler.CanDeleteProduct)
	})
	return r
}

// multipartRequest builds a multipart/form-data request from scalar fields and
// uploaded files (field name to file names; every file gets small fake bytes).
func multipartRequest(t *testing.T, method, target string, fields map[string]string, files map[string][]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for field, value := range fields {
		require.NoError(t, w.WriteField(field, value))
	}
	for field, names := range files {
		for _, name := range names {
			part, err := w.CreateFormFile(field, name)
			require.NoError(t, err)
			_, err = part.Write([]byte("fake-image-bytes"))
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func decodeValidationErrors(t *testing.T, rec *httptest.ResponseRecorder) map[string][]string {
	t.Helper()
	var resp httputil.ValidationErrors
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Errors
}

func sampleStoredProduct() *domain.ProductWithCategory {
	videoURL := "https://videos.example.com/chair"
	now := time.Now().UTC()
	return &domain.ProductWithCategory{
		Product: domain.Product{
			ID:            testProductID,
			Title:         "Walnut <Chair>",
			Description:   "A solid walnut dining chair with a hand-rubbed oil finish",
			Price:         14900,
			CategoryID:    testCategoryID,
			Images:        []string{"walnut_chair1718452800.jpg"},
			VideoURL:      &videoURL,
			ShowOnWebsite: true,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		CategoryTitle: "Chairs",
	}
}

func validProductFields() map[string]string {
	return map[string]string{
		"title":           "Walnut Chair",
		"description":     "A solid walnut dining chair",
		"price":           "14900",
		"category_id":     testCategoryID,
		"show_on_website": "true",
	}
}

// =============================================================================
// POST /admin/products - CreateProduct
// =============================================================================

func TestCreateProduct_Success(t *testing.T) {
	productRepo := new(mockProductRepo)
	categoryRepo := new(mockCategoryRepo)
	router := productRouter(productTestHandler(productRepo, categoryRepo, new(mockOrderRepo)))

	categoryRepo.On("GetByID", mock.Anything, testCategoryID).Return(&domain.Category{ID: testCategoryID}, nil)
	productRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	req := multipartRequest(t, http.MethodPost, "/admin/products",
		validProductFields(), map[string][]string{"images": {"front.jpg"}})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Body.String())
	productRepo.AssertExpectations(t)
}

func TestCreateProduct_ShortDescription(t *testing.T) {
	router := productRouter(productTestHandler(new(mockProductRepo), new(mockCategoryRepo), new(mockOrderRepo)))

	fields := validProductFields()
	fields["description"] = "too short"

	req := multipartRequest(t, http.MethodPost, "/admin/products",
		fields, map[string][]string{"images": {"front.jpg"}})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decodeValidationErrors(t, rec)
	assert.Contains(t, errs, "description")
}

func TestCreateProduct_BadImageExtension(t *testing.T) {
	router := productRouter(productTestHandler(new(mockProductRepo), new(mockCategoryRepo), new(mockOrderRepo)))

	req := multipartRequest(t, http.MethodPost, "/admin/products",
		validProductFields(), map[string][]string{"images": {"front.gif"}})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decodeValidationErrors(t, rec)
	assert.Equal(t, []string{domain.MsgImageExtension}, errs["images"])
}

func TestCreateProduct_TooManyImages(t *testing.T) {
	router := productRouter(productTestHandler(new(mockProductRepo), new(mockCategoryRepo), new(mockOrderRepo)))

	req := multipartRequest(t, http.MethodPost, "/admin/products",
		validProductFields(), map[string][]string{"images": {"a.jpg", "b.jpg", "c.jpg", "d.jpg"}})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decodeValidationErrors(t, rec)
	assert.Equal(t, []string{domain.MsgImagesMaxCount}, errs["images"])
}

func TestCreateProduct_NoImagesNoVideo(t *testing.T) {
	router := productRouter(productTestHandler(new(mockProductRepo), new(mockCategoryRepo), new(mockOrderRepo)))

	req := multipartRequest(t, http.MethodPost, "/admin/products", validProductFields(), nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decodeValidationErrors(t, rec)
	assert.Contains(t, errs, "images")
}

func TestCreateProduct_VideoOnly(t *testing.T) {
	productRepo := new(mockProductRepo)
	categoryRepo := new(mockCategoryRepo)
	router := productRouter(productTestHandler(productRepo, categoryRepo, new(mockOrderRepo)))

	categoryRepo.On("GetByID", mock.Anything, testCategoryID).Return(&domain.Category{ID: testCategoryID}, nil)
	productRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	fields := validProductFields()
	fields["video_url"] = "https://videos.example.com/chair"

	req := multipartRequest(t, http.MethodPost, "/admin/products", fields, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateProduct_InvalidPrice(t *testing.T) {
	router := productRouter(productTestHandler(new(mockProductRepo), new(mockCategoryRepo), new(mockOrderRepo)))

	fields := validProductFields()
	fields["price"] = "free"

	req := multipartRequest(t, http.MethodPost, "/admin/products",
		fields, map[string][]string{"images": {"front.jpg"}})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decodeValidationErrors(t, rec)
	assert.Contains(t, errs, "price")
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	productRepo := new(mockProductRepo)
	categoryRepo := new(mockCategoryRepo)
	router := productRouter(productTestHandler(productRepo, categoryRepo, new(mockOrderRepo)))

	categoryRepo.On("GetByID", mock.Anything, testCategoryID).Return(nil, apperrors.ErrNotFound)

	req := multipartRequest(t, http.MethodPost, "/admin/products",
		validProductFields(), map[string][]string{"images": {"front.jpg"}})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decodeValidationErrors(t, rec)
	assert.Equal(t, []string{"The selected category id is invalid."}, errs["category_id"])
}

// =============================================================================
// GET /admin/products/{id} - GetProduct
// =============================================================================

func TestGetProduct_Success(t *testing.T) {
	productRepo := new(mockProductRepo)
	router := productRouter(productTestHandler(productRepo, new(mockCategoryRepo), new(mockOrderRepo)))

	productRepo.On("GetByID", mock.Anything, testProductID).Return(sampleStoredProduct(), nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/products/"+testProductID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)

	assert.Equal(t, "Walnut &lt;Chair&gt;", data["title"])
	assert.Equal(t, "Chairs", data["category_title"])
	assert.Equal(t, float64(14900), data["price"])
	assert.Equal(t, true, data["show_on_website"])
	assert.Equal(t, "https://videos.example.com/chair", data["video_url"])

	images := data["images"].([]any)
	require.Len(t, images, 1)
	assert.Equal(t, "http://localhost:8001/storage/product_images/walnut_chair1718452800.jpg", images[0])
}

func TestGetProduct_NotFound(t *testing.T) {
	productRepo := new(mockProductRepo)
	router := productRouter(productTestHandler(productRepo, new(mockCategoryRepo), new(mockOrderRepo)))

	productRepo.On("GetByID", mock.Anything, testProductID).Return(nil, apperrors.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/admin/products/"+testProductID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProduct_InvalidID(t *testing.T) {
	router := productRouter(productTestHandler(new(mockProductRepo), new(mockCategoryRepo), new(mockOrderRepo)))

	req := httptest.NewRequest(http.MethodGet, "/admin/products/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
}

// =============================================================================
// GET /admin/products - ListProducts (grid)
// =============================================================================

func TestListProducts_MissingStart(t *testing.T) {
	router := productRouter(productTestHandler(new(mockProductRepo), new(mockCategoryRepo), new(mockOrderRepo)))

	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decodeValidationErrors(t, rec)
	assert.Equal(t, []string{"is required"}, errs["start"])
}

func TestListProducts_InvalidLength(t *testing.T) {
	router := productRouter(productTestHandler(new(mockProductRepo), new(mockCategoryRepo), new(mockOrderRepo)))

	req := httptest.NewRequest(http.MethodGet, "/admin/products?start=0&length=500", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decodeValidationErrors(t, rec)
	assert.Contains(t, errs, "length")
}

func TestListProducts_GridShape(t *testing.T) {
	productRepo := new(mockProductRepo)
	router := productRouter(productTestHandler(productRepo, new(mockCategoryRepo), new(mockOrderRepo)))

	// start=30, length=15 resolves to page 3.
	expectedFilter := repository.ProductFilter{Page: 3, PerPage: 15}
	productRepo.On("List", mock.Anything, expectedFilter).
		Return([]domain.ProductWithCategory{*sampleStoredProduct()}, 42, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/products?start=30&length=15", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var grid struct {
		CurrentPage     int              `json:"current_page"`
		Data            []map[string]any `json:"data"`
		LastPage        int              `json:"last_page"`
		PerPage         int              `json:"per_page"`
		RecordsTotal    int              `json:"recordsTotal"`
		RecordsFiltered int              `json:"recordsFiltered"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&grid))

	assert.Equal(t, 3, grid.CurrentPage)
	assert.Equal(t, 42, grid.RecordsTotal)
	assert.Equal(t, 42, grid.RecordsFiltered)
	assert.Equal(t, 3, grid.LastPage)
	require.Len(t, grid.Data, 1)

	row := grid.Data[0]
	assert.Equal(t, "Walnut &lt;Chair&gt;", row["title"])
	assert.Equal(t, map[string]any{"data-id": testProductID}, row["DT_RowAttr"])
	assert.Equal(t, `<span class="text-success">Yes</span>`, row["show_on_website"])
	assert.Contains(t, row["view_icon_html"], "ti-eye")
	assert.Contains(t, row["edit_icon_html"], "ti-pencil")
	assert.Contains(t, row["delete_icon_html"], "ti-trash")

	shortDesc, ok := row["short_description"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(shortDesc, "..."))

	// Grid image URLs are storage-relative, unlike the single read.
	images := row["images"].([]any)
	require.Len(t, images, 1)
	assert.Equal(t, "/storage/product_images/walnut_chair1718452800.jpg", images[0])

	productRepo.AssertExpectations(t)
}

func TestListProducts_CategoryFilter(t *testing.T) {
	productRepo := new(mockProductRepo)
	categoryRepo := new(mockCategoryRepo)
	router := productRouter(productTestHandler(productRepo, categoryRepo, new(mockOrderRepo)))

	categoryRepo.On("GetByID", mock.Anything, testCategoryID).Return(&domain.Category{ID: testCategoryID}, nil)
	productRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.ProductFilter) bool {
		return f.CategoryID != nil && *f.CategoryID == testCategoryID
	})).Return([]domain.ProductWithCategory{}, 0, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/products?start=0&category_id="+testCategoryID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	productRepo.AssertExpectations(t)
}

// =============================================================================
// PUT /admin/products/{id} - UpdateProduct
// =============================================================================

func TestUpdateProduct_Success(t *testing.T) {
	productRepo := new(mockProductRepo)
	router := productRouter(productTestHandler(productRepo, new(mockCategoryRepo), new(mockOrderRepo)))

	productRepo.On("GetByID", mock.Anything, testProductID).Return(sampleStoredProduct(), nil)
	productRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Title == "Oak Chair" && !p.ShowOnWebsite
	})).Return(nil)

	req := multipartRequest(t, http.MethodPut, "/admin/products/"+testProductID,
		map[string]string{"title": "Oak Chair", "show_on_website": "false"}, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	productRepo.AssertExpectations(t)
}

func TestUpdateProduct_ReconcilesRetainedImages(t *testing.T) {
	productRepo := new(mockProductRepo)
	router := productRouter(productTestHandler(productRepo, new(mockCategoryRepo), new(mockOrderRepo)))

	stored := sampleStoredProduct()
	stored.Images = []string{"a.jpg", "b.jpg"}
	productRepo.On("GetByID", mock.Anything, testProductID).Return(stored, nil)
	productRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return len(p.Images) == 1 && p.Images[0] == "a.jpg"
	})).Return(nil)

	retained, _ := json.Marshal([]string{"/storage/product_images/a.jpg"})
	req := multipartRequest(t, http.MethodPut, "/admin/products/"+testProductID,
		map[string]string{"existing_images": string(retained)}, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	productRepo.AssertExpectations(t)
}

func TestUpdateProduct_ImageCapExceeded(t *testing.T) {
	productRepo := new(mockProductRepo)
	router := productRouter(productTestHandler(productRepo, new(mockCategoryRepo), new(mockOrderRepo)))

	productRepo.On("GetByID", mock.Anything, testProductID).Return(sampleStoredProduct(), nil)

	retained, _ := json.Marshal([]string{
		"/storage/product_images/a.jpg",
		"/storage/product_images/b.jpg",
	})
	req := multipartRequest(t, http.MethodPut, "/admin/products/"+testProductID,
		map[string]string{"existing_images": string(retained)},
		map[string][]string{"images": {"x.jpg", "y.jpg"}})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, domain.MsgProductImageCap, resp.Error.Message)
	productRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateProduct_BadExistingImagesJSON(t *testing.T) {
	router := productRouter(productTestHandler(new(mockProductRepo), new(mockCategoryRepo), new(mockOrderRepo)))

	req := multipartRequest(t, http.MethodPut, "/admin/products/"+testProductID,
		map[string]string{"existing_images": "not-json"}, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decodeValidationErrors(t, rec)
	assert.Contains(t, errs, "existing_images")
}

// =============================================================================
// DELETE /admin/products/{id} - DeleteProduct
// =============================================================================

func TestDeleteProduct_Success(t *testing.T) {
	productRepo := new(mockProductRepo)
	orderRepo := new(mockOrderRepo)
	router := productRouter(productTestHandler(productRepo, new(mockCategoryRepo), orderRepo))

	productRepo.On("GetByID", mock.Anything, testProductID).Return(sampleStoredProduct(), nil)
	orderRepo.On("ExistsByProductID", mock.Anything, testProductID).Return(false, nil)
	productRepo.On("Delete", mock.Anything, testProductID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/admin/products/"+testProductID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	productRepo.AssertExpectations(t)
}

func TestDeleteProduct_Guarded(t *testing.T) {
	productRepo := new(mockProductRepo)
	orderRepo := new(mockOrderRepo)
	router := productRouter(productTestHandler(productRepo, new(mockCategoryRepo), orderRepo))

	productRepo.On("GetByID", mock.Anything, testProductID).Return(sampleStoredProduct(), nil)
	orderRepo.On("ExistsByProductID", mock.Anything, testProductID).Return(true, nil)

	req := httptest.NewRequest(http.MethodDelete, "/admin/products/"+testProductID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Product can not be deleted", resp.Error.Message)
}

// =============================================================================
// GET /admin/products/{id}/can-delete - CanDeleteProduct
// =============================================================================

func TestCanDeleteProduct(t *testing.T) {
	productRepo := new(mockProductRepo)
	orderRepo := new(mockOrderRepo)
	router := productRouter(productTestHandler(productRepo, new(mockCategoryRepo), orderRepo))

	productRepo.On("GetByID", mock.Anything, testProductID).Return(sampleStoredProduct(), nil)
	orderRepo.On("ExistsByProductID", mock.Anything, testProductID).Return(false, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/products/"+testProductID+"/can-delete", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]bool
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, map[string]bool{"can_delete_product": true}, body)
}
