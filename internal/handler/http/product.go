package http

import (
	"encoding/json"
	"html"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/catalog-admin/internal/domain"
	"github.com/utafrali/catalog-admin/internal/repository"
	"github.com/utafrali/catalog-admin/internal/service"
	"github.com/utafrali/catalog-admin/pkg/httputil"
	"github.com/utafrali/catalog-admin/pkg/pagination"
	"github.com/utafrali/catalog-admin/pkg/validator"
)

// shortDescriptionLimit is the rune cap of the grid's short description column.
const shortDescriptionLimit = 30

// Grid markup fragments the admin table renders per row.
const (
	showOnWebsiteYes = `<span class="text-success">Yes</span>`
	showOnWebsiteNo  = `<span class="text-danger">No</span>`

	viewIconHTML = `<span class="icon-holder view-product-icon edit-icon">
                        <i class="c-blue-500 ti-eye" title="View Details"></i>
                    </span>`
	editIconHTML = `<span class="icon-holder edit-product-icon edit-icon">
                        <i class="c-blue-500 ti-pencil" title="Edit"></i>
                    </span>`
	deleteIconHTML = `<span class="icon-holder delete-product-icon edit-icon">
                        <i class="c-blue-500 ti-trash" title="Delete"></i>
                    </span>`
)

// ProductHandler handles HTTP requests for product endpoints.
type ProductHandler struct {
	service  *service.ProductService
	assets   AssetURLs
	imageDir string
	logger   *slog.Logger
}

// NewProductHandler creates a new product HTTP handler. imageDir is the
// storage directory product images live under and must end with a slash.
func NewProductHandler(svc *service.ProductService, assets AssetURLs, imageDir string, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service:  svc,
		assets:   assets,
		imageDir: imageDir,
		logger:   logger,
	}
}

// --- Request DTOs ---

// CreateProductForm is the multipart form for creating a product. Images
// arrive as separate multipart file parts; price as a decimal string.
type CreateProductForm struct {
	Title         string `form:"title" validate:"required,max=50"`
	Description   string `form:"description" validate:"required,min=10,max=500"`
	Price         string `form:"price" validate:"required"`
	CategoryID    string `form:"category_id" validate:"required,uuid"`
	VideoURL      string `form:"video_url" validate:"omitempty,url"`
	ShowOnWebsite string `form:"show_on_website"`
}

// --- Handlers ---

// CreateProduct handles POST /admin/products
// @Summary Create a product
// @Description Creates a product from a multipart form with image files or a video URL
// @Tags products
// @Accept mpfd
// @Produce json
// @Success 201
// @Failure 422 {object} map[string]interface{}
// @Router /admin/products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(domain.ProductImagesMaxCount*domain.MaxImageSize + 1<<20); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid multipart body: " + err.Error()},
		})
		return
	}

	form := &CreateProductForm{}
	for field, dst := range map[string]*string{
		"title":           &form.Title,
		"description":     &form.Description,
		"price":           &form.Price,
		"category_id":     &form.CategoryID,
		"video_url":       &form.VideoURL,
		"show_on_website": &form.ShowOnWebsite,
	} {
		if v := formValue(r, field); v != nil {
			*dst = *v
		}
	}

	if err := validator.Validate(form); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	price, ok := parsePrice(w, form.Price)
	if !ok {
		return
	}

	images := formFiles(r, "images")
	if err := domain.ValidateImages(images); err != nil {
		httputil.WriteValidationError(w, validator.NewFieldError("images", err.Error()))
		return
	}
	if len(images) == 0 && form.VideoURL == "" {
		httputil.WriteValidationError(w, validator.NewFieldError("images",
			"The images field is required when video url is not present."))
		return
	}

	input := &service.CreateProductInput{
		Title:         form.Title,
		Description:   form.Description,
		Price:         price,
		CategoryID:    form.CategoryID,
		ShowOnWebsite: form.ShowOnWebsite == "true",
		Images:        images,
	}
	if form.VideoURL != "" {
		input.VideoURL = &form.VideoURL
	}

	if _, err := h.service.CreateProduct(r.Context(), input); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// GetProduct handles GET /admin/products/{id}
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path string true "Product UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	data := map[string]any{
		"title":           html.EscapeString(product.Title),
		"description":     html.EscapeString(product.Description),
		"price":           product.Price,
		"category_id":     product.CategoryID,
		"category_title":  html.EscapeString(product.CategoryTitle),
		"show_on_website": product.ShowOnWebsite,
	}
	if len(product.Images) > 0 {
		urls := make([]string, 0, len(product.Images))
		for _, name := range product.Images {
			urls = append(urls, h.assets.AssetURL(h.imageDir, name))
		}
		data["images"] = urls
	}
	if product.VideoURL != nil && *product.VideoURL != "" {
		data["video_url"] = *product.VideoURL
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: data})
}

// ListProducts handles GET /admin/products?start=&length=&category_id=
// @Summary List products for the admin grid
// @Description Returns one grid page: a zero-based record offset plus a page length
// @Tags products
// @Produce json
// @Param start query int true "Zero-based record offset"
// @Param length query int false "Page length (max 100)" default(15)
// @Param category_id query string false "Filter by category UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /admin/products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	startParam := r.URL.Query().Get("start")
	if startParam == "" {
		httputil.WriteValidationError(w, validator.NewFieldError("start", "is required"))
		return
	}
	start, err := strconv.Atoi(startParam)
	if err != nil || start < 0 {
		httputil.WriteValidationError(w, validator.NewFieldError("start",
			"must be an integer greater than or equal to 0"))
		return
	}

	length := pagination.DefaultLength
	if v := r.URL.Query().Get("length"); v != "" {
		length, err = strconv.Atoi(v)
		if err != nil || length < 1 || length > pagination.MaxLength {
			httputil.WriteValidationError(w, validator.NewFieldError("length",
				"must be an integer between 1 and 100"))
			return
		}
	}

	params := pagination.FromGrid(start, length)
	filter := repository.ProductFilter{
		Page:    params.Page,
		PerPage: params.PerPage,
	}
	if v := r.URL.Query().Get("category_id"); v != "" {
		filter.CategoryID = &v
	}

	products, total, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	rows := make([]map[string]any, 0, len(products))
	for _, product := range products {
		rows = append(rows, h.gridRow(product))
	}

	httputil.WriteJSON(w, http.StatusOK, pagination.NewGridResult(rows, total, params))
}

// gridRow decorates one product for the admin table: escaped text columns, a
// truncated short description, storage-relative image URLs, and the markup
// fragments the grid renders verbatim.
func (h *ProductHandler) gridRow(product domain.ProductWithCategory) map[string]any {
	row := map[string]any{
		"DT_RowAttr":        map[string]string{"data-id": product.ID},
		"id":                product.ID,
		"title":             html.EscapeString(product.Title),
		"description":       html.EscapeString(product.Description),
		"short_description": html.EscapeString(truncate(product.Description, shortDescriptionLimit)),
		"price":             product.Price,
		"category_id":       product.CategoryID,
		"category_title":    html.EscapeString(product.CategoryTitle),
		"created_at":        product.CreatedAt,
		"view_icon_html":    viewIconHTML,
		"edit_icon_html":    editIconHTML,
		"delete_icon_html":  deleteIconHTML,
	}

	if product.ShowOnWebsite {
		row["show_on_website"] = showOnWebsiteYes
	} else {
		row["show_on_website"] = showOnWebsiteNo
	}

	if len(product.Images) > 0 {
		urls := make([]string, 0, len(product.Images))
		for _, name := range product.Images {
			urls = append(urls, h.assets.StoragePath(h.imageDir, name))
		}
		row["images"] = urls
	}

	return row
}

// UpdateProduct handles PUT /admin/products/{id}
// @Summary Update a product
// @Description Partial multipart update with image-list reconciliation
// @Tags products
// @Accept mpfd
// @Produce json
// @Param id path string true "Product UUID"
// @Success 204
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /admin/products/{id} [put]
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(domain.ProductImagesMaxCount*domain.MaxImageSize + 1<<20); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid multipart body: " + err.Error()},
		})
		return
	}

	input := &service.UpdateProductInput{}

	if v := formValue(r, "title"); v != nil {
		if len(*v) == 0 || len(*v) > domain.ProductTitleMaxLen {
			httputil.WriteValidationError(w, validator.NewFieldError("title", "must be at most 50 characters"))
			return
		}
		input.Title = v
	}
	if v := formValue(r, "description"); v != nil {
		if len(*v) < domain.ProductDescriptionMinLen || len(*v) > domain.ProductDescriptionMaxLen {
			httputil.WriteValidationError(w, validator.NewFieldError("description",
				"must be between 10 and 500 characters"))
			return
		}
		input.Description = v
	}
	if v := formValue(r, "price"); v != nil {
		price, ok := parsePrice(w, *v)
		if !ok {
			return
		}
		input.Price = &price
	}
	if v := formValue(r, "category_id"); v != nil {
		input.CategoryID = v
	}
	if v := formValue(r, "video_url"); v != nil {
		input.VideoURL = v
	}
	if v := formValue(r, "show_on_website"); v != nil {
		showOnWebsite := *v == "true"
		input.ShowOnWebsite = &showOnWebsite
	}

	if v := formValue(r, "existing_images"); v != nil {
		retained, err := parseExistingImages(*v)
		if err != nil {
			httputil.WriteValidationError(w, validator.NewFieldError("existing_images",
				"must be a JSON array of image URLs"))
			return
		}
		input.ExistingImages = retained
	}

	input.NewImages = formFiles(r, "images")
	if err := domain.ValidateImages(input.NewImages); err != nil {
		httputil.WriteValidationError(w, validator.NewFieldError("images", err.Error()))
		return
	}

	if _, err := h.service.UpdateProduct(r.Context(), id.String(), input); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteProduct handles DELETE /admin/products/{id}
// @Summary Delete a product
// @Description Deletes a product that has never been ordered, along with its image files
// @Tags products
// @Produce json
// @Param id path string true "Product UUID"
// @Success 204
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CanDeleteProduct handles GET /admin/products/{id}/can-delete
// @Summary Probe whether a product is deletable
// @Tags products
// @Produce json
// @Param id path string true "Product UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/products/{id}/can-delete [get]
func (h *ProductHandler) CanDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	canDelete, err := h.service.CanDeleteProduct(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"can_delete_product": canDelete})
}

// --- Helpers ---

// parsePrice converts the submitted price string into a positive integer,
// writing a field-tagged 422 on failure.
func parsePrice(w http.ResponseWriter, value string) (int64, bool) {
	price, err := strconv.ParseInt(value, 10, 64)
	if err != nil || price < 1 {
		httputil.WriteValidationError(w, validator.NewFieldError("price",
			"must be an integer greater than 0"))
		return 0, false
	}
	return price, true
}

// parseExistingImages decodes the retained-image JSON array and reduces each
// URL to its bare file name.
func parseExistingImages(raw string) ([]string, error) {
	var urls []string
	if err := json.Unmarshal([]byte(raw), &urls); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(urls))
	for _, url := range urls {
		names = append(names, path.Base(url))
	}
	return names, nil
}

// truncate shortens s to at most limit runes, appending an ellipsis when
// anything was cut off.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
