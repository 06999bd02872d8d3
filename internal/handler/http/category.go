package http

import (
	"html"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/catalog-admin/internal/domain"
	"github.com/utafrali/catalog-admin/internal/service"
	"github.com/utafrali/catalog-admin/pkg/httputil"
	"github.com/utafrali/catalog-admin/pkg/validator"
)

// CategoryHandler handles HTTP requests for category endpoints.
type CategoryHandler struct {
	service  *service.CategoryService
	assets   AssetURLs
	imageDir string
	logger   *slog.Logger
}

// NewCategoryHandler creates a new category HTTP handler. imageDir is the
// storage directory category images live under and must end with a slash.
func NewCategoryHandler(svc *service.CategoryService, assets AssetURLs, imageDir string, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service:  svc,
		assets:   assets,
		imageDir: imageDir,
		logger:   logger,
	}
}

// --- Request DTOs ---

// CategoryForm is the multipart form for creating or updating a category.
// The optional image file arrives as a separate multipart part.
type CategoryForm struct {
	Title        string `form:"title" validate:"required,max=30"`
	Slug         string `form:"slug" validate:"required,min=5,max=30"`
	ShowInBottom string `form:"show_in_bottom"`
}

// categoryInput converts a parsed form plus the optional image upload into a
// service input. The bottom-display flag is a literal "true" comparison; any
// other value means false.
func (f *CategoryForm) categoryInput(image *domain.ImageUpload) *service.CategoryInput {
	return &service.CategoryInput{
		Title:        f.Title,
		Slug:         f.Slug,
		ShowInBottom: f.ShowInBottom == "true",
		Image:        image,
	}
}

// parseCategoryForm reads and validates the multipart body shared by create
// and update. The returned upload is nil when no image part was sent.
func parseCategoryForm(w http.ResponseWriter, r *http.Request) (*CategoryForm, *domain.ImageUpload, bool) {
	if err := r.ParseMultipartForm(domain.MaxImageSize + 1<<20); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid multipart body: " + err.Error()},
		})
		return nil, nil, false
	}

	form := &CategoryForm{}
	if v := formValue(r, "title"); v != nil {
		form.Title = *v
	}
	if v := formValue(r, "slug"); v != nil {
		form.Slug = *v
	}
	if v := formValue(r, "show_in_bottom"); v != nil {
		form.ShowInBottom = *v
	}

	if err := validator.Validate(form); err != nil {
		httputil.WriteValidationError(w, err)
		return nil, nil, false
	}

	image := formFile(r, "image")
	if image != nil {
		if err := image.Validate(); err != nil {
			httputil.WriteValidationError(w, validator.NewFieldError("image", err.Error()))
			return nil, nil, false
		}
	}

	return form, image, true
}

// --- Handlers ---

// CreateCategory handles POST /admin/categories
// @Summary Create a category
// @Description Creates a category from a multipart form with an optional image
// @Tags categories
// @Accept mpfd
// @Produce json
// @Success 201
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /admin/categories [post]
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	form, image, ok := parseCategoryForm(w, r)
	if !ok {
		return
	}

	if _, err := h.service.CreateCategory(r.Context(), form.categoryInput(image)); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// GetCategory handles GET /admin/categories/{id}
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path string true "Category UUID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/categories/{id} [get]
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	category, err := h.service.GetCategory(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	data := map[string]any{
		"title":          html.EscapeString(category.Title),
		"slug":           html.EscapeString(category.Slug),
		"show_in_bottom": category.ShowInBottom,
	}
	if category.Image != nil {
		data["image"] = h.assets.AssetURL(h.imageDir, *category.Image)
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: data})
}

// ListCategories handles GET /admin/categories
// @Summary List all categories
// @Description Returns every category ordered by creation time
// @Tags categories
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/categories [get]
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	items := make([]map[string]any, 0, len(categories))
	for _, category := range categories {
		items = append(items, map[string]any{
			"id":             category.ID,
			"title":          html.EscapeString(category.Title),
			"slug":           html.EscapeString(category.Slug),
			"show_in_bottom": category.ShowInBottom,
		})
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: items})
}

// ProductCounts handles GET /admin/categories/product-counts
// @Summary Product counts per category
// @Tags categories
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/categories/product-counts [get]
func (h *CategoryHandler) ProductCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.ProductCounts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: counts})
}

// UpdateCategory handles PUT /admin/categories/{id}
// @Summary Update a category
// @Description Replaces the category fields; a supplied image replaces the stored one
// @Tags categories
// @Accept mpfd
// @Produce json
// @Param id path string true "Category UUID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /admin/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	form, image, ok := parseCategoryForm(w, r)
	if !ok {
		return
	}

	if _, err := h.service.UpdateCategory(r.Context(), id.String(), form.categoryInput(image)); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCategory handles DELETE /admin/categories/{id}
// @Summary Delete a category
// @Description Deletes a category that no product references
// @Tags categories
// @Produce json
// @Param id path string true "Category UUID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /admin/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(r.Context(), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
