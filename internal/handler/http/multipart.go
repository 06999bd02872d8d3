package http

import (
	"mime/multipart"
	"net/http"

	"github.com/utafrali/catalog-admin/internal/domain"
)

// formValue returns the first value of a multipart form field, or nil when the
// field was absent from the request. Partial updates distinguish absent from
// empty.
func formValue(r *http.Request, field string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// formFile returns the single uploaded file for a field, or nil when absent.
// A file header that cannot be opened yields an upload that fails admission.
func formFile(r *http.Request, field string) *domain.ImageUpload {
	if r.MultipartForm == nil {
		return nil
	}
	headers, ok := r.MultipartForm.File[field]
	if !ok || len(headers) == 0 {
		return nil
	}
	return uploadFromHeader(headers[0])
}

// formFiles returns all uploaded files for a field. The admin UI submits
// product images as "images[]"; both spellings are accepted.
func formFiles(r *http.Request, field string) []*domain.ImageUpload {
	if r.MultipartForm == nil {
		return nil
	}
	headers, ok := r.MultipartForm.File[field]
	if !ok {
		headers = r.MultipartForm.File[field+"[]"]
	}

	uploads := make([]*domain.ImageUpload, 0, len(headers))
	for _, header := range headers {
		uploads = append(uploads, uploadFromHeader(header))
	}
	if len(uploads) == 0 {
		return nil
	}
	return uploads
}

func uploadFromHeader(header *multipart.FileHeader) *domain.ImageUpload {
	file, err := header.Open()
	if err != nil {
		// Data left nil so the admission check reports an invalid upload.
		return &domain.ImageUpload{Name: header.Filename, Size: header.Size}
	}
	return &domain.ImageUpload{
		Name: header.Filename,
		Size: header.Size,
		Data: file,
	}
}
