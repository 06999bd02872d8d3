package service

import (
	"crypto/md5"
	"fmt"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/utafrali/catalog-admin/internal/domain"
)

var (
	caseBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// snakeCase lowers a file base name to snake_case: word boundaries become
// underscores, runs of whitespace collapse to one underscore.
func snakeCase(s string) string {
	s = strings.TrimSpace(s)
	s = caseBoundary.ReplaceAllString(s, "${1}_${2}")
	s = whitespace.ReplaceAllString(s, "_")
	return strings.ToLower(s)
}

// imageBaseName returns the snake_cased client file name without extension,
// suffixed with the current unix time to keep repeated uploads distinct.
func imageBaseName(original string) string {
	base := filepath.Base(original)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s%d", snakeCase(base), time.Now().Unix())
}

// categoryImageName builds the stored file name for a category image. The
// base is hashed so category file names reveal nothing about their origin.
func categoryImageName(upload *domain.ImageUpload) string {
	return fmt.Sprintf("%x.%s", md5.Sum([]byte(imageBaseName(upload.Name))), upload.Ext())
}

// productImageName builds the stored file name for a product image.
func productImageName(upload *domain.ImageUpload) string {
	return fmt.Sprintf("%s.%s", imageBaseName(upload.Name), upload.Ext())
}

// imageContentType maps an upload's extension to a MIME type.
func imageContentType(upload *domain.ImageUpload) string {
	if ct := mime.TypeByExtension("." + upload.Ext()); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
