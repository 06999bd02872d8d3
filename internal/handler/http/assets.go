package http

import "strings"

// AssetURLs builds public URLs for stored image files. Grid listings use the
// storage-relative path; single reads use the fully qualified asset URL.
type AssetURLs struct {
	// BaseURL is the externally visible origin, e.g. "https://admin.example.com".
	BaseURL string
	// PublicPrefix is the path under which stored files are served and must
	// start and end with a slash, e.g. "/storage/".
	PublicPrefix string
}

// StoragePath returns the storage-relative public path for a file.
func (a AssetURLs) StoragePath(dir, name string) string {
	return a.PublicPrefix + dir + name
}

// AssetURL returns the fully qualified public URL for a file.
func (a AssetURLs) AssetURL(dir, name string) string {
	return strings.TrimSuffix(a.BaseURL, "/") + a.StoragePath(dir, name)
}
