package domain

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// MaxImageSize is the upload size cap for a single image file.
const MaxImageSize = 10 << 20 // 10 MB

// Image admission rule messages, surfaced verbatim in validation responses.
const (
	MsgImageInvalid    = "Uploaded image is invalid"
	MsgImagesInvalid   = "Uploaded images are invalid"
	MsgImageExtension  = "Unsupported image extension. Must be one of these [jpg,jpeg,png]"
	MsgImageTooLarge   = "Image max size must not be more than 10 MB"
	MsgImagesNotArray  = "Images field must be of type array"
	MsgImagesMaxCount  = "Maximum 3 images can be uploaded"
	MsgProductImageCap = "There can not be more than 3 images for product"
)

// ErrImageInvalid marks an upload that is not a usable file at all. Callers
// pick the singular or plural message depending on the field shape.
var ErrImageInvalid = errors.New(MsgImageInvalid)

// allowedImageExts are matched case-sensitively against the file extension.
var allowedImageExts = []string{"jpg", "jpeg", "png"}

// ImageUpload is an uploaded image file pending admission checks.
type ImageUpload struct {
	Name string
	Size int64
	Data io.Reader
}

// Ext returns the file extension of the upload without the leading dot,
// preserving case.
func (u *ImageUpload) Ext() string {
	return strings.TrimPrefix(filepath.Ext(u.Name), ".")
}

// Validate runs the admission rules in order: usable file, allowed extension,
// size cap. The first failing rule wins; its message is the error text.
func (u *ImageUpload) Validate() error {
	if u == nil || u.Name == "" || u.Size <= 0 || u.Data == nil {
		return ErrImageInvalid
	}
	if !IsAllowedImageExt(u.Ext()) {
		return errors.New(MsgImageExtension)
	}
	if u.Size > MaxImageSize {
		return errors.New(MsgImageTooLarge)
	}
	return nil
}

// ValidateImages checks a multi-upload set: count cap first, then each file.
// A file that is not usable at all yields the plural invalid message.
func ValidateImages(uploads []*ImageUpload) error {
	if len(uploads) > ProductImagesMaxCount {
		return errors.New(MsgImagesMaxCount)
	}
	for _, u := range uploads {
		if err := u.Validate(); err != nil {
			if errors.Is(err, ErrImageInvalid) {
				return errors.New(MsgImagesInvalid)
			}
			return err
		}
	}
	return nil
}

// IsAllowedImageExt reports whether ext is an accepted image extension.
// The match is case-sensitive: "JPG" is rejected.
func IsAllowedImageExt(ext string) bool {
	for _, allowed := range allowedImageExts {
		if ext == allowed {
			return true
		}
	}
	return false
}
