package blobstore

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Rakhulsr/go-storefront/app/utils/apperr"
)

// Policy is checked before anything is written; a violation rejects the whole batch.
type Policy struct {
	MaxFiles     int
	MaxFileSize  int64
	AllowedTypes []string
}

var (
	ProductImagePolicy = Policy{
		MaxFiles:     10,
		MaxFileSize:  5 << 20,
		AllowedTypes: []string{"jpeg", "jpg", "png", "gif", "webp"},
	}
	LogoPolicy = Policy{
		MaxFiles:     1,
		MaxFileSize:  2 << 20,
		AllowedTypes: []string{"jpeg", "jpg", "png", "gif", "webp", "svg"},
	}
)

func (p Policy) Check(uploads []Upload) error {
	if len(uploads) > p.MaxFiles {
		return apperr.Validation(fmt.Sprintf("Too many files: at most %d allowed", p.MaxFiles))
	}
	for _, up := range uploads {
		if up.Size() > p.MaxFileSize {
			return apperr.Validation(fmt.Sprintf("File too large: %s exceeds %dMB", up.Filename, p.MaxFileSize>>20))
		}
		if !p.allowedExtension(up.Filename) || !p.allowedContentType(up) {
			return apperr.Validation("Only image files are allowed!")
		}
	}
	return nil
}

func (p Policy) allowedExtension(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return p.allows(ext)
}

// allowedContentType trusts the declared type and only sniffs when none was sent.
func (p Policy) allowedContentType(up Upload) bool {
	declared := up.ContentType
	if declared == "" || declared == "application/octet-stream" {
		declared = mimetype.Detect(up.Data).String()
	}

	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return false
	}
	kind, subtype, ok := strings.Cut(strings.ToLower(mediaType), "/")
	if !ok || kind != "image" {
		return false
	}
	return p.allows(strings.TrimSuffix(subtype, "+xml"))
}

func (p Policy) allows(t string) bool {
	for _, allowed := range p.AllowedTypes {
		if t == allowed {
			return true
		}
	}
	return false
}
