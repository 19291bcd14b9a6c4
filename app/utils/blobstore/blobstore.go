package blobstore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PublicPrefix is the URL prefix every stored path starts with.
const PublicPrefix = "/uploads/"

var ErrInvalidPath = errors.New("blobstore: path is outside the uploads namespace")

type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (u Upload) Size() int64 {
	return int64(len(u.Data))
}

// Store persists uploaded files and hands back root-relative public paths.
type Store interface {
	Save(ctx context.Context, prefix string, upload Upload) (string, error)
	// Delete removes the file behind path. A missing file is not an error.
	Delete(ctx context.Context, path string) error
}

// GenerateName builds "<prefix>-<unix millis>-<random>.<original ext>".
func GenerateName(prefix, originalName string, now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s-%d-%s%s", prefix, now.UnixMilli(), random, filepath.Ext(originalName))
}

// NameFromPath extracts the stored file name from a public path.
func NameFromPath(p string) (string, error) {
	if !strings.HasPrefix(p, PublicPrefix) {
		return "", ErrInvalidPath
	}
	name := strings.TrimPrefix(p, PublicPrefix)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", ErrInvalidPath
	}
	return path.Clean(name), nil
}
