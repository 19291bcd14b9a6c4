package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/Rakhulsr/go-storefront/app/repositories"
	"github.com/Rakhulsr/go-storefront/app/utils/blobstore"
)

// memoryStore is an in-memory blobstore.Store with switchable failures.
type memoryStore struct {
	mu         sync.Mutex
	files      map[string][]byte
	seq        int
	failSaveAt int
	deleteErr  error
	deleted    []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{files: make(map[string][]byte)}
}

func (m *memoryStore) Save(_ context.Context, prefix string, up blobstore.Upload) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	if m.failSaveAt > 0 && m.seq == m.failSaveAt {
		return "", errors.New("disk full")
	}
	path := fmt.Sprintf("%s%s-%d%s", blobstore.PublicPrefix, prefix, m.seq, filepath.Ext(up.Filename))
	m.files[path] = up.Data
	return path, nil
}

func (m *memoryStore) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleted = append(m.deleted, path)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.files, path)
	return nil
}

func (m *memoryStore) has(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok
}

func (m *memoryStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

// failingImageRepo fails every gallery insert.
type failingImageRepo struct {
	repositories.ProductImageRepositoryImpl
}

func (f *failingImageRepo) Create(context.Context, *models.ProductImage) error {
	return errors.New("insert failed")
}

// failingProductRepo fails every product row update.
type failingProductRepo struct {
	repositories.ProductRepositoryImpl
}

func (f *failingProductRepo) Update(context.Context, *models.Product) error {
	return errors.New("disk I/O error")
}

// flakyGalleryRepo fails the gallery steps that run after a product row update.
type flakyGalleryRepo struct {
	repositories.ProductImageRepositoryImpl
	failCount  bool
	failDelete bool
}

func (f *flakyGalleryRepo) CountByProduct(ctx context.Context, productID uint) (int64, error) {
	if f.failCount {
		return 0, errors.New("database is locked")
	}
	return f.ProductImageRepositoryImpl.CountByProduct(ctx, productID)
}

func (f *flakyGalleryRepo) DeleteByIDs(ctx context.Context, productID uint, ids []uint) error {
	if f.failDelete {
		return errors.New("database is locked")
	}
	return f.ProductImageRepositoryImpl.DeleteByIDs(ctx, productID, ids)
}

// failingSettingRepo fails every upsert.
type failingSettingRepo struct {
	repositories.SettingRepositoryImpl
}

func (f *failingSettingRepo) Upsert(context.Context, map[string]*string) error {
	return errors.New("database is locked")
}

func jpeg(name string) blobstore.Upload {
	return blobstore.Upload{Filename: name, ContentType: "image/jpeg", Data: []byte(name)}
}
