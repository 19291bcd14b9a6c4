package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/Rakhulsr/go-storefront/app/repositories"
	"github.com/Rakhulsr/go-storefront/app/utils/apperr"
	"github.com/Rakhulsr/go-storefront/app/utils/blobstore"
	"github.com/Rakhulsr/go-storefront/app/utils/calc"
	"github.com/Rakhulsr/go-storefront/app/utils/metrics"
)

const productImagePrefix = "product"

// ProductInput carries the raw form values of a create or update call.
type ProductInput struct {
	Name               string `validate:"required"`
	NameAr             string
	Description        string
	DescriptionAr      string
	Price              string `validate:"required,numeric"`
	DiscountPrice      string
	DiscountPercentage string
}

// ProductDetail is a product together with its resolved gallery.
type ProductDetail struct {
	*models.Product
	Images []models.ProductImage `json:"images"`
}

type ProductService struct {
	productRepo repositories.ProductRepositoryImpl
	imageRepo   repositories.ProductImageRepositoryImpl
	store       blobstore.Store
	validate    *validator.Validate
	log         *logrus.Logger
	metrics     *metrics.Metrics
}

func NewProductService(
	productRepo repositories.ProductRepositoryImpl,
	imageRepo repositories.ProductImageRepositoryImpl,
	store blobstore.Store,
	validate *validator.Validate,
	log *logrus.Logger,
	m *metrics.Metrics,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		imageRepo:   imageRepo,
		store:       store,
		validate:    validate,
		log:         log,
		metrics:     m,
	}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		return nil, apperr.Storage("failed to list products", err)
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*ProductDetail, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage("failed to load product", err)
	}
	if product == nil {
		return nil, apperr.NotFound("Product not found")
	}

	rows, err := s.imageRepo.GetByProduct(ctx, id)
	if err != nil {
		return nil, apperr.Storage("failed to load product images", err)
	}

	return &ProductDetail{Product: product, Images: models.Gallery(product, rows)}, nil
}

func (s *ProductService) Create(ctx context.Context, input ProductInput, files []blobstore.Upload) (uint, error) {
	product, err := s.normalize(input)
	if err != nil {
		return 0, err
	}
	if err := blobstore.ProductImagePolicy.Check(files); err != nil {
		return 0, err
	}

	paths, err := s.storeFiles(ctx, files)
	if err != nil {
		return 0, err
	}
	if len(paths) > 0 {
		product.Image = paths[0]
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.discardFiles(ctx, paths)
		return 0, apperr.Storage("failed to create product", err)
	}

	if err := s.insertImages(ctx, product.ID, paths, 0); err != nil {
		return product.ID, err
	}

	s.log.WithFields(logrus.Fields{"product_id": product.ID, "images": len(paths)}).Info("ProductService.Create: product created")
	return product.ID, nil
}

// Update writes the product row first. New files are stored beforehand so a
// failure up to the row write changes nothing; anything failing after the row
// commits is reported as a partial write.
func (s *ProductService) Update(ctx context.Context, id uint, input ProductInput, files []blobstore.Upload, deletedImageIDs []uint) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return apperr.Storage("failed to load product", err)
	}
	if product == nil {
		return apperr.NotFound("Product not found")
	}

	fields, err := s.normalize(input)
	if err != nil {
		return err
	}
	if err := blobstore.ProductImagePolicy.Check(files); err != nil {
		return err
	}

	removed, err := s.imageRepo.GetByIDs(ctx, id, deletedImageIDs)
	if err != nil {
		return apperr.Storage("failed to load images to delete", err)
	}

	paths, err := s.storeFiles(ctx, files)
	if err != nil {
		return err
	}

	// a legacy image with no gallery row is orphaned once new uploads replace it
	orphan := ""
	if len(paths) > 0 && product.Image != "" {
		current, err := s.imageRepo.GetByProduct(ctx, id)
		if err != nil {
			s.discardFiles(ctx, paths)
			return apperr.Storage("failed to load product images", err)
		}
		orphan = product.Image
		for _, img := range current {
			if img.ImagePath == product.Image {
				orphan = ""
				break
			}
		}
	}

	product.Name = fields.Name
	product.NameAr = fields.NameAr
	product.Description = fields.Description
	product.DescriptionAr = fields.DescriptionAr
	product.Price = fields.Price
	product.DiscountPrice = fields.DiscountPrice
	product.DiscountPercentage = fields.DiscountPercentage
	if len(paths) > 0 {
		// the legacy field follows the newest upload even though older gallery rows remain
		product.Image = paths[0]
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.discardFiles(ctx, paths)
		return apperr.Storage("failed to update product", err)
	}

	if orphan != "" {
		s.deleteFile(ctx, orphan, logrus.Fields{"product_id": id})
	}

	var errs []error
	if err := s.removeImages(ctx, id, removed); err != nil {
		errs = append(errs, err)
	}
	if len(paths) > 0 {
		// Not atomic with the inserts below; concurrent edits of one gallery may
		// produce duplicate or gapped display_order values.
		current, err := s.imageRepo.CountByProduct(ctx, id)
		if err != nil {
			errs = append(errs, fmt.Errorf("count gallery: %w", err))
		} else if err := s.createImageRows(ctx, id, paths, int(current)); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		s.log.WithField("product_id", id).WithError(err).Error("ProductService.Update: gallery changes failed after product row committed")
		return apperr.PartialWrite("product updated but its gallery could not be fully updated", err).
			WithDetails("product_id", id)
	}
	return nil
}

// removeImages deletes the given gallery rows, then their files best-effort.
func (s *ProductService) removeImages(ctx context.Context, productID uint, images []models.ProductImage) error {
	if len(images) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(images))
	for _, img := range images {
		ids = append(ids, img.ID)
	}
	if err := s.imageRepo.DeleteByIDs(ctx, productID, ids); err != nil {
		return fmt.Errorf("delete gallery rows: %w", err)
	}
	for _, img := range images {
		s.deleteFile(ctx, img.ImagePath, logrus.Fields{"product_id": productID, "image_id": img.ID})
	}
	return nil
}

func (s *ProductService) DeleteImage(ctx context.Context, productID, imageID uint) error {
	image, err := s.imageRepo.FindOne(ctx, productID, imageID)
	if err != nil {
		return apperr.Storage("failed to load image", err)
	}
	if image == nil {
		return apperr.NotFound("Image not found")
	}

	if err := s.imageRepo.DeleteByIDs(ctx, productID, []uint{imageID}); err != nil {
		return apperr.Storage("failed to delete image", err)
	}
	s.deleteFile(ctx, image.ImagePath, logrus.Fields{"product_id": productID, "image_id": imageID})
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return apperr.Storage("failed to load product", err)
	}
	if product == nil {
		return apperr.NotFound("Product not found")
	}

	images, err := s.imageRepo.GetByProduct(ctx, id)
	if err != nil {
		return apperr.Storage("failed to load product images", err)
	}

	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return apperr.Storage("failed to delete product", err)
	}
	if !deleted {
		return apperr.NotFound("Product not found")
	}

	seen := make(map[string]bool, len(images)+1)
	for _, img := range images {
		if !seen[img.ImagePath] {
			seen[img.ImagePath] = true
			s.deleteFile(ctx, img.ImagePath, logrus.Fields{"product_id": id, "image_id": img.ID})
		}
	}
	if product.Image != "" && !seen[product.Image] {
		s.deleteFile(ctx, product.Image, logrus.Fields{"product_id": id})
	}
	return nil
}

// normalize validates the raw input and returns the product fields it describes.
func (s *ProductService) normalize(input ProductInput) (*models.Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Price = strings.TrimSpace(input.Price)

	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return nil, apperr.Validation("price must be a number")
	}
	// columns hold two decimal places; compare what will actually be stored
	price = price.Round(2)
	if !price.IsPositive() {
		return nil, apperr.Validation("price must be greater than 0")
	}

	product := &models.Product{
		Name:               input.Name,
		NameAr:             input.NameAr,
		Description:        input.Description,
		DescriptionAr:      input.DescriptionAr,
		Price:              price,
		DiscountPrice:      calc.NormalizeDiscountPrice(price, parseOptionalDecimal(input.DiscountPrice)),
		DiscountPercentage: parseOptionalDecimal(input.DiscountPercentage),
	}
	if strings.TrimSpace(product.NameAr) == "" {
		product.NameAr = product.Name
	}
	if strings.TrimSpace(product.DescriptionAr) == "" {
		product.DescriptionAr = product.Description
	}
	return product, nil
}

func parseOptionalDecimal(raw string) decimal.NullDecimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d.Round(2))
}

// storeFiles writes every upload or none: a failure removes what was already written.
func (s *ProductService) storeFiles(ctx context.Context, files []blobstore.Upload) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		path, err := s.store.Save(ctx, productImagePrefix, file)
		if err != nil {
			s.discardFiles(ctx, paths)
			return nil, apperr.Storage("failed to store image", err)
		}
		paths = append(paths, path)
	}
	s.metrics.FilesUploaded(productImagePrefix, len(paths))
	return paths, nil
}

func (s *ProductService) discardFiles(ctx context.Context, paths []string) {
	for _, path := range paths {
		s.deleteFile(ctx, path, nil)
	}
}

func (s *ProductService) deleteFile(ctx context.Context, path string, fields logrus.Fields) {
	if err := s.store.Delete(ctx, path); err != nil {
		s.metrics.BlobDeleteFailed()
		s.log.WithFields(fields).WithField("path", path).WithError(err).Warn("ProductService: failed to delete file")
	}
}

// insertImages adds one gallery row per path and reports failures as a partial write.
func (s *ProductService) insertImages(ctx context.Context, productID uint, paths []string, startOrder int) error {
	if err := s.createImageRows(ctx, productID, paths, startOrder); err != nil {
		s.log.WithField("product_id", productID).WithError(err).Error("ProductService: gallery rows failed after product row committed")
		return apperr.PartialWrite("product saved but some images could not be recorded", err).
			WithDetails("product_id", productID)
	}
	return nil
}

// createImageRows inserts one row per path, ordered from startOrder, in parallel.
func (s *ProductService) createImageRows(ctx context.Context, productID uint, paths []string, startOrder int) error {
	if len(paths) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	errs := make([]error, len(paths))
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			image := &models.ProductImage{
				ProductID:    productID,
				ImagePath:    path,
				DisplayOrder: startOrder + i,
			}
			if err := s.imageRepo.Create(ctx, image); err != nil {
				errs[i] = fmt.Errorf("image %d (%s): %w", i, path, err)
			}
		}(i, path)
	}
	wg.Wait()
	return errors.Join(errs...)
}

// ParseDeletedImages decodes the deleted_images form field, a JSON array of ids.
// Ids may be numbers or numeric strings.
func ParseDeletedImages(raw string) ([]uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, apperr.Validation("deleted_images must be a JSON array of image ids")
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		var text string
		if err := json.Unmarshal(item, &text); err != nil {
			text = string(item)
		}
		id, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return nil, apperr.Validation("deleted_images must be a JSON array of image ids")
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
