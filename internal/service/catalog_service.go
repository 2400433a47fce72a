package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/alimikegami/perfume-store/internal/domain"
	"github.com/alimikegami/perfume-store/internal/dto"
	"github.com/alimikegami/perfume-store/internal/infrastructure/metrics"
	"github.com/alimikegami/perfume-store/internal/repository"
	"github.com/alimikegami/perfume-store/pkg/errs"
	"github.com/alimikegami/perfume-store/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

type CatalogServiceImpl struct {
	repo     repository.CatalogRepository
	gallery  GalleryService
	validate *validator.Validate

	mu         sync.RWMutex
	products   []domain.Product
	categories []domain.Category
	loaded     bool
}

func CreateCatalogService(repo repository.CatalogRepository, gallery GalleryService, validate *validator.Validate) CatalogService {
	svc := &CatalogServiceImpl{
		repo:     repo,
		gallery:  gallery,
		validate: validate,
	}
	gallery.OnImagesConfirmed(svc.storeImages)

	return svc
}

// RefreshCache replaces the cached products and categories wholesale.
func (s *CatalogServiceImpl) RefreshCache(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			metrics.CatalogRefreshTotal.WithLabelValues(metrics.ResultFailure).Inc()
			return
		}
		metrics.CatalogRefreshTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	}()

	products, err := s.repo.GetProducts(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CatalogService.RefreshCache").Msg("")
		return
	}

	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CatalogService.RefreshCache").Msg("")
		return
	}

	s.mu.Lock()
	s.products = products
	s.categories = categories
	s.loaded = true
	s.mu.Unlock()

	return nil
}

func (s *CatalogServiceImpl) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()

	if loaded {
		return nil
	}

	return s.RefreshCache(ctx)
}

func (s *CatalogServiceImpl) cachedProducts(ctx context.Context) ([]domain.Product, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *CatalogServiceImpl) categorySlug(product domain.Product) string {
	if product.Category != nil && product.Category.Slug != "" {
		return product.Category.Slug
	}

	for _, category := range s.categories {
		if category.ID == product.CategoryID {
			return category.Slug
		}
	}
	return ""
}

func (s *CatalogServiceImpl) GetProducts(ctx context.Context, filter dto.ProductFilter) (data []domain.Product, err error) {
	if err = s.ensureLoaded(ctx); err != nil {
		return
	}

	q := strings.ToLower(strings.TrimSpace(filter.Q))

	s.mu.RLock()
	defer s.mu.RUnlock()

	data = make([]domain.Product, 0, len(s.products))
	for _, product := range s.products {
		if filter.Category != "" && s.categorySlug(product) != filter.Category {
			continue
		}
		if filter.Gender != "" && string(product.Gender) != filter.Gender {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(product.Name), q) &&
			!strings.Contains(strings.ToLower(product.OlfactiveNotes), q) {
			continue
		}
		data = append(data, product)
	}

	return data, nil
}

// GetProduct serves from the cache and falls through to the remote API on a miss.
func (s *CatalogServiceImpl) GetProduct(ctx context.Context, id int64) (data domain.Product, err error) {
	s.mu.RLock()
	for _, product := range s.products {
		if product.ID == id {
			s.mu.RUnlock()
			return product, nil
		}
	}
	s.mu.RUnlock()

	data, err = s.repo.GetProductByID(ctx, id)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CatalogService.GetProduct").Int64("product_id", id).Msg("")
		return
	}

	s.storeProduct(data)

	return data, nil
}

func (s *CatalogServiceImpl) storeProduct(product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == product.ID {
			s.products[i] = product
			return
		}
	}
	s.products = append(s.products, product)
}

// storeImages swaps the image list of a cached product. Uncached products are
// left to the next read-through.
func (s *CatalogServiceImpl) storeImages(productID int64, images []domain.ProductImage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == productID {
			s.products[i].Images = images
			return
		}
	}
}

func (s *CatalogServiceImpl) dropProduct(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.Product, 0, len(s.products))
	for _, product := range s.products {
		if product.ID != id {
			kept = append(kept, product)
		}
	}
	s.products = kept
}

func (s *CatalogServiceImpl) GetHeroProducts(ctx context.Context) (data []domain.Product, err error) {
	products, err := s.cachedProducts(ctx)
	if err != nil {
		return
	}

	data = make([]domain.Product, 0)
	for _, product := range products {
		if product.IsHero {
			data = append(data, product)
		}
	}
	return data, nil
}

func (s *CatalogServiceImpl) GetFlagshipProducts(ctx context.Context) (data []domain.Product, err error) {
	products, err := s.cachedProducts(ctx)
	if err != nil {
		return
	}

	data = make([]domain.Product, 0)
	for _, product := range products {
		if product.IsFlagship {
			data = append(data, product)
		}
	}
	return data, nil
}

// productFields validates req and renders it as multipart form fields.
func (s *CatalogServiceImpl) productFields(req dto.ProductRequest) (map[string]string, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrValidation, err)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(req.Price), 64)
	if err != nil || price < 0 {
		return nil, fmt.Errorf("%w: price must be a non-negative number", errs.ErrValidation)
	}

	numeric := map[string]string{
		"stock":       req.Stock,
		"size_ml":     req.SizeML,
		"category_id": req.CategoryID,
	}
	fields := map[string]string{
		"name":            req.Name,
		"description":     req.Description,
		"price":           strconv.FormatFloat(price, 'f', -1, 64),
		"gender":          req.Gender,
		"is_hero":         boolField(req.IsHero),
		"is_flagship":     boolField(req.IsFlagship),
		"olfactive_notes": req.OlfactiveNotes,
	}

	for name, raw := range numeric {
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative integer", errs.ErrValidation, name)
		}
		fields[name] = strconv.FormatInt(v, 10)
	}

	return fields, nil
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (s *CatalogServiceImpl) AddProduct(ctx context.Context, req dto.ProductRequest, images []dto.ImageFile) (data domain.Product, err error) {
	fields, err := s.productFields(req)
	if err != nil {
		return
	}

	data, err = s.repo.AddProduct(ctx, fields, images)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CatalogService.AddProduct").Msg("")
		return
	}

	s.storeProduct(data)

	return data, nil
}

// ImageChange is what an update does to a product's images. The remote API
// has no way to delete a subset of them.
type ImageChange int

const (
	ImageChangeNone ImageChange = iota
	ImageChangeDeleteAll
	ImageChangeReplaceAll
)

// PlanImageChange decides the image change for an update. Deleting some but
// not all images without uploading replacements is rejected.
func PlanImageChange(current []domain.ProductImage, deleteIDs []int64, uploads int) (ImageChange, error) {
	if uploads > 0 {
		return ImageChangeReplaceAll, nil
	}

	if len(deleteIDs) == 0 {
		return ImageChangeNone, nil
	}

	marked := make(map[int64]bool, len(deleteIDs))
	for _, id := range deleteIDs {
		marked[id] = true
	}

	for _, img := range current {
		if !marked[img.ID] {
			return ImageChangeNone, errs.ErrPartialImageDeletion
		}
	}

	return ImageChangeDeleteAll, nil
}

func (s *CatalogServiceImpl) UpdateProduct(ctx context.Context, req dto.ProductRequest, images []dto.ImageFile) (data domain.Product, err error) {
	fields, err := s.productFields(req)
	if err != nil {
		return
	}

	// Cache first; a cold cache costs one read and a rejected plan never writes.
	current, err := s.GetProduct(ctx, req.ID)
	if err != nil {
		return
	}

	change, err := PlanImageChange(current.Images, req.DeleteImageIDs, len(images))
	if err != nil {
		return
	}

	switch change {
	case ImageChangeDeleteAll:
		fields["delete_images"] = "1"
	case ImageChangeReplaceAll:
		fields["replace_images"] = "1"
	}

	data, err = s.repo.UpdateProduct(ctx, req.ID, fields, images)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CatalogService.UpdateProduct").Int64("product_id", req.ID).Msg("")
		return
	}

	s.storeProduct(data)
	s.gallery.Invalidate(req.ID)

	return data, nil
}

func (s *CatalogServiceImpl) DeleteProduct(ctx context.Context, id int64) (err error) {
	if err = s.repo.DeleteProduct(ctx, id); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CatalogService.DeleteProduct").Int64("product_id", id).Msg("")
		return
	}

	s.dropProduct(id)
	s.gallery.Invalidate(id)

	return nil
}

func (s *CatalogServiceImpl) GetCategories(ctx context.Context) (data []domain.Category, err error) {
	if err = s.ensureLoaded(ctx); err != nil {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data = make([]domain.Category, len(s.categories))
	copy(data, s.categories)
	return data, nil
}

func (s *CatalogServiceImpl) AddCategory(ctx context.Context, req dto.CategoryRequest) (data domain.Category, err error) {
	if err = s.validate.Struct(req); err != nil {
		return data, fmt.Errorf("%w: %w", errs.ErrValidation, err)
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}

	data, err = s.repo.AddCategory(ctx, domain.Category{Name: req.Name, Slug: slug})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CatalogService.AddCategory").Msg("")
		return
	}

	s.mu.Lock()
	s.categories = append(s.categories, data)
	s.mu.Unlock()

	return data, nil
}

// UpdateCategory re-derives the slug when the name changes, unless the
// request carries an explicit slug.
func (s *CatalogServiceImpl) UpdateCategory(ctx context.Context, req dto.CategoryRequest) (data domain.Category, err error) {
	if err = s.validate.Struct(req); err != nil {
		return data, fmt.Errorf("%w: %w", errs.ErrValidation, err)
	}

	current, err := s.repo.GetCategoryByID(ctx, req.ID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CatalogService.UpdateCategory").Int64("category_id", req.ID).Msg("")
		return
	}

	slug := current.Slug
	switch {
	case req.Slug != "":
		slug = req.Slug
	case req.Name != current.Name:
		slug = utils.Slugify(req.Name)
	}

	data, err = s.repo.UpdateCategory(ctx, domain.Category{ID: req.ID, Name: req.Name, Slug: slug})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CatalogService.UpdateCategory").Int64("category_id", req.ID).Msg("")
		return
	}

	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].ID == data.ID {
			s.categories[i] = data
		}
	}
	s.mu.Unlock()

	return data, nil
}

func (s *CatalogServiceImpl) DeleteCategory(ctx context.Context, id int64) (err error) {
	if err = s.repo.DeleteCategory(ctx, id); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CatalogService.DeleteCategory").Int64("category_id", id).Msg("")
		return
	}

	s.mu.Lock()
	kept := make([]domain.Category, 0, len(s.categories))
	for _, category := range s.categories {
		if category.ID != id {
			kept = append(kept, category)
		}
	}
	s.categories = kept
	s.mu.Unlock()

	return nil
}
