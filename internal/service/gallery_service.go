package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/alimikegami/perfume-store/internal/domain"
	"github.com/alimikegami/perfume-store/internal/dto"
	"github.com/alimikegami/perfume-store/internal/infrastructure/metrics"
	"github.com/alimikegami/perfume-store/internal/repository"
	"github.com/alimikegami/perfume-store/pkg/errs"
	"github.com/rs/zerolog/log"
)

const EventProductImagesReordered = "product_images_reordered"

// gallery holds the last ordering the remote system confirmed and the
// ordering currently being edited.
type gallery struct {
	confirmed []domain.ProductImage
	staged    []domain.ProductImage
}

// GalleryServiceImpl stages image reorders locally and only commits them once
// the remote write succeeded. A failed write puts the staged list back to the
// confirmed one.
type GalleryServiceImpl struct {
	repo      repository.CatalogRepository
	publisher EventPublisher

	mu          sync.Mutex
	galleries   map[int64]*gallery
	onConfirmed func(productID int64, images []domain.ProductImage)
}

func CreateGalleryService(repo repository.CatalogRepository, publisher EventPublisher) GalleryService {
	return &GalleryServiceImpl{
		repo:      repo,
		publisher: publisher,
		galleries: make(map[int64]*gallery),
	}
}

func copyImages(images []domain.ProductImage) []domain.ProductImage {
	out := make([]domain.ProductImage, len(images))
	copy(out, images)
	return out
}

// load returns the gallery for productID, fetching the product on first use.
func (s *GalleryServiceImpl) load(ctx context.Context, productID int64) (*gallery, error) {
	s.mu.Lock()
	g, ok := s.galleries[productID]
	s.mu.Unlock()
	if ok {
		return g, nil
	}

	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GalleryService.load").Int64("product_id", productID).Msg("")
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if g, ok = s.galleries[productID]; ok {
		return g, nil
	}

	g = &gallery{
		confirmed: copyImages(product.Images),
		staged:    copyImages(product.Images),
	}
	s.galleries[productID] = g

	return g, nil
}

func (s *GalleryServiceImpl) GetGallery(ctx context.Context, productID int64) (data []domain.ProductImage, err error) {
	g, err := s.load(ctx, productID)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return copyImages(g.staged), nil
}

// MoveUp swaps the image at index with its predecessor. Out of range and
// index 0 are no-ops.
func (s *GalleryServiceImpl) MoveUp(ctx context.Context, productID int64, index int) (data []domain.ProductImage, err error) {
	return s.swap(ctx, productID, index, index-1)
}

// MoveDown swaps the image at index with its successor. Out of range and the
// last index are no-ops.
func (s *GalleryServiceImpl) MoveDown(ctx context.Context, productID int64, index int) (data []domain.ProductImage, err error) {
	return s.swap(ctx, productID, index, index+1)
}

func (s *GalleryServiceImpl) swap(ctx context.Context, productID int64, i, j int) (data []domain.ProductImage, err error) {
	g, err := s.load(ctx, productID)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(g.staged)
	if i >= 0 && i < n && j >= 0 && j < n {
		g.staged[i], g.staged[j] = g.staged[j], g.staged[i]
	}

	return copyImages(g.staged), nil
}

func (s *GalleryServiceImpl) SaveOrdering(ctx context.Context, productID int64) (data []domain.ProductImage, err error) {
	g, err := s.load(ctx, productID)
	if err != nil {
		return
	}

	return s.commit(ctx, productID, g)
}

// SetMainImage moves imageID to position 0, keeping the relative order of the
// others, then saves.
func (s *GalleryServiceImpl) SetMainImage(ctx context.Context, productID int64, imageID int64) (data []domain.ProductImage, err error) {
	g, err := s.load(ctx, productID)
	if err != nil {
		return
	}

	s.mu.Lock()
	idx := -1
	for i, img := range g.staged {
		if img.ID == imageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil, errs.ErrNotFound
	}

	target := g.staged[idx]
	copy(g.staged[1:idx+1], g.staged[:idx])
	g.staged[0] = target
	s.mu.Unlock()

	return s.commit(ctx, productID, g)
}

// commit re-derives every order from its position and writes the whole list.
func (s *GalleryServiceImpl) commit(ctx context.Context, productID int64, g *gallery) (data []domain.ProductImage, err error) {
	s.mu.Lock()
	attempt := copyImages(g.staged)
	s.mu.Unlock()

	req := dto.ImageReorderRequest{Orders: make([]dto.ImageOrder, 0, len(attempt))}
	for i := range attempt {
		attempt[i].Order = i
		req.Orders = append(req.Orders, dto.ImageOrder{ID: attempt[i].ID, Order: i})
	}

	if err = s.repo.ReorderProductImages(ctx, productID, req); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GalleryService.commit").Int64("product_id", productID).Msg("")
		metrics.ImageOrderingSavesTotal.WithLabelValues(metrics.ResultFailure).Inc()

		s.mu.Lock()
		g.staged = copyImages(g.confirmed)
		s.mu.Unlock()

		return nil, err
	}

	metrics.ImageOrderingSavesTotal.WithLabelValues(metrics.ResultSuccess).Inc()

	confirmed := attempt
	product, fetchErr := s.repo.GetProductByID(ctx, productID)
	if fetchErr != nil {
		// The write succeeded, so the attempted ordering is what the remote holds.
		log.Ctx(ctx).Error().Err(fetchErr).Str("component", "GalleryService.commit").Msg("refetch after reorder")
	} else {
		confirmed = product.Images
	}

	s.mu.Lock()
	g.confirmed = copyImages(confirmed)
	g.staged = copyImages(confirmed)
	s.mu.Unlock()

	s.confirm(productID, confirmed)

	publish(ctx, s.publisher, strconv.FormatInt(productID, 10), dto.KafkaMessage{
		EventType: EventProductImagesReordered,
		Data: dto.ProductImagesReordered{
			ProductID: productID,
			Orders:    req.Orders,
		},
	})

	return copyImages(confirmed), nil
}

// ReplaceImage uploads a new binary for one image without touching ordering.
// Only image paths are refreshed, so a staged reorder survives.
func (s *GalleryServiceImpl) ReplaceImage(ctx context.Context, productID int64, imageID int64, image dto.ImageFile) (data []domain.ProductImage, err error) {
	g, err := s.load(ctx, productID)
	if err != nil {
		return
	}

	if err = s.repo.ReplaceProductImage(ctx, imageID, image); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GalleryService.ReplaceImage").Int64("image_id", imageID).Msg("")
		return
	}

	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GalleryService.ReplaceImage").Msg("refetch after replace")
		return
	}

	s.confirm(productID, product.Images)

	paths := make(map[int64]string, len(product.Images))
	for _, img := range product.Images {
		paths[img.ID] = img.Path
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, list := range [][]domain.ProductImage{g.confirmed, g.staged} {
		for i := range list {
			if path, ok := paths[list[i].ID]; ok {
				list[i].Path = path
			}
		}
	}

	return copyImages(g.staged), nil
}

func (s *GalleryServiceImpl) OnImagesConfirmed(fn func(productID int64, images []domain.ProductImage)) {
	s.mu.Lock()
	s.onConfirmed = fn
	s.mu.Unlock()
}

func (s *GalleryServiceImpl) confirm(productID int64, images []domain.ProductImage) {
	s.mu.Lock()
	fn := s.onConfirmed
	s.mu.Unlock()

	if fn != nil {
		fn(productID, copyImages(images))
	}
}

// Invalidate forgets any staged state for productID.
func (s *GalleryServiceImpl) Invalidate(productID int64) {
	s.mu.Lock()
	delete(s.galleries, productID)
	s.mu.Unlock()
}
