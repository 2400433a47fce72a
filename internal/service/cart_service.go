package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alimikegami/perfume-store/internal/domain"
	"github.com/alimikegami/perfume-store/internal/dto"
	"github.com/alimikegami/perfume-store/internal/repository"
	"github.com/rs/zerolog/log"
)

const cartKeyPrefix = "cart:"

// CartServiceImpl does a full read-modify-write against storage on every
// mutation. Concurrent writers for the same session race; the last write wins.
type CartServiceImpl struct {
	storage repository.Storage
}

func CreateCartService(storage repository.Storage) CartService {
	return &CartServiceImpl{storage: storage}
}

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

func (s *CartServiceImpl) load(ctx context.Context, sessionID string) (cart domain.Cart, err error) {
	raw, err := s.storage.Get(ctx, cartKey(sessionID))
	if err != nil {
		return
	}

	if len(raw) == 0 {
		return cart, nil
	}

	if err = json.Unmarshal(raw, &cart.Items); err != nil {
		// A corrupt entry is treated as an empty cart rather than locking the user out.
		log.Ctx(ctx).Error().Err(err).Str("component", "CartService.load").Msg("discarding unreadable cart")
		return domain.Cart{}, nil
	}

	return cart, nil
}

func (s *CartServiceImpl) save(ctx context.Context, sessionID string, cart domain.Cart) error {
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}

	raw, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	return s.storage.Set(ctx, cartKey(sessionID), raw)
}

func (s *CartServiceImpl) GetCart(ctx context.Context, sessionID string) (resp dto.CartResponse, err error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return
	}

	return dto.NewCartResponse(cart), nil
}

// AddItem increments an existing entry for product or appends a new one.
// Stock is not checked here.
func (s *CartServiceImpl) AddItem(ctx context.Context, sessionID string, product domain.Product, quantity int64) (resp dto.CartResponse, err error) {
	if quantity < 1 {
		quantity = 1
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return
	}

	if idx := cart.IndexOf(product.ID); idx >= 0 {
		cart.Items[idx].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, domain.CartItem{Product: product, Quantity: quantity})
	}

	if err = s.save(ctx, sessionID, cart); err != nil {
		return
	}

	return dto.NewCartResponse(cart), nil
}

func (s *CartServiceImpl) RemoveItem(ctx context.Context, sessionID string, productID int64) (resp dto.CartResponse, err error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return
	}

	kept := make([]domain.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if err = s.save(ctx, sessionID, cart); err != nil {
		return
	}

	return dto.NewCartResponse(cart), nil
}

// UpdateQuantity removes the entry when quantity <= 0.
func (s *CartServiceImpl) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int64) (resp dto.CartResponse, err error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, productID)
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return
	}

	idx := cart.IndexOf(productID)
	if idx < 0 {
		return dto.NewCartResponse(cart), nil
	}

	cart.Items[idx].Quantity = quantity
	if err = s.save(ctx, sessionID, cart); err != nil {
		return
	}

	return dto.NewCartResponse(cart), nil
}

func (s *CartServiceImpl) ClearCart(ctx context.Context, sessionID string) (err error) {
	return s.storage.Clear(ctx, cartKey(sessionID))
}
