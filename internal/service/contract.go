package service

import (
	"context"

	"github.com/alimikegami/perfume-store/internal/domain"
	"github.com/alimikegami/perfume-store/internal/dto"
)

type CartService interface {
	GetCart(ctx context.Context, sessionID string) (resp dto.CartResponse, err error)
	AddItem(ctx context.Context, sessionID string, product domain.Product, quantity int64) (resp dto.CartResponse, err error)
	RemoveItem(ctx context.Context, sessionID string, productID int64) (resp dto.CartResponse, err error)
	UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int64) (resp dto.CartResponse, err error)
	ClearCart(ctx context.Context, sessionID string) (err error)
}

type CheckoutService interface {
	Checkout(ctx context.Context, sessionID string, req dto.CheckoutRequest) (order domain.Order, err error)
}

type CatalogService interface {
	RefreshCache(ctx context.Context) (err error)
	GetProducts(ctx context.Context, filter dto.ProductFilter) (data []domain.Product, err error)
	GetProduct(ctx context.Context, id int64) (data domain.Product, err error)
	GetHeroProducts(ctx context.Context) (data []domain.Product, err error)
	GetFlagshipProducts(ctx context.Context) (data []domain.Product, err error)
	AddProduct(ctx context.Context, req dto.ProductRequest, images []dto.ImageFile) (data domain.Product, err error)
	UpdateProduct(ctx context.Context, req dto.ProductRequest, images []dto.ImageFile) (data domain.Product, err error)
	DeleteProduct(ctx context.Context, id int64) (err error)

	GetCategories(ctx context.Context) (data []domain.Category, err error)
	AddCategory(ctx context.Context, req dto.CategoryRequest) (data domain.Category, err error)
	UpdateCategory(ctx context.Context, req dto.CategoryRequest) (data domain.Category, err error)
	DeleteCategory(ctx context.Context, id int64) (err error)
}

type OrderService interface {
	Reload(ctx context.Context) (data []domain.Order, err error)
	ListOrders(ctx context.Context, filter dto.OrderFilter) (data []domain.Order, err error)
	GetOrder(ctx context.Context, id int64) (data domain.Order, err error)
	ChangeOrderStatus(ctx context.Context, id int64, status string) (data domain.Order, err error)
	Board(ctx context.Context) (data []dto.BoardColumn, err error)
	MoveCard(ctx context.Context, req dto.MoveCardRequest) (data []dto.BoardColumn, err error)
	DeleteOrder(ctx context.Context, id int64) (err error)
}

type GalleryService interface {
	GetGallery(ctx context.Context, productID int64) (data []domain.ProductImage, err error)
	MoveUp(ctx context.Context, productID int64, index int) (data []domain.ProductImage, err error)
	MoveDown(ctx context.Context, productID int64, index int) (data []domain.ProductImage, err error)
	SaveOrdering(ctx context.Context, productID int64) (data []domain.ProductImage, err error)
	SetMainImage(ctx context.Context, productID int64, imageID int64) (data []domain.ProductImage, err error)
	ReplaceImage(ctx context.Context, productID int64, imageID int64, image dto.ImageFile) (data []domain.ProductImage, err error)
	Invalidate(productID int64)
	// OnImagesConfirmed registers fn to receive the image list the remote
	// system holds after every successful reorder or replace.
	OnImagesConfirmed(fn func(productID int64, images []domain.ProductImage))
}

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (resp dto.LoginResponse, err error)
	Logout(ctx context.Context) (err error)
	CurrentUser(ctx context.Context) (user domain.AdminUser, err error)
	RemoteToken(ctx context.Context) (token string, err error)
	ClearCredentials(ctx context.Context)
}

// EventPublisher emits domain events; failures never fail the calling operation.
type EventPublisher interface {
	Publish(ctx context.Context, key string, msg dto.KafkaMessage) error
}
