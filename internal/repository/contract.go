package repository

import (
	"context"

	"github.com/alimikegami/perfume-store/internal/domain"
	"github.com/alimikegami/perfume-store/internal/dto"
)

// Storage is the persistence port behind the cart and the admin session.
// Get returns nil, nil for an absent key.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context, key string) error
}

// CatalogRepository is the remote catalog/order REST API.
type CatalogRepository interface {
	GetProducts(ctx context.Context) (data []domain.Product, err error)
	GetProductByID(ctx context.Context, id int64) (data domain.Product, err error)
	AddProduct(ctx context.Context, fields map[string]string, images []dto.ImageFile) (data domain.Product, err error)
	UpdateProduct(ctx context.Context, id int64, fields map[string]string, images []dto.ImageFile) (data domain.Product, err error)
	DeleteProduct(ctx context.Context, id int64) (err error)
	ReorderProductImages(ctx context.Context, productID int64, req dto.ImageReorderRequest) (err error)
	ReplaceProductImage(ctx context.Context, imageID int64, image dto.ImageFile) (err error)

	GetCategories(ctx context.Context) (data []domain.Category, err error)
	GetCategoryByID(ctx context.Context, id int64) (data domain.Category, err error)
	AddCategory(ctx context.Context, data domain.Category) (res domain.Category, err error)
	UpdateCategory(ctx context.Context, data domain.Category) (res domain.Category, err error)
	DeleteCategory(ctx context.Context, id int64) (err error)

	GetOrders(ctx context.Context) (data []domain.Order, err error)
	GetOrderByID(ctx context.Context, id int64) (data domain.Order, err error)
	AddOrder(ctx context.Context, req dto.RemoteOrderRequest) (data domain.Order, err error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (err error)
	DeleteOrder(ctx context.Context, id int64) (err error)
}
