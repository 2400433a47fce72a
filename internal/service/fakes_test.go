package service

import (
	"context"
	"sync"

	"github.com/alimikegami/perfume-store/internal/domain"
	"github.com/alimikegami/perfume-store/internal/dto"
	"github.com/alimikegami/perfume-store/pkg/errs"
)

// fakeCatalogRepository keeps products, categories and orders in memory.
// Setting one of the *Err fields makes the matching call fail.
type fakeCatalogRepository struct {
	mu sync.Mutex

	products   map[int64]domain.Product
	categories map[int64]domain.Category
	orders     []domain.Order

	nextID int64
	calls  map[string]int

	lastFields  map[string]string
	lastReorder dto.ImageReorderRequest
	lastOrder   dto.RemoteOrderRequest

	getProductErr    error
	updateProductErr error
	reorderErr       error
	replaceErr       error
	addOrderErr      error
	updateStatusErr  error
	getOrdersErr     error
	replacedPath     string

	// duringStatusUpdate runs inside UpdateOrderStatus before the write lands.
	duringStatusUpdate func()
}

func newFakeCatalogRepository() *fakeCatalogRepository {
	return &fakeCatalogRepository{
		products:   make(map[int64]domain.Product),
		categories: make(map[int64]domain.Category),
		nextID:     100,
		calls:      make(map[string]int),
	}
}

func (f *fakeCatalogRepository) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeCatalogRepository) record(name string) {
	f.calls[name]++
}

func (f *fakeCatalogRepository) GetProducts(ctx context.Context) (data []domain.Product, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetProducts")

	for _, p := range f.products {
		data = append(data, p)
	}
	return data, nil
}

func (f *fakeCatalogRepository) GetProductByID(ctx context.Context, id int64) (data domain.Product, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetProductByID")

	if f.getProductErr != nil {
		return data, f.getProductErr
	}

	p, ok := f.products[id]
	if !ok {
		return data, errs.NewRemoteError(404, "Product not found")
	}

	p.Images = append([]domain.ProductImage(nil), p.Images...)
	return p, nil
}

func (f *fakeCatalogRepository) AddProduct(ctx context.Context, fields map[string]string, images []dto.ImageFile) (data domain.Product, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("AddProduct")

	f.lastFields = fields
	f.nextID++
	data = domain.Product{ID: f.nextID, Name: fields["name"]}
	f.products[data.ID] = data
	return data, nil
}

func (f *fakeCatalogRepository) UpdateProduct(ctx context.Context, id int64, fields map[string]string, images []dto.ImageFile) (data domain.Product, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateProduct")

	if f.updateProductErr != nil {
		return data, f.updateProductErr
	}

	f.lastFields = fields
	data = f.products[id]
	data.Name = fields["name"]
	if fields["delete_images"] == "1" {
		data.Images = nil
	}
	f.products[id] = data
	return data, nil
}

func (f *fakeCatalogRepository) DeleteProduct(ctx context.Context, id int64) (err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteProduct")

	delete(f.products, id)
	return nil
}

func (f *fakeCatalogRepository) ReorderProductImages(ctx context.Context, productID int64, req dto.ImageReorderRequest) (err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ReorderProductImages")

	f.lastReorder = req
	if f.reorderErr != nil {
		return f.reorderErr
	}

	p := f.products[productID]
	byID := make(map[int64]domain.ProductImage)
	for _, img := range p.Images {
		byID[img.ID] = img
	}

	images := make([]domain.ProductImage, 0, len(req.Orders))
	for _, o := range req.Orders {
		img := byID[o.ID]
		img.Order = o.Order
		images = append(images, img)
	}
	p.Images = images
	f.products[productID] = p
	return nil
}

func (f *fakeCatalogRepository) ReplaceProductImage(ctx context.Context, imageID int64, image dto.ImageFile) (err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ReplaceProductImage")

	if f.replaceErr != nil {
		return f.replaceErr
	}

	for id, p := range f.products {
		for i := range p.Images {
			if p.Images[i].ID == imageID {
				p.Images[i].Path = "products/" + image.FileName
				f.replacedPath = p.Images[i].Path
			}
		}
		f.products[id] = p
	}
	return nil
}

func (f *fakeCatalogRepository) GetCategories(ctx context.Context) (data []domain.Category, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetCategories")

	for _, c := range f.categories {
		data = append(data, c)
	}
	return data, nil
}

func (f *fakeCatalogRepository) GetCategoryByID(ctx context.Context, id int64) (data domain.Category, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetCategoryByID")

	c, ok := f.categories[id]
	if !ok {
		return data, errs.NewRemoteError(404, "")
	}
	return c, nil
}

func (f *fakeCatalogRepository) AddCategory(ctx context.Context, data domain.Category) (res domain.Category, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("AddCategory")

	f.nextID++
	data.ID = f.nextID
	f.categories[data.ID] = data
	return data, nil
}

func (f *fakeCatalogRepository) UpdateCategory(ctx context.Context, data domain.Category) (res domain.Category, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateCategory")

	f.categories[data.ID] = data
	return data, nil
}

func (f *fakeCatalogRepository) DeleteCategory(ctx context.Context, id int64) (err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteCategory")

	delete(f.categories, id)
	return nil
}

func (f *fakeCatalogRepository) GetOrders(ctx context.Context) (data []domain.Order, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetOrders")

	if f.getOrdersErr != nil {
		return nil, f.getOrdersErr
	}
	return append([]domain.Order(nil), f.orders...), nil
}

func (f *fakeCatalogRepository) GetOrderByID(ctx context.Context, id int64) (data domain.Order, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetOrderByID")

	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return data, errs.NewRemoteError(404, "")
}

func (f *fakeCatalogRepository) AddOrder(ctx context.Context, req dto.RemoteOrderRequest) (data domain.Order, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("AddOrder")

	f.lastOrder = req
	if f.addOrderErr != nil {
		return data, f.addOrderErr
	}

	f.nextID++
	data = domain.Order{
		ID:           f.nextID,
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Status:       domain.OrderStatusPending,
		Total:        req.Total,
	}
	f.orders = append(f.orders, data)
	return data, nil
}

func (f *fakeCatalogRepository) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (err error) {
	if f.duringStatusUpdate != nil {
		f.duringStatusUpdate()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateOrderStatus")

	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}

	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
			return nil
		}
	}
	return errs.NewRemoteError(404, "")
}

func (f *fakeCatalogRepository) DeleteOrder(ctx context.Context, id int64) (err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteOrder")

	kept := f.orders[:0]
	for _, o := range f.orders {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	f.orders = kept
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []dto.KafkaMessage
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msg)
	return nil
}

func (p *fakePublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		out = append(out, m.EventType)
	}
	return out
}
