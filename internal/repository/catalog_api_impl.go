package repository

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alimikegami/perfume-store/internal/domain"
	"github.com/alimikegami/perfume-store/internal/dto"
	"github.com/alimikegami/perfume-store/pkg/httpclient"
	"github.com/rs/zerolog/log"
)

type CatalogAPIRepositoryImpl struct {
	client *httpclient.Client
}

func CreateCatalogAPIRepository(client *httpclient.Client) CatalogRepository {
	return &CatalogAPIRepositoryImpl{client: client}
}

func (r *CatalogAPIRepositoryImpl) GetProducts(ctx context.Context) (data []domain.Product, err error) {
	var payload []dto.ProductPayload
	err = r.client.SendJSON(ctx, http.MethodGet, "/products", nil, &payload)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return nil, err
	}

	data = make([]domain.Product, 0, len(payload))
	for _, p := range payload {
		data = append(data, p.ToDomain())
	}

	return data, nil
}

func (r *CatalogAPIRepositoryImpl) GetProductByID(ctx context.Context, id int64) (data domain.Product, err error) {
	var payload dto.ProductPayload
	err = r.client.SendJSON(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &payload)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")
		return
	}

	return payload.ToDomain(), nil
}

func (r *CatalogAPIRepositoryImpl) AddProduct(ctx context.Context, fields map[string]string, images []dto.ImageFile) (data domain.Product, err error) {
	return r.sendProductForm(ctx, "AddProduct", "/products", "", fields, images)
}

func (r *CatalogAPIRepositoryImpl) UpdateProduct(ctx context.Context, id int64, fields map[string]string, images []dto.ImageFile) (data domain.Product, err error) {
	return r.sendProductForm(ctx, "UpdateProduct", fmt.Sprintf("/products/%d", id), http.MethodPut, fields, images)
}

func (r *CatalogAPIRepositoryImpl) sendProductForm(ctx context.Context, component, path, overrideMethod string, fields map[string]string, images []dto.ImageFile) (data domain.Product, err error) {
	files := make([]httpclient.FileUpload, 0, len(images))
	for _, img := range images {
		files = append(files, httpclient.FileUpload{
			FieldName: "images[]",
			FileName:  img.FileName,
			Content:   img.Content,
		})
	}

	req, err := httpclient.MultipartRequest(path, overrideMethod, fields, files)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	body, err := r.client.SendRequest(ctx, req)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	var payload dto.ProductPayload
	if err = httpclient.DecodeData(body, &payload); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	return payload.ToDomain(), nil
}

func (r *CatalogAPIRepositoryImpl) DeleteProduct(ctx context.Context, id int64) (err error) {
	err = r.client.SendJSON(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
	}

	return
}

func (r *CatalogAPIRepositoryImpl) ReorderProductImages(ctx context.Context, productID int64, req dto.ImageReorderRequest) (err error) {
	err = r.client.SendJSON(ctx, http.MethodPost, fmt.Sprintf("/products/%d/images/reorder", productID), req, nil)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ReorderProductImages").Msg("")
	}

	return
}

func (r *CatalogAPIRepositoryImpl) ReplaceProductImage(ctx context.Context, imageID int64, image dto.ImageFile) (err error) {
	req, err := httpclient.MultipartRequest(fmt.Sprintf("/product-images/%d", imageID), "", nil, []httpclient.FileUpload{
		{FieldName: "image", FileName: image.FileName, Content: image.Content},
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ReplaceProductImage").Msg("")
		return
	}

	_, err = r.client.SendRequest(ctx, req)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ReplaceProductImage").Msg("")
	}

	return
}

func (r *CatalogAPIRepositoryImpl) GetCategories(ctx context.Context) (data []domain.Category, err error) {
	var payload []dto.CategoryPayload
	err = r.client.SendJSON(ctx, http.MethodGet, "/categories", nil, &payload)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetCategories").Msg("")
		return nil, err
	}

	data = make([]domain.Category, 0, len(payload))
	for _, c := range payload {
		data = append(data, c.ToDomain())
	}

	return data, nil
}

func (r *CatalogAPIRepositoryImpl) GetCategoryByID(ctx context.Context, id int64) (data domain.Category, err error) {
	var payload dto.CategoryPayload
	err = r.client.SendJSON(ctx, http.MethodGet, fmt.Sprintf("/categories/%d", id), nil, &payload)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetCategoryByID").Msg("")
		return
	}

	return payload.ToDomain(), nil
}

func (r *CatalogAPIRepositoryImpl) AddCategory(ctx context.Context, data domain.Category) (res domain.Category, err error) {
	var payload dto.CategoryPayload
	err = r.client.SendJSON(ctx, http.MethodPost, "/categories", data, &payload)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddCategory").Msg("")
		return
	}

	return payload.ToDomain(), nil
}

func (r *CatalogAPIRepositoryImpl) UpdateCategory(ctx context.Context, data domain.Category) (res domain.Category, err error) {
	var payload dto.CategoryPayload
	err = r.client.SendJSON(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", data.ID), data, &payload)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateCategory").Msg("")
		return
	}

	return payload.ToDomain(), nil
}

func (r *CatalogAPIRepositoryImpl) DeleteCategory(ctx context.Context, id int64) (err error) {
	err = r.client.SendJSON(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteCategory").Msg("")
	}

	return
}

func (r *CatalogAPIRepositoryImpl) GetOrders(ctx context.Context) (data []domain.Order, err error) {
	var payload []dto.OrderPayload
	err = r.client.SendJSON(ctx, http.MethodGet, "/orders", nil, &payload)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrders").Msg("")
		return nil, err
	}

	data = make([]domain.Order, 0, len(payload))
	for _, o := range payload {
		data = append(data, o.ToDomain())
	}

	return data, nil
}

func (r *CatalogAPIRepositoryImpl) GetOrderByID(ctx context.Context, id int64) (data domain.Order, err error) {
	var payload dto.OrderPayload
	err = r.client.SendJSON(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &payload)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrderByID").Msg("")
		return
	}

	return payload.ToDomain(), nil
}

func (r *CatalogAPIRepositoryImpl) AddOrder(ctx context.Context, req dto.RemoteOrderRequest) (data domain.Order, err error) {
	var payload dto.OrderPayload
	err = r.client.SendJSON(ctx, http.MethodPost, "/orders", req, &payload)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddOrder").Msg("")
		return
	}

	return payload.ToDomain(), nil
}

func (r *CatalogAPIRepositoryImpl) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (err error) {
	err = r.client.SendJSON(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d/status", id), dto.OrderStatusRequest{Status: string(status)}, nil)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateOrderStatus").Msg("")
	}

	return
}

func (r *CatalogAPIRepositoryImpl) DeleteOrder(ctx context.Context, id int64) (err error) {
	err = r.client.SendJSON(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d", id), nil, nil)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteOrder").Msg("")
	}

	return
}
