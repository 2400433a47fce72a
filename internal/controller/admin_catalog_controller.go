package controller

import (
	"context"

	"github.com/alimikegami/perfume-store/internal/domain"
	"github.com/alimikegami/perfume-store/internal/dto"
	"github.com/alimikegami/perfume-store/internal/service"
	"github.com/alimikegami/perfume-store/pkg/errs"
	"github.com/alimikegami/perfume-store/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type AdminCatalogController struct {
	catalogService service.CatalogService
	galleryService service.GalleryService
}

// CreateAdminCatalogController expects g to already require an admin token.
func CreateAdminCatalogController(g *echo.Group, catalogService service.CatalogService, galleryService service.GalleryService) {
	c := AdminCatalogController{
		catalogService: catalogService,
		galleryService: galleryService,
	}

	g.POST("/products", c.AddProduct)
	g.PUT("/products/:id", c.UpdateProduct)
	g.DELETE("/products/:id", c.DeleteProduct)

	g.GET("/products/:id/images", c.GetGallery)
	g.POST("/products/:id/images/move-up", c.MoveImageUp)
	g.POST("/products/:id/images/move-down", c.MoveImageDown)
	g.POST("/products/:id/images/save", c.SaveImageOrdering)
	g.POST("/products/:id/images/main", c.SetMainImage)
	g.POST("/products/:id/images/:image_id", c.ReplaceImage)

	g.POST("/categories", c.AddCategory)
	g.PUT("/categories/:id", c.UpdateCategory)
	g.DELETE("/categories/:id", c.DeleteCategory)
}

func (c *AdminCatalogController) AddProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddProduct").Msg("")
		return writeError(e, errs.ErrClient)
	}

	images, err := formFiles(e, "images[]", "images")
	if err != nil {
		return writeError(e, err)
	}

	product, err := c.catalogService.AddProduct(e.Request().Context(), payload, images)
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "product created", product)
}

func (c *AdminCatalogController) UpdateProduct(e echo.Context) error {
	id, err := paramID(e, "id")
	if err != nil {
		return writeError(e, err)
	}

	payload := dto.ProductRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UpdateProduct").Msg("")
		return writeError(e, errs.ErrClient)
	}
	payload.ID = id

	images, err := formFiles(e, "images[]", "images")
	if err != nil {
		return writeError(e, err)
	}

	product, err := c.catalogService.UpdateProduct(e.Request().Context(), payload, images)
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "product updated", product)
}

func (c *AdminCatalogController) DeleteProduct(e echo.Context) error {
	id, err := paramID(e, "id")
	if err != nil {
		return writeError(e, err)
	}

	if err = c.catalogService.DeleteProduct(e.Request().Context(), id); err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "product deleted", nil)
}

func (c *AdminCatalogController) GetGallery(e echo.Context) error {
	id, err := paramID(e, "id")
	if err != nil {
		return writeError(e, err)
	}

	images, err := c.galleryService.GetGallery(e.Request().Context(), id)
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "", images)
}

func (c *AdminCatalogController) MoveImageUp(e echo.Context) error {
	return c.moveImage(e, c.galleryService.MoveUp)
}

func (c *AdminCatalogController) MoveImageDown(e echo.Context) error {
	return c.moveImage(e, c.galleryService.MoveDown)
}

func (c *AdminCatalogController) moveImage(e echo.Context, move func(ctx context.Context, productID int64, index int) ([]domain.ProductImage, error)) error {
	id, err := paramID(e, "id")
	if err != nil {
		return writeError(e, err)
	}

	payload := dto.MoveImageRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "moveImage").Msg("")
		return writeError(e, errs.ErrClient)
	}

	images, err := move(e.Request().Context(), id, payload.Index)
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "", images)
}

func (c *AdminCatalogController) SaveImageOrdering(e echo.Context) error {
	id, err := paramID(e, "id")
	if err != nil {
		return writeError(e, err)
	}

	images, err := c.galleryService.SaveOrdering(e.Request().Context(), id)
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "image ordering saved", images)
}

func (c *AdminCatalogController) SetMainImage(e echo.Context) error {
	id, err := paramID(e, "id")
	if err != nil {
		return writeError(e, err)
	}

	payload := dto.SetMainImageRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "SetMainImage").Msg("")
		return writeError(e, errs.ErrClient)
	}

	images, err := c.galleryService.SetMainImage(e.Request().Context(), id, payload.ImageID)
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "main image updated", images)
}

func (c *AdminCatalogController) ReplaceImage(e echo.Context) error {
	id, err := paramID(e, "id")
	if err != nil {
		return writeError(e, err)
	}

	imageID, err := paramID(e, "image_id")
	if err != nil {
		return writeError(e, err)
	}

	files, err := formFiles(e, "image")
	if err != nil {
		return writeError(e, err)
	}
	if len(files) != 1 {
		return writeError(e, errs.ErrClient)
	}

	images, err := c.galleryService.ReplaceImage(e.Request().Context(), id, imageID, files[0])
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "image replaced", images)
}

func (c *AdminCatalogController) AddCategory(e echo.Context) error {
	payload := dto.CategoryRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddCategory").Msg("")
		return writeError(e, errs.ErrClient)
	}

	category, err := c.catalogService.AddCategory(e.Request().Context(), payload)
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "category created", category)
}

func (c *AdminCatalogController) UpdateCategory(e echo.Context) error {
	id, err := paramID(e, "id")
	if err != nil {
		return writeError(e, err)
	}

	payload := dto.CategoryRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UpdateCategory").Msg("")
		return writeError(e, errs.ErrClient)
	}
	payload.ID = id

	category, err := c.catalogService.UpdateCategory(e.Request().Context(), payload)
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "category updated", category)
}

func (c *AdminCatalogController) DeleteCategory(e echo.Context) error {
	id, err := paramID(e, "id")
	if err != nil {
		return writeError(e, err)
	}

	if err = c.catalogService.DeleteCategory(e.Request().Context(), id); err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "category deleted", nil)
}
