package controller

import (
	"github.com/alimikegami/perfume-store/internal/dto"
	"github.com/alimikegami/perfume-store/internal/service"
	"github.com/alimikegami/perfume-store/pkg/errs"
	"github.com/alimikegami/perfume-store/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type CatalogController struct {
	service service.CatalogService
}

// CreateCatalogController registers the public, read-only catalog routes.
func CreateCatalogController(g *echo.Group, service service.CatalogService) {
	c := CatalogController{
		service: service,
	}

	g.GET("/products", c.GetProducts)
	g.GET("/products/hero", c.GetHeroProducts)
	g.GET("/products/flagship", c.GetFlagshipProducts)
	g.GET("/products/:id", c.GetProduct)
	g.GET("/categories", c.GetCategories)
}

func (c *CatalogController) GetProducts(e echo.Context) error {
	filter := dto.ProductFilter{}
	if err := e.Bind(&filter); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetProducts").Msg("")
		return writeError(e, errs.ErrClient)
	}

	products, err := c.service.GetProducts(e.Request().Context(), filter)
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved products", products)
}

func (c *CatalogController) GetHeroProducts(e echo.Context) error {
	products, err := c.service.GetHeroProducts(e.Request().Context())
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "", products)
}

func (c *CatalogController) GetFlagshipProducts(e echo.Context) error {
	products, err := c.service.GetFlagshipProducts(e.Request().Context())
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "", products)
}

func (c *CatalogController) GetProduct(e echo.Context) error {
	id, err := paramID(e, "id")
	if err != nil {
		return writeError(e, err)
	}

	product, err := c.service.GetProduct(e.Request().Context(), id)
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "", product)
}

func (c *CatalogController) GetCategories(e echo.Context) error {
	categories, err := c.service.GetCategories(e.Request().Context())
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved categories", categories)
}
