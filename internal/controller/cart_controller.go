package controller

import (
	"github.com/alimikegami/perfume-store/internal/domain"
	"github.com/alimikegami/perfume-store/internal/dto"
	"github.com/alimikegami/perfume-store/internal/middleware"
	"github.com/alimikegami/perfume-store/internal/service"
	"github.com/alimikegami/perfume-store/pkg/errs"
	"github.com/alimikegami/perfume-store/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type CartController struct {
	cartService    service.CartService
	catalogService service.CatalogService
}

func CreateCartController(g *echo.Group, cartService service.CartService, catalogService service.CatalogService) {
	c := CartController{
		cartService:    cartService,
		catalogService: catalogService,
	}

	cart := g.Group("/cart", middleware.CartSession)
	cart.GET("", c.GetCart)
	cart.DELETE("", c.ClearCart)
	cart.POST("/items", c.AddItem)
	cart.PUT("/items/:product_id", c.UpdateQuantity)
	cart.DELETE("/items/:product_id", c.RemoveItem)
}

func (c *CartController) GetCart(e echo.Context) error {
	resp, err := c.cartService.GetCart(e.Request().Context(), middleware.GetCartSession(e))
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *CartController) AddItem(e echo.Context) error {
	payload := dto.CartItemRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddItem").Msg("")
		return writeError(e, errs.ErrClient)
	}

	product, err := c.catalogService.GetProduct(e.Request().Context(), payload.ProductID)
	if err != nil {
		return writeError(e, err)
	}

	resp, err := c.cartService.AddItem(e.Request().Context(), middleware.GetCartSession(e), product, payload.Quantity)
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "item added to cart", resp)
}

func (c *CartController) UpdateQuantity(e echo.Context) error {
	productID, err := paramID(e, "product_id")
	if err != nil {
		return writeError(e, err)
	}

	payload := dto.CartItemRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UpdateQuantity").Msg("")
		return writeError(e, errs.ErrClient)
	}

	resp, err := c.cartService.UpdateQuantity(e.Request().Context(), middleware.GetCartSession(e), productID, payload.Quantity)
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "cart updated", resp)
}

func (c *CartController) RemoveItem(e echo.Context) error {
	productID, err := paramID(e, "product_id")
	if err != nil {
		return writeError(e, err)
	}

	resp, err := c.cartService.RemoveItem(e.Request().Context(), middleware.GetCartSession(e), productID)
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "item removed from cart", resp)
}

func (c *CartController) ClearCart(e echo.Context) error {
	if err := c.cartService.ClearCart(e.Request().Context(), middleware.GetCartSession(e)); err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "cart cleared", dto.NewCartResponse(domain.Cart{}))
}
