package controller

import (
	"github.com/alimikegami/perfume-store/internal/dto"
	"github.com/alimikegami/perfume-store/internal/middleware"
	"github.com/alimikegami/perfume-store/internal/service"
	"github.com/alimikegami/perfume-store/pkg/errs"
	"github.com/alimikegami/perfume-store/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type CheckoutController struct {
	service service.CheckoutService
}

func CreateCheckoutController(g *echo.Group, service service.CheckoutService) {
	c := CheckoutController{
		service: service,
	}

	g.POST("/checkout", c.Checkout, middleware.CartSession)
}

func (c *CheckoutController) Checkout(e echo.Context) error {
	payload := dto.CheckoutRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "Checkout").Msg("")
		return writeError(e, errs.ErrClient)
	}

	order, err := c.service.Checkout(e.Request().Context(), middleware.GetCartSession(e), payload)
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "order placed", order)
}
