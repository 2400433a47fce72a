package controller

import (
	"github.com/alimikegami/perfume-store/internal/dto"
	"github.com/alimikegami/perfume-store/internal/service"
	"github.com/alimikegami/perfume-store/pkg/errs"
	"github.com/alimikegami/perfume-store/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type OrderController struct {
	service service.OrderService
}

// CreateOrderController expects g to already require an admin token.
func CreateOrderController(g *echo.Group, service service.OrderService) {
	c := OrderController{
		service: service,
	}

	g.GET("/orders", c.GetOrders)
	g.POST("/orders/reload", c.ReloadOrders)
	g.GET("/orders/board", c.GetBoard)
	g.POST("/orders/board/move", c.MoveCard)
	g.GET("/orders/:id", c.GetOrder)
	g.PATCH("/orders/:id/status", c.ChangeOrderStatus)
	g.DELETE("/orders/:id", c.DeleteOrder)
}

func (c *OrderController) GetOrders(e echo.Context) error {
	filter := dto.OrderFilter{}
	if err := e.Bind(&filter); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetOrders").Msg("")
		return writeError(e, errs.ErrClient)
	}

	orders, err := c.service.ListOrders(e.Request().Context(), filter)
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved orders", orders)
}

func (c *OrderController) ReloadOrders(e echo.Context) error {
	orders, err := c.service.Reload(e.Request().Context())
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "orders reloaded", orders)
}

func (c *OrderController) GetBoard(e echo.Context) error {
	board, err := c.service.Board(e.Request().Context())
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "", board)
}

func (c *OrderController) MoveCard(e echo.Context) error {
	payload := dto.MoveCardRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "MoveCard").Msg("")
		return writeError(e, errs.ErrClient)
	}

	board, err := c.service.MoveCard(e.Request().Context(), payload)
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "", board)
}

func (c *OrderController) GetOrder(e echo.Context) error {
	id, err := paramID(e, "id")
	if err != nil {
		return writeError(e, err)
	}

	order, err := c.service.GetOrder(e.Request().Context(), id)
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "", order)
}

// ChangeOrderStatus reports a failed transition to the caller; by then the
// order list has already been refetched.
func (c *OrderController) ChangeOrderStatus(e echo.Context) error {
	id, err := paramID(e, "id")
	if err != nil {
		return writeError(e, err)
	}

	payload := dto.OrderStatusRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "ChangeOrderStatus").Msg("")
		return writeError(e, errs.ErrClient)
	}

	order, err := c.service.ChangeOrderStatus(e.Request().Context(), id, payload.Status)
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "order status updated", order)
}

func (c *OrderController) DeleteOrder(e echo.Context) error {
	id, err := paramID(e, "id")
	if err != nil {
		return writeError(e, err)
	}

	if err = c.service.DeleteOrder(e.Request().Context(), id); err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "order deleted", nil)
}
