package controller

import (
	"github.com/alimikegami/perfume-store/internal/dto"
	"github.com/alimikegami/perfume-store/internal/service"
	"github.com/alimikegami/perfume-store/pkg/errs"
	"github.com/alimikegami/perfume-store/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	service service.AuthService
}

func CreateAuthController(g *echo.Group, service service.AuthService, isAdmin echo.MiddlewareFunc) {
	c := AuthController{
		service: service,
	}

	g.POST("/admin/login", c.Login)
	g.POST("/admin/logout", c.Logout, isAdmin)
	g.GET("/admin/me", c.Me, isAdmin)
}

func (c *AuthController) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "Login").Msg("")
		return writeError(e, errs.ErrClient)
	}

	resp, err := c.service.Login(e.Request().Context(), payload)
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "logged in", resp)
}

func (c *AuthController) Logout(e echo.Context) error {
	if err := c.service.Logout(e.Request().Context()); err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "logged out", nil)
}

func (c *AuthController) Me(e echo.Context) error {
	user, err := c.service.CurrentUser(e.Request().Context())
	if err != nil {
		return writeError(e, err)
	}

	return response.WriteSuccessResponse(e, "", user)
}
