package controller

import (
	"errors"
	"net/http"

	"github.com/alimikegami/perfume-store/internal/dto"
	"github.com/alimikegami/perfume-store/internal/service"
	"github.com/alimikegami/perfume-store/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type ContactController struct {
	service service.MailService
}

// CreateContactController answers with {success, error} rather than the
// usual envelope, which is what the contact form reads.
func CreateContactController(g *echo.Group, service service.MailService) {
	c := ContactController{
		service: service,
	}

	g.POST("/contact", c.SendContactMessage)
}

func (c *ContactController) SendContactMessage(e echo.Context) error {
	payload := dto.ContactRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "SendContactMessage").Msg("")
		return e.JSON(http.StatusBadRequest, dto.ContactResponse{Success: false, Error: errs.ErrClient.Error()})
	}

	if err := c.service.SendContactMessage(e.Request().Context(), payload); err != nil {
		status := errs.GetErrorStatusCode(err)
		msg := errs.Message(err)
		if errors.Is(err, errs.ErrValidation) {
			msg = validationSummary(err)
		}
		return e.JSON(status, dto.ContactResponse{Success: false, Error: msg})
	}

	return e.JSON(http.StatusOK, dto.ContactResponse{Success: true})
}
