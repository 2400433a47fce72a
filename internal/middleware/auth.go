package middleware

import (
	"strings"

	"github.com/alimikegami/perfume-store/pkg/errs"
	"github.com/alimikegami/perfume-store/pkg/response"
	"github.com/alimikegami/perfume-store/pkg/utils"
	"github.com/labstack/echo/v4"
)

const (
	AdminNameKey  = "admin_name"
	AdminEmailKey = "admin_email"
)

// IsAdmin rejects requests without a valid HS256 bearer token.
func IsAdmin(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			name, email, err := utils.ParseJWTToken(token, jwtSecret)
			if err != nil {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			c.Set(AdminNameKey, name)
			c.Set(AdminEmailKey, email)

			return next(c)
		}
	}
}
