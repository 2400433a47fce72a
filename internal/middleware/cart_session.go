package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
)

const (
	HeaderCartSession = "X-Cart-Session"
	CartSessionKey    = "cart_session"
)

// CartSession resolves the cart session from HeaderCartSession, minting a
// new one when absent. The id is echoed back in the same header.
func CartSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session := c.Request().Header.Get(HeaderCartSession)
		if session == "" {
			session = ulid.Make().String()
		}

		c.Set(CartSessionKey, session)
		c.Response().Header().Set(HeaderCartSession, session)

		return next(c)
	}
}

func GetCartSession(c echo.Context) string {
	session, _ := c.Get(CartSessionKey).(string)
	return session
}
