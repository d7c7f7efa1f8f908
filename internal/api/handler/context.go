package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freightline/quoting-system/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware.
// A missing role or a client token without a client_id is rejected with 401.
func ctxClaims(c echo.Context) (role, clientID string, err error) {
	role, _ = c.Get("role").(string)
	if role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	clientID, _ = c.Get("client_id").(string)
	if role == domain.RoleClient && clientID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing client identity")
	}

	return role, clientID, nil
}
