package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/ledgersync/internal/pkg/jwt"
	"github.com/piresc/ledgersync/internal/pkg/models"
	nrpkg "github.com/piresc/ledgersync/internal/pkg/newrelic"
	"github.com/piresc/ledgersync/internal/pkg/requestcontext"
	"github.com/piresc/ledgersync/internal/utils"
)

// JWTAuthMiddleware validates the bearer token and stores user_id and user_role on the context
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			claims, err := jwtpkg.ValidateToken(parts[1], config.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			rawUserID, ok := (*claims)["user_id"]
			if !ok {
				return utils.UnauthorizedResponse(c, "Invalid token: missing user_id claim")
			}
			userID := fmt.Sprintf("%v", rawUserID)
			if userID == "" {
				return utils.UnauthorizedResponse(c, "Invalid token: empty user_id claim")
			}

			c.Set("user_id", userID)
			if role, ok := (*claims)["role"]; ok {
				c.Set("user_role", fmt.Sprintf("%v", role))
			}
			nrpkg.AddTransactionAttribute(nrpkg.FromEchoContext(c), "user.id", userID)
			c.SetRequest(c.Request().WithContext(requestcontext.WithUserID(c.Request().Context(), userID)))

			return next(c)
		}
	}
}
