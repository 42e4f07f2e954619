package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/antonvlasov/hookah-mix-helper/internal/database"
	"github.com/antonvlasov/hookah-mix-helper/internal/interfaces"
	"github.com/antonvlasov/hookah-mix-helper/internal/logger"
)

const userContextKey = "current_user"

// TelegramIdentity resolves the caller from the X-Telegram-User-Id header and
// registers the user on first contact. The header is set by an
// upstream-authenticated proxy; this layer trusts it.
func TelegramIdentity(userService interfaces.UserServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-Telegram-User-Id")
		if raw == "" {
			RespError(c, http.StatusUnauthorized, "missing X-Telegram-User-Id header")
			c.Abort()
			return
		}
		telegramID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			RespError(c, http.StatusUnauthorized, "invalid X-Telegram-User-Id header")
			c.Abort()
			return
		}

		user, err := userService.RegisterUser(
			c.Request.Context(),
			telegramID,
			c.GetHeader("X-Telegram-Username"),
			c.GetHeader("X-Telegram-First-Name"),
		)
		if err != nil {
			logger.Errorf("Failed to resolve API user %d: %v", telegramID, err)
			RespError(c, http.StatusInternalServerError, "failed to resolve user")
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// currentUser returns the user stored by TelegramIdentity.
func currentUser(c *gin.Context) *database.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*database.User)
	if !ok {
		return nil
	}
	return user
}
