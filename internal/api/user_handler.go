package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/antonvlasov/hookah-mix-helper/internal/interfaces"
)

// UserHandler serves user profile endpoints.
type UserHandler struct {
	userService interfaces.UserServiceInterface
}

func NewUserHandler(userService interfaces.UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe returns the resolved caller profile.
func (h *UserHandler) GetMe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		RespError(c, http.StatusUnauthorized, "user not resolved")
		return
	}
	RespSuccess(c, gin.H{
		"id":          user.ID,
		"telegram_id": user.TelegramID,
		"username":    user.Username,
		"first_name":  user.FirstName,
	})
}

// GetStats returns collection counters for the caller.
func (h *UserHandler) GetStats(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		RespError(c, http.StatusUnauthorized, "user not resolved")
		return
	}
	stats, err := h.userService.Stats(c.Request.Context(), user.ID)
	if err != nil {
		RespAppError(c, err)
		return
	}
	RespSuccess(c, stats)
}
