package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/antonvlasov/hookah-mix-helper/internal/database"
	"github.com/antonvlasov/hookah-mix-helper/internal/interfaces"
	"github.com/antonvlasov/hookah-mix-helper/internal/services"
)

// MixHandler serves generation and mix history endpoints.
type MixHandler struct {
	mixService interfaces.MixServiceInterface
}

func NewMixHandler(mixService interfaces.MixServiceInterface) *MixHandler {
	return &MixHandler{mixService: mixService}
}

type generateRequest struct {
	Type         string `json:"type" binding:"required"`
	BaseTobacco  string `json:"base_tobacco"`
	TasteProfile string `json:"taste_profile"`
}

type rateRequest struct {
	Rating int `json:"rating"`
}

type favoriteRequest struct {
	Favorite bool `json:"favorite"`
}

func mixView(mix *database.Mix) gin.H {
	return gin.H{
		"id":           mix.ID,
		"name":         mix.Name,
		"components":   mix.Components,
		"description":  mix.Description,
		"tips":         mix.Tips,
		"rating":       mix.Rating,
		"is_favorite":  mix.IsFavorite,
		"request_type": mix.RequestType,
		"created_at":   mix.CreatedAt,
	}
}

// Generate asks the LLM for a mix from the caller's collection.
func (h *MixHandler) Generate(c *gin.Context) {
	user := currentUser(c)
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	requestType := services.RequestType(req.Type)
	switch requestType {
	case services.RequestByTobacco, services.RequestByProfile, services.RequestSurprise:
	default:
		RespError(c, http.StatusBadRequest, "type must be one of: base, profile, surprise")
		return
	}
	if requestType == services.RequestByTobacco && req.BaseTobacco == "" {
		RespError(c, http.StatusBadRequest, "base_tobacco is required for type base")
		return
	}
	if requestType == services.RequestByProfile && req.TasteProfile == "" {
		RespError(c, http.StatusBadRequest, "taste_profile is required for type profile")
		return
	}

	mix, err := h.mixService.GenerateMix(c.Request.Context(), user.ID, services.MixRequest{
		Type:         requestType,
		BaseTobacco:  req.BaseTobacco,
		TasteProfile: req.TasteProfile,
	})
	if err != nil {
		RespAppError(c, err)
		return
	}
	RespSuccess(c, gin.H{
		"id":          mix.ID,
		"name":        mix.Name,
		"components":  mix.Components,
		"description": mix.Description,
		"tips":        mix.Tips,
	})
}

// List returns recent mixes, newest first.
func (h *MixHandler) List(c *gin.Context) {
	user := currentUser(c)
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			RespError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	mixes, err := h.mixService.ListMixes(c.Request.Context(), user.ID, limit)
	if err != nil {
		RespAppError(c, err)
		return
	}
	views := make([]gin.H, 0, len(mixes))
	for i := range mixes {
		views = append(views, mixView(&mixes[i]))
	}
	RespSuccess(c, views)
}

// Get returns one mix by id.
func (h *MixHandler) Get(c *gin.Context) {
	user := currentUser(c)
	mixID, ok := pathID(c)
	if !ok {
		return
	}
	mix, err := h.mixService.GetMix(c.Request.Context(), user.ID, mixID)
	if err != nil {
		RespAppError(c, err)
		return
	}
	RespSuccess(c, mixView(mix))
}

// Rate sets the -1/0/1 rating; repeated calls overwrite.
func (h *MixHandler) Rate(c *gin.Context) {
	user := currentUser(c)
	mixID, ok := pathID(c)
	if !ok {
		return
	}
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	mix, err := h.mixService.Rate(c.Request.Context(), user.ID, mixID, req.Rating)
	if err != nil {
		RespAppError(c, err)
		return
	}
	RespSuccess(c, mixView(mix))
}

// SetFavorite sets the favorite flag to an explicit value.
func (h *MixHandler) SetFavorite(c *gin.Context) {
	user := currentUser(c)
	mixID, ok := pathID(c)
	if !ok {
		return
	}
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	mix, err := h.mixService.SetFavorite(c.Request.Context(), user.ID, mixID, req.Favorite)
	if err != nil {
		RespAppError(c, err)
		return
	}
	RespSuccess(c, mixView(mix))
}

// ListFavorites returns favorite mixes, newest first.
func (h *MixHandler) ListFavorites(c *gin.Context) {
	user := currentUser(c)
	mixes, err := h.mixService.ListFavorites(c.Request.Context(), user.ID)
	if err != nil {
		RespAppError(c, err)
		return
	}
	views := make([]gin.H, 0, len(mixes))
	for i := range mixes {
		views = append(views, mixView(&mixes[i]))
	}
	RespSuccess(c, views)
}

// ClearFavorites unflags every favorite; the mixes stay in history.
func (h *MixHandler) ClearFavorites(c *gin.Context) {
	user := currentUser(c)
	cleared, err := h.mixService.ClearFavorites(c.Request.Context(), user.ID)
	if err != nil {
		RespAppError(c, err)
		return
	}
	RespSuccess(c, gin.H{"cleared": cleared})
}
