package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/antonvlasov/hookah-mix-helper/internal/database"
	"github.com/antonvlasov/hookah-mix-helper/internal/interfaces"
	"github.com/antonvlasov/hookah-mix-helper/internal/services"
)

// TobaccoHandler serves collection endpoints.
type TobaccoHandler struct {
	tobaccoService interfaces.TobaccoServiceInterface
}

func NewTobaccoHandler(tobaccoService interfaces.TobaccoServiceInterface) *TobaccoHandler {
	return &TobaccoHandler{tobaccoService: tobaccoService}
}

type tobaccoRequest struct {
	Name       string `json:"name" binding:"required"`
	Brand      string `json:"brand"`
	CategoryID *uint  `json:"category_id"`
	Notes      string `json:"notes"`
}

type tobaccoUpdateRequest struct {
	Name       *string `json:"name"`
	Brand      *string `json:"brand"`
	CategoryID *uint   `json:"category_id"`
	Notes      *string `json:"notes"`
}

type bulkAddRequest struct {
	Items []tobaccoRequest `json:"items"`
	Text  string           `json:"text"`
}

func categoryView(category *database.Category) gin.H {
	if category == nil {
		return nil
	}
	return gin.H{
		"id":            category.ID,
		"name":          category.Name,
		"emoji":         category.Emoji,
		"taste_profile": category.TasteProfile,
	}
}

func tobaccoView(tobacco *database.Tobacco) gin.H {
	return gin.H{
		"id":       tobacco.ID,
		"name":     tobacco.Name,
		"brand":    tobacco.Brand,
		"category": categoryView(tobacco.Category),
		"notes":    tobacco.Notes,
	}
}

// ListCategories returns the seeded taste categories.
func (h *TobaccoHandler) ListCategories(c *gin.Context) {
	categories, err := h.tobaccoService.ListCategories(c.Request.Context())
	if err != nil {
		RespAppError(c, err)
		return
	}
	views := make([]gin.H, 0, len(categories))
	for i := range categories {
		views = append(views, categoryView(&categories[i]))
	}
	RespSuccess(c, views)
}

// List returns the caller's collection ordered by name.
func (h *TobaccoHandler) List(c *gin.Context) {
	user := currentUser(c)
	tobaccos, err := h.tobaccoService.ListTobaccos(c.Request.Context(), user.ID)
	if err != nil {
		RespAppError(c, err)
		return
	}
	views := make([]gin.H, 0, len(tobaccos))
	for i := range tobaccos {
		views = append(views, tobaccoView(&tobaccos[i]))
	}
	RespSuccess(c, views)
}

// Get returns one tobacco by id.
func (h *TobaccoHandler) Get(c *gin.Context) {
	user := currentUser(c)
	tobaccoID, ok := pathID(c)
	if !ok {
		return
	}
	tobacco, err := h.tobaccoService.GetTobacco(c.Request.Context(), user.ID, tobaccoID)
	if err != nil {
		RespAppError(c, err)
		return
	}
	RespSuccess(c, tobaccoView(tobacco))
}

// Add creates one tobacco.
func (h *TobaccoHandler) Add(c *gin.Context) {
	user := currentUser(c)
	var req tobaccoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	tobacco, err := h.tobaccoService.AddTobacco(c.Request.Context(), user.ID, services.TobaccoInput{
		Name:       req.Name,
		Brand:      req.Brand,
		CategoryID: req.CategoryID,
		Notes:      req.Notes,
	})
	if err != nil {
		RespAppError(c, err)
		return
	}
	RespSuccess(c, tobaccoView(tobacco))
}

// Update changes tobacco fields; absent fields stay untouched.
func (h *TobaccoHandler) Update(c *gin.Context) {
	user := currentUser(c)
	tobaccoID, ok := pathID(c)
	if !ok {
		return
	}
	var req tobaccoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	tobacco, err := h.tobaccoService.UpdateTobacco(c.Request.Context(), user.ID, tobaccoID, services.TobaccoUpdate{
		Name:       req.Name,
		Brand:      req.Brand,
		CategoryID: req.CategoryID,
		Notes:      req.Notes,
	})
	if err != nil {
		RespAppError(c, err)
		return
	}
	RespSuccess(c, tobaccoView(tobacco))
}

// Delete removes one tobacco.
func (h *TobaccoHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	tobaccoID, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.tobaccoService.DeleteTobacco(c.Request.Context(), user.ID, tobaccoID); err != nil {
		RespAppError(c, err)
		return
	}
	RespSuccessStr(c, "deleted")
}

// DeleteAll wipes the caller's whole collection.
func (h *TobaccoHandler) DeleteAll(c *gin.Context) {
	user := currentUser(c)
	deleted, err := h.tobaccoService.DeleteAllTobaccos(c.Request.Context(), user.ID)
	if err != nil {
		RespAppError(c, err)
		return
	}
	RespSuccess(c, gin.H{"deleted": deleted})
}

// BulkAdd imports many tobaccos at once, either as structured items or as
// the raw "Name | Brand | Category" text the bot accepts.
func (h *TobaccoHandler) BulkAdd(c *gin.Context) {
	user := currentUser(c)
	var req bulkAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	var result *services.BulkResult
	var err error
	switch {
	case len(req.Items) > 0:
		items := make([]services.TobaccoInput, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, services.TobaccoInput{
				Name:       item.Name,
				Brand:      item.Brand,
				CategoryID: item.CategoryID,
				Notes:      item.Notes,
			})
		}
		result, err = h.tobaccoService.BulkAdd(c.Request.Context(), user.ID, items)
	case req.Text != "":
		result, err = h.tobaccoService.BulkImport(c.Request.Context(), user.ID, req.Text)
	default:
		RespError(c, http.StatusBadRequest, "either items or text must be provided")
		return
	}
	if err != nil {
		RespAppError(c, err)
		return
	}
	RespSuccess(c, gin.H{
		"added":   result.Added,
		"skipped": result.Skipped,
		"errors":  result.Errors,
	})
}

// pathID parses the :id path segment, replying 400 on garbage.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		RespError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}
