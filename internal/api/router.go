package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/antonvlasov/hookah-mix-helper/internal/interfaces"
)

// Services bundles the service layer the API exposes.
type Services struct {
	UserService    interfaces.UserServiceInterface
	TobaccoService interfaces.TobaccoServiceInterface
	MixService     interfaces.MixServiceInterface
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(services Services, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(corsOrigins) == 0 || (len(corsOrigins) == 1 && corsOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = corsOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders,
		"X-Telegram-User-Id", "X-Telegram-Username", "X-Telegram-First-Name")
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		RespSuccessStr(c, "ok")
	})

	userHandler := NewUserHandler(services.UserService)
	tobaccoHandler := NewTobaccoHandler(services.TobaccoService)
	mixHandler := NewMixHandler(services.MixService)

	apiRouter := router.Group("/api")
	apiRouter.Use(TelegramIdentity(services.UserService))
	{
		apiRouter.GET("/user/me", userHandler.GetMe)
		apiRouter.GET("/user/stats", userHandler.GetStats)

		apiRouter.GET("/categories", tobaccoHandler.ListCategories)

		apiRouter.GET("/tobaccos", tobaccoHandler.List)
		apiRouter.POST("/tobaccos", tobaccoHandler.Add)
		apiRouter.POST("/tobaccos/bulk", tobaccoHandler.BulkAdd)
		apiRouter.DELETE("/tobaccos", tobaccoHandler.DeleteAll)
		apiRouter.GET("/tobaccos/:id", tobaccoHandler.Get)
		apiRouter.PUT("/tobaccos/:id", tobaccoHandler.Update)
		apiRouter.DELETE("/tobaccos/:id", tobaccoHandler.Delete)

		apiRouter.POST("/mixes/generate", mixHandler.Generate)
		apiRouter.GET("/mixes", mixHandler.List)
		apiRouter.GET("/mixes/:id", mixHandler.Get)
		apiRouter.POST("/mixes/:id/rate", mixHandler.Rate)
		apiRouter.POST("/mixes/:id/favorite", mixHandler.SetFavorite)

		apiRouter.GET("/favorites", mixHandler.ListFavorites)
		apiRouter.DELETE("/favorites", mixHandler.ClearFavorites)
	}

	return router
}
