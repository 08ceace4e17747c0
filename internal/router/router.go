package router

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/langly/backend/config"
	"github.com/langly/backend/internal/handler"
)

func Setup(
	cfg *config.Config,
	chatHandler *handler.ChatHandler,
	travelHandler *handler.TravelHandler,
	todoHandler *handler.TodoHandler,
	noteHandler *handler.NoteHandler,
	activityHandler *handler.ActivityHandler,
	lookupHandler *handler.LookupHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	// SSE 路径不压缩，避免事件被缓冲
	r.Use(gzip.Gzip(gzip.BestCompression,
		gzip.WithExcludedPaths([]string{"/api/chat/message", "/api/travel/insights"})))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(TokenAuth(cfg.Server.AuthToken))
	{
		api.POST("/chat/message", chatHandler.Message)
		api.POST("/travel/insights", travelHandler.Insights)

		todos := api.Group("/todos")
		{
			todos.GET("", todoHandler.List)
			todos.POST("", todoHandler.Create)
			todos.POST("/:id/toggle", todoHandler.Toggle)
			todos.DELETE("/:id", todoHandler.Delete)
		}

		notes := api.Group("/notes")
		{
			notes.GET("", noteHandler.List)
			notes.POST("", noteHandler.Create)
			notes.DELETE("/:id", noteHandler.Delete)
		}

		api.GET("/activity", activityHandler.Recent)
		api.GET("/weather", lookupHandler.Weather)
		api.GET("/stocks/watchlist", lookupHandler.Watchlist)
		api.GET("/stocks/:ticker", lookupHandler.Stock)
	}

	return r
}

// TokenAuth 令牌校验中间件
// 支持 query token 与 Authorization 头两种携带方式；未配置令牌时放行
func TokenAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		provided := c.Query("token")
		if provided == "" {
			provided = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if provided != token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
