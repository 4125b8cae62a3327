// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sabia-pyme/backend-go/internal/api/handlers"
	"github.com/sabia-pyme/backend-go/internal/api/middleware"
	"github.com/sabia-pyme/backend-go/internal/service"
)

type Services struct {
	CostingService   *service.CostingService
	InventoryService *service.InventoryService
}

// RouterOptions configures CORS and upload limits.
type RouterOptions struct {
	AllowedOrigins []string
	MaxUploadMB    int
}

func NewRouter(services *Services, opts RouterOptions) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:8501"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(opts.AllowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(opts.AllowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	var maxUploadBytes int64
	if opts.MaxUploadMB > 0 {
		maxUploadBytes = int64(opts.MaxUploadMB) << 20
		router.MaxMultipartMemory = maxUploadBytes
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.CostingService != nil {
			costingHandler := handlers.NewCostingHandler(services.CostingService, maxUploadBytes)
			costingGroup := apiGroup.Group("/costing")
			{
				costingGroup.POST("/analyze", costingHandler.Analyze)
				costingGroup.POST("/export", costingHandler.Export)
				costingGroup.POST("/analyze/remote", costingHandler.AnalyzeRemote)
				costingGroup.GET("/sources", costingHandler.Sources)
			}
		}

		if services.InventoryService != nil {
			inventoryHandler := handlers.NewInventoryHandler(services.InventoryService, maxUploadBytes)
			inventoryGroup := apiGroup.Group("/inventory")
			{
				inventoryGroup.POST("/analyze", inventoryHandler.Analyze)
				inventoryGroup.GET("/sample", inventoryHandler.Sample)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
