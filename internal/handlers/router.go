package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/gig-builder/internal/middleware"
)

type RouterOptions struct {
	// CORSOrigins lists allowed origins. Empty allows every origin.
	CORSOrigins []string
	// RateLimiter throttles the model-backed routes. Nil disables it.
	RateLimiter *middleware.RateLimiter
	// AccessLog enables gin's request logger.
	AccessLog bool
}

// NewRouter wires every route of the API under /api.
func NewRouter(h *GigHandler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	if opts.AccessLog {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery(), middleware.RequestID())

	config := cors.DefaultConfig()
	if len(opts.CORSOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = opts.CORSOrigins
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	config.ExposeHeaders = []string{middleware.RequestIDHeader}
	r.Use(cors.New(config))

	api := r.Group("/api")
	{
		api.GET("/health", HealthCheck)
		api.GET("/sections", h.ListSections)
		api.GET("/sections/:id", h.GetSection)
		api.POST("/diff", h.Diff)
		api.POST("/preview", h.Preview)
		api.POST("/validate", h.Validate)

		// Model-backed routes
		ai := api.Group("")
		if opts.RateLimiter != nil {
			ai.Use(opts.RateLimiter.Limit())
		}
		ai.POST("/improve", h.Improve)
		ai.POST("/enhance", h.Enhance)
		ai.POST("/convert-text-to-gig", h.ConvertTextToGig)
		ai.POST("/chat", h.Chat)
	}
	return r
}
