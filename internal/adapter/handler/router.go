package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/voxly/internal/adapter/dto/common"
	httpmw "github.com/johnquangdev/voxly/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/voxly/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg             *config.Config
	briefingHandler *Briefing
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, briefingHandler *Briefing) *Router {
	return &Router{
		cfg:             cfg,
		briefingHandler: briefingHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API documentation
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupSessionRoutes(v1)
}

// setupSessionRoutes configures session, briefing and report routes
func (rt *Router) setupSessionRoutes(g *echo.Group) {
	sessions := g.Group("/sessions")

	if rt.briefingHandler == nil {
		sessions.Any("", rt.notImplemented)
		sessions.Any("/*", rt.notImplemented)
		return
	}

	sessions.POST("", rt.briefingHandler.CreateSession)

	byID := sessions.Group("/:id", httpmw.RequireSessionID(rt.respondError))
	byID.GET("", rt.briefingHandler.GetSession)
	byID.DELETE("", rt.briefingHandler.DeleteSession)
	byID.POST("/briefings", rt.briefingHandler.SubmitBriefing)
	byID.POST("/briefings/upload", rt.briefingHandler.UploadBriefing)
	byID.POST("/reset", rt.briefingHandler.ResetSession)
	byID.GET("/report", rt.briefingHandler.GetReport)
}

func (rt *Router) respondError(c echo.Context, err error) error {
	return HandleError(rt.briefingHandler.logger, c, err)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  common.HealthResponse
// @Router       /health [get]
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, common.HealthResponse{
		Status:                "ok",
		Environment:           rt.cfg.Server.Environment,
		APIKeyDetected:        rt.cfg.AI.APIKey != "",
		TranscriptionProvider: rt.cfg.AI.TranscriptionProvider,
		AnalysisProvider:      rt.cfg.AI.AnalysisProvider,
	})
}
