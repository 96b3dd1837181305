package router

import (
	"commCoach/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupAuthRoutes(api *echo.Group, handler *rest.AuthHandler) {
	auth := api.Group("/auth")
	auth.POST("/token", handler.Token)
}

func SetupSessionRoutes(api *echo.Group, handler *rest.SessionHandler) {
	sessions := api.Group("/sessions")

	sessions.POST("", handler.Start)
	sessions.POST("/:id/frames", handler.ProcessFrame)
	sessions.GET("/:id/metrics", handler.Metrics)
	sessions.POST("/:id/reset", handler.Reset)
	sessions.DELETE("/:id", handler.Stop)
}

func SetupReportRoutes(api *echo.Group, handler *rest.ReportHandler, authRequired echo.MiddlewareFunc) {
	reports := api.Group("/reports", authRequired)

	reports.GET("", handler.List)
	reports.GET("/latest", handler.Latest)
	reports.GET("/statistics", handler.Statistics)
	reports.GET("/export", handler.Export)
	reports.GET("/:session_id", handler.GetBySessionID)
	reports.DELETE("/:session_id", handler.Delete)
}

func SetupConfigRoutes(api *echo.Group, handler *rest.ConfigHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin/config", authRequired, adminOnly)

	admin.GET("", handler.Get)
	admin.PATCH("", handler.Update)
}
