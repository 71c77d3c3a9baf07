// routes.go - Route registration helpers
package api

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, h *Handler, wsh *WebSocketHandler) {
	// Health check
	e.GET("/health", h.HandleHealth)

	// Session lifecycle
	sessions := e.Group("/api/sessions")
	sessions.POST("", h.HandleCreateSession)
	sessions.GET("/:sessionId", h.HandleGetSession)
	sessions.DELETE("/:sessionId", h.HandleDeleteSession)
	sessions.GET("/:sessionId/snapshot", h.HandleSessionSnapshot)

	// Components and editing
	sessions.POST("/:sessionId/components", h.HandleCreateComponent)
	sessions.GET("/:sessionId/components/:componentId", h.HandleGetComponent)
	sessions.PUT("/:sessionId/components/:componentId", h.HandleUpdateComponent)
	sessions.POST("/:sessionId/pointer", h.HandlePointer)
	sessions.DELETE("/:sessionId/selection", h.HandleDeleteSelection)
	sessions.POST("/:sessionId/selection/duplicate", h.HandleDuplicateSelection)
	sessions.PUT("/:sessionId/canvas", h.HandleUpdateCanvas)
	sessions.PUT("/:sessionId/zoom", h.HandleSetZoom)
	sessions.POST("/:sessionId/clear", h.HandleClear)
	sessions.POST("/:sessionId/new", h.HandleNewProject)

	// Rendering and export
	sessions.GET("/:sessionId/frame", h.HandleFrame)
	sessions.GET("/:sessionId/export/:format", h.HandleExport)
	sessions.POST("/:sessionId/document", h.HandleImportDocument)

	// Design persistence
	sessions.POST("/:sessionId/designs", h.HandleSaveDesign)
	sessions.POST("/:sessionId/designs/:designId", h.HandleLoadDesign)
	designs := e.Group("/api/designs")
	designs.GET("", h.HandleListDesigns)
	designs.GET("/:designId", h.HandleGetDesign)
	designs.DELETE("/:designId", h.HandleDeleteDesign)

	// Palette
	e.GET("/api/palette", h.HandleGetPalette)

	// Live editing channel
	if wsh != nil {
		e.GET("/api/sessions/:sessionId/ws", wsh.HandleWebSocket)
	}
}
