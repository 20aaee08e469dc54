package routes

import (
	"github.com/labstack/echo/v4"

	"cert-system/internal/controllers"
)

func runDeliveryRouter(api *echo.Group, ctrl *controllers.WorkDeliveryController) {
	g := api.Group("/deliveries")

	g.GET("", ctrl.List)
	g.POST("", ctrl.Create)
	g.GET("/export", ctrl.Export)
	g.POST("/preview", ctrl.Preview)
	g.POST("/preview/pdf", ctrl.PreviewPDF)
	g.GET("/:id", ctrl.Find)
	g.DELETE("/:id", ctrl.Delete)
	g.GET("/:id/pdf", ctrl.PDF)
	g.PUT("/:id/status", ctrl.UpdateStatus)
	g.PUT("/:id/notes", ctrl.UpdateNotes)

	g.POST("/:id/phases", ctrl.AddPhase)
	g.DELETE("/:id/phases/:number", ctrl.RemovePhase)
	g.PATCH("/:id/phases/:number", ctrl.EditPhase)
	g.POST("/:id/phases/:number/move", ctrl.MovePhase)
	g.POST("/:id/phases/:number/toggle", ctrl.TogglePhase)
}

func runCertificateRouter(api *echo.Group, ctrl *controllers.CertificateController) {
	g := api.Group("/certificates")

	g.GET("", ctrl.List)
	g.POST("", ctrl.Create)
	g.GET("/export", ctrl.Export)
	g.POST("/preview", ctrl.Preview)
	g.POST("/preview/pdf", ctrl.PreviewPDF)
	g.GET("/:id", ctrl.Find)
	g.DELETE("/:id", ctrl.Delete)
	g.GET("/:id/pdf", ctrl.PDF)
}
