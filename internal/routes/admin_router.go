package routes

import (
	"github.com/labstack/echo/v4"

	"cert-system/internal/controllers"
)

func runPhaseTemplateRouter(api *echo.Group, ctrl *controllers.PhaseTemplateController) {
	api.GET("/phase-templates", ctrl.Eligible)
	api.GET("/phase-templates/:id", ctrl.Find)
}

// runAdminRouter: группа уже закрыта AuthMiddleware.
func runAdminRouter(admin *echo.Group, ctrl *controllers.AdminController, templates *controllers.PhaseTemplateController) {
	admin.POST("/bootstrap", ctrl.Bootstrap)
	admin.GET("/status", ctrl.Status)
	admin.DELETE("/collections/:name", ctrl.Clear)

	admin.POST("/phase-templates", templates.Create)
	admin.POST("/phase-templates/initialize", templates.Initialize)
	admin.PUT("/phase-templates/:id", templates.Update)
	admin.DELETE("/phase-templates/:id", templates.Delete)
	admin.POST("/phase-templates/:id/phases", templates.AddPhase)
	admin.DELETE("/phase-templates/:id/phases/:number", templates.RemovePhase)
	admin.PATCH("/phase-templates/:id/phases/:number", templates.EditPhase)
	admin.POST("/phase-templates/:id/phases/:number/move", templates.MovePhase)
}
