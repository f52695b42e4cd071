package routers

import (
	"lgu-portal-service/internal/app/delivery/http/controllers"
	"lgu-portal-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAdminRoutes(router chi.Router, middlewares *middlewares.Middlewares, adminController *controllers.AdminController) {
	router.Use(middlewares.RequireAdmin)

	router.Route("/services", func(r chi.Router) {
		r.Get("/", adminController.ListCustomServices)
		r.Post("/", adminController.CreateCustomService)
		r.Get("/{service_id}", adminController.GetCustomService)
		r.Put("/{service_id}", adminController.UpdateCustomService)
		r.Delete("/{service_id}", adminController.DeleteCustomService)
		r.Patch("/{service_id}/enable", adminController.EnableCustomService)
		r.Patch("/{service_id}/disable", adminController.DisableCustomService)
	})

	router.Put("/forms/{service_id}", adminController.UpsertFormConfig)
	router.Put("/settings", adminController.UpdateSettings)
	router.Get("/transactions", adminController.ListTransactions)
}
