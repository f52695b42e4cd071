package routers

import (
	"lgu-portal-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachPublicRoutes(router chi.Router, serviceController *controllers.ServiceController) {
	router.Get("/services/{service_id}", serviceController.GetPublicService)
	router.Get("/settings", serviceController.GetPublicSettings)
}

func attachUploadRoutes(router chi.Router, uploadController *controllers.UploadController) {
	router.Post("/authorize", uploadController.AuthorizeUpload)
}
