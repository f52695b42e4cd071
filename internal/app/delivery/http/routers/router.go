package routers

import (
	"fmt"
	"lgu-portal-service/internal/app/config"
	"lgu-portal-service/internal/app/delivery/http/controllers"
	"lgu-portal-service/internal/app/delivery/http/middlewares"
	"lgu-portal-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	serviceController *controllers.ServiceController,
	uploadController *controllers.UploadController,
	paymentController *controllers.PaymentController,
	adminController *controllers.AdminController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   allowedOrigins(internalConfig),
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodPut, constvars.MethodPatch, constvars.MethodDelete, "OPTIONS"},
		AllowedHeaders:   []string{"Accept", constvars.HeaderAuthorization, constvars.HeaderContentType, constvars.HeaderXRequestID, constvars.HeaderAPIKey},
		ExposedHeaders:   []string{constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.APIKeyAuth)

	normalLimiter, apiKeyLimiter := middlewares.CreateRateLimiters()
	router.Use(middlewares.ConditionalRateLimit(normalLimiter, apiKeyLimiter))
	router.Use(middlewares.BodyBuffer)

	callbackLimiter := middlewares.CallbackRateLimiter()

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/public", func(r chi.Router) {
				attachPublicRoutes(r, serviceController)
			})

			r.Route("/forms", func(r chi.Router) {
				r.Get("/{service_id}", serviceController.GetFormConfig)
			})

			r.Route("/uploads", func(r chi.Router) {
				attachUploadRoutes(r, uploadController)
			})

			r.Route("/payments", func(r chi.Router) {
				attachPaymentRoutes(r, callbackLimiter, paymentController)
			})

			r.Route("/admin", func(r chi.Router) {
				attachAdminRoutes(r, middlewares, adminController)
			})
		})
	})
}

func allowedOrigins(internalConfig *config.InternalConfig) []string {
	if internalConfig.App.FrontendDomain == "" {
		return []string{"*"}
	}
	return []string{internalConfig.App.FrontendDomain}
}
