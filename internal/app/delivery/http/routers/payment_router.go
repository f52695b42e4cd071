package routers

import (
	"lgu-portal-service/internal/app/delivery/http/controllers"
	"lgu-portal-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRoutes(router chi.Router, callbackLimiter *middlewares.RateLimiter, paymentController *controllers.PaymentController) {
	router.Post("/initiate", paymentController.InitiatePayment)
	router.With(callbackLimiter.Limit).Post("/callback", paymentController.GatewayCallback)
	router.Get("/{transaction_id}", paymentController.GetTransaction)
	router.Patch("/{transaction_id}/cancel", paymentController.CancelPayment)
}
