// Package membershipservice предоставляет маршруты для основного приложения.
package membershipservice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/membership-service/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/membership-service/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/membership-service/internal/http/handlers/membership/acknowledge"
	"github.com/magabrotheeeer/membership-service/internal/http/handlers/membership/create"
	"github.com/magabrotheeeer/membership-service/internal/http/handlers/membership/invoicegen"
	"github.com/magabrotheeeer/membership-service/internal/http/handlers/membership/list"
	"github.com/magabrotheeeer/membership-service/internal/http/handlers/membership/read"
	"github.com/magabrotheeeer/membership-service/internal/http/handlers/webhook/razorpaywebhook"
	"github.com/magabrotheeeer/membership-service/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/membership-service/internal/services/auth"
	invoiceservice "github.com/magabrotheeeer/membership-service/internal/services/invoice"
	membershipservice "github.com/magabrotheeeer/membership-service/internal/services/membership"
	notifierservice "github.com/magabrotheeeer/membership-service/internal/services/notifier"
	reconcilerservice "github.com/magabrotheeeer/membership-service/internal/services/reconciler"
)

// Services объединяет бизнес-сервисы, используемые маршрутами.
type Services struct {
	Auth       *authservice.Service
	Membership *membershipservice.Service
	Invoice    *invoiceservice.Service
	Notifier   *notifierservice.Service
	Reconciler *reconcilerservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, services *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, services.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, services.Auth).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(services.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/memberships", create.New(logger, services.Membership).ServeHTTP)
			r.Get("/memberships/list", list.New(logger, services.Membership).ServeHTTP)
			r.Get("/memberships/{id}", read.New(logger, services.Membership).ServeHTTP)
			r.Post("/memberships/{id}/invoice", invoicegen.New(logger, services.Invoice).ServeHTTP)
			r.Post("/memberships/{id}/acknowledge", acknowledge.New(logger, services.Notifier).ServeHTTP)
		})

		// Webhook endpoint (без аутентификации)
		r.Post("/webhooks/razorpay", razorpaywebhook.New(logger, services.Reconciler).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
