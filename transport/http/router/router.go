package router

import (
	"net/http"

	"sportsassist/config"
	_ "sportsassist/docs"
	"sportsassist/infras/metrics"
	"sportsassist/internal/handlers/auth"
	"sportsassist/internal/handlers/booking"
	"sportsassist/internal/handlers/camp"
	"sportsassist/internal/handlers/catalog"
	"sportsassist/internal/handlers/child"
	"sportsassist/internal/handlers/customfield"
	"sportsassist/internal/handlers/document"
	"sportsassist/internal/handlers/message"
	"sportsassist/internal/handlers/organization"
	"sportsassist/internal/handlers/registration"
	"sportsassist/internal/handlers/slot"
	"sportsassist/internal/handlers/user"
	"sportsassist/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Organization organization.Handler
	User         user.Handler
	Child        child.Handler
	Camp         camp.Handler
	CustomField  customfield.Handler
	Registration registration.Handler
	Message      message.Handler
	Slot         slot.Handler
	Booking      booking.Handler
	Document     document.Handler
	Catalog      catalog.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	AuthRole       middleware.AuthRole
	Metrics        metrics.Metrics
	Config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	if r.Config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.Config.App.CORS.AllowedOrigins,
			AllowedMethods:   r.Config.App.CORS.AllowedMethods,
			AllowedHeaders:   r.Config.App.CORS.AllowedHeaders,
			AllowCredentials: r.Config.App.CORS.AllowCredentials,
			MaxAge:           r.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	if r.Config.Metrics.Enable {
		router.Use(r.Metrics.Middleware)
	}

	router.Use(chiMiddleware.Recoverer, r.App.Tracing)

	if r.Config.App.RateLimiter.Enable {
		router.Use(r.App.RateLimit())
	}

	if r.Config.Metrics.Enable {
		router.Method(http.MethodGet, r.Config.Metrics.Path, r.Metrics.Handler())
	}

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Organization.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Child.Router(routerGroup)
		r.DomainHandlers.Camp.Router(routerGroup)
		r.DomainHandlers.CustomField.Router(routerGroup)
		r.DomainHandlers.Registration.Router(routerGroup)
		r.DomainHandlers.Message.Router(routerGroup)
		r.DomainHandlers.Slot.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Document.Router(routerGroup)
		r.DomainHandlers.Catalog.Router(routerGroup)
	})
}

func New(
	domainHandlers DomainHandlers,
	app middleware.AppMiddleware,
	authRole middleware.AuthRole,
	metrics metrics.Metrics,
	cfg *config.Config,
) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		AuthRole:       authRole,
		Metrics:        metrics,
		Config:         cfg,
	}
}
