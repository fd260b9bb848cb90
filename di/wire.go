//go:build wireinject
// +build wireinject

package di

import (
	"sportsassist/config"
	"sportsassist/infras/email"
	"sportsassist/infras/jwt"
	"sportsassist/infras/kafka"
	"sportsassist/infras/metrics"
	"sportsassist/infras/otel"
	"sportsassist/infras/postgres"
	"sportsassist/infras/redis"
	"sportsassist/infras/s3"
	"sportsassist/permissions"
	"sportsassist/shared/cache"
	"sportsassist/transport/event"
	"sportsassist/transport/http"
	"sportsassist/transport/http/middleware"
	"sportsassist/transport/http/router"

	"github.com/google/wire"

	authService "sportsassist/internal/domains/auth/service"
	bookingRepository "sportsassist/internal/domains/booking/repository"
	bookingService "sportsassist/internal/domains/booking/service"
	campRepository "sportsassist/internal/domains/camp/repository"
	campService "sportsassist/internal/domains/camp/service"
	childRepository "sportsassist/internal/domains/child/repository"
	childService "sportsassist/internal/domains/child/service"
	customFieldRepository "sportsassist/internal/domains/customfield/repository"
	customFieldService "sportsassist/internal/domains/customfield/service"
	documentRepository "sportsassist/internal/domains/document/repository"
	documentService "sportsassist/internal/domains/document/service"
	messageRepository "sportsassist/internal/domains/message/repository"
	messageService "sportsassist/internal/domains/message/service"
	notificationService "sportsassist/internal/domains/notification/service"
	organizationRepository "sportsassist/internal/domains/organization/repository"
	organizationService "sportsassist/internal/domains/organization/service"
	registrationRepository "sportsassist/internal/domains/registration/repository"
	registrationService "sportsassist/internal/domains/registration/service"
	slotRepository "sportsassist/internal/domains/slot/repository"
	slotService "sportsassist/internal/domains/slot/service"
	userRepository "sportsassist/internal/domains/user/repository"
	userService "sportsassist/internal/domains/user/service"

	authHandler "sportsassist/internal/handlers/auth"
	bookingHandler "sportsassist/internal/handlers/booking"
	campHandler "sportsassist/internal/handlers/camp"
	catalogHandler "sportsassist/internal/handlers/catalog"
	childHandler "sportsassist/internal/handlers/child"
	customFieldHandler "sportsassist/internal/handlers/customfield"
	documentHandler "sportsassist/internal/handlers/document"
	messageHandler "sportsassist/internal/handlers/message"
	organizationHandler "sportsassist/internal/handlers/organization"
	registrationHandler "sportsassist/internal/handlers/registration"
	slotHandler "sportsassist/internal/handlers/slot"
	userHandler "sportsassist/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	email.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var repositories = wire.NewSet(
	organizationRepository.New,
	userRepository.New,
	childRepository.New,
	campRepository.New,
	customFieldRepository.New,
	customFieldRepository.NewAnswer,
	registrationRepository.New,
	messageRepository.New,
	messageRepository.NewRecipient,
	slotRepository.New,
	bookingRepository.New,
	documentRepository.New,
)

var domains = wire.NewSet(
	repositories,
	authService.New,
	organizationService.New,
	userService.New,
	childService.New,
	campService.New,
	customFieldService.New,
	registrationService.New,
	messageService.New,
	slotService.New,
	bookingService.New,
	documentService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	organizationHandler.New,
	userHandler.New,
	childHandler.New,
	campHandler.New,
	customFieldHandler.New,
	registrationHandler.New,
	messageHandler.New,
	slotHandler.New,
	bookingHandler.New,
	documentHandler.New,
	catalogHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *event.Consumer {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		kafka.New,
		email.New,
		metrics.New,
		userRepository.New,
		campRepository.New,
		notificationService.New,
		event.New,
	)

	return &event.Consumer{}
}
