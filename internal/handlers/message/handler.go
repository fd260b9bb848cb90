package message

import (
	"net/http"

	"sportsassist/infras/otel"
	"sportsassist/internal/domains/message/model/dto"
	"sportsassist/internal/domains/message/service"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/validator"
	"sportsassist/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Message
	otel    otel.Otel
}

func New(service service.Message, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/camps/{id}/messages", handler.CreateMessage)
	router.Get("/camps/{id}/messages", handler.GetCampMessages)

	router.Get("/parents/{id}/camp-messages", handler.GetParentMessages)
	router.Get("/parents/{id}/camp-messages/unread-count", handler.GetUnreadCount)
	router.Patch("/parents/{id}/camp-messages/{messageId}/read", handler.MarkRead)
}

// CreateMessage sends a message to the parents registered for a camp.
// @Summary Send a camp message
// @Description Recipients are parents with a non-cancelled registration, optionally narrowed by status. Email delivery runs in the background.
// @Tags Message
// @Accept json
// @Produce json
// @Param id path string true "Camp ID"
// @Param request body dto.CreateMessageRequest true "Create Message Request"
// @Success 201 {object} response.Data[dto.MessageResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/camps/{id}/messages [post]
// @Security BearerAuth
func (handler *Handler) CreateMessage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMessage")
	defer scope.End()

	req := dto.CreateMessageRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create camp message")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Camp message sent successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetCampMessages lists the messages sent for a camp.
// @Summary Get camp messages
// @Tags Message
// @Produce json
// @Param id path string true "Camp ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetMessagesResponse]
// @Failure 403 {object} response.Error
// @Router /v1/camps/{id}/messages [get]
// @Security BearerAuth
func (handler *Handler) GetCampMessages(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCampMessages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.GetByCamp(ctx, queryParams, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get camp messages")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetParentMessages lists the inbox of a parent, newest first.
// @Summary Get a parent's camp messages
// @Tags Message
// @Produce json
// @Param id path string true "Parent ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetInboxResponse]
// @Failure 403 {object} response.Error
// @Router /v1/parents/{id}/camp-messages [get]
// @Security BearerAuth
func (handler *Handler) GetParentMessages(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetParentMessages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.GetForParent(ctx, queryParams, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get parent messages")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetUnreadCount returns the number of unread messages of a parent.
// @Summary Get unread camp message count
// @Tags Message
// @Produce json
// @Param id path string true "Parent ID"
// @Success 200 {object} response.Data[dto.UnreadCountResponse]
// @Failure 403 {object} response.Error
// @Router /v1/parents/{id}/camp-messages/unread-count [get]
// @Security BearerAuth
func (handler *Handler) GetUnreadCount(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUnreadCount")
	defer scope.End()

	res, err := handler.service.UnreadCount(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get unread count")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// MarkRead marks one message as read. Repeating the call is a no-op.
// @Summary Mark a camp message as read
// @Tags Message
// @Produce json
// @Param id path string true "Parent ID"
// @Param messageId path string true "Message ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/parents/{id}/camp-messages/{messageId}/read [patch]
// @Security BearerAuth
func (handler *Handler) MarkRead(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkRead")
	defer scope.End()

	parentID := chi.URLParam(request, constant.RequestParamID)
	messageID := chi.URLParam(request, constant.RequestParamMessageID)

	if err := handler.service.MarkRead(ctx, parentID, messageID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark message as read")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Message marked as read")
}
