package child

import (
	"net/http"

	"sportsassist/infras/otel"
	"sportsassist/internal/domains/child/model"
	"sportsassist/internal/domains/child/model/dto"
	"sportsassist/internal/domains/child/service"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/validator"
	"sportsassist/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Child
	otel    otel.Otel
}

func New(service service.Child, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/children", handler.CreateChild)
	router.Get("/children", handler.GetChildren)
	router.Get("/children/{id}", handler.GetChildByID)
	router.Put("/children/{id}", handler.UpdateChild)
	router.Delete("/children/{id}", handler.DeleteChild)
}

// CreateChild adds a child to the caller's family.
// @Summary Create a child
// @Tags Child
// @Accept json
// @Produce json
// @Param request body dto.CreateChildRequest true "Create Child Request"
// @Success 201 {object} response.Data[dto.ChildResponse]
// @Failure 400 {object} response.Error
// @Router /v1/children [post]
// @Security BearerAuth
func (handler *Handler) CreateChild(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateChild")
	defer scope.End()

	req := dto.CreateChildRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create child")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Child created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetChildren lists children. Parents only see their own.
// @Summary Get children
// @Tags Child
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param search query string false "Search by name"
// @Success 200 {object} response.Data[dto.GetChildrenResponse]
// @Router /v1/children [get]
// @Security BearerAuth
func (handler *Handler) GetChildren(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetChildren")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	filterGroup.AddSearch(model.TableName, model.FieldFullName, constant.RequestParamSearch, request.URL.Query().Get(constant.RequestParamSearch))

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get children")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetChildByID returns one child.
// @Summary Get a child
// @Tags Child
// @Produce json
// @Param id path string true "Child ID"
// @Success 200 {object} response.Data[dto.ChildResponse]
// @Failure 404 {object} response.Error
// @Router /v1/children/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetChildByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetChildByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get child")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateChild changes a child's profile.
// @Summary Update a child
// @Tags Child
// @Accept json
// @Produce json
// @Param id path string true "Child ID"
// @Param request body dto.UpdateChildRequest true "Update Child Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/children/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateChild(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateChild")
	defer scope.End()

	req := dto.UpdateChildRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update child")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Child updated successfully")
}

// DeleteChild removes a child that has no registrations or bookings.
// @Summary Delete a child
// @Tags Child
// @Produce json
// @Param id path string true "Child ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/children/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteChild(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteChild")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete child")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Child deleted successfully")
}
