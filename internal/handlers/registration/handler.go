package registration

import (
	"net/http"

	"sportsassist/infras/otel"
	"sportsassist/internal/domains/registration/model"
	"sportsassist/internal/domains/registration/model/dto"
	"sportsassist/internal/domains/registration/service"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/validator"
	"sportsassist/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Registration
	otel    otel.Otel
}

func New(service service.Registration, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/registrations", handler.CreateRegistration)
	router.Get("/registrations", handler.GetRegistrations)
	router.Get("/registrations/{id}", handler.GetRegistrationByID)
	router.Patch("/registrations/{id}/status", handler.UpdateRegistrationStatus)
	router.Post("/registrations/{id}/cancel", handler.CancelRegistration)

	router.Get("/camps/{id}/registrations", handler.GetRoster)
}

// CreateRegistration registers a child for a camp.
// @Summary Register a child for a camp
// @Description The registration is confirmed while seats remain, then waitlisted when the camp allows it.
// @Tags Registration
// @Accept json
// @Produce json
// @Param request body dto.CreateRegistrationRequest true "Create Registration Request"
// @Success 201 {object} response.Data[dto.RegistrationResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/registrations [post]
// @Security BearerAuth
func (handler *Handler) CreateRegistration(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRegistration")
	defer scope.End()

	req := dto.CreateRegistrationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create registration")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Registration created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetRegistrations lists registrations in the caller's scope.
// @Summary Get registrations
// @Tags Registration
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param camp_id query string false "Filter by camp"
// @Param child_id query string false "Filter by child"
// @Param status query string false "Filter by status"
// @Param payment_status query string false "Filter by payment status"
// @Success 200 {object} response.Data[dto.GetRegistrationsResponse]
// @Router /v1/registrations [get]
// @Security BearerAuth
func (handler *Handler) GetRegistrations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRegistrations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	query := request.URL.Query()

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filterGroup.AddEq(model.TableName, model.FieldCampID, query.Get(model.FieldCampID))
	filterGroup.AddEq(model.TableName, model.FieldChildID, query.Get(model.FieldChildID))
	filterGroup.AddEq(model.TableName, model.FieldStatus, query.Get(model.FieldStatus))
	filterGroup.AddEq(model.TableName, model.FieldPaymentStatus, query.Get(model.FieldPaymentStatus))

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get registrations")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetRegistrationByID returns a registration with its custom field answers.
// @Summary Get a registration
// @Tags Registration
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} response.Data[dto.RegistrationResponse]
// @Failure 404 {object} response.Error
// @Router /v1/registrations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRegistrationByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRegistrationByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get registration")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateRegistrationStatus lets staff confirm, waitlist or cancel a
// registration and record payment.
// @Summary Update registration status
// @Tags Registration
// @Accept json
// @Produce json
// @Param id path string true "Registration ID"
// @Param request body dto.UpdateRegistrationStatusRequest true "Update Registration Status Request"
// @Success 200 {object} response.Data[dto.RegistrationResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/registrations/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRegistrationStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRegistrationStatus")
	defer scope.End()

	req := dto.UpdateRegistrationStatusRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.UpdateStatus(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update registration status")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Registration status updated successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// CancelRegistration lets a parent withdraw a registration.
// @Summary Cancel a registration
// @Tags Registration
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} response.Data[dto.RegistrationResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/registrations/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelRegistration(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelRegistration")
	defer scope.End()

	res, err := handler.service.Cancel(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel registration")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Registration cancelled successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// GetRoster lists the registrations of a camp for its staff.
// @Summary Get camp roster
// @Tags Registration
// @Produce json
// @Param id path string true "Camp ID"
// @Success 200 {object} response.Data[dto.RosterResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/camps/{id}/registrations [get]
// @Security BearerAuth
func (handler *Handler) GetRoster(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoster")
	defer scope.End()

	res, err := handler.service.Roster(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get camp roster")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
