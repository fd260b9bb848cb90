package camp

import (
	"net/http"

	"sportsassist/infras/otel"
	"sportsassist/internal/domains/camp/model"
	"sportsassist/internal/domains/camp/model/dto"
	"sportsassist/internal/domains/camp/service"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/validator"
	"sportsassist/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Camp
	otel    otel.Otel
}

func New(service service.Camp, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/camps", handler.CreateCamp)
	router.Get("/camps", handler.GetCamps)
	router.Get("/camps/{id}", handler.GetCampByID)
	router.Put("/camps/{id}", handler.UpdateCamp)
	router.Delete("/camps/{id}", handler.DeleteCamp)
	router.Get("/camps/{id}/registration-form", handler.GetRegistrationForm)

	router.Get("/organizations/{id}/camps", handler.GetOrganizationCamps)
}

// CreateCamp handles the creation of a new camp.
// @Summary Create a new camp
// @Description JSON body, or multipart with the JSON in "data" and an optional "image".
// @Tags Camp
// @Accept json,mpfd
// @Produce json
// @Param request body dto.CreateCampRequest true "Create Camp Request"
// @Param image formData file false "Camp image"
// @Success 201 {object} response.Data[dto.CampResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/camps [post]
// @Security BearerAuth
func (handler *Handler) CreateCamp(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCamp")
	defer scope.End()

	req := dto.CreateCampRequest{}

	if err := validator.Decode(request, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request")

		response.WithError(writer, err)

		return
	}

	file, fileHeader := validator.FormFile(request, constant.FormImage)
	if file != nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create camp")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Camp created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetCamps retrieves camps based on query parameters.
// @Summary Get all camps
// @Description Published camps plus every camp of the caller's organization.
// @Tags Camp
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param organization_id query string false "Filter by organization"
// @Param sport query string false "Filter by sport"
// @Param skill_level query string false "Filter by skill level"
// @Param status query string false "Filter by status"
// @Param search query string false "Search by name"
// @Success 200 {object} response.Data[dto.GetCampsResponse]
// @Router /v1/camps [get]
// @Security BearerAuth
func (handler *Handler) GetCamps(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCamps")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	query := request.URL.Query()

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filterGroup.AddEq(model.TableName, model.FieldOrganizationID, query.Get(model.FieldOrganizationID))
	filterGroup.AddEq(model.TableName, model.FieldSport, query.Get(model.FieldSport))
	filterGroup.AddEq(model.TableName, model.FieldSkillLevel, query.Get(model.FieldSkillLevel))
	filterGroup.AddEq(model.TableName, model.FieldStatus, query.Get(model.FieldStatus))

	filterGroup.AddSearch(model.TableName, model.FieldName, constant.RequestParamSearch, query.Get(constant.RequestParamSearch))

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get camps")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetOrganizationCamps lists the published camps of an organization.
// @Summary Get camps of an organization
// @Tags Camp
// @Produce json
// @Param id path string true "Organization ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetCampsResponse]
// @Router /v1/organizations/{id}/camps [get]
func (handler *Handler) GetOrganizationCamps(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrganizationCamps")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.GetByOrganization(ctx, queryParams, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get organization camps")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetCampByID returns a camp with its remaining seats.
// @Summary Get a camp
// @Tags Camp
// @Produce json
// @Param id path string true "Camp ID"
// @Success 200 {object} response.Data[dto.CampResponse]
// @Failure 404 {object} response.Error
// @Router /v1/camps/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetCampByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCampByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get camp")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateCamp handles updating an existing camp.
// @Summary Update a camp
// @Tags Camp
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Camp ID"
// @Param request body dto.UpdateCampRequest true "Update Camp Request"
// @Param image formData file false "Camp image"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/camps/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateCamp(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCamp")
	defer scope.End()

	req := dto.UpdateCampRequest{}

	if err := validator.Decode(request, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request")

		response.WithError(writer, err)

		return
	}

	file, fileHeader := validator.FormFile(request, constant.FormImage)
	if file != nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update camp")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Camp updated successfully")

	response.WithMessage(writer, http.StatusOK, "Camp updated successfully")
}

// DeleteCamp handles deleting a camp.
// @Summary Delete a camp
// @Tags Camp
// @Produce json
// @Param id path string true "Camp ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/camps/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCamp(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCamp")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete camp")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Camp deleted successfully")
}

// GetRegistrationForm returns a camp together with the active custom fields
// of its organization.
// @Summary Get camp registration form
// @Tags Camp
// @Produce json
// @Param id path string true "Camp ID"
// @Success 200 {object} response.Data[dto.RegistrationFormResponse]
// @Failure 404 {object} response.Error
// @Router /v1/camps/{id}/registration-form [get]
// @Security BearerAuth
func (handler *Handler) GetRegistrationForm(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRegistrationForm")
	defer scope.End()

	res, err := handler.service.RegistrationForm(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get registration form")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
