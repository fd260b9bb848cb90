package organization

import (
	"net/http"

	"sportsassist/infras/otel"
	"sportsassist/internal/domains/organization/model"
	"sportsassist/internal/domains/organization/model/dto"
	"sportsassist/internal/domains/organization/service"
	"sportsassist/shared"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/validator"
	"sportsassist/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Organization
	otel    otel.Otel
}

func New(service service.Organization, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/organizations", handler.CreateOrganization)
	router.Get("/organizations", handler.GetOrganizations)
	router.Get("/organizations/{id}", handler.GetOrganizationByID)
	router.Put("/organizations/{id}", handler.UpdateOrganization)
	router.Delete("/organizations/{id}", handler.DeleteOrganization)
}

// CreateOrganization handles the creation of a new organization.
// @Summary Create a new organization
// @Description JSON body, or multipart with the JSON in "data" and an optional "logo".
// @Tags Organization
// @Accept json,mpfd
// @Produce json
// @Param request body dto.CreateOrganizationRequest true "Create Organization Request"
// @Param logo formData file false "Organization logo"
// @Success 201 {object} response.Data[dto.OrganizationResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/organizations [post]
// @Security BearerAuth
func (handler *Handler) CreateOrganization(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOrganization")
	defer scope.End()

	req := dto.CreateOrganizationRequest{}

	if err := validator.Decode(request, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request")

		response.WithError(writer, err)

		return
	}

	file, fileHeader := validator.FormFile(request, constant.FormLogo)
	if file != nil {
		req.Logo = fileHeader
		req.LogoFile = file

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
		log.Error().Err(err).Msg("failed to create organization")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Organization created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetOrganizations retrieves organizations based on query parameters.
// @Summary Get all organizations
// @Tags Organization
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param search query string false "Search by name"
// @Param active query boolean false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetOrganizationsResponse]
// @Router /v1/organizations [get]
// @Security BearerAuth
func (handler *Handler) GetOrganizations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrganizations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	query := request.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	filterGroup.AddSearch(model.TableName, model.FieldName, constant.RequestParamSearch, query.Get(constant.RequestParamSearch))

	if active := shared.ConvertStringToBool(query.Get(model.FieldActive)); active != nil {
		filterGroup.Add(gDto.Filter{
			ArgName:  "active_filter",
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get organizations")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetOrganizationByID returns one organization.
// @Summary Get an organization
// @Tags Organization
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} response.Data[dto.OrganizationResponse]
// @Failure 404 {object} response.Error
// @Router /v1/organizations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetOrganizationByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrganizationByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get organization")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateOrganization handles updating an organization.
// @Summary Update an organization
// @Tags Organization
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Organization ID"
// @Param request body dto.UpdateOrganizationRequest true "Update Organization Request"
// @Param logo formData file false "Organization logo"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/organizations/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateOrganization(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOrganization")
	defer scope.End()

	req := dto.UpdateOrganizationRequest{}

	if err := validator.Decode(request, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request")

		response.WithError(writer, err)

		return
	}

	file, fileHeader := validator.FormFile(request, constant.FormLogo)
	if file != nil {
		req.Logo = fileHeader
		req.LogoFile = file

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
		log.Error().Err(err).Msg("failed to update organization")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Organization updated successfully")
}

// DeleteOrganization handles deleting an organization.
// @Summary Delete an organization
// @Tags Organization
// @Produce json
// @Param id path string true "Organization ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/organizations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteOrganization(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteOrganization")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete organization")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Organization deleted successfully")
}
