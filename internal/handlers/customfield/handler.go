package customfield

import (
	"net/http"

	"sportsassist/infras/otel"
	"sportsassist/internal/domains/customfield/model/dto"
	"sportsassist/internal/domains/customfield/service"
	"sportsassist/shared"
	"sportsassist/shared/constant"
	"sportsassist/shared/validator"
	"sportsassist/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const queryParamActive = "active"

type Handler struct {
	service service.CustomField
	otel    otel.Otel
}

func New(service service.CustomField, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/organizations/{id}/custom-fields", handler.CreateCustomField)
	router.Get("/organizations/{id}/custom-fields", handler.GetCustomFields)
	router.Put("/organizations/{id}/custom-fields/order", handler.ReorderCustomFields)

	router.Get("/custom-fields/{id}", handler.GetCustomFieldByID)
	router.Put("/custom-fields/{id}", handler.UpdateCustomField)
	router.Delete("/custom-fields/{id}", handler.DeleteCustomField)
}

// CreateCustomField adds a field to the registration form of an organization.
// @Summary Create a custom field
// @Tags CustomField
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param request body dto.CreateCustomFieldRequest true "Create Custom Field Request"
// @Success 201 {object} response.Data[dto.CustomFieldResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/organizations/{id}/custom-fields [post]
// @Security BearerAuth
func (handler *Handler) CreateCustomField(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCustomField")
	defer scope.End()

	req := dto.CreateCustomFieldRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create custom field")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Custom field created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetCustomFields lists the fields of an organization in display order.
// @Summary Get custom fields of an organization
// @Tags CustomField
// @Produce json
// @Param id path string true "Organization ID"
// @Param active query boolean false "Only active fields"
// @Success 200 {object} response.Data[dto.GetCustomFieldsResponse]
// @Router /v1/organizations/{id}/custom-fields [get]
// @Security BearerAuth
func (handler *Handler) GetCustomFields(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomFields")
	defer scope.End()

	organizationID := chi.URLParam(request, constant.RequestParamID)

	var (
		res dto.GetCustomFieldsResponse
		err error
	)

	if active := shared.ConvertStringToBool(request.URL.Query().Get(queryParamActive)); active != nil && *active {
		res, err = handler.service.GetActive(ctx, organizationID)
	} else {
		res, err = handler.service.GetAll(ctx, organizationID)
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get custom fields")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// ReorderCustomFields sets the display order to the position of each id.
// @Summary Reorder custom fields
// @Tags CustomField
// @Accept json
// @Produce json
// @Param id path string true "Organization ID"
// @Param request body dto.ReorderCustomFieldsRequest true "Reorder Custom Fields Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Router /v1/organizations/{id}/custom-fields/order [put]
// @Security BearerAuth
func (handler *Handler) ReorderCustomFields(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReorderCustomFields")
	defer scope.End()

	req := dto.ReorderCustomFieldsRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Reorder(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reorder custom fields")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Custom fields reordered successfully")
}

// GetCustomFieldByID returns one custom field.
// @Summary Get a custom field
// @Tags CustomField
// @Produce json
// @Param id path string true "Custom Field ID"
// @Success 200 {object} response.Data[dto.CustomFieldResponse]
// @Failure 404 {object} response.Error
// @Router /v1/custom-fields/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetCustomFieldByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomFieldByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get custom field")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateCustomField changes a custom field.
// @Summary Update a custom field
// @Tags CustomField
// @Accept json
// @Produce json
// @Param id path string true "Custom Field ID"
// @Param request body dto.UpdateCustomFieldRequest true "Update Custom Field Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/custom-fields/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateCustomField(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCustomField")
	defer scope.End()

	req := dto.UpdateCustomFieldRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update custom field")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Custom field updated successfully")
}

// DeleteCustomField removes a custom field.
// @Summary Delete a custom field
// @Tags CustomField
// @Produce json
// @Param id path string true "Custom Field ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/custom-fields/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCustomField(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCustomField")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete custom field")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Custom field deleted successfully")
}
