package slot

import (
	"net/http"

	"sportsassist/infras/otel"
	"sportsassist/internal/domains/slot/model/dto"
	"sportsassist/internal/domains/slot/service"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"
	"sportsassist/shared/validator"
	"sportsassist/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Slot
	otel    otel.Otel
}

func New(service service.Slot, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/slots", handler.CreateSlot)
	router.Get("/slots", handler.GetSlots)
	router.Get("/slots/{id}", handler.GetSlotByID)
	router.Put("/slots/{id}", handler.UpdateSlot)
	router.Delete("/slots/{id}", handler.DeleteSlot)
}

// CreateSlot handles the creation of an availability slot.
// @Summary Create an availability slot
// @Description Staff open a bookable time slot, optionally tied to a camp.
// @Tags Slot
// @Accept json
// @Produce json
// @Param request body dto.CreateSlotRequest true "Create Slot Request"
// @Success 201 {object} response.Data[dto.SlotResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/slots [post]
// @Security BearerAuth
func (handler *Handler) CreateSlot(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSlot")
	defer scope.End()

	req := dto.CreateSlotRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create slot")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Slot created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetSlots lists the slots visible to the caller.
// @Summary Get availability slots
// @Tags Slot
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param camp_id query string false "Filter by camp"
// @Param staff_id query string false "Filter by staff member"
// @Param status query string false "Filter by status"
// @Param from query string false "Slots starting at or after (RFC3339)"
// @Param to query string false "Slots ending at or before (RFC3339)"
// @Success 200 {object} response.Data[dto.GetSlotsResponse]
// @Failure 400 {object} response.Error
// @Router /v1/slots [get]
// @Security BearerAuth
func (handler *Handler) GetSlots(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlots")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	query := request.URL.Query()

	filterGroup, err := dto.SlotFilter{
		CampID:  query.Get("camp_id"),
		StaffID: query.Get("staff_id"),
		Status:  query.Get("status"),
		From:    query.Get(constant.RequestParamFrom),
		To:      query.Get(constant.RequestParamTo),
	}.FilterGroup()
	if err != nil {
		err = failure.BadRequest(err)

		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get slots")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetSlotByID returns a slot with its confirmed and remaining seats.
// @Summary Get an availability slot
// @Tags Slot
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} response.Data[dto.SlotResponse]
// @Failure 404 {object} response.Error
// @Router /v1/slots/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetSlotByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlotByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get slot")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateSlot changes a slot. max_bookings cannot drop below the confirmed count.
// @Summary Update an availability slot
// @Tags Slot
// @Accept json
// @Produce json
// @Param id path string true "Slot ID"
// @Param request body dto.UpdateSlotRequest true "Update Slot Request"
// @Success 200 {object} response.Data[dto.SlotResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/slots/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateSlot(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSlot")
	defer scope.End()

	req := dto.UpdateSlotRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update slot")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Slot updated successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteSlot removes a slot that has no bookings.
// @Summary Delete an availability slot
// @Tags Slot
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} response.Message
// @Failure 409 {object} response.Error
// @Router /v1/slots/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSlot(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSlot")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete slot")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Slot deleted successfully")
}
