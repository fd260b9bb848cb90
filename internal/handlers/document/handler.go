package document

import (
	"net/http"

	"sportsassist/infras/otel"
	"sportsassist/internal/domains/document/model/dto"
	"sportsassist/internal/domains/document/service"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/validator"
	"sportsassist/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Document
	otel    otel.Otel
}

func New(service service.Document, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/documents", handler.CreateDocument)
	router.Get("/documents", handler.GetDocuments)
	router.Get("/documents/{id}", handler.GetDocumentByID)
	router.Delete("/documents/{id}", handler.DeleteDocument)
}

// CreateDocument uploads a document with an optional signature.
// @Summary Upload a document
// @Description Multipart upload: the "data" field carries the JSON metadata, "file" the document itself.
// @Tags Document
// @Accept multipart/form-data
// @Produce json
// @Param data formData string true "JSON encoded dto.CreateDocumentRequest"
// @Param file formData file true "Document file (pdf, png, jpeg, webp)"
// @Success 201 {object} response.Data[dto.DocumentResponse]
// @Failure 400 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/documents [post]
// @Security BearerAuth
func (handler *Handler) CreateDocument(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDocument")
	defer scope.End()

	req := dto.CreateDocumentRequest{}

	if err := validator.Decode(request, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request")

		response.WithError(writer, err)

		return
	}

	file, fileHeader := validator.FormFile(request, constant.FormFile)
	if file != nil {
		req.File = fileHeader
		req.FileContent = file

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
		log.Error().Err(err).Msg("failed to create document")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Document uploaded successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetDocuments lists documents with short lived download links.
// @Summary Get documents
// @Tags Document
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param child_id query string false "Filter by child"
// @Param registration_id query string false "Filter by registration"
// @Param document_type query string false "Filter by document type"
// @Success 200 {object} response.Data[dto.GetDocumentsResponse]
// @Router /v1/documents [get]
// @Security BearerAuth
func (handler *Handler) GetDocuments(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDocuments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	query := request.URL.Query()
	filterGroup := dto.DocumentFilter{
		ChildID:        query.Get("child_id"),
		RegistrationID: query.Get("registration_id"),
		DocumentType:   query.Get("document_type"),
	}.FilterGroup()

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get documents")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetDocumentByID returns a document with a presigned link.
// @Summary Get a document
// @Tags Document
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.Data[dto.DocumentResponse]
// @Failure 404 {object} response.Error
// @Router /v1/documents/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetDocumentByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDocumentByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get document")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteDocument removes a document and its stored objects.
// @Summary Delete a document
// @Tags Document
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/documents/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDocument(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDocument")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete document")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Document deleted successfully")
}
