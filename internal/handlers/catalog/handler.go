package catalog

import (
	"net/http"

	"sportsassist/infras/otel"
	"sportsassist/shared/catalog"
	"sportsassist/shared/constant"
	"sportsassist/transport/http/response"

	"github.com/go-chi/chi/v5"
)

// Response lists every fixed enumeration the client renders in forms.
type Response struct {
	Sports               []catalog.Option `json:"sports"`
	SkillLevels          []catalog.Option `json:"skill_levels"`
	JerseySizes          []catalog.Option `json:"jersey_sizes"`
	Genders              []catalog.Option `json:"genders"`
	DocumentTypes        []catalog.Option `json:"document_types"`
	SignatureTypes       []catalog.Option `json:"signature_types"`
	FieldTypes           []catalog.Option `json:"custom_field_types"`
	CampStatuses         []catalog.Option `json:"camp_statuses"`
	RegistrationStatuses []catalog.Option `json:"registration_statuses"`
	PaymentStatuses      []catalog.Option `json:"payment_statuses"`
}

type Handler struct {
	otel otel.Otel
}

func New(otel otel.Otel) Handler {
	return Handler{
		otel: otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/catalog", handler.GetCatalog)
}

// GetCatalog returns the shared enumerations.
// @Summary Get catalog
// @Description List sports, skill levels, jersey sizes, document and signature types, custom field types and statuses.
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Data[Response]
// @Router /v1/catalog [get]
func (handler *Handler) GetCatalog(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCatalog")
	defer scope.End()

	response.WithJSON(writer, http.StatusOK, Response{
		Sports:               catalog.Sports,
		SkillLevels:          catalog.SkillLevels,
		JerseySizes:          catalog.JerseySizes,
		Genders:              catalog.Genders,
		DocumentTypes:        catalog.DocumentTypes,
		SignatureTypes:       catalog.SignatureTypes,
		FieldTypes:           catalog.FieldTypes,
		CampStatuses:         catalog.CampStatuses,
		RegistrationStatuses: catalog.RegistrationStatuses,
		PaymentStatuses:      catalog.PaymentStatuses,
	})
}
