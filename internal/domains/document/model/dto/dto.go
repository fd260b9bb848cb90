package dto

import (
	"mime/multipart"

	"sportsassist/internal/domains/document/model"
	"sportsassist/shared"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"
	gModel "sportsassist/shared/model"
	"sportsassist/shared/sanitize"
	"sportsassist/shared/timezone"

	"github.com/google/uuid"
)

const (
	SignatureTypeNone     = "none"
	SignatureTypeTyped    = "typed"
	SignatureTypeDrawn    = "drawn"
	SignatureTypeUploaded = "uploaded"
)

// CreateDocumentRequest is decoded from the multipart "data" field, the file
// travels in its own part.
type CreateDocumentRequest struct {
	DocumentType   string                `json:"document_type"   validate:"required,document_type"`
	ChildID        string                `json:"child_id"        validate:"omitempty,uuid"`
	RegistrationID string                `json:"registration_id" validate:"omitempty,uuid"`
	SignatureType  string                `json:"signature_type"  validate:"omitempty,signature_type"`
	SignedName     string                `json:"signed_name"     validate:"omitempty,max=200"`
	SignatureData  string                `json:"signature_data"  validate:"omitempty,mimetypes=image/png image/jpeg,maxfilesize=1"`
	File           *multipart.FileHeader `json:"-"               validate:"required,mimetypes=application/pdf image/png image/jpeg image/webp"`
	FileContent    multipart.File        `json:"-"`
}

// Signature returns the signature type, defaulting to none.
func (c *CreateDocumentRequest) Signature() string {
	if c.SignatureType == constant.Empty {
		return SignatureTypeNone
	}

	return c.SignatureType
}

// Check enforces the fields each signature type needs.
func (c *CreateDocumentRequest) Check() error {
	switch c.Signature() {
	case SignatureTypeTyped:
		if sanitize.Text(c.SignedName) == constant.Empty {
			return failure.BadRequestFromString("signed_name is required for typed signatures")
		}
	case SignatureTypeDrawn:
		if c.SignatureData == constant.Empty {
			return failure.BadRequestFromString("signature_data is required for drawn signatures")
		}
	}

	return nil
}

// Scope is the ownership of a new document resolved from the child or
// registration it is attached to.
type Scope struct {
	OwnerID        string
	OrganizationID string
	ChildID        string
	RegistrationID string
}

func (c *CreateDocumentRequest) ToModel(user string, scope Scope, objectKey, signatureKey string) model.Document {
	now := timezone.Now()
	signature := c.Signature()

	document := model.Document{
		ID:             uuid.NewString(),
		OrganizationID: optional(scope.OrganizationID),
		OwnerID:        scope.OwnerID,
		ChildID:        optional(scope.ChildID),
		RegistrationID: optional(scope.RegistrationID),
		DocumentType:   c.DocumentType,
		SignatureType:  signature,
		SignatureKey:   signatureKey,
		ObjectKey:      objectKey,
		FileName:       sanitize.Text(c.File.Filename),
		ContentType:    c.File.Header.Get(constant.RequestHeaderContentType),
		Size:           c.File.Size,
		Metadata:       gModel.NewMetadata(user, now),
	}

	if signature != SignatureTypeNone {
		document.SignedAt = &now
	}

	if signature == SignatureTypeTyped {
		document.SignedName = sanitize.Text(c.SignedName)
	}

	return document
}

// DocumentFilter holds the query string filters of the document listing.
type DocumentFilter struct {
	ChildID        string
	RegistrationID string
	DocumentType   string
}

func (f DocumentFilter) FilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	group.AddEq(model.TableName, model.FieldChildID, f.ChildID)
	group.AddEq(model.TableName, model.FieldRegistrationID, f.RegistrationID)
	group.AddEq(model.TableName, model.FieldDocumentType, f.DocumentType)

	return group
}

type DocumentResponse struct {
	ID             string  `json:"id"`
	OrganizationID *string `json:"organization_id"`
	OwnerID        string  `json:"owner_id"`
	ChildID        *string `json:"child_id"`
	RegistrationID *string `json:"registration_id"`
	DocumentType   string  `json:"document_type"`
	SignatureType  string  `json:"signature_type"`
	SignedName     string  `json:"signed_name,omitempty"`
	SignedAt       *string `json:"signed_at"`
	FileName       string  `json:"file_name"`
	ContentType    string  `json:"content_type"`
	Size           int64   `json:"size"`
	URL            string  `json:"url,omitempty"`
	SignatureURL   string  `json:"signature_url,omitempty"`
	gDto.Metadata
}

func (r *DocumentResponse) FromModel(model model.Document) {
	r.ID = model.ID
	r.OrganizationID = model.OrganizationID
	r.OwnerID = model.OwnerID
	r.ChildID = model.ChildID
	r.RegistrationID = model.RegistrationID
	r.DocumentType = model.DocumentType
	r.SignatureType = model.SignatureType
	r.SignedName = model.SignedName
	r.FileName = model.FileName
	r.ContentType = model.ContentType
	r.Size = model.Size
	r.Metadata.FromModel(model.Metadata)

	if model.SignedAt != nil {
		signedAt := timezone.Format(*model.SignedAt, constant.DateFormat)
		r.SignedAt = &signedAt
	}
}

type GetDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetDocumentsResponse) FromModels(models []model.Document, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Documents = make([]DocumentResponse, len(models))
	for i, mod := range models {
		r.Documents[i].FromModel(mod)
	}
}

func (r *DocumentResponse) WithLinks(url, signatureURL string) {
	r.URL = url
	r.SignatureURL = signatureURL
}

func optional(value string) *string {
	if value == constant.Empty {
		return nil
	}

	return &value
}
