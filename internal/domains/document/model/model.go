package model

import (
	"time"

	"sportsassist/shared/model"
)

const (
	TableName  = "documents"
	EntityName = "document"

	FieldID             = "id"
	FieldOrganizationID = "organization_id"
	FieldOwnerID        = "owner_id"
	FieldChildID        = "child_id"
	FieldRegistrationID = "registration_id"
	FieldDocumentType   = "document_type"
)

// Document is a private uploaded file. ObjectKey and SignatureKey are object
// storage keys; download links are presigned on read.
type Document struct {
	ID             string     `db:"id"`
	OrganizationID *string    `db:"organization_id"`
	OwnerID        string     `db:"owner_id"`
	ChildID        *string    `db:"child_id"`
	RegistrationID *string    `db:"registration_id"`
	DocumentType   string     `db:"document_type"`
	SignatureType  string     `db:"signature_type"`
	SignedName     string     `db:"signed_name"`
	SignedAt       *time.Time `db:"signed_at"`
	SignatureKey   string     `db:"signature_key"`
	ObjectKey      string     `db:"object_key"`
	FileName       string     `db:"file_name"`
	ContentType    string     `db:"content_type"`
	Size           int64      `db:"size"`
	model.Metadata
}

// Keys returns every stored object that belongs to the document.
func (d Document) Keys() []string {
	keys := []string{d.ObjectKey}
	if d.SignatureKey != "" {
		keys = append(keys, d.SignatureKey)
	}

	return keys
}
