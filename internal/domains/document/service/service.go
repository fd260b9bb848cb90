package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"path"

	"sportsassist/config"
	"sportsassist/infras/otel"
	"sportsassist/infras/s3"
	childModel "sportsassist/internal/domains/child/model"
	childRepository "sportsassist/internal/domains/child/repository"
	"sportsassist/internal/domains/document/model"
	"sportsassist/internal/domains/document/model/dto"
	"sportsassist/internal/domains/document/repository"
	registrationModel "sportsassist/internal/domains/registration/model"
	registrationRepository "sportsassist/internal/domains/registration/repository"
	"sportsassist/shared"
	"sportsassist/shared/base64"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	objectDirectory    = "documents"
	signatureDirectory = "signatures"
	bytesPerMB         = 1 << 20
)

var errStorageDisabled = failure.ServiceUnavailable("file storage is not configured")

type Document interface {
	Create(ctx context.Context, req dto.CreateDocumentRequest) (dto.DocumentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDocumentsResponse, error)
	Get(ctx context.Context, id string) (dto.DocumentResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo          repository.Document
	children      childRepository.Child
	registrations registrationRepository.Registration
	cfg           *config.Config
	s3            s3.S3
	otel          otel.Otel
}

func New(
	repo repository.Document,
	children childRepository.Child,
	registrations registrationRepository.Registration,
	cfg *config.Config,
	s3 s3.S3,
	otel otel.Otel,
) Document {
	return &serviceImpl{
		repo:          repo,
		children:      children,
		registrations: registrations,
		cfg:           cfg,
		s3:            s3,
		otel:          otel,
	}
}

// Create stores the file and, for drawn signatures, the signature image under
// private keys before inserting the row. Objects are removed again when the
// insert fails.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateDocumentRequest) (res dto.DocumentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = req.Check(); err != nil {
		return res, err
	}

	if limit := int64(s.cfg.Upload.MaxFileSizeMB * bytesPerMB); limit > 0 && req.File.Size > limit {
		return res, failure.BadRequestFromString(fmt.Sprintf("file must not be larger than %.0f MB", s.cfg.Upload.MaxFileSizeMB))
	}

	if !s.s3.Enabled() {
		return res, errStorageDisabled
	}

	actor := shared.ActorFromContext(ctx)

	owner, err := s.resolveScope(ctx, actor, req)
	if err != nil {
		return res, err
	}

	directory := path.Join(objectDirectory, owner.OwnerID)

	objectKey, err := s.s3.UploadFile(ctx, directory, shared.ObjectFileName(req.File.Filename), req.FileContent, req.File)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload document")

		return res, fmt.Errorf("failed to upload document: %w", err)
	}

	var signatureKey string

	if req.Signature() == dto.SignatureTypeDrawn {
		signatureKey, err = s.uploadSignature(ctx, owner.OwnerID, req.SignatureData)
		if err != nil {
			s.deleteObjects(ctx, objectKey)

			return res, err
		}
	}

	document := req.ToModel(actor.UserID, owner, objectKey, signatureKey)

	if err = s.repo.Insert(ctx, document); err != nil {
		s.deleteObjects(ctx, document.Keys()...)

		log.Error().Err(err).Msg("failed to create document")

		return res, fmt.Errorf("failed to create document: %w", err)
	}

	res.FromModel(document)

	return res, s.sign(ctx, &res, document)
}

// GetAll lists documents visible to the caller: parents see their own,
// organization staff see those attached to their organization.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDocumentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.ActorFromContext(ctx)
	scoped := gDto.FilterGroup{Filters: []any{filter}}

	switch {
	case actor.IsSuperAdmin():
	case actor.IsParent():
		scoped.AddEq(model.TableName, model.FieldOwnerID, actor.UserID)
	case actor.IsOrganizationMember(actor.OrganizationID):
		scoped.AddEq(model.TableName, model.FieldOrganizationID, actor.OrganizationID)
	default:
		return res, failure.ResourceRestrictedError
	}

	req.RestrictSort(model.TableName, constant.DefaultValueSortBy, model.FieldDocumentType)

	total, err := s.repo.Count(ctx, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to count documents")

		return res, fmt.Errorf("failed to count documents: %w", err)
	}

	documents, err := s.repo.GetAll(ctx, req, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to get documents")

		return res, fmt.Errorf("failed to get documents: %w", err)
	}

	res.FromModels(documents, total, req.Limit)

	for i, document := range documents {
		if err = s.sign(ctx, &res.Documents[i], document); err != nil {
			return res, err
		}
	}

	return res, nil
}

// Get returns the document with freshly presigned download links.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.DocumentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	document, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(document)

	return res, s.sign(ctx, &res, document)
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	document, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete document")

		return fmt.Errorf("failed to delete document: %w", err)
	}

	s.deleteObjects(ctx, document.Keys()...)

	return nil
}

// find loads a document the caller may see. Documents of other owners are
// reported as missing.
func (s *serviceImpl) find(ctx context.Context, id string) (model.Document, error) {
	document, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get document")

		return document, fmt.Errorf("failed to get document: %w", err)
	}

	actor := shared.ActorFromContext(ctx)

	organizationID := constant.Empty
	if document.OrganizationID != nil {
		organizationID = *document.OrganizationID
	}

	if document.ID == constant.Empty ||
		(!actor.CanAccessParentData(document.OwnerID) && (organizationID == constant.Empty || !actor.IsOrganizationMember(organizationID))) {
		return document, failure.NotFound("document not found")
	}

	return document, nil
}

// resolveScope works out who owns a new document. A registration pins the
// organization and child, a child pins the parent, otherwise staff upload
// for their organization and parents for themselves.
func (s *serviceImpl) resolveScope(ctx context.Context, actor shared.Actor, req dto.CreateDocumentRequest) (dto.Scope, error) {
	scope := dto.Scope{OwnerID: actor.UserID, ChildID: req.ChildID, RegistrationID: req.RegistrationID}

	if actor.IsOrganizationMember(actor.OrganizationID) {
		scope.OrganizationID = actor.OrganizationID
	}

	if req.RegistrationID != constant.Empty {
		detail, err := s.registrations.GetDetail(ctx, shared.FilterByID(req.RegistrationID, registrationModel.FieldID, registrationModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get registration")

			return scope, fmt.Errorf("failed to get registration: %w", err)
		}

		if detail.ID == constant.Empty || (!actor.CanAccessParentData(detail.ParentID) && !actor.IsOrganizationMember(detail.OrganizationID)) {
			return scope, failure.NotFound("registration not found")
		}

		if req.ChildID != constant.Empty && req.ChildID != detail.ChildID {
			return scope, failure.BadRequestFromString("child_id does not match the registration")
		}

		scope.OwnerID = detail.ParentID
		scope.OrganizationID = detail.OrganizationID
		scope.ChildID = detail.ChildID

		return scope, nil
	}

	if req.ChildID != constant.Empty {
		child, err := s.children.Get(ctx, shared.FilterByID(req.ChildID, childModel.FieldID, childModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get child")

			return scope, fmt.Errorf("failed to get child: %w", err)
		}

		if child.ID == constant.Empty || !actor.CanAccessParentData(child.ParentID) {
			return scope, failure.NotFound("child not found")
		}

		scope.OwnerID = child.ParentID
	}

	return scope, nil
}

func (s *serviceImpl) uploadSignature(ctx context.Context, ownerID, data string) (string, error) {
	contentType, raw, err := base64.Decode(data)
	if err != nil {
		return constant.Empty, failure.BadRequestFromString("signature_data must be a base64 data URL")
	}

	key, err := s.s3.UploadFileBytes(ctx, path.Join(signatureDirectory, ownerID), shared.ObjectFileName(extension(contentType)), contentType, raw)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload signature")

		return constant.Empty, fmt.Errorf("failed to upload signature: %w", err)
	}

	return key, nil
}

func (s *serviceImpl) sign(ctx context.Context, res *dto.DocumentResponse, document model.Document) error {
	url, err := s.s3.PresignGet(ctx, document.ObjectKey, s.cfg.Upload.PresignExpiry)
	if err != nil {
		return fmt.Errorf("failed to presign document: %w", err)
	}

	var signatureURL string

	if document.SignatureKey != constant.Empty {
		if signatureURL, err = s.s3.PresignGet(ctx, document.SignatureKey, s.cfg.Upload.PresignExpiry); err != nil {
			return fmt.Errorf("failed to presign signature: %w", err)
		}
	}

	res.WithLinks(url, signatureURL)

	return nil
}

func (s *serviceImpl) deleteObjects(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := s.s3.DeleteFile(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to delete document object")
		}
	}
}

func extension(contentType string) string {
	if contentType == "image/jpeg" {
		return "signature.jpg"
	}

	return "signature.png"
}
