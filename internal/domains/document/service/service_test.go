package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"
	"time"

	"sportsassist/config"
	"sportsassist/infras/otel/mocks"
	s3Mocks "sportsassist/infras/s3/mocks"
	childMocks "sportsassist/internal/domains/child/mocks"
	childModel "sportsassist/internal/domains/child/model"
	documentMocks "sportsassist/internal/domains/document/mocks"
	"sportsassist/internal/domains/document/model"
	"sportsassist/internal/domains/document/model/dto"
	"sportsassist/internal/domains/document/service"
	registrationMocks "sportsassist/internal/domains/registration/mocks"
	registrationModel "sportsassist/internal/domains/registration/model"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const pixel = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

type fixture struct {
	repo          *documentMocks.MockDocument
	children      *childMocks.MockChild
	registrations *registrationMocks.MockRegistration
	s3            *s3Mocks.MockS3
	svc           service.Document
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:          documentMocks.NewMockDocument(ctrl),
		children:      childMocks.NewMockChild(ctrl),
		registrations: registrationMocks.NewMockRegistration(ctrl),
		s3:            s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Upload.MaxFileSizeMB = 1
	cfg.Upload.PresignExpiry = 15 * time.Minute

	f.svc = service.New(f.repo, f.children, f.registrations, cfg, f.s3, mocks.NewOtel())

	return f
}

func actorContext(userID, role, orgID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, role)

	return context.WithValue(ctx, constant.ContextKeyOrganizationID, orgID)
}

func pdf(size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "waiver.pdf",
		Size:     size,
		Header:   textproto.MIMEHeader{constant.RequestHeaderContentType: []string{"application/pdf"}},
	}
}

func strPtr(s string) *string {
	return &s
}

func TestDocumentService_Create(t *testing.T) {
	parent := actorContext("parent-1", constant.RoleParent, "")

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.CreateDocumentRequest
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "waiver for own child with typed signature",
			ctx:  parent,
			req:  dto.CreateDocumentRequest{DocumentType: "waiver", ChildID: "child-1", SignatureType: "typed", SignedName: "Alex Doe", File: pdf(1024)},
			setupMock: func(f fixture) {
				f.s3.EXPECT().Enabled().Return(true)
				f.children.EXPECT().Get(gomock.Any(), gomock.Any()).Return(childModel.Child{ID: "child-1", ParentID: "parent-1"}, nil)
				f.s3.EXPECT().UploadFile(gomock.Any(), "documents/parent-1", gomock.Any(), gomock.Any(), gomock.Any()).Return("documents/parent-1/a.pdf", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, document model.Document) error {
						assert.Equal(t, "parent-1", document.OwnerID)
						assert.Equal(t, "Alex Doe", document.SignedName)
						assert.NotNil(t, document.SignedAt)
						assert.Nil(t, document.OrganizationID)

						return nil
					})
				f.s3.EXPECT().PresignGet(gomock.Any(), "documents/parent-1/a.pdf", 15*time.Minute).Return("https://signed/a.pdf", nil)
			},
		},
		{
			name: "drawn signature is stored as its own object",
			ctx:  parent,
			req:  dto.CreateDocumentRequest{DocumentType: "waiver", SignatureType: "drawn", SignatureData: pixel, File: pdf(1024)},
			setupMock: func(f fixture) {
				f.s3.EXPECT().Enabled().Return(true)
				f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("documents/parent-1/a.pdf", nil)
				f.s3.EXPECT().UploadFileBytes(gomock.Any(), "signatures/parent-1", gomock.Any(), "image/png", gomock.Any()).Return("signatures/parent-1/s.png", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.s3.EXPECT().PresignGet(gomock.Any(), gomock.Any(), gomock.Any()).Return("https://signed/x", nil).Times(2)
			},
		},
		{
			name: "registration pins organization and child",
			ctx:  parent,
			req:  dto.CreateDocumentRequest{DocumentType: "medical_form", RegistrationID: "reg-1", File: pdf(1024)},
			setupMock: func(f fixture) {
				f.s3.EXPECT().Enabled().Return(true)
				f.registrations.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(registrationModel.Detail{ID: "reg-1", ParentID: "parent-1", ChildID: "child-1", OrganizationID: "org-1"}, nil)
				f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("documents/parent-1/a.pdf", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, document model.Document) error {
						assert.Equal(t, strPtr("org-1"), document.OrganizationID)
						assert.Equal(t, strPtr("child-1"), document.ChildID)
						assert.Equal(t, dto.SignatureTypeNone, document.SignatureType)

						return nil
					})
				f.s3.EXPECT().PresignGet(gomock.Any(), gomock.Any(), gomock.Any()).Return("https://signed/a.pdf", nil)
			},
		},
		{
			name: "insert failure removes the object",
			ctx:  parent,
			req:  dto.CreateDocumentRequest{DocumentType: "waiver", File: pdf(1024)},
			setupMock: func(f fixture) {
				f.s3.EXPECT().Enabled().Return(true)
				f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("documents/parent-1/a.pdf", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
				f.s3.EXPECT().DeleteFile(gomock.Any(), "documents/parent-1/a.pdf").Return(nil)
			},
			wantErr: true,
		},
		{
			name: "child of another parent",
			ctx:  parent,
			req:  dto.CreateDocumentRequest{DocumentType: "waiver", ChildID: "child-9", File: pdf(1024)},
			setupMock: func(f fixture) {
				f.s3.EXPECT().Enabled().Return(true)
				f.children.EXPECT().Get(gomock.Any(), gomock.Any()).Return(childModel.Child{ID: "child-9", ParentID: "parent-9"}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "file too large",
			ctx:       parent,
			req:       dto.CreateDocumentRequest{DocumentType: "waiver", File: pdf(2 << 20)},
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "typed signature without a name",
			ctx:       parent,
			req:       dto.CreateDocumentRequest{DocumentType: "waiver", SignatureType: "typed", File: pdf(1024)},
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "storage disabled",
			ctx:  parent,
			req:  dto.CreateDocumentRequest{DocumentType: "waiver", File: pdf(1024)},
			setupMock: func(f fixture) {
				f.s3.EXPECT().Enabled().Return(false)
			},
			wantCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(tt.ctx, tt.req)

			switch {
			case tt.wantCode != 0:
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			case tt.wantErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.NotEmpty(t, res.URL)
				assert.Equal(t, "waiver.pdf", res.FileName)
			}
		})
	}
}

func TestDocumentService_Get(t *testing.T) {
	document := model.Document{ID: "doc-1", OwnerID: "parent-1", OrganizationID: strPtr("org-1"), ObjectKey: "documents/parent-1/a.pdf"}

	tests := []struct {
		name     string
		ctx      context.Context
		wantCode int
	}{
		{name: "owner", ctx: actorContext("parent-1", constant.RoleParent, "")},
		{name: "staff of the organization", ctx: actorContext("staff-1", constant.RoleStaff, "org-1")},
		{name: "other parent", ctx: actorContext("parent-2", constant.RoleParent, ""), wantCode: http.StatusNotFound},
		{name: "staff of another organization", ctx: actorContext("staff-2", constant.RoleStaff, "org-2"), wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(document, nil)

			if tt.wantCode == 0 {
				f.s3.EXPECT().PresignGet(gomock.Any(), document.ObjectKey, 15*time.Minute).Return("https://signed/a.pdf", nil)
			}

			res, err := f.svc.Get(tt.ctx, "doc-1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "https://signed/a.pdf", res.URL)
		})
	}
}

func TestDocumentService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			where, _ := filter.GetWhereClause()
			assert.Contains(t, where, "documents.owner_id = :owner_id")
			assert.Contains(t, where, "documents.document_type = :document_type")

			return 1, nil
		})
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Document{{ID: "doc-1", OwnerID: "parent-1", ObjectKey: "k"}}, nil)
	f.s3.EXPECT().PresignGet(gomock.Any(), "k", gomock.Any()).Return("https://signed/k", nil)

	filter := dto.DocumentFilter{DocumentType: "waiver"}.FilterGroup()

	res, err := f.svc.GetAll(actorContext("parent-1", constant.RoleParent, ""), gDto.QueryParams{Page: 1, Limit: 10}, filter)
	require.NoError(t, err)
	require.Len(t, res.Documents, 1)
	assert.Equal(t, "https://signed/k", res.Documents[0].URL)
}

func TestDocumentService_Delete(t *testing.T) {
	f := newFixture(t)

	document := model.Document{ID: "doc-1", OwnerID: "parent-1", ObjectKey: "documents/a.pdf", SignatureKey: "signatures/s.png"}

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(document, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	f.s3.EXPECT().DeleteFile(gomock.Any(), "documents/a.pdf").Return(nil)
	f.s3.EXPECT().DeleteFile(gomock.Any(), "signatures/s.png").Return(errors.New("gone"))

	assert.NoError(t, f.svc.Delete(actorContext("parent-1", constant.RoleParent, ""), "doc-1"))

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(document, nil)

	err := f.svc.Delete(actorContext("parent-2", constant.RoleParent, ""), "doc-1")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
