package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"sportsassist/infras/otel"
	"sportsassist/infras/postgres"
	"sportsassist/internal/domains/message/model"
	"sportsassist/shared/constant"
	gDto "sportsassist/shared/dto"
	"sportsassist/shared/logger"
	gRepo "sportsassist/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const queryContacts = `SELECT DISTINCT users.id AS parent_id, users.email, users.full_name
FROM registrations
JOIN users ON users.id = registrations.parent_id
WHERE registrations.camp_id = $1 AND registrations.status = ANY($2)
ORDER BY users.id`

type Message interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Message) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Message, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	ContactsTx(ctx context.Context, sqltx *sqlx.Tx, campID string, statuses []string) ([]model.Contact, error)
}

// Recipient stores per parent delivery and read state. Reads go through the
// inbox join.
type Recipient interface {
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Recipient) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Recipient, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	GetInbox(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.InboxItem, error)
	CountInbox(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Message]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Message {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Message](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// ContactsTx returns the distinct parents holding a registration with one of
// statuses in the camp.
func (r *repositoryImpl) ContactsTx(ctx context.Context, sqltx *sqlx.Tx, campID string, statuses []string) ([]model.Contact, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".camp_message.ContactsTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryContacts)

	var contacts []model.Contact

	if err := sqltx.SelectContext(ctx, &contacts, queryContacts, campID, pq.Array(statuses)); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get message contacts: %w", err)
	}

	return contacts, nil
}

type recipientRepositoryImpl struct {
	gRepo.Repository[model.Recipient]
	inbox gRepo.Repository[model.InboxItem]
}

func NewRecipient(db *postgres.Connection, otel otel.Otel) Recipient {
	return &recipientRepositoryImpl{
		Repository: gRepo.NewRepository[model.Recipient](model.RecipientEntityName, model.RecipientTableName, model.RecipientFieldID, db, otel),
		inbox:      gRepo.NewRepository[model.InboxItem](model.RecipientEntityName, model.RecipientTableName, model.RecipientFieldID, db, otel),
	}
}

func (r *recipientRepositoryImpl) GetInbox(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.InboxItem, error) {
	return r.inbox.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *recipientRepositoryImpl) CountInbox(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.inbox.Count(ctx, filter) //nolint:wrapcheck
}
