package db

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/testnest/admin/internal/admin/ids"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	return &Repository{db: gdb}, mock
}

func TestSetNonPrimaryPostgresSQL(t *testing.T) {
	repo, mock := newMockRepository(t)
	estID := ids.New[ids.Establishment]()
	keep := ids.New[ids.EstablishmentAddress]()
	previous := ids.New[ids.EstablishmentAddress]()

	mock.ExpectQuery(`SELECT "id" FROM "establishment_addresses" WHERE .*establishment_id = \$1 AND is_primary = \$2.* AND id <> \$3`).
		WithArgs(estID.UUID(), true, keep.UUID()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(previous.UUID().String()))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "establishment_addresses" SET "is_primary"=\$1,"updated_at"=\$2 WHERE .*establishment_id = \$3 AND is_primary = \$4.* AND id <> \$5`).
		WithArgs(false, sqlmock.AnyArg(), estID.UUID(), true, keep.UUID()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	demoted, err := repo.SetNonPrimaryEstablishmentAddresses(context.Background(), estID, keep)
	require.NoError(t, err)
	assert.Equal(t, []ids.EstablishmentAddressID{previous}, demoted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetNonPrimaryPostgresFailure(t *testing.T) {
	repo, mock := newMockRepository(t)
	estID := ids.New[ids.Establishment]()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "establishment_contacts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(ids.New[ids.EstablishmentContact]().String()))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "establishment_contacts" SET`)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := repo.SetNonPrimaryEstablishmentContacts(context.Background(), estID, ids.Empty[ids.EstablishmentContact]())
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
