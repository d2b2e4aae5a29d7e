package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shashoo/internal/repository"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func TestBoardAccessRepository_ReplaceForUser_DeleteAndInsertShareOneTransaction(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewBoardAccessRepository(gormDB)

	userID := uuid.New()
	boardIDs := []uuid.UUID{uuid.New(), uuid.New()}

	// Delete and bulk insert inside a single transaction: a concurrent
	// reader sees the old grants or the new grants, never an empty set.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "board_accesses" WHERE user_id = .*`).
		WithArgs(userID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "board_accesses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).
			AddRow(uuid.New().String()).
			AddRow(uuid.New().String()))
	mock.ExpectCommit()

	err := repo.ReplaceForUser(context.Background(), userID, boardIDs)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardAccessRepository_ReplaceForUser_EmptyListOnlyDeletes(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewBoardAccessRepository(gormDB)

	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "board_accesses" WHERE user_id = .*`).
		WithArgs(userID.String()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.ReplaceForUser(context.Background(), userID, nil)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardAccessRepository_ReplaceForUser_InsertFailureRollsBack(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewBoardAccessRepository(gormDB)

	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "board_accesses" WHERE user_id = .*`).
		WithArgs(userID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "board_accesses"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.ReplaceForUser(context.Background(), userID, []uuid.UUID{uuid.New()})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardAccessRepository_GrantedBoardIDs_IgnoresRevokedRows(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewBoardAccessRepository(gormDB)

	userID := uuid.New()
	boardID := uuid.New()

	// can_view=false rows are filtered in SQL, they behave as absent.
	mock.ExpectQuery(`SELECT "board_id" FROM "board_accesses" WHERE user_id = .* AND can_view = .*`).
		WithArgs(userID.String(), true).
		WillReturnRows(sqlmock.NewRows([]string{"board_id"}).AddRow(boardID.String()))

	granted, err := repo.GrantedBoardIDs(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{boardID}, granted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardAccessRepository_HasGrant_NoRow(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewBoardAccessRepository(gormDB)

	boardID := uuid.New()
	userID := uuid.New()

	// gorm binds the LIMIT of First as a query parameter too.
	mock.ExpectQuery(`SELECT .* FROM "board_accesses" WHERE board_id = .* AND user_id = .* AND can_view = .*`).
		WithArgs(boardID.String(), userID.String(), true, sqlmock.AnyArg()).
		WillReturnError(gorm.ErrRecordNotFound)

	hasGrant, err := repo.HasGrant(context.Background(), boardID, userID)

	assert.NoError(t, err)
	assert.False(t, hasGrant)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardAccessRepository_HasGrant_Found(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewBoardAccessRepository(gormDB)

	boardID := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "board_accesses" WHERE board_id = .* AND user_id = .* AND can_view = .*`).
		WithArgs(boardID.String(), userID.String(), true, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "board_id", "user_id", "can_view"}).
			AddRow(uuid.New().String(), boardID.String(), userID.String(), true))

	hasGrant, err := repo.HasGrant(context.Background(), boardID, userID)

	assert.NoError(t, err)
	assert.True(t, hasGrant)
	assert.NoError(t, mock.ExpectationsWereMet())
}
