package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"shashoo/internal/model"
	"shashoo/internal/repository"
)

func TestBoardRepository_ListVisible_CombinesTierAndGrants(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewBoardRepository(gormDB)

	grantedID := uuid.New()

	// Tier filter and allow-list grants combine with OR, never AND.
	mock.ExpectQuery(`SELECT .* FROM "boards" WHERE visibility IN .* OR id IN .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "visibility"}).
			AddRow(uuid.New().String(), "general", "", model.RoleBasic).
			AddRow(grantedID.String(), "research", "", model.RolePremium))

	boards, err := repo.ListVisible(context.Background(), []string{model.RoleBasic}, []uuid.UUID{grantedID})

	assert.NoError(t, err)
	assert.Len(t, boards, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_ListVisible_NoGrantsOmitsIDClause(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewBoardRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "boards" WHERE visibility IN .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "visibility"}).
			AddRow(uuid.New().String(), "general", "", model.RoleBasic))

	boards, err := repo.ListVisible(context.Background(), []string{model.RoleBasic}, nil)

	assert.NoError(t, err)
	assert.Len(t, boards, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_ExistingIDs_FiltersUnknown(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewBoardRepository(gormDB)

	known := uuid.New()
	unknown := uuid.New()

	mock.ExpectQuery(`SELECT "id" FROM "boards" WHERE id IN .*`).
		WithArgs(known.String(), unknown.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(known.String()))

	existing, err := repo.ExistingIDs(context.Background(), []uuid.UUID{known, unknown})

	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{known}, existing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_ExistingIDs_EmptyInputSkipsQuery(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewBoardRepository(gormDB)

	existing, err := repo.ExistingIDs(context.Background(), nil)

	assert.NoError(t, err)
	assert.Empty(t, existing)
	assert.NoError(t, mock.ExpectationsWereMet())
}
