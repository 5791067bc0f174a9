package repository_test

import (
	"context"
	"testing"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var boardColumns = []string{"id", "title", "description", "columns", "tasks", "version", "created_at", "updated_at"}

const upsertPattern = `(?s)INSERT INTO boards .*ON CONFLICT \(id\) DO UPDATE SET.*version = boards\.version \+ 1.*RETURNING`

func TestBoardRepository_Upsert(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	now := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	board := &model.Board{
		ID:      "1",
		Title:   "Website Redesign Project",
		Columns: model.ColumnList{{ID: "c1", Title: "To Do", CreatedAt: created}},
		Tasks: model.TaskList{{
			ID: "t1", Title: "Wireframes", Priority: "high", ColumnID: "c1",
			AssignedTo: []string{"u1"}, CreatedBy: "u2",
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectQuery(upsertPattern).
		WithArgs("1", "Website Redesign Project", "", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(boardColumns).AddRow(
			"1", "Website Redesign Project", "",
			[]byte(`[{"id":"c1","title":"To Do","createdAt":"2024-01-15T10:00:00Z"}]`),
			[]byte(`[{"id":"t1","title":"Wireframes","priority":"high","assignedTo":["u1"],"createdBy":"u2","columnId":"c1"}]`),
			int64(4), created, now,
		))

	saved, err := boardRepo.Upsert(context.Background(), board)

	require.NoError(t, err)
	assert.Equal(t, int64(4), saved.Version)
	assert.Equal(t, created, saved.CreatedAt.UTC())
	require.Len(t, saved.Columns, 1)
	assert.Equal(t, "To Do", saved.Columns[0].Title)
	require.Len(t, saved.Tasks, 1)
	assert.Equal(t, []string{"u1"}, saved.Tasks[0].AssignedTo)
	assert.Equal(t, "u2", saved.Tasks[0].CreatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_Upsert_Error(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	mock.ExpectQuery(upsertPattern).WillReturnError(assert.AnError)

	saved, err := boardRepo.Upsert(context.Background(), &model.Board{ID: "1", Title: "T"})

	assert.Error(t, err)
	assert.Nil(t, saved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_List(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "boards" ORDER BY created_at`).
		WillReturnRows(sqlmock.NewRows(boardColumns).
			AddRow("1", "One", "", []byte(`[]`), []byte(`[]`), int64(1), now, now).
			AddRow("2", "Two", "desc", `[{"id":"c1","title":"Done"}]`, nil, int64(7), now, now))

	boards, err := boardRepo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, "Two", boards[1].Title)
	assert.Len(t, boards[1].Columns, 1)
	assert.Empty(t, boards[1].Tasks)
	assert.Equal(t, int64(7), boards[1].Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_List_Empty(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "boards"`).
		WillReturnRows(sqlmock.NewRows(boardColumns))

	boards, err := boardRepo.List(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, boards)
	assert.NoError(t, mock.ExpectationsWereMet())
}
