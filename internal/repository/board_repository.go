package repository

import (
	"context"

	"taskboard/internal/model"

	"gorm.io/gorm"
)

// upsertBoardSQL replaces every field of an existing board in one statement
// and bumps its version. created_at survives the replace.
const upsertBoardSQL = `INSERT INTO boards (id, title, description, "columns", tasks, version, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, 1, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	title = EXCLUDED.title,
	description = EXCLUDED.description,
	"columns" = EXCLUDED."columns",
	tasks = EXCLUDED.tasks,
	version = boards.version + 1,
	updated_at = EXCLUDED.updated_at
RETURNING id, title, description, "columns", tasks, version, created_at, updated_at`

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) List(ctx context.Context) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).Order("created_at").Find(&boards).Error
	return boards, err
}

// Upsert creates the board or fully replaces the stored one with the same id,
// returning the row as persisted.
func (r *BoardRepository) Upsert(ctx context.Context, board *model.Board) (*model.Board, error) {
	var saved model.Board
	err := r.db.WithContext(ctx).Raw(upsertBoardSQL,
		board.ID,
		board.Title,
		board.Description,
		board.Columns,
		board.Tasks,
		board.CreatedAt,
		board.UpdatedAt,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
