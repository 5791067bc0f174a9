package service

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

// UserStore is the persistence the user directory needs.
type UserStore interface {
	List(ctx context.Context) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BoardStore is the persistence boards need. Upsert must replace a stored
// board atomically and return the persisted row.
type BoardStore interface {
	List(ctx context.Context) ([]model.Board, error)
	Upsert(ctx context.Context, board *model.Board) (*model.Board, error)
}

var (
	_ UserStore  = (*repository.UserRepository)(nil)
	_ BoardStore = (*repository.BoardRepository)(nil)
)

// directory resolves user ids to summaries for a single operation.
type directory map[string]*model.UserRef

func loadDirectory(ctx context.Context, users UserStore) (directory, error) {
	list, err := users.List(ctx)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	dir := make(directory, len(list))
	for i := range list {
		dir[list[i].ID.String()] = list[i].Summary()
	}
	return dir, nil
}

func (d directory) lookup(id string) *model.UserRef {
	ref, ok := d[id]
	if !ok {
		return nil
	}
	copied := *ref
	return &copied
}
