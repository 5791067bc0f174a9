// Package storetest provides in-memory stores for tests. They honour the
// same contract as the gorm repositories: upsert is an atomic full replace
// that bumps the board version.
package storetest

import (
	"context"
	"errors"
	"sort"
	"sync"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
)

type UserStore struct {
	mu    sync.Mutex
	users []model.User
	// Err, when set, is returned by every call.
	Err error
}

func NewUserStore(users ...model.User) *UserStore {
	return &UserStore{users: append([]model.User(nil), users...)}
}

func (s *UserStore) List(ctx context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]model.User(nil), s.users...), nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.users)), nil
}

func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, u := range s.users {
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}
	s.users = append(s.users, *user)
	return nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	kept := s.users[:0]
	for _, u := range s.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.users = kept
	return nil
}

type BoardStore struct {
	mu     sync.Mutex
	boards map[string]model.Board
	writes int
	// Err, when set, is returned by every call.
	Err error
	// FailIDs makes upserts of the listed board ids fail.
	FailIDs map[string]bool
}

var ErrInjected = errors.New("injected store failure")

func NewBoardStore(boards ...model.Board) *BoardStore {
	s := &BoardStore{boards: make(map[string]model.Board)}
	for _, b := range boards {
		if b.Version == 0 {
			b.Version = 1
		}
		s.boards[b.ID] = clone(b)
	}
	return s
}

func (s *BoardStore) List(ctx context.Context) ([]model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Board, 0, len(s.boards))
	for _, b := range s.boards {
		out = append(out, clone(b))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *BoardStore) Upsert(ctx context.Context, board *model.Board) (*model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.FailIDs[board.ID] {
		return nil, ErrInjected
	}
	next := clone(*board)
	if prev, ok := s.boards[board.ID]; ok {
		next.Version = prev.Version + 1
		next.CreatedAt = prev.CreatedAt
	} else {
		next.Version = 1
	}
	s.boards[board.ID] = next
	s.writes++
	saved := clone(next)
	return &saved, nil
}

// Writes counts successful upserts.
func (s *BoardStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Get returns the stored board with the given id.
func (s *BoardStore) Get(id string) (model.Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.boards[id]
	return clone(b), ok
}

func clone(b model.Board) model.Board {
	b.Columns = append(model.ColumnList(nil), b.Columns...)
	tasks := make(model.TaskList, len(b.Tasks))
	for i, t := range b.Tasks {
		t.AssignedTo = append([]string(nil), t.AssignedTo...)
		tasks[i] = t
	}
	b.Tasks = tasks
	return b
}
