package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users    UserStore
	boards   BoardStore
	hashCost int
	now      func() time.Time
}

func NewUserService(users UserStore, boards BoardStore) *UserService {
	return &UserService{
		users:    users,
		boards:   boards,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// List returns every user with the credential stripped.
func (s *UserService) List(ctx context.Context) ([]model.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	out := make([]model.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}

func (s *UserService) Register(ctx context.Context, name, username, password string) (*model.PublicUser, error) {
	if name == "" || username == "" || password == "" {
		return nil, fmt.Errorf("%w: name, username and password are required", ErrValidation)
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, storeErr("find user", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %q already exists", ErrConflict, username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:        uuid.New(),
		Name:      name,
		Username:  username,
		Password:  string(hash),
		Avatar:    model.Initials(name),
		CreatedAt: s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, fmt.Errorf("%w: username %q already exists", ErrConflict, username)
		}
		return nil, storeErr("create user", err)
	}

	public := user.Public()
	return &public, nil
}

func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.PublicUser, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, storeErr("find user", err)
	}
	if user == nil {
		return nil, ErrAuth
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrAuth
	}
	public := user.Public()
	return &public, nil
}

// Delete removes the user and scrubs every reference to it from all boards:
// the id leaves each assignee set and creator fields naming it are cleared.
// Only boards that changed are written back.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if uid, err := uuid.Parse(id); err == nil {
		if err := s.users.Delete(ctx, uid); err != nil {
			return storeErr("delete user", err)
		}
	}

	boards, err := s.boards.List(ctx)
	if err != nil {
		return storeErr("list boards", err)
	}

	changed := 0
	for i := range boards {
		if !scrubUser(&boards[i], id) {
			continue
		}
		boards[i].UpdatedAt = s.now()
		if _, err := s.boards.Upsert(ctx, &boards[i]); err != nil {
			return storeErr("upsert board", err)
		}
		changed++
	}

	log.WithFields(log.Fields{"user": id, "boards": changed}).Info("user deleted")
	return nil
}

func scrubUser(b *model.Board, id string) bool {
	changed := false
	for i := range b.Tasks {
		t := &b.Tasks[i]
		kept := t.AssignedTo[:0]
		for _, a := range t.AssignedTo {
			if a == id {
				changed = true
				continue
			}
			kept = append(kept, a)
		}
		t.AssignedTo = kept
		if t.CreatedBy == id {
			t.CreatedBy = ""
			changed = true
		}
	}
	return changed
}
