package service

import (
	"context"
	"fmt"
	"time"

	"taskboard/internal/model"

	log "github.com/sirupsen/logrus"
)

// BoardService reconciles submitted board documents into the board store.
// Writes are blind full replaces: there is no locking, no merge and no
// version comparison, so concurrent submissions of the same board id resolve
// to whichever upsert reaches the store last.
type BoardService struct {
	boards BoardStore
	users  UserStore
	now    func() time.Time
}

func NewBoardService(boards BoardStore, users UserStore) *BoardService {
	return &BoardService{boards: boards, users: users, now: time.Now}
}

// List returns every board expanded. An empty store is ErrNotFound.
func (s *BoardService) List(ctx context.Context) ([]model.BoardDocument, error) {
	docs, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return docs, nil
}

// Snapshot returns every board expanded; an empty store yields an empty,
// non-nil slice.
func (s *BoardService) Snapshot(ctx context.Context) ([]model.BoardDocument, error) {
	boards, err := s.boards.List(ctx)
	if err != nil {
		return nil, storeErr("list boards", err)
	}
	docs := make([]model.BoardDocument, 0, len(boards))
	if len(boards) == 0 {
		return docs, nil
	}
	dir, err := loadDirectory(ctx, s.users)
	if err != nil {
		return nil, err
	}
	for i := range boards {
		docs = append(docs, model.Expand(&boards[i], dir.lookup))
	}
	return docs, nil
}

// Upsert sanitizes one document and writes it, returning the persisted,
// expanded result.
func (s *BoardService) Upsert(ctx context.Context, doc model.BoardDocument) (*model.BoardDocument, error) {
	dir, err := loadDirectory(ctx, s.users)
	if err != nil {
		return nil, err
	}
	return s.upsert(ctx, doc, dir)
}

// Reconcile upserts every submitted board independently and returns the
// persisted results of those that succeeded. A board that fails validation
// or storage is logged and left out; it does not stop the others.
func (s *BoardService) Reconcile(ctx context.Context, docs []model.BoardDocument) ([]model.BoardDocument, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no boards submitted", ErrValidation)
	}
	dir, err := loadDirectory(ctx, s.users)
	if err != nil {
		return nil, err
	}

	saved := make([]model.BoardDocument, 0, len(docs))
	for _, doc := range docs {
		res, err := s.upsert(ctx, doc, dir)
		if err != nil {
			log.WithError(err).WithField("board", doc.ID).Warn("board not reconciled")
			continue
		}
		saved = append(saved, *res)
	}
	return saved, nil
}

func (s *BoardService) upsert(ctx context.Context, doc model.BoardDocument, dir directory) (*model.BoardDocument, error) {
	// Orphan tasks are dropped before the board is validated.
	kept := sanitizeTasks(doc.Tasks, dir)
	if dropped := len(doc.Tasks) - len(kept); dropped > 0 {
		log.WithFields(log.Fields{"board": doc.ID, "dropped": dropped}).Debug("dropped tasks without a valid creator")
	}
	doc.Tasks = kept

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	saved, err := s.boards.Upsert(ctx, doc.Record(s.now()))
	if err != nil {
		return nil, storeErr("upsert board", err)
	}
	out := model.Expand(saved, dir.lookup)
	return &out, nil
}

// sanitizeTasks drops tasks without a creator or whose creator is not a
// known user.
func sanitizeTasks(tasks []model.Task, dir directory) []model.Task {
	kept := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		creator := t.CreatedBy.RefID()
		if creator == "" || dir[creator] == nil {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}
