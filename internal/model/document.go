package model

import (
	"errors"
	"fmt"
	"time"
)

// BoardDocument is the wire form of a board exchanged over REST and the
// realtime channel.
type BoardDocument struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Columns     []Column  `json:"columns"`
	Tasks       []Task    `json:"tasks"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	DueDate     *Date     `json:"dueDate,omitempty"`
	AssignedTo  []UserRef `json:"assignedTo"`
	CreatedBy   *UserRef  `json:"createdBy"`
	ColumnID    string    `json:"columnId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Snapshot is the payload of every realtime event.
type Snapshot struct {
	Boards []BoardDocument `json:"boards"`
}

// Validate checks the fields a board document cannot be stored without.
// Task column references are not checked.
func (d *BoardDocument) Validate() error {
	if d.ID == "" {
		return errors.New("board id is required")
	}
	if d.Title == "" {
		return fmt.Errorf("board %s: title is required", d.ID)
	}
	for i, c := range d.Columns {
		if c.ID == "" || c.Title == "" {
			return fmt.Errorf("board %s: column %d needs id and title", d.ID, i)
		}
	}
	for i, t := range d.Tasks {
		if t.ID == "" || t.Title == "" || t.ColumnID == "" {
			return fmt.Errorf("board %s: task %d needs id, title and columnId", d.ID, i)
		}
	}
	return nil
}

// Record converts the document into its stored form. Missing timestamps are
// filled with now and assignees are reduced to a set of ids.
func (d *BoardDocument) Record(now time.Time) *Board {
	b := &Board{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Columns:     make(ColumnList, 0, len(d.Columns)),
		Tasks:       make(TaskList, 0, len(d.Tasks)),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   now,
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	for _, c := range d.Columns {
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		b.Columns = append(b.Columns, c)
	}
	for _, t := range d.Tasks {
		b.Tasks = append(b.Tasks, t.record(now))
	}
	return b
}

func (t *Task) record(now time.Time) TaskRecord {
	r := TaskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    NormalizePriority(t.Priority),
		AssignedTo:  make([]string, 0, len(t.AssignedTo)),
		CreatedBy:   t.CreatedBy.RefID(),
		ColumnID:    t.ColumnID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.DueDate != nil && !t.DueDate.IsZero() {
		due := *t.DueDate
		r.DueDate = &due
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}
	seen := make(map[string]struct{}, len(t.AssignedTo))
	for _, ref := range t.AssignedTo {
		if ref.ID == "" {
			continue
		}
		if _, dup := seen[ref.ID]; dup {
			continue
		}
		seen[ref.ID] = struct{}{}
		r.AssignedTo = append(r.AssignedTo, ref.ID)
	}
	return r
}

// Expand builds the wire document for a stored board, resolving user ids
// through lookup. Unknown assignees are omitted and an unknown creator
// becomes null.
func Expand(b *Board, lookup func(id string) *UserRef) BoardDocument {
	d := BoardDocument{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Columns:     make([]Column, len(b.Columns)),
		Tasks:       make([]Task, 0, len(b.Tasks)),
		Version:     b.Version,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	copy(d.Columns, b.Columns)
	for _, r := range b.Tasks {
		t := Task{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Priority:    r.Priority,
			DueDate:     r.DueDate,
			AssignedTo:  make([]UserRef, 0, len(r.AssignedTo)),
			ColumnID:    r.ColumnID,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		}
		for _, id := range r.AssignedTo {
			if ref := lookup(id); ref != nil {
				t.AssignedTo = append(t.AssignedTo, *ref)
			}
		}
		if r.CreatedBy != "" {
			t.CreatedBy = lookup(r.CreatedBy)
		}
		d.Tasks = append(d.Tasks, t)
	}
	return d
}
