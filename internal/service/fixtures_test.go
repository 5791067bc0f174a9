package service

import (
	"time"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)

func newUser(name, username, password string) model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return model.User{
		ID:        uuid.New(),
		Name:      name,
		Username:  username,
		Password:  string(hash),
		Avatar:    model.Initials(name),
		CreatedAt: fixedNow,
	}
}

func ref(u model.User) *model.UserRef {
	return &model.UserRef{ID: u.ID.String()}
}

func boardDoc(id, title string, columns []model.Column, tasks ...model.Task) model.BoardDocument {
	return model.BoardDocument{
		ID:      id,
		Title:   title,
		Columns: columns,
		Tasks:   tasks,
	}
}

func cols(ids ...string) []model.Column {
	out := make([]model.Column, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Column{ID: id, Title: "Column " + id})
	}
	return out
}

func task(id, columnID string, creator *model.UserRef, assignees ...model.User) model.Task {
	t := model.Task{
		ID:        id,
		Title:     "Task " + id,
		Priority:  model.PriorityHigh,
		ColumnID:  columnID,
		CreatedBy: creator,
	}
	for _, a := range assignees {
		t.AssignedTo = append(t.AssignedTo, model.UserRef{ID: a.ID.String()})
	}
	return t
}
