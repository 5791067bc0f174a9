// Package seed fills an empty database with the demo team and board.
package seed

import (
	"context"
	"fmt"
	"time"

	"taskboard/internal/model"

	log "github.com/sirupsen/logrus"
)

type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

type Registrar interface {
	Register(ctx context.Context, name, username, password string) (*model.PublicUser, error)
}

type BoardUpserter interface {
	Upsert(ctx context.Context, doc model.BoardDocument) (*model.BoardDocument, error)
}

type demoUser struct {
	key, name, username, password string
}

var demoUsers = []demoUser{
	{"u1", "Nikhil Yadav", "nikhilyadav", "password1"},
	{"u2", "Emitrr", "emitrr", "password"},
	{"u3", "Priya Sharma", "priyasharma", "password2"},
	{"u4", "Aman Gupta", "amangupta", "password3"},
}

// Run seeds only when no user exists yet and reports whether it did.
func Run(ctx context.Context, counter UserCounter, users Registrar, boards BoardUpserter) (bool, error) {
	n, err := counter.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		log.Info("database already seeded")
		return false, nil
	}

	ids := make(map[string]string, len(demoUsers))
	for _, u := range demoUsers {
		created, err := users.Register(ctx, u.name, u.username, u.password)
		if err != nil {
			return false, fmt.Errorf("seed user %s: %w", u.username, err)
		}
		ids[u.key] = created.ID
	}

	if _, err := boards.Upsert(ctx, demoBoard(ids)); err != nil {
		return false, fmt.Errorf("seed board: %w", err)
	}
	log.WithField("users", len(demoUsers)).Info("database seeded")
	return true, nil
}

func demoBoard(ids map[string]string) model.BoardDocument {
	refs := func(keys ...string) []model.UserRef {
		out := make([]model.UserRef, 0, len(keys))
		for _, k := range keys {
			out = append(out, model.UserRef{ID: ids[k]})
		}
		return out
	}
	creator := func(key string) *model.UserRef {
		return &model.UserRef{ID: ids[key]}
	}

	return model.BoardDocument{
		ID:          "1",
		Title:       "Website Redesign Project",
		Description: "Complete redesign of with modern UI/UX",
		Columns: []model.Column{
			{ID: "1", Title: "To Do"},
			{ID: "2", Title: "In Progress"},
			{ID: "3", Title: "Review"},
			{ID: "4", Title: "Done"},
		},
		Tasks: []model.Task{
			{
				ID:          "1",
				Title:       "Create wireframes for homepage",
				Description: "Design **wireframes** for the new homepage layout with focus on *user experience*",
				Priority:    model.PriorityHigh,
				DueDate:     model.NewDate(2024, time.August, 1),
				AssignedTo:  refs("u1", "u2"),
				CreatedBy:   creator("u2"),
				ColumnID:    "1",
			},
			{
				ID:          "2",
				Title:       "Develop API for user authentication",
				Description: "Build and test the user auth API endpoints.",
				Priority:    model.PriorityHigh,
				DueDate:     model.NewDate(2024, time.August, 5),
				AssignedTo:  refs("u1"),
				CreatedBy:   creator("u1"),
				ColumnID:    "1",
			},
			{
				ID:          "3",
				Title:       "Design database schema",
				Description: "Create the database schema for all application models.",
				Priority:    model.PriorityMedium,
				DueDate:     model.NewDate(2024, time.August, 3),
				AssignedTo:  refs("u3"),
				CreatedBy:   creator("u4"),
				ColumnID:    "2",
			},
		},
	}
}
