package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/repository"
	"taskboard/internal/seed"
	"taskboard/internal/service"

	"github.com/docopt/docopt-go"
	log "github.com/sirupsen/logrus"
)

const KanbanCtlVersion = "0.1.0"

func main() {
	usage := `Task board control.

The database url defaults to DATABASE_URL.

Usage:
    kanbanctl migrate [--database=<url>]
    kanbanctl seed [--database=<url>]
    kanbanctl users list [--database=<url>]
    kanbanctl users delete <id> [--database=<url>]
    kanbanctl -h | --help
    kanbanctl --version

Options:
    -h --help          Show this screen.
    --version          Show version.
    --database=<url>   Postgres connection url.`

	opts, err := docopt.ParseArgs(usage, os.Args[1:], KanbanCtlVersion)
	if err != nil {
		log.Fatal(err)
	}

	cfg := config.Load()
	if url, _ := opts.String("--database"); url != "" {
		cfg.DatabaseURL = url
	}

	if migrate_, _ := opts.Bool("migrate"); migrate_ {
		err = migrate(cfg)
	} else if seed_, _ := opts.Bool("seed"); seed_ {
		err = seedDatabase(cfg)
	} else if list_, _ := opts.Bool("list"); list_ {
		err = listUsers(cfg)
	} else if delete_, _ := opts.Bool("delete"); delete_ {
		id, _ := opts.String("<id>")
		err = deleteUser(cfg, id)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func migrate(cfg *config.Config) error {
	return database.Migrate(cfg.DatabaseURL)
}

type services struct {
	userRepo *repository.UserRepository
	users    *service.UserService
	boards   *service.BoardService
}

func open(cfg *config.Config) (*services, error) {
	db, err := database.Open(cfg.DatabaseURL, cfg.Debug)
	if err != nil {
		return nil, err
	}
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	return &services{
		userRepo: userRepo,
		users:    service.NewUserService(userRepo, boardRepo),
		boards:   service.NewBoardService(boardRepo, userRepo),
	}, nil
}

func seedDatabase(cfg *config.Config) error {
	s, err := open(cfg)
	if err != nil {
		return err
	}
	seeded, err := seed.Run(context.Background(), s.userRepo, s.users, s.boards)
	if err != nil {
		return err
	}
	if !seeded {
		fmt.Println("users already present, nothing seeded")
	}
	return nil
}

func listUsers(cfg *config.Config) error {
	s, err := open(cfg)
	if err != nil {
		return err
	}
	users, err := s.users.List(context.Background())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tAVATAR")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Name, u.Avatar)
	}
	return w.Flush()
}

func deleteUser(cfg *config.Config, id string) error {
	s, err := open(cfg)
	if err != nil {
		return err
	}
	return s.users.Delete(context.Background(), id)
}
