// Package cli implements the interactive QuietQuill shell: account
// registration and login, entry editing, listing, search, statistics and
// mood tracking, all over the journal core.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	"github.com/SidddhantJain/QuietQuill/internal/accounts"
	"github.com/SidddhantJain/QuietQuill/internal/config"
	"github.com/SidddhantJain/QuietQuill/internal/journal"
	"github.com/SidddhantJain/QuietQuill/internal/logging"
	"github.com/SidddhantJain/QuietQuill/internal/session"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	accounts *accounts.Service
	repo     *journal.Repository
	session  *session.Session
	db       *sql.DB
	reader   *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := accounts.OpenDatabase(ctx, cfg.AccountsDSN)
	if err != nil {
		return nil, err
	}

	repo := journal.NewRepository(cfg.EntriesDir, journal.NewMetadataStore(), log)

	return &App{
		config:   cfg,
		log:      log,
		accounts: accounts.NewSQLiteService(db),
		repo:     repo,
		db:       db,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) Close() {
	a.session.Close()
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Active()
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return a.session.Username
	}
	return "not logged in"
}
