package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jmoiron/sqlx"
	"github.com/templui/soulsync/internal/app"
	"github.com/templui/soulsync/internal/config"
	"github.com/templui/soulsync/internal/db"
	"github.com/templui/soulsync/internal/localstore"
	"github.com/templui/soulsync/internal/logger"
)

// withApp opens the configured database and wires the services without
// restoring the session or touching object storage.
func withApp(ctx context.Context, fn func(a *app.App) error) error {
	cfg := config.Load()
	logger.Init(logger.Options{AppName: cfg.AppName, Development: cfg.IsDevelopment()})

	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close(database)

	a, err := app.Wire(ctx, cfg, localstore.NewSQLStore(database), nil)
	if err != nil {
		return err
	}
	a.DB = database
	return fn(a)
}

func openDB(cfg *config.Config) (*sqlx.DB, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return database, nil
}

func table(w io.Writer, header string, rows [][]any) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, row := range rows {
		for i, col := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, col)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
