package main

import (
	"salesnote/internal/infra/db"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return errors.Wrap(err, "connect database")
	}
	if err := db.Migrate(gormDB); err != nil {
		return errors.Wrap(err, "migrate")
	}

	log.Info().Msg("migration completed")
	return nil
}
