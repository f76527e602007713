package main

import (
	"fmt"
	"os"

	"cooldeal/configs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	cfg    *configs.Config
	logger *zap.Logger
)

func main() {
	root := &cobra.Command{
		Use:           "cooldeal",
		Short:         "CoolDeal storefront API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = configs.LoadConfig()
			l, err := configs.NewLogger(cfg)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	root.AddCommand(serveCmd(), migrateCmd(), seedCmd(), cleanTokensCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDB connects and migrates; every command needs the schema in place.
func openDB() (*gorm.DB, error) {
	db, err := configs.ConnectionDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := configs.SetupDatabase(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := configs.SeedLookups(db); err != nil {
		return nil, fmt.Errorf("seed lookups: %w", err)
	}
	return db, nil
}
