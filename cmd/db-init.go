package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	adapterrepo "github.com/nplqhub/revise/internal/adapter/repository"
	"github.com/nplqhub/revise/internal/infrastructure/config"
	"github.com/nplqhub/revise/internal/infrastructure/database"
	"github.com/nplqhub/revise/internal/infrastructure/server"
	"github.com/nplqhub/revise/internal/seed"
)

const (
	seedAdminUserKey = "seed.admin.username"
	seedAdminPassKey = "seed.admin.password"
)

// dbInitCmd runs schema migration and seeds the built-in catalog plus the
// bootstrap admin account.
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "Initialize the database schema and seed the revision catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		schemaOnly, _ := cmd.Flags().GetBool("schema-only")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger, err := server.NewLogger(cfg)
		if err != nil {
			return err
		}
		store, cleanup, err := database.NewStore(cfg)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer cleanup()

		if err := database.Migrate(ctx, store); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("schema migrated")
		if schemaOnly {
			return nil
		}

		catalogRepo := adapterrepo.NewContentRepository(store, logger)
		if err := seed.Catalog(ctx, catalogRepo); err != nil {
			return err
		}
		logger.Infof("seeded %d flashcards and %d quiz questions",
			len(seed.Flashcards()), len(seed.QuizQuestions()))

		username := viper.GetString(seedAdminUserKey)
		password := viper.GetString(seedAdminPassKey)
		if username != "" {
			users := adapterrepo.NewUserRepository(store)
			if err := seed.Admin(ctx, users, username, password); err != nil {
				return err
			}
			logger.Infof("ensured admin account: %s", username)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbInitCmd)
	dbInitCmd.Flags().Bool("schema-only", false, "run migration without seeding")
	dbInitCmd.Flags().String("admin-username", "admin", "bootstrap admin username")
	dbInitCmd.Flags().String("admin-password", "nplq2024", "bootstrap admin password")
	bindFlagToViper(seedAdminUserKey, dbInitCmd.Flags().Lookup("admin-username"))
	bindFlagToViper(seedAdminPassKey, dbInitCmd.Flags().Lookup("admin-password"))
}
