package main

import (
	"context"
	"fmt"
	"os"

	"github.com/2beens/footsies/internal"
	"github.com/2beens/footsies/internal/config"
	"github.com/2beens/footsies/internal/logging"
	"github.com/2beens/footsies/internal/profile"
	"github.com/2beens/footsies/internal/skills"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	env        string
	configPath string
	logLevel   string

	cfg     *config.Config
	storage *internal.Storage
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "footsies",
		Short:        "footsies admin tools",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logging.Setup(logging.LoggerSetupParams{
				LogToStdout: true,
				LogLevel:    logLevel,
			})
			// xp simulation is pure, no config or storage needed
			if cmd.Annotations["storage"] != "true" {
				return nil
			}

			var err error
			cfg, err = config.Load(env, configPath)
			if err != nil {
				return err
			}
			storage, err = internal.OpenStorage(cmd.Context(), cfg, false)
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if storage != nil {
				if err := storage.Close(); err != nil {
					log.Errorf("close storage: %s", err)
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "environment [prod | production | dev | development]")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config.toml", "path for the TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "error", "log level")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(questsCmd())
	rootCmd.AddCommand(xpCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// storageCommand marks cmd as one that needs the configured storage opened.
func storageCommand(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations["storage"] = "true"
	return cmd
}

func migrateCmd() *cobra.Command {
	return storageCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the footsies tables and indexes when missing",
		RunE: func(_ *cobra.Command, _ []string) error {
			// opening the storage already applied the schema
			fmt.Printf("schema up to date [%s]\n", cfg.StorageDriver)
			return nil
		},
	})
}

func registryAndProfile(ctx context.Context, username string) (*skills.Registry, *profile.Profile, error) {
	registry, err := skills.NewRegistry(cfg.Skills.Extra...)
	if err != nil {
		return nil, nil, err
	}
	p, err := storage.Profiles.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, fmt.Errorf("get profile [%s]: %w", username, err)
	}
	p.EnsureSkills(registry.All())
	return registry, p, nil
}
