package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/simp-lee/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/simp-lee/agencyhub/internal/app"
	"github.com/simp-lee/agencyhub/internal/config"
	"github.com/simp-lee/agencyhub/internal/module/auth"
	"github.com/simp-lee/agencyhub/internal/pkg"
	"github.com/simp-lee/agencyhub/internal/store"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a, err := app.New(cfg)
			if err != nil {
				return fmt.Errorf("create app: %w", err)
			}
			return a.Run()
		},
	}
}

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(*configPath, func(db *gorm.DB, log *logger.Logger) error {
				if err := store.Migrate(cmd.Context(), db); err != nil {
					return err
				}
				log.Info("migration completed")
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			})
		},
	}
}

func newCreateAdminCmd(configPath *string) *cobra.Command {
	var req auth.RegisterRequest

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a dashboard account",
		Long: "Create a dashboard account. The password may also come from the\n" +
			"AGENCYHUB_ADMIN_PASSWORD environment variable to keep it out of shell history.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Password == "" {
				req.Password = os.Getenv("AGENCYHUB_ADMIN_PASSWORD")
			}
			if err := req.Validate(); err != nil {
				return app.DescribeError(err)
			}
			return withDatabase(*configPath, func(db *gorm.DB, log *logger.Logger) error {
				svcs := app.NewServices(db, pkg.NewBackground(log.Logger, time.Second), nil)
				user, err := svcs.Auth.Register(cmd.Context(), &req)
				if err != nil {
					return app.DescribeError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s account %s (%s)\n", user.Role, user.Email, user.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&req.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "login e-mail")
	cmd.Flags().StringVar(&req.Password, "password", "", "password (8-72 characters)")
	cmd.Flags().StringVar(&req.Role, "role", "", "role: admin or editor (default admin)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newSeedCmd(configPath *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load site content from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open seed file: %w", err)
			}
			defer f.Close()

			return withDatabase(*configPath, func(db *gorm.DB, log *logger.Logger) error {
				bg := pkg.NewBackground(log.Logger, time.Second)
				report, err := app.Seed(cmd.Context(), app.NewServices(db, bg, nil), f, log.Logger)
				for section, n := range report {
					fmt.Fprintf(cmd.OutOrStdout(), "%-16s created=%d skipped=%d\n", section, n.Created, n.Skipped)
				}
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "configs/seed.yaml", "seed file")
	return cmd
}

// withDatabase loads the configuration, opens the logger and database for a
// one-shot command, and closes both when fn returns.
func withDatabase(configPath string, fn func(db *gorm.DB, log *logger.Logger) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer log.Close()

	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return fmt.Errorf("setup database: %w", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := config.PingDatabase(ctx, db); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return fn(db, log)
}
