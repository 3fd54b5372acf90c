package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andreprog02/saas-sst/internal/config"
	"github.com/andreprog02/saas-sst/internal/database"
	"github.com/andreprog02/saas-sst/internal/logger"
	"github.com/andreprog02/saas-sst/internal/models"
	"github.com/andreprog02/saas-sst/internal/repositories"
)

// connect loads configuration and opens the database for one command run
func connect() (*database.Connection, *logger.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewLogger(cfg)
	db, err := database.NewConnection(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, log, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Schema and reference data management for the SST compliance service",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Create or update every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, log, err := connect()
			if err != nil {
				return err
			}
			defer db.Close()

			log.Info("Running migrations")
			if err := database.NewMigrator(db).Up(); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			log.Info("Migrations completed successfully")
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Drop every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, log, err := connect()
			if err != nil {
				return err
			}
			defer db.Close()

			log.Warn("Rolling back migrations")
			if err := database.NewMigrator(db).Down(); err != nil {
				return fmt.Errorf("failed to rollback migrations: %w", err)
			}
			log.Info("Migrations rolled back successfully")
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show which tables exist and the connection pool state",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := connect()
			if err != nil {
				return err
			}
			defer db.Close()

			stats, err := db.Stats()
			if err != nil {
				return fmt.Errorf("failed to get connection stats: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pool: %d/%d open, %d in use, %d idle\n", stats.Open, stats.MaxOpen, stats.InUse, stats.Idle)

			tables, err := database.NewMigrator(db).Status()
			if err != nil {
				return fmt.Errorf("failed to inspect tables: %w", err)
			}
			missing := 0
			for _, t := range tables {
				state := "ok"
				if !t.Exists {
					state = "missing"
					missing++
				}
				fmt.Fprintf(out, "  %-28s %s\n", t.Table, state)
			}
			if missing > 0 {
				fmt.Fprintf(out, "%d tables missing - run 'migrate up'\n", missing)
			}
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "seed-norms",
		Short: "Insert the regulatory norm catalog; existing codes are left untouched",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, log, err := connect()
			if err != nil {
				return err
			}
			defer db.Close()

			created, err := repositories.NewNormRepository(db).Seed(context.Background(), models.DefaultNorms)
			if err != nil {
				return fmt.Errorf("failed to seed norms: %w", err)
			}
			log.WithField("created", created).Info("Regulatory norms seeded")
			return nil
		},
	})

	var tenant models.Tenant
	createTenant := &cobra.Command{
		Use:   "create-tenant",
		Short: "Register a company and print its tenant ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, log, err := connect()
			if err != nil {
				return err
			}
			defer db.Close()

			tenant.IsActive = true
			if err := models.NewValidationService().ValidateStruct(&tenant); err != nil {
				return err
			}
			if err := repositories.NewTenantRepository(db).Create(context.Background(), &tenant); err != nil {
				return fmt.Errorf("failed to create tenant: %w", err)
			}
			log.WithTenant(tenant.ID).Info("Tenant created")
			fmt.Fprintln(cmd.OutOrStdout(), tenant.ID)
			return nil
		},
	}
	createTenant.Flags().StringVar(&tenant.TradeName, "trade-name", "", "trade name")
	createTenant.Flags().StringVar(&tenant.LegalName, "legal-name", "", "registered legal name")
	createTenant.Flags().StringVar(&tenant.TaxID, "tax-id", "", "company tax ID (CNPJ)")
	createTenant.Flags().StringVar(&tenant.ContactEmail, "email", "", "contact email")
	rootCmd.AddCommand(createTenant)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
