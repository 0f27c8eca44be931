package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"nevernoshow/internal/config"
	"nevernoshow/internal/services/database"
	s3service "nevernoshow/internal/services/s3"
	"nevernoshow/internal/storage"
	"nevernoshow/internal/utils"
)

type configLoader func() (*config.Config, error)

// admin carries what every command needs.
type admin struct {
	load    configLoader
	out     io.Writer
	backend string
	timeout time.Duration
}

func newRootCmd(load configLoader, out io.Writer) *cobra.Command {
	a := &admin{load: load, out: out}

	rootCmd := &cobra.Command{
		Use:           "nevernoshow-admin",
		Short:         "NeverNoShow storage administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&a.backend, "backend", "", "storage backend (local or sql); defaults to STORAGE_BACKEND")
	rootCmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 60*time.Second, "overall command timeout")

	rootCmd.AddCommand(
		a.initCmd(),
		a.seedCmd(),
		a.viewCmd(),
		a.checkCmd(),
		a.reportCmd(),
	)
	return rootCmd
}

func (a *admin) config() (*config.Config, error) {
	cfg, err := a.load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if a.backend != "" {
		cfg.StorageBackend = a.backend
	}
	return cfg, nil
}

// withStore opens the configured backend for the duration of fn.
func (a *admin) withStore(cmd *cobra.Command, fn func(ctx context.Context, store storage.Store) error) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
	defer cancel()

	store, err := storage.New(ctx, cfg, utils.GetLogger())
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(ctx, store)
}

func (a *admin) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create tables or collections and seed the sample landlords",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, store storage.Store) error {
				if err := store.Initialize(ctx); err != nil {
					return err
				}
				if err := store.Seed(ctx); err != nil {
					return err
				}
				fmt.Fprintln(a.out, "Database initialized and seeded successfully")
				return nil
			})
		},
	}
}

func (a *admin) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample landlords that are missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, store storage.Store) error {
				if err := store.Seed(ctx); err != nil {
					return err
				}
				landlords, err := store.ListLandlords(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Seeded; %d landlords present\n", len(landlords))
				return nil
			})
		},
	}
}

func (a *admin) viewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Print record counts, landlords and optionally a landlord's submissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			landlordID, _ := cmd.Flags().GetString("landlord")

			return a.withStore(cmd, func(ctx context.Context, store storage.Store) error {
				stats, err := store.Stats(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Landlords: %d  Tenants: %d  Submissions: %d\n\n",
					stats.Landlords, stats.Tenants, stats.Submissions)

				landlords, err := store.ListLandlords(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%-10s  %-20s  %-28s  %-10s  %s\n", "ID", "Name", "Email", "Status", "Submissions")
				for _, l := range landlords {
					fmt.Fprintf(a.out, "%-10s  %-20s  %-28s  %-10s  %d\n", l.ID, l.Name, l.Email, l.VerificationStatus, l.TotalSubmissions)
				}

				if landlordID == "" {
					return nil
				}

				submissions, err := store.GetLandlordSubmissions(ctx, landlordID)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "\nSubmissions for %s:\n", landlordID)
				for _, s := range submissions {
					fmt.Fprintf(a.out, "%s  %-24s  %3d%%  %-2s  %-9s  %s\n",
						s.SubmittedAt.Format(time.RFC3339), s.TenantEmail, s.CredibilityScore.Percentage,
						s.CredibilityScore.Grade, s.NoShowRisk.Level, s.ID)
				}
				return nil
			})
		},
	}
	cmd.Flags().String("landlord", "", "also list this landlord's submissions")
	return cmd
}

func (a *admin) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Test the PostgreSQL connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			start := time.Now()
			db, err := database.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			var version string
			if err := db.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
				return fmt.Errorf("failed to query server version: %w", err)
			}

			utils.GetLogger().Info("Database connection OK", utils.Duration("elapsed", time.Since(start)))
			fmt.Fprintf(a.out, "Connected to %s:%d/%s\n%s\n", cfg.DBHost, cfg.DBPort, cfg.DBName, version)
			return nil
		},
	}
}

func (a *admin) reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <landlordId> <submissionId>",
		Short: "Print an archived submission report from S3",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			if cfg.S3Bucket == "" {
				return fmt.Errorf("S3_BUCKET is not set")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()

			reports, err := s3service.NewService(ctx, cfg)
			if err != nil {
				return err
			}
			data, err := reports.DownloadFile(ctx, s3service.ReportKey(args[0], args[1]))
			if err != nil {
				return err
			}
			_, err = a.out.Write(append(data, '\n'))
			return err
		},
	}
}
