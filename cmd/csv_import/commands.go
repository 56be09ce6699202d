package main

import (
	"context"
	"fmt"
	"os"

	"github.com/2beens/gymbot/internal/config"
	"github.com/2beens/gymbot/internal/db"
	"github.com/2beens/gymbot/internal/gymstats/refdata"
	"github.com/2beens/gymbot/internal/gymstats/sets"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	env        string
	configPath string
	verbose    bool

	rootCmd = &cobra.Command{
		Use:           "csv_import",
		Short:         "Import legacy gym CSV files into postgres",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	exercisesCmd = &cobra.Command{
		Use:   "exercises [file]",
		Short: "Ensure every muscle group and exercise listed in the file (columns group,exercise)",
		Args:  cobra.ExactArgs(1),
		RunE: withImporter(func(ctx context.Context, imp *Importer, args []string) error {
			_, err := imp.ImportExercises(ctx, args[0])
			return err
		}),
	}

	numbersCmd = &cobra.Command{
		Use:   "numbers [file]",
		Short: "Ensure the weight and rep options listed in the file (column Numbers)",
		Args:  cobra.ExactArgs(1),
		RunE: withImporter(func(ctx context.Context, imp *Importer, args []string) error {
			_, err := imp.ImportNumbers(ctx, args[0])
			return err
		}),
	}

	statsCmd = &cobra.Command{
		Use:   "stats [dir]",
		Short: "Append the sets from every *_stats.csv file in the directory",
		Args:  cobra.ExactArgs(1),
		RunE: withImporter(func(ctx context.Context, imp *Importer, args []string) error {
			result, err := imp.ImportStats(ctx, args[0])
			log.Infof("stats: %d/%d rows imported", result.Imported, result.Rows)
			return err
		}),
	}

	allCmd = &cobra.Command{
		Use:   "all [dir]",
		Short: "Import exercises.csv, numbers.csv and the stats files found in the directory",
		Args:  cobra.ExactArgs(1),
		RunE: withImporter(func(ctx context.Context, imp *Importer, args []string) error {
			return imp.ImportAll(ctx, args[0])
		}),
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment [prod | production | dev | development]")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.toml", "path for the TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(exercisesCmd, numbersCmd, statsCmd, allCmd)
}

func withImporter(run func(ctx context.Context, imp *Importer, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		imp := NewImporter(refdata.NewService(refdata.NewRepo(pool), nil), sets.NewRepo(pool))
		return run(ctx, imp, args)
	}
}

func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	password := os.Getenv("GYMBOT_POSTGRES_PASS")
	if password == "" {
		log.Warnln("postgres password not set. use GYMBOT_POSTGRES_PASS")
	}

	params := db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: password,
		MaxConns:   2,
	}
	if cfg.RunMigrations {
		if err := db.RunMigrations(params.ConnString()); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	pool, err := db.NewDBPool(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("db pool: %w", err)
	}

	return pool, nil
}
