// Package main serves the read-only gym MCP tools over stdio, for MCP
// clients that spawn a local process. The HTTP variant lives on the bot
// server under /mcp.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/2beens/gymbot/internal/config"
	"github.com/2beens/gymbot/internal/db"
	gymstatsmcp "github.com/2beens/gymbot/internal/gymstats/mcp"
	"github.com/2beens/gymbot/internal/gymstats/refdata"
	"github.com/2beens/gymbot/internal/gymstats/sets"
	"github.com/2beens/gymbot/internal/gymstats/stats"
	"github.com/2beens/gymbot/internal/logging"

	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	env        string
	configPath string
	logLevel   string
	maxConns   int32

	rootCmd = &cobra.Command{
		Use:           "gymstats_mcp",
		Short:         "Serve the gym MCP tools over stdio",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serveStdio(cmd.Context())
		},
	}
)

func init() {
	rootCmd.Flags().StringVar(&env, "env", "development", "environment [prod | production | dev | development]")
	rootCmd.Flags().StringVar(&configPath, "config", "./config.toml", "path for the TOML config file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level, logs go to stderr")
	rootCmd.Flags().Int32Var(&maxConns, "max-conns", 4, "max postgres connections")
}

func main() {
	// stdout carries the protocol
	log.SetOutput(os.Stderr)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Errorf("gymstats mcp: %s", err)
		os.Exit(1)
	}
}

func serveStdio(ctx context.Context) error {
	log.SetLevel(logging.GetLevel(logLevel))

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("GYMBOT_POSTGRES_PASS"),
		MaxConns:   maxConns,
	})
	if err != nil {
		return fmt.Errorf("db pool: %w", err)
	}
	defer dbPool.Close()

	svc := gymstatsmcp.NewContextService(
		gymstatsmcp.NewPoolSchemaRepo(dbPool),
		stats.NewService(sets.NewRepo(dbPool), cfg.Location()),
		refdata.NewService(refdata.NewRepo(dbPool), nil),
	)

	log.Debugf("serving gym mcp tools over stdio [%s]", env)
	return server.ServeStdio(gymstatsmcp.NewServer(svc, version()))
}

func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "dev"
	}
	return info.Main.Version
}
