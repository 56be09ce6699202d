package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/2beens/gymbot/internal"
	"github.com/2beens/gymbot/internal/config"
	"github.com/2beens/gymbot/internal/logging"

	log "github.com/sirupsen/logrus"
)

// secrets never live in the config file.
type secrets struct {
	telegramToken    string
	apiTokenHash     string
	postgresPassword string
	redisPassword    string
	sentryDSN        string
	honeycombEnabled bool
}

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config [%s]: %s", *configPath, err)
	}

	sec := readSecrets()
	versionInfo := buildRevision()
	logging.Setup(logging.Params{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		Release:          versionInfo,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sec.sentryDSN,
		SentryServerName: "gymbot",
	})
	log.Infof("gymbot %s starting in [%s], listening on %s:%d", versionInfo, cfg.Environment, cfg.Host, cfg.Port)
	checkSecrets(cfg, sec)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo,
			TelegramToken:           sec.telegramToken,
			PostgresPassword:        sec.postgresPassword,
			RedisPassword:           sec.redisPassword,
			APITokenHash:            sec.apiTokenHash,
			HoneycombTracingEnabled: sec.honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(ctx, cfg.Host, cfg.Port)

	<-ctx.Done()
	log.Warnln("shutdown signal received")
	server.GracefulShutdown()
}

func readSecrets() secrets {
	return secrets{
		telegramToken:    os.Getenv("GYMBOT_TELEGRAM_TOKEN"),
		apiTokenHash:     os.Getenv("GYMBOT_API_TOKEN_HASH"),
		postgresPassword: os.Getenv("GYMBOT_POSTGRES_PASS"),
		redisPassword:    os.Getenv("GYMBOT_REDIS_PASS"),
		sentryDSN:        os.Getenv("SENTRY_DSN"),
		honeycombEnabled: os.Getenv("HONEYCOMB_ENABLED") == "true",
	}
}

// checkSecrets exits when the bot cannot run at all and warns about
// everything that only degrades it.
func checkSecrets(cfg *config.Config, sec secrets) {
	if sec.telegramToken == "" {
		log.Fatalln("telegram bot token not set, use GYMBOT_TELEGRAM_TOKEN")
	}
	if sec.apiTokenHash == "" {
		log.Errorln("api token hash not set, the HTTP API will reject all requests. use GYMBOT_API_TOKEN_HASH")
	}
	if sec.postgresPassword == "" {
		log.Warnln("postgres password not set, use GYMBOT_POSTGRES_PASS")
	}
	if sec.redisPassword == "" && cfg.RedisEnabled() {
		log.Errorln("redis password not set, use GYMBOT_REDIS_PASS")
	}
	if sec.honeycombEnabled && os.Getenv("HONEYCOMB_API_KEY") == "" {
		log.Warnln("honeycomb enabled but HONEYCOMB_API_KEY not set")
	}
	if os.Getenv("OTEL_SERVICE_NAME") == "" {
		log.Debugln("OTEL_SERVICE_NAME not set")
	}
}

// buildRevision returns the vcs revision stamped by the go tool, if any.
func buildRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			return setting.Value
		}
	}
	return info.Main.Version
}
