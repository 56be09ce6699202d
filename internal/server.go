package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/gymbot/internal/config"
	"github.com/2beens/gymbot/internal/db"
	"github.com/2beens/gymbot/internal/gymstats/flow"
	gymstatsmcp "github.com/2beens/gymbot/internal/gymstats/mcp"
	"github.com/2beens/gymbot/internal/gymstats/refdata"
	"github.com/2beens/gymbot/internal/gymstats/sets"
	"github.com/2beens/gymbot/internal/gymstats/stats"
	"github.com/2beens/gymbot/internal/middleware"
	"github.com/2beens/gymbot/internal/telegram"
	"github.com/2beens/gymbot/internal/telemetry/metrics"
	"github.com/2beens/gymbot/internal/telemetry/tracing"
	"github.com/2beens/gymbot/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

const (
	gymstatsAPIRequestsPerMin = 120
	maxRequestBodyBytes       = 1 << 20
)

type dbPinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string
	apiTokenHash      string

	config      *config.Config
	dbPool      *pgxpool.Pool
	healthCheck dbPinger
	redisClient *redis.Client

	statsService *stats.Service
	mcpService   *gymstatsmcp.ContextService
	bot          *telegram.Bot
	botCancel    context.CancelFunc
	botDone      chan struct{}

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	TelegramToken           string
	PostgresPassword        string
	RedisPassword           string
	APITokenHash            string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	dbParams := db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	}

	if cfg.RunMigrations {
		if err := db.RunMigrations(dbParams.ConnString()); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}

	dbPool, err := db.NewDBPool(ctx, dbParams)
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("gymbot", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	var rdb *redis.Client
	if cfg.RedisEnabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})
		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	} else {
		log.Warnln("redis not configured: update de-dup and throttling disabled")
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "gymbot", rdb)
	if err != nil {
		return nil, err
	}

	refService := refdata.NewService(refdata.NewRepo(dbPool), nil)
	setsRepo := sets.NewRepo(dbPool)
	statsService := stats.NewService(setsRepo, cfg.Location())

	engine := flow.NewEngine(
		flow.NewSessionStore(cfg.SessionIdleTimeout(), metricsManager),
		refService,
		setsRepo,
		statsService,
		flow.Config{
			Location:     cfg.Location(),
			LookbackDays: cfg.StatsLookbackDays,
		},
		metricsManager,
	)

	botAPI, err := telegram.NewBotAPI(params.TelegramToken, cfg.TelegramPollTimeoutSec)
	if err != nil {
		return nil, fmt.Errorf("telegram bot api: %w", err)
	}
	log.Infof("authorized on telegram account [%s]", botAPI.Self.UserName)

	botParams := telegram.BotParams{
		API:              botAPI,
		Engine:           engine,
		ActionsPerMinute: cfg.ActionsPerMinute,
		Workers:          cfg.UpdateWorkers,
		PollTimeoutSec:   cfg.TelegramPollTimeoutSec,
		MetricsManager:   metricsManager,
	}
	if rdb != nil {
		botParams.Dedup = telegram.NewDeduplicator(rdb)
		botParams.Limiter = redis_rate.NewLimiter(rdb)
	}

	return &Server{
		config:       cfg,
		versionInfo:  params.VersionInfo,
		apiTokenHash: params.APITokenHash,
		dbPool:       dbPool,
		healthCheck:  dbPool,
		redisClient:  rdb,

		statsService: statsService,
		mcpService: gymstatsmcp.NewContextService(
			gymstatsmcp.NewPoolSchemaRepo(dbPool),
			statsService,
			refService,
		),
		bot: telegram.NewBot(botParams),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("gymbot-router"))

	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")

	gymstatsRouter := r.PathPrefix("/gymstats").Subrouter()
	stats.NewHandler(s.statsService).SetupRoutes(gymstatsRouter)
	if s.redisClient != nil {
		gymstatsRouter.Use(middleware.RateLimit(
			redis_rate.NewLimiter(s.redisClient),
			middleware.RateLimitParams{
				Name:           "gymstats",
				PerMinute:      gymstatsAPIRequestsPerMin,
				MetricsManager: s.metricsManager,
			},
		))
	}

	mcpServer := gymstatsmcp.NewServer(s.mcpService, s.versionInfo)
	r.Handle("/mcp", server.NewStreamableHTTPServer(mcpServer)).Name("mcp")

	// all the rest - unhandled paths
	r.NotFoundHandler = http.HandlerFunc(http.NotFound)

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.apiTokenHash)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.CorsAllowedOrigins...))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.RequestBody(maxRequestBodyBytes))

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.healthCheck.Ping(ctx); err != nil {
		log.Errorf("health: db ping: %s", err)
		http.Error(w, "db unavailable", http.StatusServiceUnavailable)
		return
	}
	pkg.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler: s.routerSetup(),
		Addr:    ipAndPort,
		// no WriteTimeout: MCP responses may stream
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		ConnState:         s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	botCtx, botCancel := context.WithCancel(ctx)
	s.botCancel = botCancel
	s.botDone = make(chan struct{})
	go func() {
		defer close(s.botDone)
		if err := s.bot.Run(botCtx); err != nil {
			log.Errorf("telegram bot stopped: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking updates first, the in-flight ones still need the db
	if s.botCancel != nil {
		s.botCancel()
		select {
		case <-s.botDone:
			log.Debugln("telegram bot stopped")
		case <-ctx.Done():
			log.Errorln(" >>> telegram bot did not stop in time")
		}
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed, http.StateHijacked:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
