package main

import (
	"context"
	"io"
	"net/http"
	"runtime"
	"time"

	"github.com/alecthomas/kingpin"
	jwt "github.com/appleboy/gin-jwt/v2"
	crypt "github.com/estafette/estafette-ci-crypt"
	foundation "github.com/estafette/estafette-foundation"
	"github.com/fsnotify/fsnotify"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	jaeger "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jprom "github.com/uber/jaeger-lib/metrics/prometheus"

	"github.com/pipesight/pipesight-api/pkg/api"
	"github.com/pipesight/pipesight-api/pkg/cache"
	"github.com/pipesight/pipesight-api/pkg/clients/database"
	"github.com/pipesight/pipesight-api/pkg/clients/githubapi"
	"github.com/pipesight/pipesight-api/pkg/services/buildstats"
	"github.com/pipesight/pipesight-api/pkg/services/buildsync"
)

var (
	appgroup  string
	app       string
	version   string
	branch    string
	revision  string
	buildDate string
	goVersion = runtime.Version()
)

var (
	apiAddress               = kingpin.Flag("api-listen-address", "The address to listen on for api HTTP requests.").Default(":5000").String()
	prometheusMetricsAddress = kingpin.Flag("metrics-listen-address", "The address to listen on for Prometheus metrics requests.").Default(":9001").String()
	prometheusMetricsPath    = kingpin.Flag("metrics-path", "The path to listen for Prometheus metrics requests.").Default("/metrics").String()

	configFilePath      = kingpin.Flag("config-file-path", "The path to the configuration yaml file.").Envar("CONFIG_FILE_PATH").Default("/configs/config.yaml").String()
	secretDecryptionKey = kingpin.Flag("secret-decryption-key", "The AES-256 key used to decrypt secrets that have been encrypted with it.").Envar("SECRET_DECRYPTION_KEY").String()
	jwtKey              = kingpin.Flag("jwt-key", "The key used to sign api json web tokens when the config file does not set one.").Envar("JWT_KEY").String()
)

func main() {

	// parse command line parameters
	kingpin.Parse()

	// init log handling
	foundation.InitLoggingFromEnv(foundation.NewApplicationInfo(appgroup, app, version, branch, revision, buildDate))

	// define channel and wait group to gracefully shutdown the application
	gracefulShutdown, waitGroup := foundation.InitGracefulShutdownHandling()

	closer := initJaeger(app)
	defer closer.Close()

	// start prometheus
	go startPrometheus()

	secretHelper := crypt.NewSecretHelper(*secretDecryptionKey, false)
	configReader := api.NewConfigReader(secretHelper, *jwtKey)

	config, err := configReader.ReadConfigFromFile(*configFilePath, true)
	if err != nil {
		log.Fatal().Err(err).Msgf("Failed reading configuration file %v", *configFilePath)
	}

	// reload configuration when the mounted configmap gets updated
	foundation.WatchForFileChanges(*configFilePath, func(event fsnotify.Event) {
		log.Info().Msgf("Configuration file %v was updated, reloading...", *configFilePath)
		newConfig, err := configReader.ReadConfigFromFile(*configFilePath, true)
		if err != nil {
			log.Warn().Err(err).Msg("Failed reloading configuration, keeping the previous one")
			return
		}
		*config = *newConfig
	})

	ctx := context.Background()

	databaseClient := getDatabaseClient(ctx, config)
	githubapiClient := getGithubAPIClient(config)
	statsCache := cache.New()

	buildsyncService := getBuildsyncService(config, githubapiClient, databaseClient, secretHelper)
	buildstatsService := getBuildstatsService(config, githubapiClient, databaseClient, secretHelper, statsCache)

	buildsyncHandler := buildsync.NewHandler(config, buildsyncService, databaseClient)
	buildstatsHandler := buildstats.NewHandler(config, buildstatsService, databaseClient)

	srv := configureGinGonic(config, buildsyncHandler, buildstatsHandler)

	// await SIGTERM, then drain in-flight requests before exiting
	foundation.HandleGracefulShutdown(gracefulShutdown, waitGroup, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatal().Err(err).Msg("Graceful server shutdown failed")
		}
	})
}

func getDatabaseClient(ctx context.Context, config *api.APIConfig) database.Client {

	databaseClient := database.NewClient(config)
	databaseClient = database.NewTracingClient(databaseClient)
	databaseClient = database.NewMetricsClient(databaseClient,
		api.NewRequestCounter("database_client"),
		api.NewRequestHistogram("database_client"))
	databaseClient = database.NewLoggingClient(databaseClient)

	if err := databaseClient.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed connecting to database")
	}
	if err := databaseClient.AwaitDatabaseReadiness(ctx); err != nil {
		log.Fatal().Err(err).Msg("Database failed to become ready in time")
	}
	if err := databaseClient.MigrateSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed migrating database schema")
	}

	return databaseClient
}

func getGithubAPIClient(config *api.APIConfig) githubapi.Client {

	githubapiClient := githubapi.NewClient(config)
	githubapiClient = githubapi.NewTracingClient(githubapiClient)
	githubapiClient = githubapi.NewMetricsClient(githubapiClient,
		api.NewRequestCounter("githubapi_client"),
		api.NewRequestHistogram("githubapi_client"))
	githubapiClient = githubapi.NewLoggingClient(githubapiClient)

	return githubapiClient
}

func getBuildsyncService(config *api.APIConfig, githubapiClient githubapi.Client, databaseClient database.Client, secretHelper crypt.SecretHelper) buildsync.Service {

	buildsyncService := buildsync.NewService(config, githubapiClient, databaseClient, secretHelper)
	buildsyncService = buildsync.NewTracingService(buildsyncService)
	buildsyncService = buildsync.NewMetricsService(buildsyncService,
		api.NewRequestCounter("buildsync_service"),
		api.NewRequestHistogram("buildsync_service"),
		api.NewTotalsCounter("buildsync_service", "synced_runs_total", "Number of workflow runs synced from github."),
		api.NewTotalsCounter("buildsync_service", "parsed_test_results_total", "Number of junit test reports parsed from artifacts."))
	buildsyncService = buildsync.NewLoggingService(buildsyncService)

	return buildsyncService
}

func getBuildstatsService(config *api.APIConfig, githubapiClient githubapi.Client, databaseClient database.Client, secretHelper crypt.SecretHelper, statsCache cache.Cache) buildstats.Service {

	buildstatsService := buildstats.NewService(config, githubapiClient, databaseClient, secretHelper, statsCache)
	buildstatsService = buildstats.NewTracingService(buildstatsService)
	buildstatsService = buildstats.NewMetricsService(buildstatsService,
		api.NewRequestCounter("buildstats_service"),
		api.NewRequestHistogram("buildstats_service"))
	buildstatsService = buildstats.NewLoggingService(buildstatsService)

	return buildstatsService
}

func configureGinGonic(config *api.APIConfig, buildsyncHandler buildsync.Handler, buildstatsHandler buildstats.Handler) *http.Server {

	// run gin in release mode and other defaults
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = log.Logger
	gin.DisableConsoleColor()

	// creates a router without any middleware
	router := gin.New()

	// recovery middleware recovers from any panics and writes a 500 if there was one
	router.Use(gin.Recovery())

	// opentracing middleware
	router.Use(api.OpenTracingMiddleware())

	// zerolog middleware
	router.Use(api.ZeroLogMiddleware())

	// gzip middleware
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// liveness and readiness
	router.GET("/liveness", func(c *gin.Context) {
		c.String(http.StatusOK, "I'm alive!")
	})
	router.GET("/readiness", func(c *gin.Context) {
		c.String(http.StatusOK, "I'm ready!")
	})

	authMiddleware := api.NewAuthMiddleware(config)
	ginJWTMiddleware, err := authMiddleware.GinJWTMiddleware(func(c *gin.Context) (interface{}, error) {
		// tokens are minted out of band, the login handler is not mounted
		return nil, jwt.ErrFailedAuthentication
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed initializing jwt middleware")
	}

	authorized := router.Group("/api", ginJWTMiddleware.MiddlewareFunc())
	{
		authorized.POST("/builds/:id/sync", buildsyncHandler.Sync)
		authorized.GET("/builds/:id/stats", buildstatsHandler.GetBuildStats)
		authorized.GET("/builds/:id/stats/details", buildstatsHandler.GetBuildDetailsStats)
		authorized.POST("/builds/:id/refresh", buildstatsHandler.RefreshBuild)
	}

	// instantiate the server directly instead of using gin's Run in order to handle
	// graceful shutdown
	log.Debug().Msgf("Serving api calls on %v...", *apiAddress)
	srv := &http.Server{
		Addr:           *apiAddress,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Starting gin router failed")
		}
	}()

	return srv
}

func startPrometheus() {
	log.Debug().
		Str("port", *prometheusMetricsAddress).
		Str("path", *prometheusMetricsPath).
		Msg("Serving Prometheus metrics...")

	http.Handle(*prometheusMetricsPath, promhttp.Handler())

	if err := http.ListenAndServe(*prometheusMetricsAddress, nil); err != nil {
		log.Fatal().Err(err).Msg("Starting Prometheus listener failed")
	}
}

// initJaeger returns an instance of the Jaeger Tracer that is configured via environment
// variables, see https://github.com/jaegertracing/jaeger-client-go#environment-variables
func initJaeger(service string) io.Closer {

	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Generating Jaeger config from environment variables failed")
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = service
	}

	closer, err := cfg.InitGlobalTracer(cfg.ServiceName, jaegercfg.Logger(jaeger.StdLogger), jaegercfg.Metrics(jprom.New()))
	if err != nil {
		log.Fatal().Err(err).Msg("Generating Jaeger tracer failed")
	}

	return closer
}
