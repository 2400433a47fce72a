package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alimikegami/perfume-store/config"
	"github.com/alimikegami/perfume-store/internal/controller"
	circuitbreaker "github.com/alimikegami/perfume-store/internal/infrastructure/circuit-breaker"
	"github.com/alimikegami/perfume-store/internal/infrastructure/message-queue/kafka"
	"github.com/alimikegami/perfume-store/internal/infrastructure/tracing"
	localmiddleware "github.com/alimikegami/perfume-store/internal/middleware"
	"github.com/alimikegami/perfume-store/internal/repository"
	"github.com/alimikegami/perfume-store/internal/service"
	"github.com/alimikegami/perfume-store/pkg/httpclient"
	"github.com/alimikegami/perfume-store/pkg/response"
	"github.com/alimikegami/perfume-store/pkg/utils"
	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/sdk/trace"
)

// App is the storefront backend. Storage and Publisher may be set before
// Router or Start is called; otherwise they are built from Config.
type App struct {
	Config    *config.Config
	Server    *echo.Echo
	Storage   repository.Storage
	Publisher service.EventPublisher

	registry       *prometheus.Registry
	catalog        service.CatalogService
	scheduler      gocron.Scheduler
	metricsServer  *echo.Echo
	tracerProvider *trace.TracerProvider
	closers        []func() error
}

// SetupLogger configures the global zerolog logger from level.
func SetupLogger(level string) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger

	return logger
}

func (app *App) remoteClient(auth service.AuthService) *httpclient.Client {
	opts := []httpclient.Option{
		httpclient.WithTokenSource(auth.RemoteToken),
		httpclient.WithUnauthorizedHook(auth.ClearCredentials),
		httpclient.WithCircuitBreaker(circuitbreaker.CreateCircuitBreaker("catalog-api")),
	}

	if app.Config.RemoteAPIConfig.TimeoutSeconds > 0 {
		opts = append(opts, httpclient.WithTimeout(time.Duration(app.Config.RemoteAPIConfig.TimeoutSeconds)*time.Second))
	}

	return httpclient.CreateClient(app.Config.RemoteAPIConfig.BaseURL, opts...)
}

// Router builds the echo instance with every storefront route registered.
func (app *App) Router() *echo.Echo {
	if app.Storage == nil {
		app.Storage = repository.CreateMemoryStorage()
	}
	if app.Publisher == nil {
		app.Publisher = kafka.NoopPublisher{}
	}
	app.registry = prometheus.NewRegistry()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Pre(middleware.MethodOverrideWithConfig(middleware.MethodOverrideConfig{
		Getter: middleware.MethodFromForm(httpclient.MethodOverrideField),
	}))
	e.Use(middleware.Recover())
	e.Use(localmiddleware.Tracing(app.Config.ServiceConfig.ServiceName))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Registerer: app.registry,
	}))
	e.Use(localmiddleware.Logger)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  app.Config.ServiceConfig.CORSAllowOrigins,
		ExposeHeaders: []string{localmiddleware.HeaderCartSession},
	}))

	g := e.Group("/api/v1")
	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "pong", nil)
	})

	validate := utils.NewValidator()
	isAdmin := localmiddleware.IsAdmin(app.Config.JWTSecret)
	location := utils.LoadLocation(app.Config.ServiceConfig.Timezone)

	authSvc := service.CreateAuthService(app.Storage, *app.Config, validate)
	catalogRepo := repository.CreateCatalogAPIRepository(app.remoteClient(authSvc))

	cartSvc := service.CreateCartService(app.Storage)
	gallerySvc := service.CreateGalleryService(catalogRepo, app.Publisher)
	catalogSvc := service.CreateCatalogService(catalogRepo, gallerySvc, validate)
	checkoutSvc := service.CreateCheckoutService(cartSvc, catalogRepo, app.Publisher, validate)
	orderSvc := service.CreateOrderService(catalogRepo, app.Publisher, location)
	app.catalog = catalogSvc

	controller.CreateCatalogController(g, catalogSvc)
	controller.CreateCartController(g, cartSvc, catalogSvc)
	controller.CreateCheckoutController(g, checkoutSvc)
	controller.CreateAuthController(g, authSvc, isAdmin)

	admin := g.Group("/admin", isAdmin)
	controller.CreateAdminCatalogController(admin, catalogSvc, gallerySvc)
	controller.CreateOrderController(admin, orderSvc)

	app.Server = e
	return e
}

func (app *App) startMetricsServer() {
	app.metricsServer = echo.New()
	app.metricsServer.HideBanner = true
	app.metricsServer.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{app.registry, prometheus.DefaultGatherer},
	}))

	go func() {
		if err := app.metricsServer.Start(fmt.Sprintf(":%s", app.Config.ServiceConfig.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()
}

func (app *App) startScheduler() error {
	interval := app.Config.CatalogConfig.RefreshIntervalSeconds
	if interval <= 0 {
		return nil
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = s.NewJob(
		gocron.DurationJob(time.Duration(interval)*time.Second),
		gocron.NewTask(func() {
			ctx := log.Logger.With().Str("job", "catalog-refresh").Logger().WithContext(context.Background())
			if err := app.catalog.RefreshCache(ctx); err != nil {
				log.Ctx(ctx).Error().Err(err).Msg("catalog refresh failed")
			}
		}),
	)
	if err != nil {
		return err
	}

	s.Start()
	app.scheduler = s

	return nil
}

func (app *App) setupPublisher() {
	if app.Publisher != nil {
		return
	}

	if app.Config.KafkaConfig.BrokerAddress == "" {
		app.Publisher = kafka.NoopPublisher{}
		return
	}

	conn, err := kafka.CreateKafkaProducer(app.Config)
	if err != nil {
		log.Error().Err(err).Str("component", "setupPublisher").Msg("events disabled")
		app.Publisher = kafka.NoopPublisher{}
		return
	}

	publisher := kafka.CreatePublisher(conn)
	app.Publisher = publisher
	app.closers = append(app.closers, publisher.Close)
}

// Start blocks until the HTTP server stops.
func (app *App) Start() error {
	logger := SetupLogger(app.Config.ServiceConfig.LogLevel)

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost, app.Config.ServiceConfig.ServiceName)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize tracing")
	} else {
		app.tracerProvider = traceProvider
	}

	if app.Storage == nil {
		storage, closeStorage, err := CreateStorage(context.Background(), app.Config)
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", app.Config.StorageConfig.Driver, err)
		}
		app.Storage = storage
		app.closers = append(app.closers, closeStorage)
	}

	app.setupPublisher()

	e := app.Router()
	app.startMetricsServer()

	if err := app.startScheduler(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	logger.Info().Str("port", app.Config.ServiceConfig.ServicePort).Str("storage", app.Config.StorageConfig.Driver).Msg("storefront started")

	if err := e.Start(fmt.Sprintf(":%s", app.Config.ServiceConfig.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error

	if app.Server != nil {
		errs = append(errs, app.Server.Shutdown(ctx))
	}
	if app.metricsServer != nil {
		errs = append(errs, app.metricsServer.Shutdown(ctx))
	}
	if app.scheduler != nil {
		errs = append(errs, app.scheduler.Shutdown())
	}
	if app.tracerProvider != nil {
		errs = append(errs, app.tracerProvider.Shutdown(ctx))
	}
	for _, closeFn := range app.closers {
		errs = append(errs, closeFn())
	}

	return errors.Join(errs...)
}
