package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alimikegami/perfume-store/config"
	"github.com/alimikegami/perfume-store/internal/controller"
	"github.com/alimikegami/perfume-store/internal/infrastructure/mail"
	localmiddleware "github.com/alimikegami/perfume-store/internal/middleware"
	"github.com/alimikegami/perfume-store/internal/service"
	"github.com/alimikegami/perfume-store/pkg/response"
	"github.com/alimikegami/perfume-store/pkg/utils"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// MailRelay is the contact form relay. Sender defaults to an SMTP dialer
// built from Config.
type MailRelay struct {
	Config *config.Config
	Server *echo.Echo
	Sender service.MailSender

	registry      *prometheus.Registry
	metricsServer *echo.Echo
}

func (app *MailRelay) Router() *echo.Echo {
	if app.Sender == nil {
		app.Sender = mail.CreateDialer(app.Config.SMTPConfig)
	}

	app.registry = prometheus.NewRegistry()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(localmiddleware.Tracing(app.Config.ServiceConfig.ServiceName))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Registerer: app.registry,
	}))
	e.Use(localmiddleware.Logger)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: app.Config.ServiceConfig.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))

	g := e.Group("/api/v1")
	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "pong", nil)
	})

	mailSvc := service.CreateMailService(app.Sender, app.Config.SMTPConfig, utils.NewValidator())
	controller.CreateContactController(g, mailSvc)

	app.Server = e
	return e
}

// Start blocks until the HTTP server stops.
func (app *MailRelay) Start() error {
	logger := SetupLogger(app.Config.ServiceConfig.LogLevel)

	e := app.Router()

	app.metricsServer = echo.New()
	app.metricsServer.HideBanner = true
	app.metricsServer.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{app.registry, prometheus.DefaultGatherer},
	}))
	go func() {
		if err := app.metricsServer.Start(fmt.Sprintf(":%s", app.Config.ServiceConfig.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Failed to start metrics server")
		}
	}()

	logger.Info().Str("port", app.Config.ServiceConfig.ServicePort).Msg("mail relay started")

	if err := e.Start(fmt.Sprintf(":%s", app.Config.ServiceConfig.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (app *MailRelay) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if app.Server != nil {
		errs = append(errs, app.Server.Shutdown(ctx))
	}
	if app.metricsServer != nil {
		errs = append(errs, app.metricsServer.Shutdown(ctx))
	}

	return errors.Join(errs...)
}
