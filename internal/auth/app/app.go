package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quickplate/quickplate/internal/auth/flow"
	httpapi "github.com/quickplate/quickplate/internal/auth/http"
	"github.com/quickplate/quickplate/internal/auth/notify"
	"github.com/quickplate/quickplate/internal/auth/oauth"
	"github.com/quickplate/quickplate/internal/auth/service"
	"github.com/quickplate/quickplate/internal/auth/store"
	"github.com/quickplate/quickplate/internal/auth/store/drivers/sqlite"
	"github.com/quickplate/quickplate/internal/auth/vault"
	"github.com/quickplate/quickplate/pkg/cryptox"
	"github.com/quickplate/quickplate/pkg/jwtx"
	"github.com/quickplate/quickplate/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db          store.Store
	signer      *jwtx.Signer
	otpNotifier notify.Notifier

	// Services
	credentialService   *service.CredentialService
	otpService          *service.OTPService
	sessionService      *service.SessionService
	housekeepingService *service.HousekeepingService

	flowManager *flow.Manager
	ssoClient   *oauth.Client

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates an Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	return newApplication(cfg, nil)
}

// NewWithNotifier creates an Application with a fixed OTP notifier,
// bypassing SMTP configuration. Tests use this to capture issued codes.
func NewWithNotifier(cfg Config, n notify.Notifier) (*Application, error) {
	return newApplication(cfg, n)
}

func newApplication(cfg Config, n notify.Notifier) (*Application, error) {
	app := &Application{
		cfg:         cfg,
		otpNotifier: n,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, err := InitSigner(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize signing key: %w", err)
	}
	app.signer = signer

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Handler exposes the HTTP handler for in-process serving in tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Close releases resources for applications that never entered Run.
func (app *Application) Close() error {
	return app.db.Close()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.credentialService = &service.CredentialService{Store: app.db}
	app.otpService = service.NewOTPService(app.notifier())
	app.sessionService = &service.SessionService{
		Store:  app.db,
		Signer: app.signer,
		Issuer: app.cfg.Issuer,
		TTL:    app.cfg.SessionTTL,
	}
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)

	app.flowManager = flow.NewManager(app.credentialService, app.otpService, app.sessionService)
	app.ssoClient = oauth.NewClient(app.providers(), vault.New())
}

// notifier picks the OTP delivery channel. Without SMTP settings the
// codes are logged, which is the dev-mode behaviour.
func (app *Application) notifier() notify.Notifier {
	if app.otpNotifier != nil {
		return app.otpNotifier
	}

	if app.cfg.SMTP.Host == "" {
		app.logger.Info("no SMTP host configured, OTP codes will be logged")
		return &notify.LogNotifier{}
	}

	n, err := notify.NewSMTPNotifier(
		app.cfg.SMTP.Host,
		app.cfg.SMTP.Port,
		app.cfg.SMTP.Username,
		app.cfg.SMTP.Password,
		app.cfg.SMTP.From,
		app.cfg.SMTP.FromName,
		app.cfg.SMTP.UseTLS,
	)
	if err != nil {
		app.logger.Error("invalid SMTP configuration, falling back to logging", "error", err)
		return &notify.LogNotifier{}
	}
	return n
}

// providers builds the SSO provider registry. Providers without client
// credentials are left out; in fixture mode every known provider is
// served by the in-process fixture.
func (app *Application) providers() map[string]oauth.ProviderClient {
	registry := make(map[string]oauth.ProviderClient)

	for _, name := range oauth.KnownProviders() {
		creds := app.cfg.Providers[name]

		if app.cfg.SSOFixture {
			registry[name] = oauth.NewFixtureClient(name, creds.RedirectURL)
			continue
		}

		if creds.ClientID == "" {
			app.logger.Warn("sso provider not configured, skipping", "provider", name)
			continue
		}

		cfg, _ := oauth.DefaultProviderConfig(name)
		cfg.ClientID = creds.ClientID
		cfg.ClientSecret = creds.ClientSecret
		cfg.RedirectURL = creds.RedirectURL
		registry[name] = oauth.NewProviderClient(cfg, nil)
	}

	return registry
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer.Verifier(app.cfg.Issuer),
		BuildVersion,
		app.db,
		app.logger,
	)

	router.Flow = app.flowManager
	router.Sessions = app.sessionService
	router.SSO = app.ssoClient
	router.FrontendURL = app.cfg.FrontendURL
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
