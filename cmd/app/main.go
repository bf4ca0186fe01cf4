package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"workshop/cmd"
	httpin "workshop/internal/adapters/in/http"
	"workshop/internal/adapters/out/postgres"
	"workshop/internal/pkg/logger"
	"workshop/internal/pkg/observability"
	"workshop/internal/version"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func main() {
	root := &cobra.Command{
		Use:           "workshop",
		Short:         "Jewellery workshop order lifecycle and fine-metal ledger.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCommand(), migrateCommand())
	version.AttachCobraVersionCommand(root)

	if err := root.ExecuteContext(context.Background()); err != nil {
		logger.Errorw(context.Background(), "command failed", "error", err)
		os.Exit(1)
	}
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background jobs.",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(ctx, cfg)
		},
	}
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit.",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := cmd.OpenDatabase(cfg)
			if err != nil {
				return err
			}
			if err = postgres.Migrate(c.Context(), db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Infow(c.Context(), "schema is up to date", "driver", cfg.DBDriver)
			return nil
		},
	}
}

func loadConfig() (cmd.Config, error) {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		return cfg, err
	}
	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}
	return cfg, nil
}

func serve(ctx context.Context, cfg cmd.Config) error {
	shutdownTracing, err := observability.SetupOTel(ctx, observability.Config{
		Enabled:     cfg.OTelEnabled,
		Endpoint:    cfg.OTelEndpoint,
		Insecure:    cfg.OTelInsecure,
		ServiceName: cfg.OTelServiceName,
		SampleRatio: cfg.OTelSampleRatio,
	}, version.Short())
	if err != nil {
		return err
	}
	defer func() {
		_ = shutdownTracing(context.WithoutCancel(ctx))
	}()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return err
	}

	db, err := cmd.OpenDatabase(cfg)
	if err != nil {
		return err
	}
	if err = postgres.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	store, closeStore, err := cmd.OpenAttachmentStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(ctx, "attachment store", closeStore)

	locker, closeLocker, err := cmd.OpenLocker(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(ctx, "locker", closeLocker)

	pub, closePublisher, err := cmd.OpenPublisher(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(ctx, "publisher", closePublisher)

	app := cmd.NewCompositionRoot(cfg, cmd.Adapters{
		DB:        db,
		Store:     store,
		Locker:    locker,
		Publisher: pub,
	}, loc)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	server, err := httpin.NewServer(app.HTTPHandlers())
	if err != nil {
		return err
	}

	routerCfg := httpin.RouterConfig{
		RateRPS:        cfg.RateRPS,
		RateBurst:      cfg.RateBurst,
		SwaggerEnabled: cfg.SwaggerEnabled,
	}
	if cfg.AttachmentBackend == cmd.AttachmentsLocal && strings.HasPrefix(cfg.AttachmentBaseURL, "/") {
		routerCfg.AttachmentDir = cfg.AttachmentDir
		routerCfg.AttachmentPrefix = cfg.AttachmentBaseURL
	}
	e := httpin.NewRouter(server, routerCfg)

	errCh := make(chan error, 1)
	go func() {
		logger.Infow(ctx, "http server listening", "port", cfg.HTTPPort, "version", version.Short())
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort))
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Infow(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func closeQuietly(ctx context.Context, name string, c cmd.Closer) {
	if err := c(); err != nil {
		logger.Warnw(ctx, "close failed", "component", name, "error", err)
	}
}
