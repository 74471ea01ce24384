package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dmitrijs2005/storefront/internal/buildinfo"
	"github.com/dmitrijs2005/storefront/internal/client/authz"
	"github.com/dmitrijs2005/storefront/internal/client/cli"
	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/identity"
	"github.com/dmitrijs2005/storefront/internal/client/metrics"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/filex"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	initSignalHandler(cancel)

	cfg := config.LoadConfig()
	if err := run(ctx, cfg); err != nil {
		log.Fatalf("%v", err)
	}

}

func initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
		// Unblocks the REPL read so deferred cleanup runs.
		_ = os.Stdin.Close()
	}()
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(os.Stderr, cfg.LogLevel)

	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("data dir: %w", err)
	}

	db, err := storage.Open(ctx, filepath.Join(dir, config.SessionDBName))
	if err != nil {
		return fmt.Errorf("session db: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		done := make(chan error, 1)
		go func() { done <- db.Close() }()
		select {
		case err := <-done:
			if err != nil {
				logger.Error(closeCtx, "failed to close session db", "err", err)
			}
		case <-closeCtx.Done():
			logger.Warn(closeCtx, "timed out closing session db")
		}
	}()

	store := session.NewStore(db)
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	m := metrics.New()
	nav := cli.NewNavigation()
	api := client.New(cfg.ServerEndpointAddr, store,
		client.WithNavigator(nav),
		client.WithMetrics(m),
		client.WithLogger(logger),
	)
	decoder := identity.NewDecoder(store, logger)

	app := cli.NewApp(cli.Deps{
		In:         os.Stdin,
		Out:        os.Stdout,
		Log:        logger,
		Auth:       services.NewAuthService(api, store, decoder),
		Catalog:    services.NewCatalogService(api.Products(), api, decoder),
		Gate:       authz.NewGate(decoder, authz.DefaultRoutes),
		API:        api,
		Navigation: nav,
		Metrics:    m,
	})

	logger.Debug(ctx, "starting cli", "server", cfg.ServerEndpointAddr, "data_dir", dir)
	app.Run(ctx)
	return nil
}
