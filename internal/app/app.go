package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/afero"
	"github.com/threadline/storefront/config"
	"github.com/threadline/storefront/internal/adapter/catalog"
	"github.com/threadline/storefront/internal/adapter/httphandler"
	"github.com/threadline/storefront/internal/adapter/localstore"
	"github.com/threadline/storefront/internal/core/port"
	"github.com/threadline/storefront/internal/core/service"
)

type coreServices struct {
	browser    port.ProductsBrowser
	finder     port.ProductFinder
	cartMut    port.CartMutator
	cartReader port.CartReader
	themes     port.ThemeSwitcher
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	store      localstore.Store
	services   coreServices
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initLocalStore()
	app.initCoreServices()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initLocalStore() {
	const op = "App.initLocalStore"

	store, err := localstore.New(afero.NewOsFs(), app.cfg.Storage.Dir)
	if err != nil {
		app.fallDown(op, err)
	}
	app.store = store
}

func (app *App) initCoreServices() {
	const op = "App.initCoreServices"

	provider := catalog.NewProvider(
		afero.NewOsFs(),
		app.cfg.Catalog.FixtureFile,
		app.cfg.Catalog.LoadDelay,
	)
	catalogSvc, err := service.NewCatalog(app.ctx, provider)
	if err != nil {
		app.fallDown(op, err)
	}

	cartRepo := localstore.NewCartRepository(app.store)
	journal := localstore.NewEventJournal(app.store)
	cartSvc, err := service.NewCart(app.ctx, cartRepo, journal)
	if err != nil {
		app.fallDown(op, err)
	}

	sessionSvc := service.NewSession(app.ctx, localstore.NewThemeRepository(app.store))

	app.services = coreServices{
		browser:    catalogSvc,
		finder:     catalogSvc,
		cartMut:    cartSvc,
		cartReader: cartSvc,
		themes:     sessionSvc,
	}
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, app.services.browser)
	httphandler.RegisterCart(
		mux, app.services.finder, app.services.cartMut, app.services.cartReader,
	)
	httphandler.RegisterTheme(mux, app.services.themes)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("storefront is running", "addr", app.cfg.HTTPServerAddr)
}

func (app *App) Close(ctx context.Context) {
	slog.Info("storefront is closing...")

	app.httpServer.Close(ctx)

	slog.Info("storefront is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
