package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/niksmo/order-fulfillment/config"
	"github.com/niksmo/order-fulfillment/internal/adapter/httphandler"
	"github.com/niksmo/order-fulfillment/internal/adapter/kafka"
	"github.com/niksmo/order-fulfillment/internal/adapter/storage"
	"github.com/niksmo/order-fulfillment/internal/core/service"
	"github.com/niksmo/order-fulfillment/pkg/retry"
	"github.com/niksmo/order-fulfillment/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type repositories struct {
	products storage.ProductsRepository
	orders   storage.OrdersRepository
	events   storage.EventsRepository
}

type services struct {
	catalog  service.CatalogService
	orders   service.OrdersService
	eventLog service.EventLogService
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	db         storage.SQLDB
	repos      repositories
	services   services
	eventSerde schema.Serde
	notifier   *kafka.EventsNotifier
	recorder   *kafka.EventsRecorderProcessor
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initSerdes()
	app.initNotifier()
	app.initServices()
	app.initRecorder()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	retryCfg := retry.RetryConfig{
		MaxAttempts: 5,
		Backoff:     retry.LineareBackoff(2 * time.Second),
	}

	db, err := retry.DoWithResult(app.ctx, retryCfg,
		func() (storage.SQLDB, error) {
			return storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
		})
	if err != nil {
		app.fallDown(op, err)
	}

	app.db = db
	app.repos.products = storage.NewProductsRepository(
		db, app.cfg.Tables.Products,
	)
	app.repos.orders = storage.NewOrdersRepository(db, app.cfg.Tables.Orders)
	app.repos.events = storage.NewEventsRepository(
		db, app.cfg.Tables.ProductEvents,
	)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	subject := app.cfg.Broker.Topics.ProductEvents + "-value"
	eventSerde, err := schema.NewSerdeProductEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.eventSerde = eventSerde
}

func (app *App) initNotifier() {
	const op = "App.initNotifier"

	notifier, err := kafka.NewEventsNotifier(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.ProductEvents,
		),
		kafka.ProducerEncoderOpt(app.eventSerde),
		kafka.NotifierQueueOpt(app.cfg.EventQueueSize),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.notifier = notifier
}

func (app *App) initServices() {
	app.services.catalog = service.NewCatalog(app.repos.products, app.notifier)
	app.services.orders = service.NewOrders(app.repos.orders, app.repos.products)
	app.services.eventLog = service.NewEventLog(app.repos.events)
}

func (app *App) initRecorder() {
	const op = "App.initRecorder"

	recorder, err := kafka.NewEventsRecorderProc(
		app.cfg.Broker.SeedBrokers,
		app.cfg.Broker.Topics.ProductEvents,
		app.cfg.Broker.Consumers.EventRecorderGroup,
		app.eventSerde,
		app.services.eventLog,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.recorder = recorder
}

func (app *App) initHTTPServer() {
	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, app.services.catalog)
	httphandler.RegisterOrders(mux, app.services.orders)
	httphandler.RegisterEvents(mux, app.services.eventLog)
	httphandler.RegisterFallback(mux)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.notifier.Run(app.ctx)
	go app.recorder.Run(app.ctx)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.recorder.Close()
	app.notifier.Close()
	app.db.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
