package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tpv-server/internal/adapter/logger"
	"tpv-server/internal/adapter/postgres"
	"tpv-server/internal/adapter/rabbitmq"
	"tpv-server/internal/adapter/snapshot"
	"tpv-server/internal/app/catalog"
	"tpv-server/internal/app/floor"
	"tpv-server/internal/app/ledger"
	"tpv-server/internal/config"
	"tpv-server/internal/interfaces"

	amqpAdapter "tpv-server/internal/adapter/amqp"
	httpAdapter "tpv-server/internal/adapter/http"
)

func main() {
	mode := flag.String("mode", "pos-server", "Service mode: pos-server, notification-subscriber")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	migrationsDir := flag.String("migrations", "migrations", "Path to SQL migrations (postgres backend)")
	prefetch := flag.Int("prefetch", 1, "RabbitMQ prefetch count (notification-subscriber)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	lgr := logger.New(*mode)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch *mode {
	case "pos-server":
		runPOSServer(ctx, cfg, lgr, *migrationsDir)
	case "notification-subscriber":
		runNotificationSubscriber(ctx, cfg, lgr, *prefetch)
	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runPOSServer(ctx context.Context, cfg *config.Config, lgr logger.Logger, migrationsDir string) {
	var (
		employees interfaces.EmployeeRepository
		menu      interfaces.MenuRepository
		tables    interfaces.TableRepository
		orders    interfaces.OrderRepository
	)

	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := postgres.Connect(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer db.Close()

		if err := postgres.RunMigrations(ctx, db, migrationsDir, lgr); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]any{
			"host": cfg.Database.Host,
			"db":   cfg.Database.Database,
		})

		employees = postgres.NewEmployeeRepository(db)
		menu = postgres.NewMenuRepository(db)
		tables = postgres.NewTableRepository(db)
		orders = postgres.NewOrderRepository(db)

	case config.BackendSnapshot:
		store, err := snapshot.Open(cfg.Storage.SnapshotPath)
		if err != nil {
			log.Fatalf("Failed to open snapshot store: %v", err)
		}
		lgr.Info("snapshot_opened", "Snapshot store loaded", "startup", map[string]any{
			"path": cfg.Storage.SnapshotPath,
		})

		employees, menu, tables, orders = store, store, store, store
	}

	mqConn, err := rabbitmq.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()
	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]any{
		"host": cfg.RabbitMQ.Host,
	})

	publisher := rabbitmq.NewPublisher(mqConn)

	ledgerService := ledger.NewService(orders, tables, menu, publisher, lgr)
	catalogService := catalog.NewService(employees, menu, lgr)
	floorService := floor.NewService(tables)

	catalogHandler := httpAdapter.NewCatalogHandler(catalogService, floorService, lgr)
	orderHandler := httpAdapter.NewOrderHandler(ledgerService, lgr)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", catalogHandler.Login)
	mux.HandleFunc("GET /tables", catalogHandler.Tables)
	mux.HandleFunc("GET /menu/{category}", catalogHandler.MenuItems)
	mux.HandleFunc("GET /health", catalogHandler.Health)
	mux.HandleFunc("GET /order/{tableNumber}", orderHandler.GetOrder)
	mux.HandleFunc("POST /order/items", orderHandler.AddItem)
	mux.HandleFunc("POST /order/send", orderHandler.Send)
	mux.HandleFunc("POST /order/close", orderHandler.CloseOrder)
	mux.HandleFunc("POST /order/void", orderHandler.VoidOrder)

	handler := httpAdapter.LoggingMiddleware(lgr)(mux)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("POS server started on port %d", cfg.Server.Port), "startup", map[string]any{
		"port":    cfg.Server.Port,
		"backend": cfg.Storage.Backend,
	})

	go func() {
		<-ctx.Done()
		lgr.Info("shutdown_initiated", "Shutting down POS server", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "runtime", nil, err)
		os.Exit(1)
	}
}

func runNotificationSubscriber(ctx context.Context, cfg *config.Config, lgr logger.Logger, prefetch int) {
	mqConn, err := rabbitmq.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	consumer := rabbitmq.NewConsumer(mqConn, prefetch, lgr)
	notificationHandler := amqpAdapter.NewNotificationHandler(lgr)

	lgr.Info("service_started", "Notification subscriber started", "startup", nil)

	if err := consumer.ConsumeOrderEvents(ctx, notificationHandler.HandleEvent); err != nil && ctx.Err() == nil {
		lgr.Error("consumer_error", "Error consuming order events", "runtime", nil, err)
		os.Exit(1)
	}

	lgr.Info("shutdown_initiated", "Notification subscriber stopped", "shutdown", nil)
}
