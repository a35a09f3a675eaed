package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelOrderHandler "github.com/EarneyGit/restaurent-kockraco-sub000/internal/api/handlers/cancel_order"
	checkAvailabilityHandler "github.com/EarneyGit/restaurent-kockraco-sub000/internal/api/handlers/check_availability"
	getBranchScheduleHandler "github.com/EarneyGit/restaurent-kockraco-sub000/internal/api/handlers/get_branch_schedule"
	getOrderHandler "github.com/EarneyGit/restaurent-kockraco-sub000/internal/api/handlers/get_order"
	invalidateScheduleHandler "github.com/EarneyGit/restaurent-kockraco-sub000/internal/api/handlers/invalidate_schedule"
	listBranchOrdersHandler "github.com/EarneyGit/restaurent-kockraco-sub000/internal/api/handlers/list_branch_orders"
	placeOrderHandler "github.com/EarneyGit/restaurent-kockraco-sub000/internal/api/handlers/place_order"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/api/middleware"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/config"
	scheduleCache "github.com/EarneyGit/restaurent-kockraco-sub000/internal/infra/cache/schedule"
	ordersRepo "github.com/EarneyGit/restaurent-kockraco-sub000/internal/infra/storage/orders"
	scheduleRepo "github.com/EarneyGit/restaurent-kockraco-sub000/internal/infra/storage/schedule"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/infra/volume/redisvolume"
	branchServiceClient "github.com/EarneyGit/restaurent-kockraco-sub000/internal/integrations/branchservice"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/admission"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/availability"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/branchtime"
	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/decision"
	ordersService "github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/orders"
	scheduleService "github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/schedule"
	checkAvailabilityUC "github.com/EarneyGit/restaurent-kockraco-sub000/internal/usecase/check_availability"
	placeOrderUC "github.com/EarneyGit/restaurent-kockraco-sub000/internal/usecase/place_order"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/dbmetrics"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/logger"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/metrics"
	"github.com/EarneyGit/restaurent-kockraco-sub000/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting order availability service...")
	log.Info("Configuration loaded from %s", configPath)

	defaultLocation, err := time.LoadLocation(cfg.Availability.DefaultTimezone)
	if err != nil {
		log.Fatal("Failed to load default timezone %q: %v", cfg.Availability.DefaultTimezone, err)
	}

	failPolicy, err := admission.ParseFailPolicy(cfg.Admission.FailPolicy)
	if err != nil {
		log.Fatal("Invalid admission fail policy: %v", err)
	}

	// Инициализируем метрики (если включены); nil *Metrics ничего не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Подключаемся к Redis, если он нужен кэшу или источнику объема
	var rdb *redis.Client
	if cfg.UsesRedis() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	}

	// Инициализируем интеграционных клиентов
	branchClient := branchServiceClient.NewClient(
		cfg.BranchService.URL,
		time.Duration(cfg.BranchService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (BranchService=%s timeout=%ds, default timezone=%s)",
		cfg.BranchService.URL, cfg.BranchService.Timeout, defaultLocation)

	// Инициализируем репозитории
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	orderRepository := ordersRepo.NewRepository(wrappedDB)

	// Кэш снимков расписания
	var snapshotCache scheduleService.SnapshotCache
	if cfg.ScheduleCache.Enabled {
		snapshotCache = scheduleCache.NewCache(rdb, cfg.ScheduleCache.TTL())
		log.Info("Schedule snapshot cache enabled (ttl=%s)", cfg.ScheduleCache.TTL())
	}

	// Источник объема заказов для рекомендательной проверки
	var (
		volumeSource admission.VolumeSource = orderRepository
		recorder     placeOrderUC.VolumeRecorder
		forgetter    ordersService.VolumeForgetter
	)
	if cfg.Admission.VolumeBackend == "redis" {
		redisSource := redisvolume.NewSource(rdb, cfg.Redis.KeyPrefix, cfg.Admission.Retention())
		volumeSource, recorder, forgetter = redisSource, redisSource, redisSource
	}
	log.Info("Admission control: volume backend=%s, timeout=%s, fail policy=%s",
		cfg.Admission.VolumeBackend, cfg.Admission.VolumeTimeout(), failPolicy)

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(scheduleRepository, snapshotCache, log, metricsCollector)
	locationResolver := branchtime.NewResolver(branchClient, defaultLocation, log)

	admissionEvaluator := admission.NewEvaluator(volumeSource, admission.Config{
		VolumeTimeout: cfg.Admission.VolumeTimeout(),
		FailPolicy:    failPolicy,
	}, log, metricsCollector)
	decider := decision.NewService(availability.NewEvaluator(), admissionEvaluator, metricsCollector)

	// При оформлении заказа объем всегда считается по таблице orders в той же транзакции
	guardDecider := decider.WithAdmission(admissionEvaluator.WithSource(orderRepository))

	orderSvc := ordersService.NewService(orderRepository, forgetter, log)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		locationResolver,
		scheduleSvc,
		decider,
		log,
	)

	placeOrderUseCase := placeOrderUC.NewUseCase(
		orderRepository,
		scheduleSvc,
		locationResolver,
		guardDecider,
		recorder,
		txMgr,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	placeOrder := placeOrderHandler.NewHandler(placeOrderUseCase, log)
	listBranchOrders := listBranchOrdersHandler.NewHandler(orderSvc, log)
	getOrder := getOrderHandler.NewHandler(orderSvc, log)
	cancelOrder := cancelOrderHandler.NewHandler(orderSvc, log)
	getBranchSchedule := getBranchScheduleHandler.NewHandler(scheduleSvc, log)
	invalidateSchedule := invalidateScheduleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Доступность ---
	// Проверка, можно ли сейчас оформить заказ
	api.HandleFunc("/branches/{branchId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// --- Заказы ---
	// Оформление заказа с повторной проверкой в транзакции
	api.HandleFunc("/branches/{branchId}/orders", placeOrder.Handle).Methods(http.MethodPost)

	// Список заказов филиала
	api.HandleFunc("/branches/{branchId}/orders", listBranchOrders.Handle).Methods(http.MethodGet)

	// Получение заказа по ID
	api.HandleFunc("/branches/{branchId}/orders/{orderId}", getOrder.Handle).Methods(http.MethodGet)

	// Отмена заказа
	api.HandleFunc("/branches/{branchId}/orders/{orderId}/cancel", cancelOrder.Handle).Methods(http.MethodPatch)

	// --- Расписание ---
	// Снимок конфигурации филиала для диагностики
	api.HandleFunc("/branches/{branchId}/schedule", getBranchSchedule.Handle).Methods(http.MethodGet)

	// Сигнал об изменении расписания
	api.HandleFunc("/branches/{branchId}/schedule/invalidate", invalidateSchedule.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
