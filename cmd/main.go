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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	changeStatusHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/change_reservation_status"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	getProjectReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_project_reservations"
	getReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_reservation"
	updateReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_reservation"
	validateReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/validate_reservation"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/infra/migrator"
	blockedPeriodRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/blockedperiod"
	competenceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/competence"
	consultantRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/consultant"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	projectServiceClient "github.com/m04kA/SMC-ReservationService/internal/integrations/projectservice"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendar"
	"github.com/m04kA/SMC-ReservationService/internal/service/capabilities"
	"github.com/m04kA/SMC-ReservationService/internal/service/quantity"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/skills"
	changeStatusUC "github.com/m04kA/SMC-ReservationService/internal/usecase/change_reservation_status"
	saveReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/save_reservation"
	validateReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/validate_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
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

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики: при выключенных метриках коллектор nil, обертка БД работает как прокси
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

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	// Проверяем соединение
	if err := db.PingContext(startupCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s, schema=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, cfg.Database.Schema)

	if cfg.Scheduling.AutoMigrate {
		if err := migrator.NewMigrator(db, log, cfg.Database.Schema).Run(startupCtx); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем интеграционных клиентов
	projectClient := projectServiceClient.NewClient(
		cfg.ProjectService.URL,
		time.Duration(cfg.ProjectService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ProjectService=%s timeout=%ds)",
		cfg.ProjectService.URL, cfg.ProjectService.Timeout)

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	consultantRepository := consultantRepo.NewRepository(wrappedDB)
	competenceRepository := competenceRepo.NewRepository(wrappedDB)
	blockedPeriodRepository := blockedPeriodRepo.NewRepository(wrappedDB)

	// Определяем, поддерживает ли схема привязку к строкам заказа
	capabilityRegistry := capabilities.NewRegistry(reservationRepository, log)
	capabilityRegistry.Probe(startupCtx)

	// Проверяем наличие таблицы периодов недоступности до первой транзакции
	if state, err := blockedPeriodRepository.CheckRelation(startupCtx); err != nil {
		log.Warn("Blocked periods table check failed, will retry on first use: %v", err)
	} else {
		log.Info("Blocked periods table: %s", state)
	}

	// Инициализируем сервисы
	skillsSvc := skills.NewService(competenceRepository, log)
	calendarSvc := calendar.NewService(
		reservationRepository,
		blockedPeriodRepository,
		cfg.Scheduling.ConflictListLimit,
		log,
	)
	reconciler := quantity.NewReconciler(cfg.Scheduling.OverAllocationEpsilon)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		projectClient,
		capabilityRegistry,
		log,
	)

	// Инициализируем use cases
	validateReservationUseCase := validateReservationUC.NewUseCase(
		reservationRepository,
		consultantRepository,
		projectClient,
		capabilityRegistry,
		skillsSvc,
		calendarSvc,
		reconciler,
		metricsCollector,
		log,
	)
	saveReservationUseCase := saveReservationUC.NewUseCase(
		reservationRepository,
		validateReservationUseCase,
		reservationsSvc,
		capabilityRegistry,
		txMgr,
		log,
	)
	changeStatusUseCase := changeStatusUC.NewUseCase(
		reservationRepository,
		reservationsSvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(saveReservationUseCase, log)
	updateReservation := updateReservationHandler.NewHandler(saveReservationUseCase, log)
	validateReservation := validateReservationHandler.NewHandler(validateReservationUseCase, log)
	changeStatus := changeStatusHandler.NewHandler(changeStatusUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getProjectReservations := getProjectReservationsHandler.NewHandler(reservationsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Бронирования ---
	// /validate регистрируется раньше /{reservationId}
	api.HandleFunc("/reservations/validate", validateReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPut)
	api.HandleFunc("/reservations/{reservationId}/status", changeStatus.Handle).Methods(http.MethodPatch)

	// --- Проекты ---
	api.HandleFunc("/projects/{projectId}/reservations", getProjectReservations.Handle).Methods(http.MethodGet)

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
