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

	cancelSessionHandler "github.com/m04kA/TMS-BookingService/internal/api/handlers/cancel_session"
	createBookingHandler "github.com/m04kA/TMS-BookingService/internal/api/handlers/create_booking"
	getAvailableWindowsHandler "github.com/m04kA/TMS-BookingService/internal/api/handlers/get_available_windows"
	getSessionHandler "github.com/m04kA/TMS-BookingService/internal/api/handlers/get_session"
	getStudentSessionsHandler "github.com/m04kA/TMS-BookingService/internal/api/handlers/get_student_sessions"
	getTutorSessionsHandler "github.com/m04kA/TMS-BookingService/internal/api/handlers/get_tutor_sessions"
	updateSessionStatusHandler "github.com/m04kA/TMS-BookingService/internal/api/handlers/update_session_status"
	"github.com/m04kA/TMS-BookingService/internal/api/middleware"
	"github.com/m04kA/TMS-BookingService/internal/config"
	sessionRepo "github.com/m04kA/TMS-BookingService/internal/infra/storage/session"
	catalogServiceClient "github.com/m04kA/TMS-BookingService/internal/integrations/catalogservice"
	tutorServiceClient "github.com/m04kA/TMS-BookingService/internal/integrations/tutorservice"
	sessionsService "github.com/m04kA/TMS-BookingService/internal/service/sessions"
	createBookingUC "github.com/m04kA/TMS-BookingService/internal/usecase/create_booking"
	getAvailableWindowsUC "github.com/m04kA/TMS-BookingService/internal/usecase/get_available_windows"
	"github.com/m04kA/TMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TMS-BookingService/pkg/logger"
	"github.com/m04kA/TMS-BookingService/pkg/metrics"
	"github.com/m04kA/TMS-BookingService/pkg/migrator"
	"github.com/m04kA/TMS-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/TMS-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting TMS-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Применяем миграции (если включены)
	if cfg.Migrations.Enabled {
		m, err := migrator.New(db, cfg.Migrations.Dir)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := m.Up(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		version, err := m.Version(context.Background())
		if err != nil {
			log.Fatal("Failed to get migrations version: %v", err)
		}
		log.Info("Migrations applied, current version=%d", version)
	}

	// Инициализируем интеграционных клиентов
	tutorClient := tutorServiceClient.NewClient(
		cfg.TutorService.URL,
		time.Duration(cfg.TutorService.Timeout)*time.Second,
		log,
	)
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (TutorService=%s timeout=%ds, CatalogService=%s timeout=%ds)",
		cfg.TutorService.URL, cfg.TutorService.Timeout, cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var sessionRepository *sessionRepo.Repository

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		sessionRepository = sessionRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	sessionSvc := sessionsService.NewService(sessionRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		sessionRepository,
		tutorClient,
		catalogClient,
		txMgr,
		log,
	)

	getAvailableWindowsUseCase := getAvailableWindowsUC.NewUseCase(
		sessionRepository,
		tutorClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableWindows := getAvailableWindowsHandler.NewHandler(getAvailableWindowsUseCase, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	cancelSession := cancelSessionHandler.NewHandler(sessionSvc, log)
	updateSessionStatus := updateSessionStatusHandler.NewHandler(sessionSvc, log)
	getStudentSessions := getStudentSessionsHandler.NewHandler(sessionSvc, log)
	getTutorSessions := getTutorSessionsHandler.NewHandler(sessionSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение доступных окон репетитора
	api.HandleFunc("/tutors/{tutorId}/availability",
		getAvailableWindows.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// --- Сессии ---
	// Получение сессии по ID
	protected.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)

	// Отмена сессии
	protected.HandleFunc("/sessions/{sessionId}/cancel", cancelSession.Handle).Methods(http.MethodPatch)

	// Фиксация итога сессии (completed / no_show)
	protected.HandleFunc("/sessions/{sessionId}/status", updateSessionStatus.Handle).Methods(http.MethodPatch)

	// История сессий студента
	protected.HandleFunc("/students/{studentId}/sessions", getStudentSessions.Handle).Methods(http.MethodGet)

	// Расписание сессий репетитора
	protected.HandleFunc("/tutors/{tutorId}/sessions", getTutorSessions.Handle).Methods(http.MethodGet)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
