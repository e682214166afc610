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

	addAvailabilityRuleHandler "github.com/glowbook/scheduling-service/internal/api/handlers/add_availability_rule"
	cancelBookingHandler "github.com/glowbook/scheduling-service/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/glowbook/scheduling-service/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/glowbook/scheduling-service/internal/api/handlers/create_booking"
	createServiceHandler "github.com/glowbook/scheduling-service/internal/api/handlers/create_service"
	getAvailabilityHandler "github.com/glowbook/scheduling-service/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/glowbook/scheduling-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/glowbook/scheduling-service/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/glowbook/scheduling-service/internal/api/handlers/get_client_bookings"
	getStylistBookingsHandler "github.com/glowbook/scheduling-service/internal/api/handlers/get_stylist_bookings"
	getStylistServicesHandler "github.com/glowbook/scheduling-service/internal/api/handlers/get_stylist_services"
	removeAvailabilityRuleHandler "github.com/glowbook/scheduling-service/internal/api/handlers/remove_availability_rule"
	updateBookingStatusHandler "github.com/glowbook/scheduling-service/internal/api/handlers/update_booking_status"
	"github.com/glowbook/scheduling-service/internal/api/middleware"
	"github.com/glowbook/scheduling-service/internal/config"
	availabilityRepo "github.com/glowbook/scheduling-service/internal/infra/storage/availability"
	bookingRepo "github.com/glowbook/scheduling-service/internal/infra/storage/booking"
	serviceOfferingRepo "github.com/glowbook/scheduling-service/internal/infra/storage/serviceoffering"
	profileServiceClient "github.com/glowbook/scheduling-service/internal/integrations/profileservice"
	availabilityService "github.com/glowbook/scheduling-service/internal/service/availability"
	bookingsService "github.com/glowbook/scheduling-service/internal/service/bookings"
	conflictService "github.com/glowbook/scheduling-service/internal/service/conflict"
	jobsService "github.com/glowbook/scheduling-service/internal/service/jobs"
	notifyService "github.com/glowbook/scheduling-service/internal/service/notify"
	offeringsService "github.com/glowbook/scheduling-service/internal/service/offerings"
	createBookingUC "github.com/glowbook/scheduling-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/glowbook/scheduling-service/internal/usecase/get_available_slots"
	"github.com/glowbook/scheduling-service/pkg/dbmetrics"
	"github.com/glowbook/scheduling-service/pkg/logger"
	"github.com/glowbook/scheduling-service/pkg/metrics"
	"github.com/glowbook/scheduling-service/pkg/simpletxmanager"
	"github.com/glowbook/scheduling-service/pkg/txmanager"
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

	log.Info("Starting scheduling-service...")
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

	// Инициализируем клиент ProfileService
	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (ProfileService=%s timeout=%ds)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		serviceRepository      *serviceOfferingRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		serviceRepository = serviceOfferingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		serviceRepository = serviceOfferingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	notifier := notifyService.NewService(notifyService.Config{
		Enabled:        cfg.Notifications.Enabled,
		SendGridAPIKey: cfg.Notifications.SendGridAPIKey,
		FromEmail:      cfg.Notifications.FromEmail,
		FromName:       cfg.Notifications.FromName,
	}, profileClient, log)

	conflictChecker := conflictService.NewChecker(bookingRepository, log)
	availabilitySvc := availabilityService.NewService(availabilityRepository, log)
	offeringsSvc := offeringsService.NewService(serviceRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, notifier, log)

	schedulingCfg := getAvailableSlotsUC.Config{
		GranularityMinutes: cfg.Scheduling.SlotGranularityMinutes,
		MinLeadTimeHours:   cfg.Scheduling.MinLeadTimeHours,
		MaxHorizonDays:     cfg.Scheduling.MaxHorizonDays,
	}

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		serviceRepository,
		schedulingCfg,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		serviceRepository,
		conflictChecker,
		profileClient,
		notifier,
		txMgr,
		createBookingUC.Config{
			GranularityMinutes: cfg.Scheduling.SlotGranularityMinutes,
			MinLeadTimeHours:   cfg.Scheduling.MinLeadTimeHours,
			MaxHorizonDays:     cfg.Scheduling.MaxHorizonDays,
		},
		log,
	)

	// Инициализируем фоновые задачи продвижения статусов
	var sweeper *jobsService.Service
	if cfg.Jobs.Enabled {
		sweeper = jobsService.NewService(bookingRepository, &jobsService.RealTimeProvider{}, log, cfg.Jobs.SweepSchedule)
		if err := sweeper.Start(); err != nil {
			log.Fatal("Failed to start background jobs: %v", err)
		}
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getStylistBookings := getStylistBookingsHandler.NewHandler(bookingSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	addAvailabilityRule := addAvailabilityRuleHandler.NewHandler(availabilitySvc, log)
	removeAvailabilityRule := removeAvailabilityRuleHandler.NewHandler(availabilitySvc, log)
	createService := createServiceHandler.NewHandler(offeringsSvc, log)
	getStylistServices := getStylistServicesHandler.NewHandler(offeringsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты для записи
	api.HandleFunc("/stylists/{stylistId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Расписание стилиста
	api.HandleFunc("/stylists/{stylistId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Каталог услуг стилиста
	api.HandleFunc("/stylists/{stylistId}/services",
		getStylistServices.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- История бронирований ---
	protected.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/stylists/{stylistId}/bookings", getStylistBookings.Handle).Methods(http.MethodGet)

	// --- Управление расписанием (для стилистов) ---
	protected.HandleFunc("/stylists/{stylistId}/availability", addAvailabilityRule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/stylists/{stylistId}/availability/{ruleId}", removeAvailabilityRule.Handle).Methods(http.MethodDelete)

	// --- Управление услугами (для стилистов) ---
	protected.HandleFunc("/stylists/{stylistId}/services", createService.Handle).Methods(http.MethodPost)

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

	// Останавливаем фоновые задачи
	if sweeper != nil {
		sweeper.Stop()
	}

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
