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

	createBookingHandler "github.com/m04kA/TutorBookingService/internal/api/handlers/create_booking"
	createNotificationHandler "github.com/m04kA/TutorBookingService/internal/api/handlers/create_notification"
	getAvailableSlotsHandler "github.com/m04kA/TutorBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/TutorBookingService/internal/api/handlers/get_booking"
	getMeHandler "github.com/m04kA/TutorBookingService/internal/api/handlers/get_me"
	getTutorHandler "github.com/m04kA/TutorBookingService/internal/api/handlers/get_tutor"
	listBookingsHandler "github.com/m04kA/TutorBookingService/internal/api/handlers/list_bookings"
	listNotificationsHandler "github.com/m04kA/TutorBookingService/internal/api/handlers/list_notifications"
	loginHandler "github.com/m04kA/TutorBookingService/internal/api/handlers/login"
	markNotificationReadHandler "github.com/m04kA/TutorBookingService/internal/api/handlers/mark_notification_read"
	registerHandler "github.com/m04kA/TutorBookingService/internal/api/handlers/register"
	searchTutorsHandler "github.com/m04kA/TutorBookingService/internal/api/handlers/search_tutors"
	setAvailabilityHandler "github.com/m04kA/TutorBookingService/internal/api/handlers/set_availability"
	updateBookingStatusHandler "github.com/m04kA/TutorBookingService/internal/api/handlers/update_booking_status"
	updateTutorProfileHandler "github.com/m04kA/TutorBookingService/internal/api/handlers/update_tutor_profile"
	"github.com/m04kA/TutorBookingService/internal/api/middleware"
	"github.com/m04kA/TutorBookingService/internal/config"
	"github.com/m04kA/TutorBookingService/internal/domain"
	"github.com/m04kA/TutorBookingService/internal/infra/migrations"
	bookingRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/booking"
	notificationRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/notification"
	studentRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/student"
	tutorRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/tutor"
	userRepo "github.com/m04kA/TutorBookingService/internal/infra/storage/user"
	authService "github.com/m04kA/TutorBookingService/internal/service/auth"
	bookingsService "github.com/m04kA/TutorBookingService/internal/service/bookings"
	notificationsService "github.com/m04kA/TutorBookingService/internal/service/notifications"
	tutorsService "github.com/m04kA/TutorBookingService/internal/service/tutors"
	createBookingUC "github.com/m04kA/TutorBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/TutorBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/TutorBookingService/pkg/authtoken"
	"github.com/m04kA/TutorBookingService/pkg/dbmetrics"
	"github.com/m04kA/TutorBookingService/pkg/keylock"
	"github.com/m04kA/TutorBookingService/pkg/logger"
	"github.com/m04kA/TutorBookingService/pkg/metrics"
	"github.com/m04kA/TutorBookingService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
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

	log.Info("Starting TutorBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	// *metrics.Metrics = nil безопасен: все методы ничего не делают
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
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(context.Background(), db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		version, err := migrations.Version(context.Background(), db)
		if err != nil {
			log.Fatal("Failed to read schema version: %v", err)
		}
		log.Info("Database schema is at version %d", version)
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	tutorRepository := tutorRepo.NewRepository(wrappedDB)
	studentRepository := studentRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	notificationRepository := notificationRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(wrappedDB)
	tokenIssuer := authtoken.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())

	// Инициализируем сервисы
	notificationSvc := notificationsService.NewService(notificationRepository, log)
	authSvc := authService.NewService(
		userRepository,
		tutorRepository,
		studentRepository,
		txMgr,
		tokenIssuer,
		cfg.Auth.BcryptCost,
		log,
	)
	tutorSvc := tutorsService.NewService(tutorRepository, txMgr, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		tutorRepository,
		studentRepository,
		txMgr,
		notificationSvc,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		tutorRepository,
		studentRepository,
		txMgr,
		keylock.New(),
		notificationSvc,
		metricsCollector,
		location,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		tutorRepository,
		location,
		cfg.Booking.SlotStepMinutes,
		log,
	)

	// Инициализируем handlers
	register := registerHandler.NewHandler(authSvc, log)
	login := loginHandler.NewHandler(authSvc, log)
	getMe := getMeHandler.NewHandler(authSvc, log)
	searchTutors := searchTutorsHandler.NewHandler(tutorSvc, log)
	getTutor := getTutorHandler.NewHandler(tutorSvc, log)
	updateTutorProfile := updateTutorProfileHandler.NewHandler(tutorSvc, log)
	setAvailability := setAvailabilityHandler.NewHandler(tutorSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	listNotifications := listNotificationsHandler.NewHandler(notificationSvc, log)
	createNotification := createNotificationHandler.NewHandler(notificationSvc, log)
	markNotificationRead := markNotificationReadHandler.NewHandler(notificationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/auth/register", register.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// Каталог репетиторов и свободное время
	api.HandleFunc("/tutors", searchTutors.Handle).Methods(http.MethodGet)
	api.HandleFunc("/tutors/{tutorId:[0-9]+}", getTutor.Handle).Methods(http.MethodGet)
	api.HandleFunc("/tutors/{tutorId:[0-9]+}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokenIssuer))

	protected.HandleFunc("/auth/me", getMe.Handle).Methods(http.MethodGet)

	// --- Профиль репетитора ---
	tutorOnly := middleware.RequireRole(domain.RoleTutor)
	protected.Handle("/tutors/me", tutorOnly(http.HandlerFunc(updateTutorProfile.Handle))).Methods(http.MethodPut)
	protected.Handle("/tutors/me/availability", tutorOnly(http.HandlerFunc(setAvailability.Handle))).Methods(http.MethodPut)

	// --- Бронирования ---
	studentOnly := middleware.RequireRole(domain.RoleStudent)
	protected.Handle("/bookings", studentOnly(http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Уведомления ---
	protected.HandleFunc("/notifications", listNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications", createNotification.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/notifications/mark-read", markNotificationRead.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.CORS(cfg.CORS.AllowedOrigins).Handler(r),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s (booking timezone %s)", addr, location)
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
