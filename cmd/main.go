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

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/avtoblesk/booking-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/avtoblesk/booking-service/internal/api/handlers/create_booking"
	getBookingHandler "github.com/avtoblesk/booking-service/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/avtoblesk/booking-service/internal/api/handlers/get_bookings"
	getDayScheduleHandler "github.com/avtoblesk/booking-service/internal/api/handlers/get_day_schedule"
	updateBookingStatusHandler "github.com/avtoblesk/booking-service/internal/api/handlers/update_booking_status"
	"github.com/avtoblesk/booking-service/internal/api/middleware"
	"github.com/avtoblesk/booking-service/internal/calendar"
	"github.com/avtoblesk/booking-service/internal/config"
	bookingRepo "github.com/avtoblesk/booking-service/internal/infra/storage/booking"
	catalogClient "github.com/avtoblesk/booking-service/internal/integrations/catalog"
	"github.com/avtoblesk/booking-service/internal/notifications"
	bookingsService "github.com/avtoblesk/booking-service/internal/service/bookings"
	createBookingUC "github.com/avtoblesk/booking-service/internal/usecase/create_booking"
	getDayScheduleUC "github.com/avtoblesk/booking-service/internal/usecase/get_day_schedule"
	"github.com/avtoblesk/booking-service/pkg/dbmetrics"
	"github.com/avtoblesk/booking-service/pkg/logger"
	"github.com/avtoblesk/booking-service/pkg/metrics"
	"github.com/avtoblesk/booking-service/pkg/simpletxmanager"
	"github.com/avtoblesk/booking-service/pkg/txmanager"
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

	log.Info("Starting avtoblesk booking-service...")

	// Правила календаря студии из статической конфигурации
	week, err := cfg.Schedule.WeekSchedule()
	if err != nil {
		log.Fatal("Failed to build week schedule: %v", err)
	}
	loc, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Failed to load studio timezone: %v", err)
	}
	calendarRules := calendar.NewRules(week, loc)
	log.Info("Studio calendar initialized (timezone=%s, step=%dmin, buffer=%dmin, horizon=%dd)",
		cfg.Schedule.Timezone, cfg.Schedule.SlotStepMinutes, cfg.Schedule.SameDayBufferMinutes, cfg.Schedule.AdvanceBookingDays)

	// Инициализируем метрики (если включены)
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Клиент каталога услуг
	catalog := catalogClient.NewClient(
		cfg.Catalog.URL,
		time.Duration(cfg.Catalog.Timeout)*time.Second,
		log,
	)
	log.Info("Catalog client initialized (url=%s, timeout=%ds)", cfg.Catalog.URL, cfg.Catalog.Timeout)

	// Отправка подтверждений по почте
	var notifier createBookingUC.Notifier
	if cfg.Notifications.Enabled {
		brevo := notifications.NewBrevoClient(
			cfg.Notifications.APIKey,
			cfg.Notifications.SenderEmail,
			cfg.Notifications.SenderName,
			cfg.Notifications.Sandbox,
			8*time.Second,
		)
		notifier = notifications.NewEmailSender(brevo, log)
		log.Info("Email notifications enabled (sender=%s, sandbox=%v)",
			cfg.Notifications.SenderEmail, cfg.Notifications.Sandbox)
	} else {
		notifier = notifications.NewNopSender()
		log.Info("Email notifications disabled")
	}

	// Репозиторий и transaction manager (с метриками или без)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var (
		bookingRepository *bookingRepo.Repository
		txMgr             TxManager
		bookingMetrics    createBookingUC.Metrics = createBookingUC.NopMetrics{}
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB, metricsCollector)
		bookingMetrics = metricsCollector
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Сервис существующих бронирований
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Use cases
	scheduleParams := getDayScheduleUC.ScheduleParams{
		SlotStepMinutes:      cfg.Schedule.SlotStepMinutes,
		SameDayBufferMinutes: cfg.Schedule.SameDayBufferMinutes,
		AdvanceBookingDays:   cfg.Schedule.AdvanceBookingDays,
	}

	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(
		bookingRepository,
		catalog,
		calendarRules,
		scheduleParams,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalog,
		calendarRules,
		txMgr,
		notifier,
		bookingMetrics,
		createBookingUC.ScheduleParams{
			SlotStepMinutes:      cfg.Schedule.SlotStepMinutes,
			SameDayBufferMinutes: cfg.Schedule.SameDayBufferMinutes,
			AdvanceBookingDays:   cfg.Schedule.AdvanceBookingDays,
		},
		log,
	)

	// Handlers
	getDaySchedule := getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)

	// Роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (сайт студии)
	// ============================================================

	// Расписание на день с доступностью слотов
	api.HandleFunc("/schedule", getDaySchedule.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Просмотр бронирования по номеру из письма
	api.HandleFunc("/bookings/{reference}", getBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token))

	// Календарь бронирований с фильтрацией
	admin.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	admin.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// Смена статуса бронирования
	admin.HandleFunc("/bookings/{id}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// CORS для сайта студии
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.Server.AllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "X-Admin-Token"}),
	)(r)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
