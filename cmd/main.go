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

	cancelBookingHandler "github.com/portico-living/court-booking-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/portico-living/court-booking-service/internal/api/handlers/create_booking"
	getBookingHandler "github.com/portico-living/court-booking-service/internal/api/handlers/get_booking"
	getDayBookingsHandler "github.com/portico-living/court-booking-service/internal/api/handlers/get_day_bookings"
	getEndTimesHandler "github.com/portico-living/court-booking-service/internal/api/handlers/get_end_times"
	getFreeIntervalsHandler "github.com/portico-living/court-booking-service/internal/api/handlers/get_free_intervals"
	getStartTimesHandler "github.com/portico-living/court-booking-service/internal/api/handlers/get_start_times"
	getUserBookingsHandler "github.com/portico-living/court-booking-service/internal/api/handlers/get_user_bookings"
	"github.com/portico-living/court-booking-service/internal/api/middleware"
	"github.com/portico-living/court-booking-service/internal/config"
	bookingRepo "github.com/portico-living/court-booking-service/internal/infra/storage/booking"
	holidayClient "github.com/portico-living/court-booking-service/internal/integrations/holidayservice"
	bookingsService "github.com/portico-living/court-booking-service/internal/service/bookings"
	createBookingUC "github.com/portico-living/court-booking-service/internal/usecase/create_booking"
	getEndTimesUC "github.com/portico-living/court-booking-service/internal/usecase/get_end_times"
	getFreeIntervalsUC "github.com/portico-living/court-booking-service/internal/usecase/get_free_intervals"
	getStartTimesUC "github.com/portico-living/court-booking-service/internal/usecase/get_start_times"
	"github.com/portico-living/court-booking-service/pkg/dbmetrics"
	"github.com/portico-living/court-booking-service/pkg/logger"
	"github.com/portico-living/court-booking-service/pkg/metrics"
	"github.com/portico-living/court-booking-service/pkg/simpletxmanager"
	"github.com/portico-living/court-booking-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Политика и таймзона уже проверены при загрузке конфига
	policy, _ := cfg.Policy()
	location, _ := cfg.Location()

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting court-booking-service...")
	log.Info("Configuration loaded from config.toml")
	log.Info("Court operating window %s-%s, granularity %d min, timezone %s",
		policy.Window.DayStart, policy.Window.DayEnd, policy.GranularityMinutes, cfg.Booking.Timezone)

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

	// Инициализируем клиент справочника публичных праздников
	holidays := holidayClient.NewClient(
		cfg.HolidayService.URL,
		cfg.HolidayService.CountryCode,
		time.Duration(cfg.HolidayService.Timeout)*time.Second,
		cfg.HolidayService.ManualHolidays,
		log,
	)
	log.Info("Holiday service client initialized (url=%s, country=%s, manual=%d)",
		cfg.HolidayService.URL, cfg.HolidayService.CountryCode, len(cfg.HolidayService.ManualHolidays))

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var bookingRepository *bookingRepo.Repository

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		holidays,
		txMgr,
		policy,
		location,
		log,
	)
	getFreeIntervalsUseCase := getFreeIntervalsUC.NewUseCase(bookingRepository, policy, log)
	getStartTimesUseCase := getStartTimesUC.NewUseCase(bookingRepository, policy, log)
	getEndTimesUseCase := getEndTimesUC.NewUseCase(bookingRepository, policy, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getFreeIntervals := getFreeIntervalsHandler.NewHandler(getFreeIntervalsUseCase, log)
	getStartTimes := getStartTimesHandler.NewHandler(getStartTimesUseCase, log)
	getEndTimes := getEndTimesHandler.NewHandler(getEndTimesUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getDayBookings := getDayBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Прокидываем идентификатор запроса во все ответы
	r.Use(middleware.RequestID)

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

	// Доступность корта: свободные интервалы и выбор времени в два шага
	api.HandleFunc("/free-intervals", getFreeIntervals.Handle).Methods(http.MethodGet)
	api.HandleFunc("/start-times", getStartTimes.Handle).Methods(http.MethodGet)
	api.HandleFunc("/end-times", getEndTimes.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Расписание дня (должно регистрироваться раньше /bookings/{bookingId})
	protected.HandleFunc("/bookings/day", getDayBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

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
