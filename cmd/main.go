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
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	createBookingHandler "github.com/m04kA/heritage-booking/internal/api/handlers/create_booking"
	createSiteHandler "github.com/m04kA/heritage-booking/internal/api/handlers/create_site"
	deleteBookingHandler "github.com/m04kA/heritage-booking/internal/api/handlers/delete_booking"
	deleteSiteHandler "github.com/m04kA/heritage-booking/internal/api/handlers/delete_site"
	getAvailabilityHandler "github.com/m04kA/heritage-booking/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/heritage-booking/internal/api/handlers/get_booking"
	getSiteHandler "github.com/m04kA/heritage-booking/internal/api/handlers/get_site"
	healthHandler "github.com/m04kA/heritage-booking/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/heritage-booking/internal/api/handlers/list_bookings"
	listPublicBookingsHandler "github.com/m04kA/heritage-booking/internal/api/handlers/list_public_bookings"
	listSitesHandler "github.com/m04kA/heritage-booking/internal/api/handlers/list_sites"
	loginHandler "github.com/m04kA/heritage-booking/internal/api/handlers/login"
	updateSiteHandler "github.com/m04kA/heritage-booking/internal/api/handlers/update_site"
	"github.com/m04kA/heritage-booking/internal/api/middleware"
	"github.com/m04kA/heritage-booking/internal/config"
	"github.com/m04kA/heritage-booking/internal/domain"
	bookingRepo "github.com/m04kA/heritage-booking/internal/infra/storage/booking"
	"github.com/m04kA/heritage-booking/internal/infra/storage/memory"
	"github.com/m04kA/heritage-booking/internal/infra/storage/mongostore"
	siteRepo "github.com/m04kA/heritage-booking/internal/infra/storage/site"
	authService "github.com/m04kA/heritage-booking/internal/service/auth"
	bookingsService "github.com/m04kA/heritage-booking/internal/service/bookings"
	sitesService "github.com/m04kA/heritage-booking/internal/service/sites"
	createBookingUC "github.com/m04kA/heritage-booking/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/heritage-booking/internal/usecase/get_availability"
	"github.com/m04kA/heritage-booking/migrations"
	"github.com/m04kA/heritage-booking/pkg/dbmetrics"
	"github.com/m04kA/heritage-booking/pkg/logger"
	"github.com/m04kA/heritage-booking/pkg/metrics"
	"github.com/m04kA/heritage-booking/pkg/txmanager"
)

// defaultAdminPassword пароль администратора в режиме разработки, если хэш не задан
const defaultAdminPassword = "admin123"

// SiteRepository объединение контрактов площадок всех потребителей
type SiteRepository interface {
	Create(ctx context.Context, site *domain.Site) (*domain.Site, error)
	Update(ctx context.Context, site *domain.Site) (*domain.Site, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Site, error)
	GetByName(ctx context.Context, name string) (*domain.Site, error)
	List(ctx context.Context) ([]*domain.Site, error)
}

// BookingRepository объединение контрактов бронирований всех потребителей
type BookingRepository interface {
	LockSlot(ctx context.Context, key domain.SlotKey) error
	CountBySlot(ctx context.Context, key domain.SlotKey) (int, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListBySiteInRange(ctx context.Context, siteID, dateStart, dateEnd string) ([]*domain.Booking, error)
	List(ctx context.Context) ([]*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

// TxManager область сериализации допуска
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage репозитории выбранного драйвера
type storage struct {
	sites    SiteRepository
	bookings BookingRepository
	tx       TxManager
	pinger   healthHandler.Pinger
	close    func()
}

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}
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

	log.Info("Starting heritage-booking (env=%s, storage=%s)...", cfg.App.Env, cfg.Storage.Driver)
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	store, err := openStorage(cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer store.close()

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}

	passwordHash := cfg.Auth.AdminPasswordHash
	if passwordHash == "" {
		if !cfg.IsDevelopment() {
			log.Fatal("auth.admin_password_hash (ADMIN_PASSWORD_HASH) is required outside development")
		}
		passwordHash, err = authService.HashPassword(defaultAdminPassword)
		if err != nil {
			log.Fatal("Failed to hash default admin password: %v", err)
		}
		log.Warn("Using default admin password for %q (development only)", cfg.Auth.AdminUsername)
	}

	// Инициализируем сервисы
	siteSvc := sitesService.NewService(store.sites, log)
	bookingSvc := bookingsService.NewService(store.bookings, log)
	authSvc := authService.NewService(authService.Config{
		Secret:            cfg.Auth.JWTSecret,
		TokenTTL:          cfg.Auth.TokenTTL.Duration,
		AdminUsername:     cfg.Auth.AdminUsername,
		AdminPasswordHash: passwordHash,
	}, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.sites,
		store.bookings,
		store.tx,
		metricsCollector,
		log,
		createBookingUC.Options{
			Location:         location,
			RejectPastDates:  cfg.Booking.RejectPastDates,
			OperationTimeout: cfg.Booking.OperationTimeout.Duration,
		},
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		store.sites,
		store.bookings,
		log,
		cfg.Booking.OperationTimeout.Duration,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	listSites := listSitesHandler.NewHandler(siteSvc, log)
	getSite := getSiteHandler.NewHandler(siteSvc, log)
	createSite := createSiteHandler.NewHandler(siteSvc, log)
	updateSite := updateSiteHandler.NewHandler(siteSvc, log)
	deleteSite := deleteSiteHandler.NewHandler(siteSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	listPublicBookings := listPublicBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	login := loginHandler.NewHandler(authSvc, log)
	health := healthHandler.NewHandler(store.pinger, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api").Subrouter()
	authRoutes := api.PathPrefix("/auth").Subrouter()

	if cfg.RateLimit.Enabled && !cfg.IsDevelopment() {
		apiLimiter, authLimiter, closeLimiters := newLimiters(cfg, log)
		defer closeLimiters()

		api.Use(middleware.RateLimit(apiLimiter, "api", log))
		authRoutes.Use(middleware.RateLimit(authLimiter, "auth", log))
		log.Info("Rate limiting enabled (backend=%s, api=%d/%s, auth=%d/%s)",
			cfg.RateLimit.Backend, cfg.RateLimit.APILimit, cfg.RateLimit.APIWindow.Duration,
			cfg.RateLimit.AuthLimit, cfg.RateLimit.AuthWindow.Duration)
	}

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	authRoutes.HandleFunc("/login", login.Handle).Methods(http.MethodPost)

	api.HandleFunc("/sites", listSites.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sites/{siteId}", getSite.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sites/{siteId}/availability/{month}", getAvailability.Handle).Methods(http.MethodGet)

	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/public", listPublicBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (Authorization: Bearer <token>)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth(authSvc, log))

	admin.HandleFunc("/sites", createSite.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/sites/{siteId}", updateSite.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/sites/{siteId}", deleteSite.Handle).Methods(http.MethodDelete)

	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)

	// Создаем HTTP сервер
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

func openStorage(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		// Проверяем соединение
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if cfg.Database.AutoMigrate {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			err := migrations.ApplyPostgres(ctx, db)
			cancel()
			if err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
			log.Info("Database migrations applied")
		}

		var wrapped *dbmetrics.DB
		if m != nil {
			wrapped = dbmetrics.WrapWithDefault(db, m, stopCh)
			log.Info("Database metrics collection started")
		} else {
			wrapped = dbmetrics.Wrap(db, nil)
		}

		return &storage{
			sites:    siteRepo.NewRepository(wrapped),
			bookings: bookingRepo.NewRepository(wrapped),
			tx:       txmanager.NewTransactionManager(wrapped),
			pinger:   wrapped,
			close:    func() { _ = db.Close() },
		}, nil

	case config.DriverMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		st, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.LockTTL.Duration)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		if err := st.EnsureIndexes(ctx); err != nil {
			_ = st.Disconnect(context.Background())
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		log.Info("Successfully connected to MongoDB (db=%s)", cfg.Mongo.Database)

		return &storage{
			sites:    st.Sites(),
			bookings: st.Bookings(),
			tx:       st.TxManager(),
			pinger:   st,
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = st.Disconnect(ctx)
			},
		}, nil

	default:
		st := memory.NewStore()
		log.Warn("Using in-memory storage: data is lost on restart")

		return &storage{
			sites:    st.Sites(),
			bookings: st.Bookings(),
			tx:       st.TxManager(),
			close:    func() {},
		}, nil
	}
}

func newLimiters(cfg *config.Config, log *logger.Logger) (middleware.Limiter, middleware.Limiter, func()) {
	rl := cfg.RateLimit

	if rl.Backend == config.BackendRedis {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("Redis at %s is unavailable, requests pass until it recovers: %v", cfg.Redis.Addr, err)
		}

		return middleware.NewRedisLimiter(rdb, rl.Prefix, rl.APILimit, rl.APIWindow.Duration),
			middleware.NewRedisLimiter(rdb, rl.Prefix, rl.AuthLimit, rl.AuthWindow.Duration),
			func() { _ = rdb.Close() }
	}

	return middleware.NewMemoryLimiter(rl.APILimit, rl.APIWindow.Duration),
		middleware.NewMemoryLimiter(rl.AuthLimit, rl.AuthWindow.Duration),
		func() {}
}
