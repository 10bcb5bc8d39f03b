package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmkang/pepper-shop/internal/admin"
	"github.com/jmkang/pepper-shop/internal/auth"
	"github.com/jmkang/pepper-shop/internal/config"
	"github.com/jmkang/pepper-shop/internal/events"
	"github.com/jmkang/pepper-shop/internal/inquiries"
	"github.com/jmkang/pepper-shop/internal/notifications"
	"github.com/jmkang/pepper-shop/internal/orders"
	"github.com/jmkang/pepper-shop/internal/postgres"
	"github.com/jmkang/pepper-shop/internal/products"
	"github.com/jmkang/pepper-shop/internal/repository"
	"github.com/jmkang/pepper-shop/internal/sms"
	"github.com/jmkang/pepper-shop/internal/websocket"
	"github.com/jmkang/pepper-shop/pkg/models"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	cfg := config.Load()

	db, err := postgres.Connect(cfg.PostgresDSN(), logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		logger.WithError(err).Fatal("Failed to create tables")
	}

	// Repositories are built once here and handed to the handlers.
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	seedAdmin(cfg, adminRepo, logger)

	producer, err := events.NewKafkaProducer(cfg.KafkaBrokers, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create Kafka producer")
	}
	defer producer.Close()

	var cache products.Cache
	redisCache := products.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, 5*time.Minute)
	if err := redisCache.Ping(context.Background()); err != nil {
		logger.WithError(err).Warn("Redis unreachable, product caching disabled")
	} else {
		cache = redisCache
	}

	gateway := sms.NewClient(cfg.SMSBaseURL, cfg.SMSAccountSID, cfg.SMSAuthToken, cfg.SMSFromNumber, logger)
	tokens := auth.NewTokenManager(cfg.JWTSecret, 24*time.Hour)

	hub := websocket.NewHub(logger)
	go hub.Run()

	orderHandler := orders.NewHandler(orderRepo, producer, logger)
	orderHandler.SetWebSocketHub(hub)
	productHandler := products.NewHandler(productRepo, cache, cfg.ImageDir, logger)
	inquiryHandler := inquiries.NewHandler(inquiryRepo, logger)
	notificationHandler := notifications.NewHandler(gateway, logger)
	authHandler := auth.NewHandler(adminRepo, tokens, logger)
	dashboardHandler := admin.NewDashboardHandler(orderRepo, productRepo, inquiryRepo, logger)

	router := mux.NewRouter()
	router.Use(loggingMiddleware(logger))

	router.HandleFunc("/health", healthCheck(db)).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/products", productHandler.ListProducts).Methods("GET")
	api.HandleFunc("/products/{id:[0-9]+}", productHandler.GetProduct).Methods("GET")
	api.HandleFunc("/orders", orderHandler.CreateOrder).Methods("POST")
	api.HandleFunc("/orders/{orderNumber}", orderHandler.GetOrder).Methods("GET")
	api.HandleFunc("/notifications", notificationHandler.Send).Methods("POST")
	api.HandleFunc("/inquiries", inquiryHandler.CreateInquiry).Methods("POST")
	api.HandleFunc("/admin/login", authHandler.Login).Methods("POST")

	adminAPI := api.PathPrefix("/admin").Subrouter()
	adminAPI.Use(tokens.RequireAdmin(logger))
	adminAPI.HandleFunc("/dashboard", dashboardHandler.Dashboard).Methods("GET")
	adminAPI.HandleFunc("/orders", orderHandler.ListOrders).Methods("GET")
	adminAPI.HandleFunc("/orders/{id:[0-9]+}/status", orderHandler.UpdateStatus).Methods("PATCH")
	adminAPI.HandleFunc("/products", productHandler.CreateProduct).Methods("POST")
	adminAPI.HandleFunc("/products/{id:[0-9]+}", productHandler.UpdateProduct).Methods("PUT")
	adminAPI.HandleFunc("/products/{id:[0-9]+}", productHandler.DeleteProduct).Methods("DELETE")
	adminAPI.HandleFunc("/products/{id:[0-9]+}/image", productHandler.UploadImage).Methods("POST")
	adminAPI.HandleFunc("/inquiries", inquiryHandler.ListInquiries).Methods("GET")
	adminAPI.HandleFunc("/inquiries/{id:[0-9]+}", inquiryHandler.GetInquiry).Methods("GET")
	adminAPI.HandleFunc("/inquiries/{id:[0-9]+}/response", inquiryHandler.RespondToInquiry).Methods("POST")

	ws := router.PathPrefix("/ws").Subrouter()
	ws.Use(tokens.RequireAdmin(logger))
	ws.HandleFunc("/admin", hub.HandleWebSocket)

	router.PathPrefix("/images/").Handler(
		http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.ImageDir))))

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("Starting storefront service")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server gracefully stopped")
}

// seedAdmin creates the bootstrap admin account when configured and
// not present yet.
func seedAdmin(cfg config.Config, repo repository.AdminRepository, logger *logrus.Logger) {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return
	}

	ctx := context.Background()
	if _, err := repo.GetByUsername(ctx, cfg.AdminUsername); err == nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.WithError(err).Error("Failed to hash admin password")
		return
	}

	admin := &models.Admin{
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		logger.WithError(err).Error("Failed to seed admin account")
		return
	}

	logger.WithField("username", admin.Username).Info("Seeded admin account")
}

func healthCheck(db interface{ Ping() error }) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","service":"storefront"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"storefront"}`))
	}
}

func loggingMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			logger.WithFields(logrus.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
				"remote": r.RemoteAddr,
			}).Info("Request received")

			next.ServeHTTP(w, r)

			logger.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start).Milliseconds(),
			}).Info("Request completed")
		})
	}
}
