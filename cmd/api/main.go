package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trn-gabru/lafabrica/internal/auth"
	"github.com/trn-gabru/lafabrica/internal/cache"
	"github.com/trn-gabru/lafabrica/internal/config"
	"github.com/trn-gabru/lafabrica/internal/db"
	"github.com/trn-gabru/lafabrica/internal/handlers"
	"github.com/trn-gabru/lafabrica/internal/inquiry"
	"github.com/trn-gabru/lafabrica/internal/middleware"
	"github.com/trn-gabru/lafabrica/internal/notifications"
	"github.com/trn-gabru/lafabrica/internal/portfolio"
	"github.com/trn-gabru/lafabrica/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	if cfg.JWTSecret == config.DefaultJWTSecret {
		logger.Warn("JWT_SECRET not set, using the insecure development default")
	}
	jwtManager := &auth.Manager{
		Secret:   []byte(cfg.JWTSecret),
		TokenTTL: time.Duration(cfg.TokenTTLHours) * time.Hour,
		Issuer:   "lafabrica",
	}

	mailer := notifications.NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.InquiryNotifyEmail, cfg.BrevoSandbox)
	if mailer == nil {
		logger.Info("inquiry notifications disabled")
	} else {
		logger.Info("inquiry notifications enabled", slog.String("to", cfg.InquiryNotifyEmail))
	}

	val := validation.New()

	server := &handlers.Server{
		Cfg:  cfg,
		Cols: cols,
		Val:  val,
		Log:  logger,
		JWT:  jwtManager,
	}

	portfolioRepo := portfolio.NewRepository(cols.PortfolioItems)
	portfolioService := portfolio.NewService(portfolioRepo, cfg.Timezone)
	portfolioHandler := portfolio.NewHandler(portfolioService, val, logger, cacheStore, time.Duration(cfg.CacheTTLSeconds)*time.Second)

	var notifier inquiry.Notifier
	if mailer != nil {
		notifier = mailer
	}
	inquiryRepo := inquiry.NewRepository(cols.Inquiries)
	inquiryService := inquiry.NewService(inquiryRepo, cfg.Timezone, notifier)
	inquiryHandler := inquiry.NewHandler(inquiryService, val, logger)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	inquiryLimiter := middleware.NewRateLimiter(cfg.RateLimitInquiries, time.Duration(cfg.RateLimitWindowSec)*time.Second)
	adminAuth := middleware.AdminAuth(cfg.AdminAPIKey, jwtManager)

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", server.AdminLogin)
		api.Get("/auth/verify", server.AuthVerify)

		api.Get("/portfolio", portfolioHandler.List)
		api.Get("/portfolio/{slug}", portfolioHandler.GetBySlug)

		api.With(inquiryLimiter.Middleware).Post("/inquiries", inquiryHandler.Create)

		api.Post("/upload", server.Upload)

		// Important (chi): middlewares must be attached before defining
		// routes, so mutations live in a sub-router.
		api.Group(func(protected chi.Router) {
			protected.Use(adminAuth)
			protected.Get("/inquiries", inquiryHandler.AdminList)
			protected.Post("/portfolio", portfolioHandler.Create)
			protected.Put("/portfolio/{slug}", portfolioHandler.Update)
			protected.Delete("/portfolio/{slug}", portfolioHandler.Delete)
			protected.Post("/portfolio/{slug}/images", portfolioHandler.AddImage)
			protected.Delete("/portfolio/{slug}/images", portfolioHandler.RemoveImage)
		})
	})

	uploadsFS := http.FileServer(http.Dir(cfg.UploadDir))
	r.Handle(handlers.PublicUploadPath+"*", http.StripPrefix(handlers.PublicUploadPath, uploadsFS))

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
