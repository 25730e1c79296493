package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/rentloft/rentloft-api/internal/http/handlers"
	httpmw "github.com/rentloft/rentloft-api/internal/http/middleware"
	"github.com/rentloft/rentloft-api/internal/platform/mailer"
	"github.com/rentloft/rentloft-api/internal/platform/payments"
	"github.com/rentloft/rentloft-api/internal/repo/mongodb"
	"github.com/rentloft/rentloft-api/internal/service"
	"github.com/rentloft/rentloft-api/pkg/config"
	"github.com/rentloft/rentloft-api/pkg/events"
	"github.com/rentloft/rentloft-api/pkg/logger"
	mw "github.com/rentloft/rentloft-api/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// Connect to the document store
	ctx := context.Background()
	store, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		logger.Error("Failed to connect to mongo", "error", err)
		os.Exit(1)
	}
	defer store.Close(context.Background())

	// Redis backs the rate limiter on the open endpoints
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("Invalid redis URL", "error", err)
		os.Exit(1)
	}
	if cfg.Redis.Password != "" {
		redisOpts.Password = cfg.Redis.Password
	}
	redisOpts.DB = cfg.Redis.DB
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	// Event bus is optional; without a NATS URL events are dropped
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NATS.URL != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATS.URL)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	var mail mailer.Service = mailer.NewDevMailer()
	if !cfg.Email.DevMode {
		mail = mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.From)
	}

	// Initialize repositories
	userRepo := mongodb.NewUserRepository(store)
	apartmentRepo := mongodb.NewApartmentRepository(store)
	applicationRepo := mongodb.NewApplicationRepository(store)
	couponRepo := mongodb.NewCouponRepository(store)
	paymentRepo := mongodb.NewPaymentRepository(store)
	announcementRepo := mongodb.NewAnnouncementRepository(store)

	// Initialize services
	applicationService := service.NewApplicationService(applicationRepo, apartmentRepo, userRepo, publisher, mail)
	couponService := service.NewCouponService(couponRepo)

	// Initialize handlers
	h := handlers.New(handlers.Deps{
		Users:         userRepo,
		Apartments:    apartmentRepo,
		Coupons:       couponRepo,
		Payments:      paymentRepo,
		Announcements: announcementRepo,
		Applications:  applicationService,
		CouponCheck:   couponService,
		Intents:       payments.NewStripeClient(cfg.Stripe.SecretKey),
		Publisher:     publisher,
		JWTSecret:     cfg.Auth.JWTSecret,
		TokenTTL:      cfg.Auth.AccessTokenTTL,
	})

	access := httpmw.NewAccess(userRepo, cfg.Auth.JWTSecret)
	rateLimiter := httpmw.NewRateLimiter(rdb, httpmw.RateLimitConfig{
		Requests: 20,
		Window:   time.Minute,
	})

	// Setup router
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("api"))
	r.Use(mw.Logging)
	r.Use(mw.Recover)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000", "https://rentloft.surge.sh"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(mw.Health)

	// Public routes: the bypass of the guards here is a deliberate
	// access decision, not an omission.
	r.Get("/coupons", h.ListCoupons)
	r.Get("/apartments", h.ListApartments)
	r.Post("/checkRole", h.CheckRole)
	r.Post("/apartmentPrice", h.ApartmentsByRent)
	r.Post("/stripe-intent", h.CreatePaymentIntent)
	r.With(rateLimiter.Middleware).Post("/jwt", h.IssueToken)
	r.With(rateLimiter.Middleware).Post("/addUser", h.AddUser)

	// Gated routes: authentication first, then role resolution.
	r.Group(func(r chi.Router) {
		r.Use(access.RequireAuth)

		r.Get("/announcements", h.ListAnnouncements)
		r.Post("/apartmentRent", h.SubmitApplication)

		r.Group(func(r chi.Router) {
			r.Use(access.RequireAdminOrMember)
			r.Get("/apartmentRent", h.ListApplications)
		})

		r.Group(func(r chi.Router) {
			r.Use(access.RequireMember)
			r.Post("/apartmentRentInfo", h.MyApplication)
			r.Post("/payments", h.CreatePayment)
			r.Post("/paymentHistory", h.PaymentHistory)
			r.Post("/checkCoupon", h.CheckCoupon)
		})

		r.Group(func(r chi.Router) {
			r.Use(access.RequireAdmin)
			r.Get("/users", h.ListAllUsers)
			r.Get("/user", h.ListPlainUsers)
			r.Get("/members", h.ListMembers)
			r.Get("/admins", h.ListAdmins)
			r.Post("/announcements", h.CreateAnnouncement)
			r.Post("/coupons", h.CreateCoupon)
			r.Post("/apartments", h.CreateApartment)
			r.Patch("/updateCouponActive/{id}", h.ActivateCoupon)
			r.Patch("/updateCouponInactive/{id}", h.DeactivateCoupon)
			r.Patch("/degradeMember", h.DegradeMember)
			r.Patch("/accept", h.AcceptApplication)
			r.Patch("/reject", h.RejectApplication)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down API server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("API server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting API server", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("API server error", "error", err)
		os.Exit(1)
	}
}
