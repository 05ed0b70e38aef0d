package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"github.com/robfig/cron/v3"

	"reflectify_backend/internals/configs"
	database "reflectify_backend/internals/databases"
	formScheduler "reflectify_backend/internals/features/feedback/forms/scheduler"
	formService "reflectify_backend/internals/features/feedback/forms/service"
	authScheduler "reflectify_backend/internals/features/users/auth/scheduler"
	authService "reflectify_backend/internals/features/users/auth/service"
	helper "reflectify_backend/internals/helpers"
	middlewares "reflectify_backend/internals/middlewares"
	routes "reflectify_backend/internals/route"
	"reflectify_backend/internals/services/mail"
	"reflectify_backend/internals/services/reporting"
)

func main() {
	configs.LoadEnv()
	cfg := configs.Settings()

	// 🐞 Rollbar (opsional)
	reporter := reporting.New(log.Default(), reporting.Options{
		Token:       cfg.GetString("ROLLBAR_TOKEN"),
		Environment: configs.AppEnv,
		ServerHost:  hostname(),
		CodeVersion: cfg.GetString("CODE_VERSION"),
	})
	defer reporter.Close()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"}, // sesuaikan dengan CIDR proxy jika perlu
		ErrorHandler:            errorHandler(reporter),
	})

	middlewares.SetupMiddlewares(app, reporter)

	// ⚙️ performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing (observability ringan)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// HTTP timeout guard (selaras dengan statement_timeout di DB)
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	// 🔌 storage: postgres (default) atau memory untuk demo lokal
	var stores *database.Stores
	var ping func(ctx context.Context) error
	if strings.EqualFold(cfg.GetString("STORAGE"), "memory") {
		log.Println("[WARN] STORAGE=memory, data hilang saat restart")
		stores = database.NewMemoryStores()
	} else {
		database.ConnectDB()
		database.TunePool()
		database.AutoMigrate()
		database.WarmUpQueries()
		stores = database.NewGormStores(database.DB)
		ping = database.Ping
	}

	// 📧 mailer
	appName := cfg.GetString("APP_NAME")
	var mailer mail.EmailService
	if key := cfg.GetString("SENDGRID_API_KEY"); key != "" {
		mailer = mail.NewSendgridService(key, appName, cfg.GetString("DEFAULT_FROM_EMAIL"))
		log.Println("✅ SendGrid mailer aktif")
	} else {
		mailer = mail.NewConsoleService(appName, cfg.GetString("DEFAULT_FROM_EMAIL"))
		log.Println("[INFO] SENDGRID_API_KEY kosong, email ditulis ke log")
	}

	tokens := authService.NewTokenService(configs.JWTSecret, cfg.GetDuration("JWT_TTL"))
	blacklist := authService.NewBlacklist(stores.Blacklist, tokens)
	forms := formService.NewFormService(stores.Forms, stores.OverrideStudents, mailer, appName, cfg.GetString("FRONTEND_BASE_URL"))

	// ⏱ scheduler setelah storage siap
	sched := cron.New()
	if _, err := sched.AddJob(cfg.GetString("FORM_CLOSE_SCHEDULE"), formScheduler.AutoCloseJob(forms, func(err error) {
		reporter.Error("auto-close form", err, nil)
	})); err != nil {
		log.Fatalf("❌ FORM_CLOSE_SCHEDULE tidak valid: %v", err)
	}
	if _, err := sched.AddJob("@daily", authScheduler.BlacklistCleanupJob(blacklist, cfg.GetInt("TOKEN_BLACKLIST_TTL_DAYS"))); err != nil {
		log.Fatalf("❌ gagal daftar job blacklist: %v", err)
	}
	sched.Start()

	// ✅ Routes
	routes.SetupRoutes(app, routes.Dependencies{
		Stores:        stores,
		Tokens:        tokens,
		Blacklist:     blacklist,
		Forms:         forms,
		Ping:          ping,
		IsDevelopment: configs.IsDevelopment,
		Environment:   configs.AppEnv,
		LoginLimiter:  middlewares.LoginRateLimiter(),
		SubmitLimiter: middlewares.SubmitRateLimiter(),
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := cfg.GetString("PORT")

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down...")

	<-sched.Stop().Done()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if database.DB != nil {
		if sqlDB, err := database.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// errorHandler: error yang lolos dari handler (panic lewat recover, route
// tidak ada, dll). 5xx dilaporkan ke Rollbar.
func errorHandler(reporter *reporting.Reporter) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := ""
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			reporter.Error("unhandled error", err, map[string]interface{}{
				"method":     c.Method(),
				"path":       c.Path(),
				"request_id": c.Locals("reqid"),
			})
			msg = ""
		}
		return helper.JsonError(c, code, msg)
	}
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
