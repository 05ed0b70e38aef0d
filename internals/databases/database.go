package database

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"reflectify_backend/internals/configs"
)

var DB *gorm.DB

// DSN dari DB_URL kalau ada, selain itu dirakit dari DB_USER/DB_PASSWORD/...
func DSN() string {
	cfg := configs.Settings()
	if raw := cfg.GetString("DB_URL"); raw != "" {
		return raw
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=%s&options=-c%%20statement_timeout=5000",
		url.QueryEscape(cfg.GetString("DB_USER")),
		url.QueryEscape(cfg.GetString("DB_PASSWORD")),
		cfg.GetString("DB_HOST"),
		cfg.GetString("DB_PORT"),
		cfg.GetString("DB_NAME"),
		cfg.GetString("DB_SSLMODE"),
		url.QueryEscape(cfg.GetString("APP_NAME")),
	)
}

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  DSN(),
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	cfg := configs.Settings()
	sqlDB.SetMaxOpenConns(cfg.GetInt("DB_MAX_OPEN_CONNS"))
	sqlDB.SetMaxIdleConns(cfg.GetInt("DB_MAX_IDLE_CONNS"))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// AutoMigrate semua tabel (DB_AUTO_MIGRATE=false untuk skip).
func AutoMigrate() {
	if !configs.Settings().GetBool("DB_AUTO_MIGRATE") {
		log.Println("[INFO] DB_AUTO_MIGRATE=false, skip migrasi")
		return
	}
	// gen_random_uuid() butuh pgcrypto di PG < 13
	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Printf("[WARN] pgcrypto: %v", err)
	}
	if err := DB.AutoMigrate(Models()...); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}
	log.Println("✅ AutoMigrate selesai")
}

func WarmUpQueries() {
	// jalankan ringan supaya koneksi/pool “keisi” & siap
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := Ping(ctx); err != nil {
			log.Printf("warm-up ping err: %v", err)
			return
		}
		// slug lookup publik paling sering dipanggil
		DB.WithContext(ctx).Exec("SELECT 1 FROM feedback_forms WHERE feedback_form_slug = ? LIMIT 1", "")
	}()
}

// Ping dipakai /health.
func Ping(ctx context.Context) error {
	if DB == nil {
		return fmt.Errorf("db belum terkoneksi")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
