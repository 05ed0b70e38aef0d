package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	authService "reflectify_backend/internals/features/users/auth/service"
)

// BlacklistCleanupJob menghapus token blacklist yang expired lebih dari
// ttlDays hari lalu.
func BlacklistCleanupJob(bl *authService.Blacklist, ttlDays int) cron.FuncJob {
	if ttlDays <= 0 {
		ttlDays = 7
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")
		cutoff := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)
		n, err := bl.PurgeExpired(ctx, cutoff)
		switch {
		case err != nil:
			log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
		case n > 0:
			log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
		default:
			log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
		}
	}
}
