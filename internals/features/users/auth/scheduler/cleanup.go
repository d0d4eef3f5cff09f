package scheduler

import (
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"preschool_backend/internals/configs"
	authRepo "preschool_backend/internals/features/users/auth/repository"
)

const defaultCleanupSpec = "@every 6h"

// RunBlacklistCleanup menghapus permanen token blacklist yang sudah lewat expired_at.
func RunBlacklistCleanup(db *gorm.DB) {
	n, err := authRepo.CleanupExpiredBlacklist(db, time.Now())
	if err != nil {
		log.Printf("[CLEANUP ERROR] token_blacklist: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[CLEANUP] %d expired blacklisted tokens removed", n)
	}
}

// StartBlacklistCleanupScheduler: jadwal dari TOKEN_BLACKLIST_CLEANUP_CRON (default tiap 6 jam).
// Caller wajib memanggil Stop() saat shutdown.
func StartBlacklistCleanupScheduler(db *gorm.DB) *cron.Cron {
	spec := strings.TrimSpace(configs.GetEnv("TOKEN_BLACKLIST_CLEANUP_CRON", defaultCleanupSpec))

	c := cron.New()
	if _, err := c.AddFunc(spec, func() { RunBlacklistCleanup(db) }); err != nil {
		log.Printf("[WARN] invalid TOKEN_BLACKLIST_CLEANUP_CRON %q (%v), using %s", spec, err, defaultCleanupSpec)
		_, _ = c.AddFunc(defaultCleanupSpec, func() { RunBlacklistCleanup(db) })
	}
	c.Start()

	// sekali di awal supaya tabel tidak menumpuk setelah downtime
	go RunBlacklistCleanup(db)
	log.Printf("[INFO] Blacklist cleanup scheduled (%s)", spec)
	return c
}
