package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"reflectify_backend/internals/features/feedback/forms/service"
)

// AutoCloseJob menutup form ACTIVE yang sudah melewati end date.
// onErr opsional (dipakai untuk lapor ke rollbar).
func AutoCloseJob(svc *service.FormService, onErr func(error)) cron.FuncJob {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := svc.CloseExpired(ctx)
		if err != nil {
			log.Printf("[SCHEDULER ERROR] auto-close form: %v", err)
			if onErr != nil {
				onErr(err)
			}
			return
		}
		if n > 0 {
			log.Printf("[SCHEDULER] ⏰ %d form expired ditutup", n)
		}
	}
}
