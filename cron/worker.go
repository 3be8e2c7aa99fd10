package cron

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"guildroster/config"
	"guildroster/services/schedule"
)

const TypeScheduleRollover = "schedule:rollover"

// InitRolloverWorker runs the async worker and its scheduler in background.
// The rollover task re-normalizes every team against the current week
// windows; it is idempotent, so the hourly cadence just bounds how stale
// the stored windows can get after the Thursday boundary passes.
func InitRolloverWorker(schedSvc *schedule.DefaultScheduleService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeScheduleRollover, handleRolloverTask(schedSvc))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register("@every 1h", asynq.NewTask(TypeScheduleRollover, nil)); err != nil {
		log.Fatalf("[RolloverWorker] failed to register rollover schedule: %v", err)
	}

	go func() {
		log.Println("[RolloverWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[RolloverWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[RolloverWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[RolloverWorker] ❌ Scheduler stopped: %v", err)
		}
	}()
}

func handleRolloverTask(schedSvc *schedule.DefaultScheduleService) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		updated, err := schedSvc.RolloverAll(ctx)
		if err != nil {
			log.Printf("[RolloverHandler] ❌ Rollover sweep failed: %v", err)
			return err
		}
		log.Printf("[RolloverHandler] ⏰ Rollover sweep done, %d teams updated", updated)
		return nil
	}
}
