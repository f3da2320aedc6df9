package cron

import (
	"context"
	"log"
	"time"

	"climaedu/config"
	sessionRepo "climaedu/database/repository/session"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSessionSweep = "session:sweep"

// InitSessionSweeper runs the async worker and periodic scheduler that
// release pending sessions orphaned by a crash between commit and
// confirmation. Without it an orphaned pending row would block its slot
// forever.
func InitSessionSweeper(repo sessionRepo.SessionRepository, logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
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
	mux.HandleFunc(TypeSessionSweep, handleSessionSweep(repo, logger))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register("@every 5m", asynq.NewTask(TypeSessionSweep, nil)); err != nil {
		log.Fatalf("[SessionSweeper] failed to register periodic sweep: %v", err)
	}

	// Start worker and scheduler with retry logic.
	go func() {
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("session sweeper worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))
				if attempts == maxAttempts {
					log.Fatal("[SessionSweeper] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Error("session sweeper scheduler stopped", zap.Error(err))
		}
	}()
}

func handleSessionSweep(repo sessionRepo.SessionRepository, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		ttl := time.Duration(config.AppConfig.PendingSessionTTLMin) * time.Minute
		cutoff := time.Now().Add(-ttl)

		released, err := repo.ExpireStalePending(ctx, cutoff)
		if err != nil {
			logger.Error("session sweep failed", zap.Error(err))
			return err
		}
		if released > 0 {
			logger.Info("released stale pending sessions",
				zap.Int64("count", released),
				zap.Time("cutoff", cutoff))
		}
		return nil
	}
}
