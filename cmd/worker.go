package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivertype"

	"github.com/qatrackplus/qatrack-backend/infra"
	"github.com/qatrackplus/qatrack-backend/jobs"
	"github.com/qatrackplus/qatrack-backend/repositories"
	"github.com/qatrackplus/qatrack-backend/usecases"
	"github.com/qatrackplus/qatrack-backend/utils"
)

func RunWorker() error {
	pgConfig := pgConfigFromEnv()

	logger := utils.NewLogger(utils.GetEnv("LOGGING_FORMAT", "text"))
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(),
		utils.GetEnv("PG_MAX_POOL_SIZE", infra.DEFAULT_MAX_CONNECTIONS))
	if err != nil {
		return err
	}

	workers := river.NewWorkers()
	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: utils.GetEnv("QUEUE_MAX_WORKERS", 10)},
		},
		Workers: workers,
		WorkerMiddleware: []rivertype.WorkerMiddleware{
			jobs.NewLoggerMiddleware(logger),
			jobs.NewRecoveredMiddleware(),
		},
	})
	if err != nil {
		return err
	}

	uc := usecases.NewUsecases(
		repositories.NewExecutorGetter(pool),
		repositories.NewTaskQueueRepository(riverClient),
	)
	river.AddWorker(workers, jobs.NewQcCompletedWorker(uc.NewTestListInstanceUsecase()))

	if err := riverClient.Start(ctx); err != nil {
		return err
	}

	sigintOrTerm := make(chan os.Signal, 1)
	signal.Notify(sigintOrTerm, syscall.SIGINT, syscall.SIGTERM)

	go cleanStop(ctx, sigintOrTerm, riverClient)

	<-riverClient.Stopped()
	logger.InfoContext(ctx, "river client stopped")
	return nil
}

// cleanStop waits for SIGINT/SIGTERM and tries a soft stop first, letting
// running jobs finish. A second signal or the soft-stop timeout escalates to a
// hard stop that cancels job contexts.
func cleanStop(ctx context.Context, sigintOrTerm chan os.Signal, riverClient *river.Client[pgx.Tx]) {
	logger := utils.LoggerFromContext(ctx)
	<-sigintOrTerm
	logger.InfoContext(ctx, "received SIGINT/SIGTERM; initiating soft stop")

	softStopCtx, softStopCtxCancel := context.WithTimeout(ctx, 10*time.Second)
	defer softStopCtxCancel()

	go func() {
		select {
		case <-sigintOrTerm:
			logger.InfoContext(ctx, "received SIGINT/SIGTERM again; initiating hard stop")
			softStopCtxCancel()
		case <-softStopCtx.Done():
		}
	}()

	err := riverClient.Stop(softStopCtx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		logger.ErrorContext(ctx, "soft stop failed", "error", err.Error())
		panic(err)
	}
	if err == nil {
		logger.InfoContext(ctx, "soft stop succeeded")
		return
	}

	hardStopCtx, hardStopCtxCancel := context.WithTimeout(ctx, 10*time.Second)
	defer hardStopCtxCancel()

	err = riverClient.StopAndCancel(hardStopCtx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		logger.InfoContext(ctx, "hard stop timeout; exiting unsafely")
	} else if err != nil {
		panic(err)
	}
}
