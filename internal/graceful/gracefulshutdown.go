package graceful

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"DrillReportBot/internal/utils/logger/sl"
)

type Operation func(ctx context.Context) error

// GracefulShutdown waits for termination syscalls and doing clean up operations after received it.
func GracefulShutdown(ctx context.Context, timeout time.Duration, ops map[string]Operation, logger *slog.Logger) <-chan struct{} {
	op := "GracefulShutdown()"
	log := logger.With(
		slog.String("op", op))

	wait := make(chan struct{})
	go func() {
		s := make(chan os.Signal, 1)
		signal.Notify(s, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		<-s

		log.Info("shutting down")

		ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		var wg sync.WaitGroup

		for key, op := range ops {
			wg.Add(1)
			go func() {
				defer wg.Done()

				log.Info("cleaning up: ", slog.String("process", key))
				if err := op(ctxTimeout); err != nil {
					log.Error("error clean up", slog.String("process", key), sl.Err(err))
					return
				}

				log.Info("shutdown gracefully", slog.String("process", key))
			}()
		}

		wg.Wait()
		log.Info("graceful shutdown completed")

		close(wait)
	}()

	return wait
}
