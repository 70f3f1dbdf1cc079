package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Task is a job the Worker runs every TTL.
type Task interface {
	TTL() time.Duration
	Do(context.Context) error
	// Info names the task in logs.
	Info() string
}

type workerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Worker struct {
	log   workerLogger
	tasks []Task
	wg    sync.WaitGroup
}

// New runs every task once and fails if any of those runs fails or panics.
// After that the tasks repeat in the background until ctx is cancelled.
func New(ctx context.Context, log workerLogger, tasks []Task) (*Worker, error) {
	initGroup, initCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		initGroup.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					err = fmt.Errorf("init panic: %v\n%s", r, stack)
					log.Error("Task panic during init",
						logger.NewField("task", task.Info()),
						logger.NewField("recover", r),
					)
				}
			}()
			log.Info("Initializing",
				logger.NewField("task", task.Info()),
			)
			return task.Do(initCtx)
		})
	}

	if err := initGroup.Wait(); err != nil {
		return nil, fmt.Errorf("failed to initialize tasks: %w", err)
	}

	worker := &Worker{
		log:   log,
		tasks: tasks,
	}

	for _, task := range tasks {
		worker.wg.Add(1)
		go worker.runBackgroundTask(ctx, task)
	}

	return worker, nil
}

// Wait blocks until every task loop has returned.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) runBackgroundTask(ctx context.Context, task Task) {
	defer w.wg.Done()

	taskLog := w.log.With(
		logger.NewField("task", task.Info()),
		logger.NewField("ttl", task.TTL()),
	)

	ttl := task.TTL()
	if ttl <= 0 {
		taskLog.Warn("invalid TTL, skipping periodic execution")
		return
	}
	taskLog.Info("Starting periodic execution")

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			taskLog.Info("Stopping task (context cancelled)")
			return
		case <-ticker.C:
			w.executeTaskSafely(ctx, taskLog, task)
		}
	}
}

func (w *Worker) executeTaskSafely(ctx context.Context, log logger.Logger, task Task) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Background task panic",
				logger.NewField("recover", r),
				logger.NewField("stack", string(debug.Stack())),
			)
		}
	}()

	if err := task.Do(ctx); err != nil {
		log.Error("Background task failed",
			logger.NewField("error", err),
		)
	}
}
