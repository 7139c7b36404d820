// Package worker implements the Worker Pool and Round Executor: a
// fixed number of goroutines each running a dequeue/try-register/run/
// deregister loop against a shared Matchup Queue.
//
// A panicking or erroring run-matchup never terminates the worker
// process: it is recovered, logged, and deregistered so the pool keeps
// its configured concurrency instead of degrading silently over the
// process lifetime.
package worker

import (
	"context"
	"sync"

	"pdarena.dev/service/broadcast"
	"pdarena.dev/service/logx"
	"pdarena.dev/service/queue"
	"pdarena.dev/service/sandbox"
	"pdarena.dev/service/store"
	"pdarena.dev/service/types"
)

// Config wires a Pool's dependencies.
type Config struct {
	Store *store.Store
	Sandbox *sandbox.Client
	Queue *queue.Queue
	Registry *queue.Registry
	Broadcaster *broadcast.Broadcaster
	Logger *logx.Logger
	Workers int
}

// Pool runs a fixed number of independent workers against a shared
// Matchup Queue.
type Pool struct {
	config Config
}

// New creates a Pool. Workers are started by Run.
func New(cfg Config) *Pool {
	return &Pool{config: cfg}
}

// Run starts the configured number of workers and blocks until ctx is
// canceled, then waits for in-flight matchups to finish before
// returning.
func (p *Pool) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < p.config.Workers; i++ {
		wg.Add(1)
		go func(workerNum int) {
			defer wg.Done()
			p.runWorker(ctx, workerNum)
		}(i)
	}
	wg.Wait()
}

// runWorker implements the per-worker loop of:
// dequeue -> try-register -> run-matchup -> deregister.
func (p *Pool) runWorker(ctx context.Context, workerNum int) {
	logger := p.config.Logger.With("worker", workerNum)
	for {
		task, ok := p.config.Queue.Dequeue(ctx.Done())
		if !ok {
			return
		}

		if !p.config.Registry.TryRegister(task) {
			logger.Debug("task superseded, discarding", map[string]any{
					"matchup_num": task.MatchupNum,
					"submission_id": task.SubmissionID,
					"opponent_submission_id": task.OpponentSubmissionID,
				})
			continue
		}

		p.runMatchupGuarded(ctx, logger, task)
		p.config.Registry.Deregister(task)
	}
}

// runMatchupGuarded executes one matchup, recovering from any panic so
// a single malformed task cannot take down a worker goroutine.
func (p *Pool) runMatchupGuarded(ctx context.Context, logger *logx.Logger, task types.MatchupTask) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("run-matchup panicked", map[string]any{
					"matchup_num": task.MatchupNum,
					"panic": r,
				})
		}
	}()

	executor := &RoundExecutor{
		store: p.config.Store,
		sandbox: p.config.Sandbox,
		broadcaster: p.config.Broadcaster,
		logger: logger,
	}
	if err := executor.Run(ctx, task); err != nil {
		logger.Error("run-matchup failed", map[string]any{
				"matchup_num": task.MatchupNum,
				"submission_id": task.SubmissionID,
				"opponent_submission_id": task.OpponentSubmissionID,
				"error": err.Error(),
			})
	}
}
