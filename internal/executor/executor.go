package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/vk/plugforge/internal/composer"
	"github.com/vk/plugforge/internal/ctxlog"
)

// Executor drives a toolchain over an assembled build graph with a pool of
// concurrent workers, respecting the module partial order: independent
// branches run in parallel, dependents wait for their dependencies.
type Executor struct {
	nodes      map[string]*node
	numWorkers int
	toolchain  Toolchain
	wg         sync.WaitGroup
}

// New creates an executor for the given build graph.
func New(graph *composer.BuildGraph, workers int, tc Toolchain) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{
		nodes:      plan(graph),
		numWorkers: workers,
		toolchain:  tc,
	}
}

// Run executes the entire plan concurrently and returns an error if any node
// fails. It respects the cancellation signal from the provided context.
func (e *Executor) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	readyChan := make(chan *node, len(e.nodes))
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger.Debug("Initializing executor, finding root nodes...")
	rootCount := 0
	for _, n := range e.nodes {
		if n.depCount.Load() == 0 {
			logger.Debug("Found root node.", "nodeID", n.ID)
			readyChan <- n
			rootCount++
		}
	}
	logger.Debug("Found all root nodes.", "count", rootCount)

	e.wg.Add(len(e.nodes))

	logger.Debug("Starting worker pool.", "workers", e.numWorkers)
	for i := 0; i < e.numWorkers; i++ {
		go e.worker(runCtx, readyChan, cancel, i)
	}

	logger.Info("Waiting for all build jobs to complete...")
	e.wg.Wait()
	logger.Info("All build jobs completed.")
	close(readyChan)

	var failedNodes []string
	var rootCauseError error
	for _, n := range e.nodes {
		if n.state.Load() == stateFailed {
			logger.Error("Build node failed.", "nodeID", n.ID, "error", n.err)
			// A "skipped" error is a symptom, not a cause.
			if n.err != nil && !strings.HasPrefix(n.err.Error(), "skipped") && !errors.Is(n.err, context.Canceled) {
				failedNodes = append(failedNodes, n.ID)
				if rootCauseError == nil {
					rootCauseError = n.err
				}
			}
		}
	}

	if rootCauseError != nil {
		return fmt.Errorf("build failed for %s: %w", strings.Join(failedNodes, ", "), rootCauseError)
	}

	// No node failed on its own, but the caller's context may still have
	// aborted the run; that must not be reported as success.
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// skipDependents recursively marks all downstream nodes as failed and
// decrements the WaitGroup.
func (e *Executor) skipDependents(ctx context.Context, n *node) {
	logger := ctxlog.FromContext(ctx)
	for _, dependent := range n.Dependents {
		dependent.skipOnce.Do(func() {
			logger.Warn("Skipping dependent build node due to upstream failure.", "nodeID", dependent.ID, "dependency", n.ID)
			dependent.state.Store(stateFailed)
			dependent.err = fmt.Errorf("skipped due to upstream failure of '%s'", n.ID)
			e.wg.Done()
			e.skipDependents(ctx, dependent)
		})
	}
}

// worker is the core processing loop for a single concurrent worker.
func (e *Executor) worker(ctx context.Context, readyChan chan *node, cancel context.CancelFunc, workerID int) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for n := range readyChan {
		workerLogger := logger.With("workerID", workerID, "nodeID", n.ID)

		if ctx.Err() != nil {
			n.skipOnce.Do(func() {
				workerLogger.Warn("Context canceled, skipping build node.")
				n.state.Store(stateFailed)
				n.err = ctx.Err()
				e.wg.Done()
				// Dependents will never be unlocked through the ready
				// channel; skip them here or wg.Wait blocks forever.
				e.skipDependents(ctx, n)
			})
			continue
		}

		workerLogger.Debug("Worker picked up build node.")
		n.state.Store(stateRunning)
		var err error
		switch n.Kind {
		case compileNode:
			err = e.toolchain.CompileModule(ctx, *n.Module)
		case linkNode:
			err = e.toolchain.LinkTarget(ctx, *n.Job)
		}

		if err != nil {
			workerLogger.Error("Build node failed.", "error", err)
			n.state.Store(stateFailed)
			n.err = err
			cancel()
			e.skipDependents(ctx, n)
			e.wg.Done()
			continue
		}

		workerLogger.Debug("Build node succeeded.")
		n.state.Store(stateDone)

		for _, dependent := range n.Dependents {
			if dependent.depCount.Add(-1) == 0 {
				workerLogger.Debug("Unlocking dependent build node.", "dependentID", dependent.ID)
				readyChan <- dependent
			}
		}

		e.wg.Done()
	}
	logger.Debug("Worker finished.", "workerID", workerID)
}
