package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Task représente une tâche à exécuter
type Task func(ctx context.Context) error

// WorkerPool gère un pool de workers pour traiter des tâches en parallèle.
// Les erreurs de toutes les tâches sont conservées et restituées par Wait.
type WorkerPool struct {
	workerCount int
	tasks       chan Task
	mu          sync.Mutex
	errs        []error
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewWorkerPool crée un nouveau pool de workers
func NewWorkerPool(ctx context.Context, workerCount int) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool{
		workerCount: workerCount,
		tasks:       make(chan Task, workerCount*2),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// worker est la routine d'exécution des tâches
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.ctx.Done():
			return
		case task, ok := <-wp.tasks:
			if !ok {
				return
			}
			if err := task(wp.ctx); err != nil {
				wp.mu.Lock()
				wp.errs = append(wp.errs, err)
				wp.mu.Unlock()
			}
		}
	}
}

// Start démarre les workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Submit soumet une tâche au pool
func (wp *WorkerPool) Submit(task Task) error {
	if wp.ctx.Err() != nil {
		return fmt.Errorf("worker pool is stopped")
	}
	select {
	case <-wp.ctx.Done():
		return fmt.Errorf("worker pool is stopped")
	case wp.tasks <- task:
		return nil
	}
}

// Wait ferme le canal de tâches, attend la fin des workers et
// retourne les erreurs des tâches jointes (nil si aucune)
func (wp *WorkerPool) Wait() error {
	close(wp.tasks)
	wp.wg.Wait()
	wp.cancel()

	wp.mu.Lock()
	defer wp.mu.Unlock()
	return errors.Join(wp.errs...)
}

// Stop arrête le pool immédiatement
func (wp *WorkerPool) Stop() {
	wp.cancel()
	wp.wg.Wait()
}

// RunAll exécute les tâches sur un pool de taille workerCount et attend leur fin
func RunAll(ctx context.Context, workerCount int, tasks ...Task) error {
	wp := NewWorkerPool(ctx, workerCount)
	wp.Start()
	for _, task := range tasks {
		if err := wp.Submit(task); err != nil {
			wp.Stop()
			return err
		}
	}
	return wp.Wait()
}
