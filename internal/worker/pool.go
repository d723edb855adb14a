// Package worker provides background processing for chart export jobs.
package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/ewilliams-labs/trackscope/internal/adapters/render"
	"github.com/ewilliams-labs/trackscope/internal/core/domain"
)

// ErrQueueFull is returned when a job is dropped because the queue is full.
var ErrQueueFull = errors.New("worker: export queue is full")

// ErrStopped is returned for jobs submitted after Stop.
var ErrStopped = errors.New("worker: pool stopped")

// ExportJob renders one frozen view to a PNG file.
type ExportJob struct {
	ID        string
	SessionID string
	View      domain.View
}

// NewExportJob freezes v for session under a fresh job id.
func NewExportJob(sessionID string, v domain.View) ExportJob {
	return ExportJob{ID: uuid.NewString(), SessionID: sessionID, View: v}
}

// FileName returns the file the job writes inside the export directory.
func (j ExportJob) FileName() string {
	return fmt.Sprintf("%s-%s.png", j.SessionID, j.ID)
}

// Pool manages background workers for export jobs.
type Pool struct {
	dir     string
	palette render.Palette
	size    render.Size
	logger  *slog.Logger
	jobs    chan ExportJob
	wg      sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
	done    func(job ExportJob, path string, err error)
}

// NewPool creates a pool writing into dir with the given queue size.
func NewPool(dir string, p render.Palette, queueSize int, logger *slog.Logger) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		dir:     dir,
		palette: p,
		size:    render.DefaultSize,
		logger:  logger.With("component", "worker"),
		jobs:    make(chan ExportJob, queueSize),
	}
}

// OnDone registers a callback run after each job. It must be set before
// Start.
func (p *Pool) OnDone(fn func(job ExportJob, path string, err error)) {
	p.done = fn
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue. Queued jobs are
// still processed.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

// Submit queues a job without blocking.
func (p *Pool) Submit(job ExportJob) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}
	select {
	case p.jobs <- job:
		return nil
	default:
		p.logger.Warn("dropping export job", "job", job.ID, "session", job.SessionID)
		return ErrQueueFull
	}
}

// Dir returns the export directory.
func (p *Pool) Dir() string { return p.dir }

func (p *Pool) processJob(job ExportJob) {
	path, err := p.export(job)
	if err != nil {
		p.logger.Warn("export failed", "job", job.ID, "session", job.SessionID, "error", err)
	} else {
		p.logger.Info("export written", "job", job.ID, "session", job.SessionID, "path", path)
	}
	if p.done != nil {
		p.done(job, path, err)
	}
}

func (p *Pool) export(job ExportJob) (string, error) {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", fmt.Errorf("worker: create export dir: %w", err)
	}
	path := filepath.Join(p.dir, job.FileName())
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("worker: create %s: %w", path, err)
	}
	if err := render.ScatterPNG(f, job.View, p.palette, p.size); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("worker: close %s: %w", path, err)
	}
	return path, nil
}
