package worker

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ewilliams-labs/trackscope/internal/adapters/render"
	"github.com/ewilliams-labs/trackscope/internal/core/domain"
)

func testView(t *testing.T) domain.View {
	t.Helper()
	d := domain.NewDataset([]domain.Track{
		{TrackName: "a", Artists: "x", Genre: "pop", Features: domain.AudioFeatures{Popularity: 70, Energy: 0.5}},
		{TrackName: "b", Artists: "y", Genre: "rock", Features: domain.AudioFeatures{Popularity: 40, Energy: 0.9}},
	})
	s, err := domain.InitialState(d, domain.DefaultPlot)
	if err != nil {
		t.Fatalf("initial state: %v", err)
	}
	return s.Snapshot(true)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPool_ExportsPNG(t *testing.T) {
	dir := t.TempDir()
	p := NewPool(dir, render.NewPalette([]string{"pop", "rock"}), 4, discardLogger())

	var mu sync.Mutex
	var paths []string
	p.OnDone(func(job ExportJob, path string, err error) {
		if err != nil {
			t.Errorf("job %s failed: %v", job.ID, err)
			return
		}
		mu.Lock()
		paths = append(paths, path)
		mu.Unlock()
	})
	p.Start(2)

	job := NewExportJob("s1", testView(t))
	if err := p.Submit(job); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	p.Stop()

	if len(paths) != 1 || paths[0] != filepath.Join(dir, job.FileName()) {
		t.Fatalf("unexpected export paths %v", paths)
	}
	b, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(b) < 4 || string(b[:4]) != "\x89PNG" {
		t.Fatal("export is not a PNG")
	}
}

func TestPool_SubmitDropsWhenFull(t *testing.T) {
	p := NewPool(t.TempDir(), render.NewPalette(nil), 1, discardLogger())
	// No workers started, so the single slot stays occupied.
	if err := p.Submit(NewExportJob("s1", domain.View{})); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := p.Submit(NewExportJob("s1", domain.View{})); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := NewPool(t.TempDir(), render.NewPalette(nil), 1, discardLogger())
	p.Start(1)
	p.Stop()
	p.Stop()
	if err := p.Submit(NewExportJob("s1", domain.View{})); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}
