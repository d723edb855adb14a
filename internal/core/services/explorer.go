package services

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ewilliams-labs/trackscope/internal/core/domain"
	"github.com/ewilliams-labs/trackscope/internal/core/ports"
)

// Explorer is the view controller of one interactive view. It owns the only
// mutable state: every transition replaces the ViewState under mu, so events
// are processed one at a time and each runs to completion. Observers see
// views in revision order.
type Explorer struct {
	id        string
	dataset   *domain.Dataset
	observers []ports.ViewObserver
	logger    *slog.Logger

	mu    sync.Mutex
	state domain.ViewState
	// notifyMu is taken before mu is released so the next transition cannot
	// notify ahead of this one.
	notifyMu sync.Mutex
	touched  time.Time
}

// NewExplorer builds the initial view over dataset. Observers are registered
// here, once, and cannot be added later.
func NewExplorer(id string, dataset *domain.Dataset, plot domain.Plot, logger *slog.Logger, observers ...ports.ViewObserver) (*Explorer, error) {
	if dataset == nil {
		return nil, fmt.Errorf("service: explorer requires a dataset")
	}
	if logger == nil {
		logger = slog.Default()
	}
	state, err := domain.InitialState(dataset, plot)
	if err != nil {
		return nil, fmt.Errorf("service: initial view: %w", err)
	}
	e := &Explorer{
		id:        id,
		dataset:   dataset,
		observers: observers,
		logger:    logger.With("component", "explorer", "session", id),
		state:     state,
		touched:   time.Now(),
	}
	e.notify(state.Snapshot(true))
	return e, nil
}

// ID returns the session id of e.
func (e *Explorer) ID() string { return e.id }

// Dataset returns the shared full dataset.
func (e *Explorer) Dataset() *domain.Dataset { return e.dataset }

// Snapshot returns the current view.
func (e *Explorer) Snapshot(withPoints bool) domain.View {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touched = time.Now()
	return e.state.Snapshot(withPoints)
}

// ToggleGenre flips one genre checkbox.
func (e *Explorer) ToggleGenre(genre string) (domain.View, error) {
	if !e.dataset.HasGenre(genre) {
		return domain.View{}, fmt.Errorf("%w: %q", domain.ErrUnknownGenre, genre)
	}
	return e.refilter(func(spec domain.FilterSpec) (domain.FilterSpec, error) {
		spec.Genres = spec.Genres.Toggle(genre)
		return spec, nil
	})
}

// SetGenres replaces the checked genres.
func (e *Explorer) SetGenres(genres []string) (domain.View, error) {
	for _, g := range genres {
		if !e.dataset.HasGenre(g) {
			return domain.View{}, fmt.Errorf("%w: %q", domain.ErrUnknownGenre, g)
		}
	}
	return e.refilter(func(spec domain.FilterSpec) (domain.FilterSpec, error) {
		spec.Genres = domain.NewGenreSet(genres...)
		return spec, nil
	})
}

// SelectAllGenres checks every genre.
func (e *Explorer) SelectAllGenres() (domain.View, error) {
	return e.refilter(func(spec domain.FilterSpec) (domain.FilterSpec, error) {
		spec.Genres = e.dataset.AllGenres()
		return spec, nil
	})
}

// ClearGenres unchecks every genre, which removes the genre restriction.
func (e *Explorer) ClearGenres() (domain.View, error) {
	return e.refilter(func(spec domain.FilterSpec) (domain.FilterSpec, error) {
		spec.Genres = domain.NewGenreSet()
		return spec, nil
	})
}

// SetRange sets the range slider of feature from the 0-100 control scale.
// Crossed values are accepted as given.
func (e *Explorer) SetRange(feature domain.Feature, minPct, maxPct int) (domain.View, error) {
	return e.refilter(func(spec domain.FilterSpec) (domain.FilterSpec, error) {
		return spec.WithRange(feature, domain.RangeFromPercent(minPct, maxPct))
	})
}

// Reset checks every genre and restores full ranges.
func (e *Explorer) Reset() (domain.View, error) {
	return e.refilter(func(domain.FilterSpec) (domain.FilterSpec, error) {
		return domain.ResetFilterSpec(e.dataset.AllGenres()), nil
	})
}

// ChangeYAxis moves the y axis to feature and clears any selection.
func (e *Explorer) ChangeYAxis(feature domain.Feature) (domain.View, error) {
	e.mu.Lock()
	next, err := e.state.ApplyYAxis(feature)
	if err != nil {
		e.mu.Unlock()
		return domain.View{}, fmt.Errorf("service: change y axis: %w", err)
	}
	v := e.commit(next)
	e.logger.Debug("y axis changed", "feature", feature, "revision", v.Revision)
	return v, nil
}

// BrushEnd applies a finished brush gesture; a nil rect clears the selection.
func (e *Explorer) BrushEnd(rect *domain.Rect) (domain.View, error) {
	e.mu.Lock()
	v := e.commit(e.state.ApplyBrush(rect))
	e.logger.Debug("brush applied", "active", v.SelectionActive, "selected", v.SelectedCount, "revision", v.Revision)
	return v, nil
}

func (e *Explorer) refilter(update func(domain.FilterSpec) (domain.FilterSpec, error)) (domain.View, error) {
	e.mu.Lock()
	spec, err := update(e.state.Spec)
	if err != nil {
		e.mu.Unlock()
		return domain.View{}, fmt.Errorf("service: update filter: %w", err)
	}
	v := e.commit(e.state.ApplyFilter(e.dataset, spec))
	e.logger.Debug("filters applied", "genres", spec.Genres.Len(), "filtered", v.FilteredCount, "revision", v.Revision)
	return v, nil
}

// commit stores next and notifies observers. It is called with mu held and
// returns with mu released. Observers run outside mu, so they may call
// Snapshot, but must not start a transition on e.
func (e *Explorer) commit(next domain.ViewState) domain.View {
	e.state = next
	e.touched = time.Now()
	v := next.Snapshot(true)
	e.notifyMu.Lock()
	e.mu.Unlock()
	defer e.notifyMu.Unlock()
	e.notify(v)
	return v
}

// LastActive returns when e was last read or changed.
func (e *Explorer) LastActive() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.touched
}

func (e *Explorer) notify(v domain.View) {
	for _, o := range e.observers {
		o.ViewChanged(e.id, v)
	}
}
