package ports

import "github.com/ewilliams-labs/trackscope/internal/core/domain"

// ViewObserver is the draw layer's side of the view controller. It is told
// about every completed transition; v.Change says whether points moved,
// were replaced, or only changed emphasis.
type ViewObserver interface {
	ViewChanged(sessionID string, v domain.View)
}

// ObserverFunc adapts a function to ViewObserver.
type ObserverFunc func(sessionID string, v domain.View)

func (f ObserverFunc) ViewChanged(sessionID string, v domain.View) { f(sessionID, v) }
