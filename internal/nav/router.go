package nav

import (
	"fmt"
	"log/slog"
)

// Listener is notified with the new current route after every navigation.
type Listener func(Route)

// Router keeps a navigation history and notifies a listener on every change.
// It is not safe for concurrent use; call it from the UI loop.
type Router struct {
	history  []Route
	listener Listener
}

// NewRouter creates a router whose history starts at start.
func NewRouter(start Route, listener Listener) *Router {
	return &Router{
		history:  []Route{start},
		listener: listener,
	}
}

// Navigate pushes route onto the history and makes it current.
func (r *Router) Navigate(route Route) error {
	if len(route.Segments) == 0 {
		return fmt.Errorf("navigate: empty route")
	}
	r.history = append(r.history, route)
	slog.Default().Debug("navigate", "path", route.Path(), "depth", len(r.history))
	r.notify()
	return nil
}

// Current returns the current route.
func (r *Router) Current() Route {
	if len(r.history) == 0 {
		return Route{}
	}
	return r.history[len(r.history)-1]
}

// CanGoBack reports whether there is a previous route in the history.
func (r *Router) CanGoBack() bool {
	return len(r.history) > 1
}

// Back returns to the previous route. It reports false when already on the first page.
func (r *Router) Back() bool {
	if !r.CanGoBack() {
		return false
	}
	r.history = r.history[:len(r.history)-1]
	slog.Default().Debug("navigate back", "path", r.Current().Path(), "depth", len(r.history))
	r.notify()
	return true
}

// NavigateBackWithOptional goes back in history if possible. On the first page it
// navigates to fallback, extended by optional when optional is not empty.
func (r *Router) NavigateBackWithOptional(fallback Route, optional string) error {
	if r.Back() {
		return nil
	}
	target := fallback
	if optional != "" {
		target = fallback.Append(optional)
	}
	return r.Navigate(target)
}

func (r *Router) notify() {
	if r.listener != nil {
		r.listener(r.Current())
	}
}
