// Package alert keeps the user-facing notifications shown by the TUI.
package alert

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type is the severity of an alert.
type Type string

const (
	TypeSuccess Type = "success"
	TypeDanger  Type = "danger"
)

// DefaultTimeout is how long an alert stays visible.
const DefaultTimeout = 8 * time.Second

// Alert is a single notification.
type Alert struct {
	ID        uuid.UUID
	Type      Type
	Message   string
	CreatedAt time.Time
}

// Service collects alerts. It is safe for concurrent use.
type Service struct {
	mu      sync.Mutex
	alerts  []Alert
	timeout time.Duration
	now     func() time.Time
}

// NewService creates an alert service with the default timeout.
func NewService() *Service {
	return &Service{timeout: DefaultTimeout, now: time.Now}
}

// Success adds a success alert.
func (s *Service) Success(message string) {
	s.add(TypeSuccess, message)
}

// Error adds a danger alert.
func (s *Service) Error(message string) {
	s.add(TypeDanger, message)
}

// OnError surfaces an HTTP failure. Well-known status codes get a canned message,
// everything else shows the raw error text.
func (s *Service) OnError(err error) {
	if err == nil {
		return
	}
	slog.Default().Warn("request failed", "error", err)
	var sc statusCoder
	if errors.As(err, &sc) {
		if msg, ok := httpMessages[sc.Status()]; ok {
			s.Error(msg)
			return
		}
	}
	s.Error(err.Error())
}

// Dismiss removes the alert with the given id.
func (s *Service) Dismiss(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.alerts {
		if a.ID == id {
			s.alerts = append(s.alerts[:i], s.alerts[i+1:]...)
			return
		}
	}
}

// Active returns the alerts that have not timed out, oldest first, and drops expired ones.
func (s *Service) Active() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.timeout)
	kept := s.alerts[:0]
	for _, a := range s.alerts {
		if a.CreatedAt.After(cutoff) {
			kept = append(kept, a)
		}
	}
	s.alerts = kept
	return append([]Alert(nil), kept...)
}

func (s *Service) add(t Type, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, Alert{
		ID:        uuid.New(),
		Type:      t,
		Message:   message,
		CreatedAt: s.now(),
	})
}

type statusCoder interface {
	Status() int
}

var httpMessages = map[int]string{
	http.StatusBadRequest:          "Bad request. Please check your input.",
	http.StatusForbidden:           "You are not allowed to perform this action.",
	http.StatusNotFound:            "The requested resource was not found.",
	http.StatusMethodNotAllowed:    "This action is not allowed.",
	http.StatusInternalServerError: "An internal server error occurred.",
}
