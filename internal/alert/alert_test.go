package alert

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHTTPError struct{ code int }

func (e *fakeHTTPError) Error() string { return fmt.Sprintf("status %d", e.code) }
func (e *fakeHTTPError) Status() int   { return e.code }

func TestOnErrorMapsStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"bad request", &fakeHTTPError{400}, httpMessages[400]},
		{"wrapped forbidden", fmt.Errorf("update lecture: %w", &fakeHTTPError{403}), httpMessages[403]},
		{"unmapped status uses raw message", &fakeHTTPError{409}, "status 409"},
		{"plain error", errors.New("connection refused"), "connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService()
			s.OnError(tt.err)
			alerts := s.Active()
			require.Len(t, alerts, 1)
			assert.Equal(t, TypeDanger, alerts[0].Type)
			assert.Equal(t, tt.want, alerts[0].Message)
		})
	}
}

func TestOnErrorIgnoresNil(t *testing.T) {
	s := NewService()
	s.OnError(nil)
	assert.Empty(t, s.Active())
}

func TestActiveExpiresAndDismiss(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewService()
	s.now = func() time.Time { return now }

	s.Success("first")
	now = now.Add(DefaultTimeout / 2)
	s.Success("second")
	s.Error("third")

	alerts := s.Active()
	require.Len(t, alerts, 3)
	assert.NotEqual(t, alerts[0].ID, alerts[1].ID)

	s.Dismiss(alerts[2].ID)
	now = now.Add(DefaultTimeout/2 + time.Second)
	alerts = s.Active()
	require.Len(t, alerts, 1)
	assert.Equal(t, "second", alerts[0].Message)
}
