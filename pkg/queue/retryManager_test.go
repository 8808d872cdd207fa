package queue

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryManager_ShouldRetry(t *testing.T) {
	manager := NewRetryManager(3, time.Second)

	tests := []struct {
		name      string
		attempts  int
		err       error
		wantRetry bool
	}{
		{
			name:      "transient error retries",
			attempts:  1,
			err:       errors.New("connection refused"),
			wantRetry: true,
		},
		{
			name:      "attempts exhausted",
			attempts:  3,
			err:       errors.New("connection refused"),
			wantRetry: false,
		},
		{
			name:      "not found is permanent",
			attempts:  1,
			err:       errors.New("booking not found"),
			wantRetry: false,
		},
		{
			name:      "invalid input is permanent",
			attempts:  1,
			err:       errors.New("invalid booking_id in task data"),
			wantRetry: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{Attempts: tt.attempts, MaxRetries: 3}
			retry, delay := manager.ShouldRetry(task, tt.err)
			assert.Equal(t, tt.wantRetry, retry)
			if retry {
				assert.Greater(t, delay, time.Duration(0))
			}
		})
	}
}

func TestRetryManager_BackoffGrowsAndCaps(t *testing.T) {
	manager := NewRetryManager(10, time.Second)

	for attempt := 1; attempt <= 10; attempt++ {
		delay := manager.calculateBackoff(attempt)
		assert.Greater(t, delay, time.Duration(0))
		assert.LessOrEqual(t, delay, 16*time.Second)
	}
}
