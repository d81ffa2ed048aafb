package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer shared with the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDraws(t *testing.T) {
	var out syncBuffer
	s := newSpinner(context.Background(), &out, "Fetching page 1")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(out.String(), "Fetching page 1") {
		t.Errorf("spinner output = %q", out.String())
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after a normal Stop")
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, &syncBuffer{}, "waiting")
	s.Start()

	cancel()
	time.Sleep(50 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), &syncBuffer{}, "idempotent")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithMessage(t *testing.T) {
	tests := []struct {
		name string
		stop func(*Spinner)
		want string
	}{
		{"success", func(s *Spinner) { s.StopWithSuccess("Fetched 10 Pokémon") }, iconSuccess + " Fetched 10 Pokémon"},
		{"error", func(s *Spinner) { s.StopWithError("page failed") }, iconError + " page failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out syncBuffer
			s := newSpinner(context.Background(), &out, "working")
			s.Start()
			tt.stop(s)
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output = %q, want it to contain %q", out.String(), tt.want)
			}
		})
	}
}
