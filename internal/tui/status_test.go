package tui

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer serializes writes from the spinner goroutine with the
// test's reads.
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

func TestStatusWriterRendersMessage(t *testing.T) {
	out := &syncBuffer{}
	sw := NewStatusWriter(out)
	sw.Update("Loading config...")

	// Let at least two spinner ticks fire.
	time.Sleep(250 * time.Millisecond)
	sw.Stop()

	got := out.String()
	if !strings.Contains(got, "Loading config...") {
		t.Errorf("status line missing message: %q", got)
	}
	if !strings.HasSuffix(got, "\r\033[K") {
		t.Errorf("expected trailing clear sequence, got %q", got)
	}
}

func TestStatusWriterStopIsIdempotent(t *testing.T) {
	out := &syncBuffer{}
	sw := NewStatusWriter(out)
	sw.Stop()
	sw.Stop()
}

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Millisecond, "500ms"},
		{1500 * time.Millisecond, "1.5s"},
		{12 * time.Second, "12s"},
		{90 * time.Second, "1m30s"},
	}
	for _, tc := range cases {
		if got := formatElapsed(tc.d); got != tc.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
