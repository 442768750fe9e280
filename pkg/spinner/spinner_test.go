package spinner

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a threadsafe writer for capturing spinner output.
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

func newTestSpinner(msg string) (*Spinner, *syncBuffer) {
	buf := &syncBuffer{}
	isTTY := false
	return NewWithConfig(Config{
		Message: msg,
		Writer:  buf,
		IsTTY:   &isTTY,
	}), buf
}

func TestSpinnerLifecycle(t *testing.T) {
	s, _ := newTestSpinner("working")

	if s.IsActive() {
		t.Error("spinner should not be active before Start")
	}
	s.Start()
	if !s.IsActive() {
		t.Error("spinner should be active after Start")
	}
	s.Stop()
	if s.IsActive() {
		t.Error("spinner should be inactive after Stop")
	}
}

func TestSpinnerDoubleStart(t *testing.T) {
	s, _ := newTestSpinner("once")
	s.Start()
	s.Start() // Second start is a no-op, not a second goroutine.
	s.Stop()
	if s.IsActive() {
		t.Error("spinner should be stopped")
	}
}

func TestSpinnerUpdate(t *testing.T) {
	s, _ := newTestSpinner("first")
	s.Start()
	s.Update("second")
	if s.Message() != "second" {
		t.Errorf("expected updated message, got %q", s.Message())
	}
	s.Stop()
}

func TestSpinnerSuccessOutput(t *testing.T) {
	s, buf := newTestSpinner("generating")
	s.Start()
	s.Success("generated 3 papers")

	out := buf.String()
	if !strings.Contains(out, symbolSuccess) {
		t.Errorf("expected success symbol in output: %q", out)
	}
	if !strings.Contains(out, "generated 3 papers") {
		t.Errorf("expected completion message in output: %q", out)
	}
	if s.IsActive() {
		t.Error("Success should stop the spinner")
	}
}

func TestSpinnerFailOutput(t *testing.T) {
	s, buf := newTestSpinner("generating")
	s.Start()
	s.Fail("layout failed")

	out := buf.String()
	if !strings.Contains(out, symbolFailure) {
		t.Errorf("expected failure symbol in output: %q", out)
	}
	if !strings.Contains(out, "layout failed") {
		t.Errorf("expected failure message in output: %q", out)
	}
}

func TestSpinnerNonTTYNoAnimation(t *testing.T) {
	s, buf := newTestSpinner("quiet")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	// Without a TTY there is no repaint loop, so no clear-line sequences.
	if strings.Contains(buf.String(), "\033[K") {
		t.Errorf("non-TTY output should not contain ANSI clears: %q", buf.String())
	}
}

func TestSpinnerElapsed(t *testing.T) {
	s, _ := newTestSpinner("timed")
	s.Start()
	time.Sleep(30 * time.Millisecond)
	if s.Elapsed() <= 0 {
		t.Error("elapsed time should advance while running")
	}
	s.Stop()
}

func TestProgressBarCounts(t *testing.T) {
	buf := &syncBuffer{}
	isTTY := false
	p := NewProgressWithConfig(ProgressConfig{
		Total:   4,
		Message: "batch",
		Writer:  buf,
		IsTTY:   &isTTY,
	})

	p.Start()
	p.Increment()
	p.Increment()
	if p.Current() != 2 {
		t.Errorf("expected current 2, got %d", p.Current())
	}
	if p.Percentage() != 50 {
		t.Errorf("expected 50%%, got %f", p.Percentage())
	}

	p.Set(4)
	if p.Current() != 4 {
		t.Errorf("expected current 4, got %d", p.Current())
	}
	p.Complete("done")
	if p.IsActive() {
		t.Error("Complete should stop the bar")
	}
	if !strings.Contains(buf.String(), "done") {
		t.Errorf("expected completion message: %q", buf.String())
	}
}

func TestProgressBarClampsOverflow(t *testing.T) {
	isTTY := false
	p := NewProgressWithConfig(ProgressConfig{
		Total:  2,
		Writer: &syncBuffer{},
		IsTTY:  &isTTY,
	})
	p.Start()
	p.Set(10)
	if p.Current() != p.Total() {
		t.Errorf("current %d should be clamped to total %d", p.Current(), p.Total())
	}
	p.Set(-3)
	if p.Current() != 0 {
		t.Errorf("negative values should clamp to 0, got %d", p.Current())
	}
	p.Complete("")
}

func TestProgressBarDefaults(t *testing.T) {
	p := NewProgress(0, "defaults")
	if p.Total() != 100 {
		t.Errorf("zero total should default to 100, got %d", p.Total())
	}
	if p.Config().Width != 20 {
		t.Errorf("expected default width 20, got %d", p.Config().Width)
	}
}
