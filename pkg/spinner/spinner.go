// Package spinner provides terminal activity feedback for the CLI: an
// animated spinner for single operations and a progress bar for batch
// runs. When the writer is not a terminal, both fall back to plain
// status lines with no ANSI control sequences.
package spinner

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	symbolSuccess = "✓"
	symbolFailure = "✗"

	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorReset = "\033[0m"

	// eraseLine returns to column 0 and clears the painted line.
	eraseLine = "\r\033[K"
)

// frames is the braille animation cycle.
var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Config holds spinner options. The zero value is usable; unset fields
// take defaults in NewWithConfig.
type Config struct {
	// Message is shown beside the animation frame.
	Message string

	// Interval between animation frames. Defaults to 80ms.
	Interval time.Duration

	// Writer defaults to os.Stderr.
	Writer io.Writer

	// IsTTY overrides terminal detection; nil means detect from Writer.
	IsTTY *bool
}

// Spinner animates a single in-flight operation on one terminal line.
type Spinner struct {
	mu       sync.Mutex
	message  string
	interval time.Duration
	w        io.Writer
	tty      bool

	active bool
	start  time.Time
	frame  int
	stop   chan struct{}
	done   chan struct{}
}

// New creates a spinner writing to stderr.
func New(message string) *Spinner {
	return NewWithConfig(Config{Message: message})
}

// NewWithConfig creates a spinner with explicit options.
func NewWithConfig(cfg Config) *Spinner {
	if cfg.Interval <= 0 {
		cfg.Interval = 80 * time.Millisecond
	}
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}
	tty := writerIsTerminal(cfg.Writer)
	if cfg.IsTTY != nil {
		tty = *cfg.IsTTY
	}
	return &Spinner{
		message:  cfg.Message,
		interval: cfg.Interval,
		w:        cfg.Writer,
		tty:      tty,
	}
}

func writerIsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Message returns the current message.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// IsActive reports whether the spinner is running.
func (s *Spinner) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Elapsed returns the time since Start, or 0 before the first Start.
func (s *Spinner) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.start.IsZero() {
		return 0
	}
	return time.Since(s.start)
}

// Update replaces the message; the next frame paints it.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Start begins animating. Starting an active spinner is a no-op. On a
// non-terminal writer it prints one static line instead of animating.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true
	s.start = time.Now()
	s.frame = 0

	if !s.tty {
		fmt.Fprintf(s.w, "%s...\n", s.message)
		return
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.stop, s.done)
}

func (s *Spinner) loop(stop, done chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	s.paint()
	for {
		select {
		case <-stop:
			close(done)
			return
		case <-ticker.C:
			s.paint()
		}
	}
}

func (s *Spinner) paint() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	frame := frames[s.frame%len(frames)]
	s.frame++
	fmt.Fprintf(s.w, "%s%s %s %s", eraseLine, frame, s.message, fmtDuration(time.Since(s.start)))
}

// Stop halts the animation and clears the line. Stopping an inactive
// spinner is a no-op.
func (s *Spinner) Stop() {
	if s.halt() {
		s.mu.Lock()
		fmt.Fprint(s.w, eraseLine)
		s.mu.Unlock()
	}
}

// halt deactivates the spinner and joins the animation goroutine.
// It reports whether a terminal line needs clearing.
func (s *Spinner) halt() bool {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return false
	}
	s.active = false
	if !s.tty {
		s.mu.Unlock()
		return false
	}
	stop, done := s.stop, s.done
	s.mu.Unlock()

	close(stop)
	<-done
	return true
}

// Success stops the spinner and prints a check mark with the message.
// An empty message falls back to the spinner's current message.
func (s *Spinner) Success(message string) {
	s.finish(message, symbolSuccess, colorGreen)
}

// Fail stops the spinner and prints a cross with the message.
func (s *Spinner) Fail(message string) {
	s.finish(message, symbolFailure, colorRed)
}

func (s *Spinner) finish(message, symbol, color string) {
	wasTTY := s.halt()

	s.mu.Lock()
	defer s.mu.Unlock()
	if message == "" {
		message = s.message
	}
	var elapsed string
	if !s.start.IsZero() {
		elapsed = " " + fmtDuration(time.Since(s.start))
	}
	if wasTTY {
		fmt.Fprintf(s.w, "%s%s%s%s %s%s\n", eraseLine, color, symbol, colorReset, message, elapsed)
	} else {
		fmt.Fprintf(s.w, "%s %s%s\n", symbol, message, elapsed)
	}
}

// fmtDuration renders an elapsed time as "(1.2s)" or "(1m 30s)".
func fmtDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("(%.1fs)", d.Seconds())
	}
	return fmt.Sprintf("(%dm %ds)", int(d.Minutes()), int(d.Seconds())%60)
}
