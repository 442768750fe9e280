package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	barFilled = "█"
	barEmpty  = "░"
)

// ProgressConfig holds progress bar options. Unset fields take defaults
// in NewProgressWithConfig.
type ProgressConfig struct {
	// Total is the number of items being processed. Defaults to 100.
	Total int

	// Message is shown before the bar.
	Message string

	// Width is the bar width in characters. Defaults to 20.
	Width int

	// Writer defaults to os.Stderr.
	Writer io.Writer

	// IsTTY overrides terminal detection; nil means detect from Writer.
	IsTTY *bool
}

// ProgressBar tracks a batch with a known item count on one terminal
// line. On a non-terminal writer it prints only start and final lines.
type ProgressBar struct {
	mu      sync.Mutex
	cfg     ProgressConfig
	tty     bool
	current int
	active  bool
	start   time.Time
}

// NewProgress creates a progress bar writing to stderr.
func NewProgress(total int, message string) *ProgressBar {
	return NewProgressWithConfig(ProgressConfig{Total: total, Message: message})
}

// NewProgressWithConfig creates a progress bar with explicit options.
func NewProgressWithConfig(cfg ProgressConfig) *ProgressBar {
	if cfg.Total <= 0 {
		cfg.Total = 100
	}
	if cfg.Width <= 0 {
		cfg.Width = 20
	}
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}
	tty := writerIsTerminal(cfg.Writer)
	if cfg.IsTTY != nil {
		tty = *cfg.IsTTY
	}
	return &ProgressBar{cfg: cfg, tty: tty}
}

// Config returns the resolved configuration.
func (p *ProgressBar) Config() ProgressConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

// Total returns the item count.
func (p *ProgressBar) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg.Total
}

// Current returns the completed item count.
func (p *ProgressBar) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// IsActive reports whether the bar is running.
func (p *ProgressBar) IsActive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Percentage returns progress as 0-100.
func (p *ProgressBar) Percentage() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return float64(p.current) / float64(p.cfg.Total) * 100
}

// Start begins tracking at zero. Starting an active bar is a no-op.
func (p *ProgressBar) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active {
		return
	}
	p.active = true
	p.current = 0
	p.start = time.Now()
	if p.tty {
		p.paint()
	} else {
		fmt.Fprintf(p.cfg.Writer, "%s (%d items)\n", p.cfg.Message, p.cfg.Total)
	}
}

// Increment advances progress by one, saturating at the total. It does
// nothing on an inactive bar.
func (p *ProgressBar) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	if p.current < p.cfg.Total {
		p.current++
	}
	if p.tty {
		p.paint()
	}
}

// Set moves progress to n, clamped to [0, Total]. It does nothing on an
// inactive bar.
func (p *ProgressBar) Set(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	if n < 0 {
		n = 0
	}
	if n > p.cfg.Total {
		n = p.cfg.Total
	}
	p.current = n
	if p.tty {
		p.paint()
	}
}

// paint redraws the bar line. Caller must hold the mutex.
func (p *ProgressBar) paint() {
	filled := p.current * p.cfg.Width / p.cfg.Total
	bar := strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, p.cfg.Width-filled)
	pct := float64(p.current) / float64(p.cfg.Total) * 100
	fmt.Fprintf(p.cfg.Writer, "%s%s [%s] %.0f%% (%d/%d) %s",
		eraseLine, p.cfg.Message, bar, pct, p.current, p.cfg.Total,
		fmtDuration(time.Since(p.start)))
}

// Complete stops the bar and prints a check mark with the message. An
// empty message falls back to "<message> complete".
func (p *ProgressBar) Complete(message string) {
	p.finish(message, symbolSuccess, colorGreen)
}

// Fail stops the bar and prints a cross with the message.
func (p *ProgressBar) Fail(message string) {
	p.finish(message, symbolFailure, colorRed)
}

func (p *ProgressBar) finish(message, symbol, color string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if message == "" {
		message = p.cfg.Message + " complete"
	}
	wasActive := p.active
	p.active = false

	var elapsed string
	if !p.start.IsZero() {
		elapsed = " " + fmtDuration(time.Since(p.start))
	}
	if p.tty && wasActive {
		fmt.Fprintf(p.cfg.Writer, "%s%s%s%s %s%s\n", eraseLine, color, symbol, colorReset, message, elapsed)
	} else {
		fmt.Fprintf(p.cfg.Writer, "%s %s%s\n", symbol, message, elapsed)
	}
}
