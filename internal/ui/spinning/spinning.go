// Package spinning provides a friendly spinning clock (or some other spinning symbols), followed by a
// status line, to use while a program is training or playing matches.
package spinning

import (
	"context"
	"fmt"
	"io"
	"k8s.io/klog/v2"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Spinning display, created with New.
type Spinning struct {
	wg     sync.WaitGroup
	cancel func()

	mu     sync.Mutex
	status string
	out    io.Writer
	idx    int
}

var (
	ThemeAscii = []rune(`|/-\`)
	ThemeMoon  = []rune("🌑🌒🌓🌔🌕🌖🌗🌘")
	ThemeClock = []rune("🕐🕑🕒🕓🕔🕕🕖🕗🕘🕙🕚🕛")

	// Theme defaults to ThemeClock, but it can be set to anything else.
	Theme = ThemeClock

	// Period between updates of the display.
	Period = 500 * time.Millisecond
)

// SafeInterrupt will capture SigInt (Ctrl+C) and SigTerm and call the provided onInterrupt.
// If the program haven't exited after gracePeriod, it will call Reset to reset the terminal
// and exit.
func SafeInterrupt(onInterrupt func(), gracePeriod time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		fmt.Println()
		klog.Errorf("Got interrupted (signal %q), shutting down... (%s)", s, gracePeriod)
		if onInterrupt != nil {
			go onInterrupt()
		}

		// Wait for gracePeriod before exiting.
		time.Sleep(gracePeriod)
		Reset()
		klog.Fatalf("Graceful shutting down %s period expired, exiting.", gracePeriod)
	}()
}

// Reset terminal: make cursor visible, restore default terminal colors.
func Reset() {
	fmt.Print("\033[?25h\033[39;49;0m\n") // Restore cursor and colors.
}

// New starts a spinning display on stdout that runs on a separate goroutine.
// It stops when Spinning.Done is called or ctx is cancelled.
func New(ctx context.Context) *Spinning {
	return NewWithWriter(ctx, os.Stdout)
}

// NewWithWriter is like New, but writes to out.
func NewWithWriter(ctx context.Context, out io.Writer) *Spinning {
	s := &Spinning{out: out}
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(Period)
		defer ticker.Stop()
		_, _ = fmt.Fprint(out, "\033[?25l")       // Hide cursor.
		defer fmt.Fprint(out, "\033[?25h\033[0K") // Restore cursor, clear line.
		for {
			s.draw()
			select {
			case <-ctx.Done():
				_, _ = fmt.Fprint(out, "\r")
				return
			case <-ticker.C:
				// continue
			}
		}
	}()
	return s
}

// SetStatus changes the message displayed after the spinning symbol.
func (s *Spinning) SetStatus(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = fmt.Sprintf(format, args...)
}

// Status returns the current status message.
func (s *Spinning) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Spinning) draw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	symbol := Theme[s.idx%len(Theme)]
	s.idx++
	_, _ = fmt.Fprintf(s.out, "\r%c %s\033[0K", symbol, s.status)
}

// Done stops the spinning display and waits for it to finish.
func (s *Spinning) Done() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
}
