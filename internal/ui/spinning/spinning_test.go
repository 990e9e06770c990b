package spinning

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for concurrent use.
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

func TestSpinning(t *testing.T) {
	Theme = ThemeAscii
	Period = time.Millisecond
	var out syncBuffer
	s := NewWithWriter(context.Background(), &out)
	s.SetStatus("episode %d", 10)
	assert.Equal(t, "episode 10", s.Status())
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "episode 10")
	}, time.Second, time.Millisecond)
	s.Done()
	s.Done() // Second call is a no-op.
	assert.Contains(t, out.String(), "\033[?25h")
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	s := NewWithWriter(ctx, &out)
	cancel()
	s.Done()
	assert.Contains(t, out.String(), "\033[?25l")
}
