package ui

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
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

func TestSpinner_DrawsAndClears(t *testing.T) {
	out := &syncBuffer{}
	s := NewSpinner(out, "resolving")
	s.delay = time.Millisecond

	s.Start()
	s.Start() // no-op while active
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "resolving")
	}, time.Second, 5*time.Millisecond)
	s.Stop()
	s.Stop()

	assert.True(t, strings.HasSuffix(out.String(), "\r\033[K"))
}

func TestSpin_PlainWhenNotTerminal(t *testing.T) {
	var out bytes.Buffer
	called := false

	Spin(&out, "resolving", func() { called = true })

	assert.True(t, called)
	assert.Empty(t, out.String())
}
