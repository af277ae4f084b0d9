package logs

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeWritesDebugLog(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { Close() })

	before := Logger
	require.NoError(t, Initialize(dir))
	Logger.Printf("hello from test")
	require.NoError(t, Close())

	assert.Same(t, before, Logger, "the logger is reconfigured in place")

	raw, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "hello from test")
	assert.Contains(t, string(raw), prefix)

	Logger.Printf("after close")
	raw, _ = os.ReadFile(filepath.Join(dir, "debug.log"))
	assert.False(t, strings.Contains(string(raw), "after close"), "nothing is written after Close")
}

func TestLoggingWhileReconfiguring(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { Close() })

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				Logger.Printf("background line")
			}
		}
	}()

	for i := 0; i < 20; i++ {
		require.NoError(t, Initialize(dir))
		require.NoError(t, Close())
	}
	close(stop)
	wg.Wait()
}
