package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigWatcher_FiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "beacon.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("site:\n  base_url: https://example.com\n"), 0644))

	var fired atomic.Int32
	cw, err := New(configPath, func(ctx context.Context) {
		fired.Add(1)
	})
	require.NoError(t, err)
	cw.SetDebounce(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, cw.Start(ctx))
	defer cw.Stop()

	require.NoError(t, os.WriteFile(configPath, []byte("site:\n  base_url: https://example.org\n"), 0644))

	deadline := time.Now().Add(3 * time.Second)
	for fired.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	assert.Positive(t, fired.Load(), "expected onChange after a config write")
}

func TestConfigWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "beacon.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("x: 1\n"), 0644))

	var fired atomic.Int32
	cw, err := New(configPath, func(ctx context.Context) {
		fired.Add(1)
	})
	require.NoError(t, err)
	cw.SetDebounce(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, cw.Start(ctx))
	defer cw.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644))
	time.Sleep(300 * time.Millisecond)

	assert.Zero(t, fired.Load(), "sibling file writes must not trigger onChange")
}

func TestConfigWatcher_StopIsIdempotentBeforeStart(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "beacon.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("x: 1\n"), 0644))

	cw, err := New(configPath, nil)
	require.NoError(t, err)

	// Stop without Start must not block or panic.
	cw.Stop()
	cw.Stop()
}
