// Copyright (c) 2025 The VoiceLink Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package twiml

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchPrompts_Reloads(t *testing.T) {
	path := writePrompts(t, "welcome: First greeting.\n")

	ctx, cancel := context.WithCancel(context.Background())
	reloaded := make(chan Prompts, 16)
	done := make(chan error, 1)
	go func() {
		done <- WatchPrompts(ctx, path, func(p Prompts) { reloaded <- p })
	}()

	// The watcher starts asynchronously, so keep saving until a reload lands
	deadline := time.After(10 * time.Second)
	tick := time.NewTicker(500 * time.Millisecond)
	defer tick.Stop()

	var got Prompts
wait:
	for {
		select {
		case got = <-reloaded:
			break wait
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("welcome: Second greeting.\n"), 0o600))
		case <-deadline:
			t.Fatal("prompts were not reloaded")
		}
	}

	assert.Equal(t, "Second greeting.", got.Welcome)
	assert.Equal(t, DefaultPrompts().MainMenu, got.MainMenu)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchPrompts_IgnoresInvalidAndOtherFiles(t *testing.T) {
	path := writePrompts(t, "welcome: First greeting.\n")
	other := filepath.Join(filepath.Dir(path), "notes.txt")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloaded := make(chan Prompts, 16)
	go WatchPrompts(ctx, path, func(p Prompts) { reloaded <- p })

	deadline := time.After(10 * time.Second)
	tick := time.NewTicker(500 * time.Millisecond)
	defer tick.Stop()

	for i := 0; ; i++ {
		select {
		case got := <-reloaded:
			// Only the valid prompts file ever gets applied
			assert.Equal(t, "Valid again.", got.Welcome)
			return
		case <-tick.C:
			require.NoError(t, os.WriteFile(other, []byte("unrelated"), 0o600))
			if i < 3 {
				require.NoError(t, os.WriteFile(path, []byte("gather_timeout: 0\n"), 0o600))
			} else {
				require.NoError(t, os.WriteFile(path, []byte("welcome: Valid again.\n"), 0o600))
			}
		case <-deadline:
			t.Fatal("prompts were not reloaded")
		}
	}
}

func TestWatchPrompts_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "prompts.yaml")

	err := WatchPrompts(context.Background(), path, func(Prompts) {})
	assert.Error(t, err)
}

func TestMenu_SetPrompts(t *testing.T) {
	m := newTestMenu(&fakeContent{})

	p := DefaultPrompts()
	p.Welcome = "Swapped."
	m.SetPrompts(p)

	assert.Equal(t, "Swapped.", m.Prompts().Welcome)
	assert.Contains(t, spoken(m.Welcome(context.Background())), "Swapped.")
}
