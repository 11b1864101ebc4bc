package cli

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mdslides/pkg/errors"
	"github.com/matzehuels/mdslides/pkg/observability"
	"github.com/matzehuels/mdslides/pkg/pipeline"
	"github.com/matzehuels/mdslides/pkg/render/pptx"
)

const testDeck = `---
title: Demo
author: Ada
---

# Demo Deck

A subtitle

---

## Agenda

- one
- two

![logo](logo.png)

<!-- mention the logo -->

---

## Missing

![gone](missing.png)
`

func writeDeck(t *testing.T) (dir, src string) {
	t.Helper()
	dir = t.TempDir()
	src = filepath.Join(dir, "talk.md")
	require.NoError(t, os.WriteFile(src, []byte(testDeck), 0o644))

	f, err := os.Create(filepath.Join(dir, "logo.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 200, 100))))
	require.NoError(t, f.Close())
	return dir, src
}

// execute runs the root command with args and returns stdout and log output.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	if os.Getenv("XDG_CACHE_HOME") == "" {
		t.Setenv("XDG_CACHE_HOME", t.TempDir())
	}

	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func TestConvertPPTX(t *testing.T) {
	dir, src := writeDeck(t)
	dest := filepath.Join(dir, "talk.pptx")

	out, logs, err := execute(t, src, dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Converted")
	assert.Contains(t, out, dest)
	assert.Contains(t, logs, "Saved 3 slides to "+dest)

	d, err := pptx.Read(dest)
	require.NoError(t, err)
	assert.Equal(t, "Demo", d.Title)
	assert.Equal(t, "Ada", d.Author)
	require.Len(t, d.Slides, 3)
	assert.Equal(t, "mention the logo", d.Slides[1].Notes)
	assert.Len(t, d.Slides[1].Pictures, 1)
}

func TestConvertFormatFlag(t *testing.T) {
	dir, src := writeDeck(t)

	_, _, err := execute(t, src, filepath.Join(dir, "out.svg"), "--format", "svg", "--no-cache", "--workers", "2")
	require.NoError(t, err)

	for _, name := range []string{"out-01.svg", "out-02.svg", "out-03.svg"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	assert.NoFileExists(t, filepath.Join(dir, "out.svg"))
}

func TestConvertJSON(t *testing.T) {
	dir, src := writeDeck(t)
	dest := filepath.Join(dir, "layout.json")

	_, _, err := execute(t, src, dest, "--no-cache")
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"slides"`)
	assert.Contains(t, string(data), "Demo Deck")
}

func TestConvertErrors(t *testing.T) {
	dir, src := writeDeck(t)

	t.Run("missing source", func(t *testing.T) {
		_, _, err := execute(t, filepath.Join(dir, "nope.md"), filepath.Join(dir, "out.pptx"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)
		assert.NoFileExists(t, filepath.Join(dir, "out.pptx"))
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := execute(t, src, filepath.Join(dir, "out.pptx"), "--format", "pdf")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)
	})

	t.Run("missing config", func(t *testing.T) {
		_, _, err := execute(t, src, filepath.Join(dir, "out.pptx"), "--config", filepath.Join(dir, "none.toml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)
	})

	t.Run("wrong arg count", func(t *testing.T) {
		_, _, err := execute(t, src)
		require.Error(t, err)
	})
}

func TestConvertVerbose(t *testing.T) {
	t.Cleanup(observability.Reset)
	dir, src := writeDeck(t)

	_, logs, err := execute(t, "-v", src, filepath.Join(dir, "talk.pptx"))
	require.NoError(t, err)
	assert.Contains(t, logs, "parse started")
	assert.Contains(t, logs, "layout finished")
	assert.Contains(t, logs, "render finished")
}

func TestInspectMarkdown(t *testing.T) {
	_, src := writeDeck(t)

	out, _, err := execute(t, "inspect", src)
	require.NoError(t, err)
	assert.Contains(t, out, "Demo")
	assert.Contains(t, out, "title")
	assert.Contains(t, out, "1 heading, 1 paragraph")
	assert.Contains(t, out, "1 heading, 1 list, 1 image")
	assert.Contains(t, out, "mention the logo")
	assert.Contains(t, out, "skipped")
}

func TestInspectPPTX(t *testing.T) {
	dir, src := writeDeck(t)
	dest := filepath.Join(dir, "talk.pptx")
	_, _, err := execute(t, src, dest)
	require.NoError(t, err)

	out, _, err := execute(t, "inspect", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "13.33in x 7.50in")
	assert.Contains(t, out, "Demo Deck")
	assert.Contains(t, out, "Agenda")
	assert.Contains(t, out, "mdslides")
}

func TestInspectErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, "inspect", filepath.Join(dir, "nope.md"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)

	bad := filepath.Join(dir, "bad.pptx")
	require.NoError(t, os.WriteFile(bad, []byte("not a zip"), 0o644))
	_, _, err = execute(t, "inspect", bad)
	assert.Error(t, err)
}

func TestCacheCommands(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)
	want := filepath.Join(home, appName)

	out, _, err := execute(t, "cache", "path")
	require.NoError(t, err)
	assert.Equal(t, want+"\n", out)

	out, _, err = execute(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cache is empty")

	dir, src := writeDeck(t)
	_, _, err = execute(t, src, filepath.Join(dir, "talk.pptx"))
	require.NoError(t, err)
	require.NotZero(t, countFiles(want))

	out, _, err = execute(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared")
	assert.Zero(t, countFiles(want))
	assert.DirExists(t, want)
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, _, err := execute(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, appName)
		})
	}

	_, _, err := execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestWatchReconverts(t *testing.T) {
	dir, src := writeDeck(t)
	dest := filepath.Join(dir, "talk.pptx")

	c := New(&bytes.Buffer{}, LogInfo)
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	opts := pipeline.Options{Source: src, Dest: dest}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- c.watch(ctx, io.Discard, runner, opts)
	}()

	// Keep touching the source until the watcher has picked it up.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(src, []byte(testDeck+"\n---\n\n# Added\n"), 0o644)
		d, err := pptx.Read(dest)
		return err == nil && len(d.Slides) == 4
	}, 10*time.Second, 200*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
