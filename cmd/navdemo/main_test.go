package main

import (
	"bytes"
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muurk/navdemo/internal/client"
	"github.com/muurk/navdemo/internal/model"
	"github.com/muurk/navdemo/internal/ui"
)

func newDemoClient(t *testing.T, latency time.Duration) *client.Client {
	t.Helper()
	c := client.New(
		client.WithLatency(latency),
		client.WithGenerator(model.NewGenerator(rand.NewPCG(7, 7))),
	)
	t.Cleanup(c.Close)
	return c
}

func TestDemo_Success(t *testing.T) {
	c := newDemoClient(t, 0)
	var out bytes.Buffer

	err := demo(context.Background(), c, demoOptions{
		Command: "navdemo demo",
		Logout:  true,
		Verbose: true,
		Output:  &out,
		Width:   100,
	})
	require.NoError(t, err)

	text := out.String()
	for _, want := range []string{
		"LOGIN DEMO",
		"Sign in", "Fetch data sets", "Log out", "100%  [3/3]",
		"Login demo complete",
		"Records:", "logged_out",
		"Client events", "fetch_started", "records_replaced",
		"Record 1", "Record 4",
	} {
		assert.Contains(t, text, want)
	}

	st := c.State()
	assert.False(t, st.LoggedIn)
	assert.Equal(t, 0, st.FetchCount)
	assert.Empty(t, st.Records)
}

func TestDemo_Canceled(t *testing.T) {
	c := newDemoClient(t, time.Hour)
	var out bytes.Buffer

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := demo(ctx, c, demoOptions{Command: "navdemo demo", Timeout: 20 * time.Millisecond, Output: &out, Width: 100})
	require.Error(t, err)
	assert.True(t, client.IsCanceled(err))

	text := out.String()
	assert.Contains(t, text, "Login demo failed")
	assert.Contains(t, text, "canceled after")
	assert.NotContains(t, text, "Record 1")

	st := c.State()
	assert.Equal(t, 0, st.FetchCount, "in-flight counter returns to zero")
	assert.False(t, st.LoggedIn)
}

func TestStepTracker(t *testing.T) {
	type call struct {
		step   int
		status ui.StepStatus
	}
	var calls []call
	tracker := &stepTracker{
		total: 3,
		onStep: func(step int, name string, status ui.StepStatus, message string) {
			calls = append(calls, call{step, status})
		},
	}

	tracker.observe(client.Event{Kind: client.EventFetchStarted, Op: client.OpLogin})
	tracker.observe(client.Event{Kind: client.EventLoggedIn, Op: client.OpLogin})
	tracker.observe(client.Event{Kind: client.EventFetchStarted, Op: client.OpFetch})
	tracker.observe(client.Event{Kind: client.EventFetchFinished, Op: client.OpFetch})
	tracker.fail(context.Canceled)

	want := []call{
		{1, ui.StepRunning},
		{1, ui.StepComplete},
		{2, ui.StepRunning},
		{2, ui.StepFailed},
		{3, ui.StepSkipped},
	}
	assert.Equal(t, want, calls)
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navdemo.yaml")
	t.Cleanup(func() { configPath = "" })

	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs(args)
		require.NoError(t, rootCmd.Execute())
		return out.String()
	}

	assert.Equal(t, path, strings.TrimSpace(run("config", "path", "--config", path)))
	assert.Contains(t, run("config", "init", "--config", path), "Config file written")

	shown := run("config", "show", "--config", path)
	assert.Contains(t, shown, "latency: 2s")
	assert.Contains(t, shown, "alt_screen: true")

	rootCmd.SetIn(strings.NewReader("n\n"))
	t.Cleanup(func() { rootCmd.SetIn(nil) })
	declined := run("config", "init", "--config", path)
	assert.Contains(t, declined, "Overwrite it?")
	assert.Contains(t, declined, "Config file left unchanged")

	assert.Contains(t, run("version"), "navdemo ")
}

func TestConfigInit_WriteFailure(t *testing.T) {
	// An existing directory at the target path makes the final rename fail.
	path := filepath.Join(t.TempDir(), "navdemo.yaml")
	require.NoError(t, os.Mkdir(path, 0o700))
	t.Cleanup(func() {
		configPath = ""
		configForce = false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "init", "--force", "--config", path})
	require.Error(t, rootCmd.Execute())

	text := out.String()
	assert.Contains(t, text, "CONFIG INIT")
	assert.Contains(t, text, "Config file not written")
	assert.Contains(t, text, "Pass --config to choose another location")
}
