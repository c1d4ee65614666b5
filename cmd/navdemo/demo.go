package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/navdemo/internal/client"
	"github.com/muurk/navdemo/internal/model"
	"github.com/muurk/navdemo/internal/ui"
)

// Demo command flags
var (
	demoLogout  bool
	demoTimeout time.Duration
	demoVerbose bool
)

func init() {
	demoCmd.Flags().BoolVar(&demoLogout, "logout", false, "Log out after the records arrive")
	demoCmd.Flags().DurationVar(&demoTimeout, "timeout", 0, "Cancel the run after this long (0 = no limit)")
	demoCmd.Flags().BoolVarP(&demoVerbose, "verbose", "v", false, "Print every client event")

	rootCmd.AddCommand(demoCmd)
}

// demoCmd runs the login flow without the interactive browser
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run login and fetch without the browser",
	Long: `Log in, fetch the records and print them.

Each step is reported as the client publishes it. With --timeout the run is
cancelled mid-wait, which shows that the in-flight counter still returns to
zero.`,
	Example: `  # Full run with default latency
  navdemo demo

  # Show the event sequence, then log out
  navdemo demo --verbose --logout

  # Cancel during the nested fetch
  navdemo demo --latency 1s --timeout 1500ms`,
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if demoTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, demoTimeout)
		defer cancel()
	}

	c := client.New(client.WithLatency(cfg.Latency))
	defer c.Close()

	return demo(ctx, c, demoOptions{
		Command: cmd.CommandPath(),
		Logout:  demoLogout,
		Timeout: demoTimeout,
		Verbose: demoVerbose,
		ShowIDs: cfg.UI.ShowIDs,
		Output:  cmd.OutOrStdout(),
	})
}

// demoOptions carries everything demo needs besides the client
type demoOptions struct {
	Command string
	Logout  bool
	Timeout time.Duration
	Verbose bool
	ShowIDs bool
	Output  io.Writer
	Width   int
}

func demo(ctx context.Context, c *client.Client, opts demoOptions) error {
	steps := []string{"Sign in", "Fetch data sets"}
	if opts.Logout {
		steps = append(steps, "Log out")
	}

	timeout := "none"
	if opts.Timeout > 0 {
		timeout = opts.Timeout.String()
	}

	runner := ui.NewRunner(ui.RunnerConfig{
		Title:   "Login demo",
		Command: opts.Command,
		Params: []ui.Param{
			{Key: "Latency", Value: c.Latency().String()},
			{Key: "Timeout", Value: timeout},
		},
		StepNames: steps,
		Troubleshooting: []string{
			"A timeout shorter than two latencies cancels the run",
			"Run with --verbose to see every client event",
		},
		Output: opts.Output,
		Width:  opts.Width,
	})

	var events *ui.EventLog
	if opts.Verbose {
		events = ui.NewEventLog("Client events")
		runner.AttachEventLog(events)
	}

	var records []*model.Record
	err := runner.Run(ctx, func(ctx context.Context, onStep ui.StepCallback) ([]ui.Param, error) {
		tracker := &stepTracker{onStep: onStep, total: len(steps), events: events}
		unsubscribe := c.Subscribe(tracker.observe)
		defer unsubscribe()

		if err := c.Login(ctx); err != nil {
			tracker.fail(err)
			return nil, err
		}

		st := c.State()
		records = st.Records
		details := 0
		for _, r := range records {
			details += r.Len()
		}
		result := []ui.Param{
			{Key: "Records", Value: fmt.Sprint(len(records))},
			{Key: "Details", Value: fmt.Sprint(details)},
		}

		if opts.Logout {
			c.Logout()
			st = c.State()
		}
		result = append(result, ui.Param{Key: "Phase", Value: st.Phase().String()})
		return result, nil
	})
	if err != nil {
		return err
	}

	p := ui.NewPrinter(opts.Output)
	p.Newline()
	p.Println(ui.RenderRecordTree(records, opts.ShowIDs))
	return nil
}

// stepTracker maps client events to demo steps. observe runs on the client
// loop while the demo goroutine is blocked in a client call.
type stepTracker struct {
	onStep  ui.StepCallback
	total   int
	events  *ui.EventLog
	current int
	started time.Time
}

func (t *stepTracker) observe(ev client.Event) {
	if t.events != nil {
		t.events.Addf("%-16s op=%-6s logged_in=%-5t in_flight=%d records=%d",
			ev.Kind, ev.Op, ev.State.LoggedIn, ev.State.FetchCount, len(ev.State.Records))
	}

	switch {
	case ev.Kind == client.EventFetchStarted && ev.Op == client.OpLogin:
		t.start(1)
	case ev.Kind == client.EventLoggedIn:
		t.complete(1, t.elapsed())
	case ev.Kind == client.EventFetchStarted && ev.Op == client.OpFetch:
		t.start(2)
	case ev.Kind == client.EventRecordsReplaced:
		t.complete(2, fmt.Sprintf("%s, %d records", t.elapsed(), len(ev.State.Records)))
	case ev.Kind == client.EventLoggedOut:
		t.start(3)
		t.complete(3, "")
	}
}

func (t *stepTracker) start(step int) {
	t.current = step
	t.started = time.Now()
	t.onStep(step, "", ui.StepRunning, "")
}

func (t *stepTracker) complete(step int, message string) {
	t.onStep(step, "", ui.StepComplete, message)
}

func (t *stepTracker) elapsed() string {
	return time.Since(t.started).Round(10 * time.Millisecond).String()
}

// fail marks the running step failed and every later step skipped.
func (t *stepTracker) fail(err error) {
	message := err.Error()
	if client.IsCanceled(err) {
		message = "canceled after " + t.elapsed()
	}
	if t.current > 0 {
		t.onStep(t.current, "", ui.StepFailed, message)
	}
	for step := t.current + 1; step <= t.total; step++ {
		t.onStep(step, "", ui.StepSkipped, "")
	}
}
