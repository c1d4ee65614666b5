package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// StepCallback reports progress of one step. A non-empty name replaces the
// step's configured name.
type StepCallback func(stepNumber int, name string, status StepStatus, message string)

// Operation is the work driven by a Runner. It returns extra details for the
// result box.
type Operation func(ctx context.Context, onStep StepCallback) ([]Param, error)

// RunnerConfig holds configuration for one command execution
type RunnerConfig struct {
	Title           string    // Command title (e.g., "Login")
	Command         string    // Full command (e.g., "navdemo demo")
	Params          []Param   // Parameters to display in header
	StepNames       []string  // Names for each step; also sets the step count
	Troubleshooting []string  // Tips shown when the operation fails
	Output          io.Writer // Output writer (default: os.Stdout)
	Width           int       // Render width (default: terminal width)
}

// Runner manages the header -> progress -> result flow of a command and
// hands the operation a callback for reporting progress.
type Runner struct {
	config   RunnerConfig
	header   *Header
	progress *Progress
	output   io.Writer
	width    int
	events   *EventLog
	now      func() time.Time
}

// NewRunner creates a new runner
func NewRunner(config RunnerConfig) *Runner {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	width := config.Width
	if width == 0 {
		width = GetTerminalWidth()
	}

	r := &Runner{
		config: config,
		header: NewHeader(config.Title, config.Command, config.Params...).SetWidth(width),
		output: config.Output,
		width:  width,
		now:    time.Now,
	}
	if n := len(config.StepNames); n > 0 {
		r.progress = NewProgress(n).SetWidth(width).SetStepNames(config.StepNames)
	}
	return r
}

// AttachEventLog makes the runner print log after the result box.
func (r *Runner) AttachEventLog(log *EventLog) {
	log.SetWidth(r.width)
	r.events = log
}

// Progress returns the step tracker, or nil when no steps were configured.
func (r *Runner) Progress() *Progress {
	return r.progress
}

// Run prints the header, executes operation and prints the progress bar
// and the result. The operation's error is returned unchanged.
func (r *Runner) Run(ctx context.Context, operation Operation) error {
	start := r.now()

	r.println(r.header.Render())
	r.println("")

	details, err := operation(ctx, r.stepCallback())
	duration := r.now().Sub(start).Round(time.Millisecond)

	r.println("")
	if r.progress != nil {
		r.println(r.progress.Render())
		r.println("")
	}
	if err != nil {
		result := NewFailureResult(r.config.Title+" failed", err, r.config.Troubleshooting...)
		r.println(result.SetWidth(r.width).Render())
	} else {
		result := NewSuccessResult(r.config.Title+" complete", details...)
		result.AddDetail("Duration", duration.String())
		r.println(result.SetWidth(r.width).Render())
	}

	if r.events != nil {
		r.println("")
		r.println(r.events.Render())
	}
	return err
}

func (r *Runner) stepCallback() StepCallback {
	return func(stepNumber int, name string, status StepStatus, message string) {
		if r.progress == nil || stepNumber < 1 || stepNumber > len(r.progress.Steps) {
			return
		}
		if name != "" {
			r.progress.Steps[stepNumber-1].Name = name
		}
		r.progress.UpdateStep(stepNumber, status, message)

		line := r.progress.RenderStepLine(r.progress.Steps[stepNumber-1])
		switch status {
		case StepRunning:
			// Overwritten when the step finishes
			_, _ = fmt.Fprint(r.output, line+"\r")
		case StepComplete, StepFailed, StepSkipped:
			r.println(line)
		}
	}
}

func (r *Runner) println(s string) {
	_, _ = fmt.Fprintln(r.output, s)
}
