package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/muurk/navdemo/internal/model"
)

func TestClampWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		err   error
		want  int
	}{
		{"error falls back", 200, errors.New("not a tty"), MinTerminalWidth},
		{"too narrow", 20, nil, MinTerminalWidth},
		{"in range", 80, nil, 80},
		{"too wide", 300, nil, MaxContentWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampWidth(tt.width, tt.err); got != tt.want {
				t.Errorf("clampWidth(%d) = %d, want %d", tt.width, got, tt.want)
			}
		})
	}
}

func TestHeaderRender(t *testing.T) {
	h := NewHeader("Login demo", "navdemo demo",
		Param{Key: "Latency", Value: "2s"},
		Param{Key: "Logout", Value: "yes"},
	).SetWidth(80)

	out := h.Render()
	for _, want := range []string{"LOGIN DEMO", "navdemo demo", "Latency:", "2s", "Logout:"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Latency") > strings.Index(out, "Logout") {
		t.Error("params rendered out of order")
	}
}

func TestProgressUpdateStep(t *testing.T) {
	p := NewProgress(2).SetWidth(80).SetStepNames([]string{"Sign in", "Fetch data sets"})

	p.UpdateStep(1, StepRunning, "")
	if p.Current != 1 {
		t.Errorf("Current = %d, want 1", p.Current)
	}
	p.UpdateStep(1, StepComplete, "2s")
	if p.Percent != 0.5 {
		t.Errorf("Percent = %v, want 0.5", p.Percent)
	}
	p.UpdateStep(2, StepRunning, "")
	p.UpdateStep(2, StepFailed, "canceled")
	if p.Percent != 0.5 {
		t.Errorf("Percent after failure = %v, want 0.5", p.Percent)
	}
	if bar := p.Render(); !strings.Contains(bar, "50%") || !strings.Contains(bar, "[2/2]") {
		t.Errorf("bar = %q, want 50%% and [2/2]", bar)
	}

	// ignored
	p.UpdateStep(0, StepComplete, "")
	p.UpdateStep(3, StepComplete, "")

	line := p.RenderStepLine(p.Steps[0])
	for _, want := range []string{"[1/2]", "Sign in", StepMarkerComplete, "(2s)"} {
		if !strings.Contains(line, want) {
			t.Errorf("step line missing %q: %q", want, line)
		}
	}
	if !strings.Contains(p.RenderStepLine(p.Steps[1]), FailureMarker) {
		t.Error("failed step should carry the failure marker")
	}
}

func TestResultRender(t *testing.T) {
	success := NewSuccessResult("Login complete",
		Param{Key: "Records", Value: "4"},
		Param{Key: "Details", Value: "9"},
	).SetWidth(80).Render()
	for _, want := range []string{"SUCCESS", "Login complete", "Records:", "4"} {
		if !strings.Contains(success, want) {
			t.Errorf("success box missing %q", want)
		}
	}
	if strings.Index(success, "Records") > strings.Index(success, "Details") {
		t.Error("details rendered out of order")
	}

	failure := NewFailureResult("Login failed", errors.New("boom"), "Try again").SetWidth(80).Render()
	for _, want := range []string{"FAILED", "Error: boom", "Troubleshooting:", "Try again"} {
		if !strings.Contains(failure, want) {
			t.Errorf("failure box missing %q", want)
		}
	}

	warning := NewWarningResult("Logged out early").SetWidth(80).Render()
	if !strings.Contains(warning, "WARNING") {
		t.Error("warning box missing WARNING")
	}
}

func TestEventLog(t *testing.T) {
	log := NewEventLog("Events").SetWidth(80)
	start := log.start
	log.now = func() time.Time { return start.Add(1500 * time.Millisecond) }

	if out := log.Render(); !strings.Contains(out, "(no events)") {
		t.Errorf("empty log should say so:\n%s", out)
	}

	log.Addf("fetch_started op=%s", "login")
	log.Addf("logged_in")
	log.Addf("records_replaced")
	if len(log.Lines) != 3 {
		t.Fatalf("len(Lines) = %d, want 3", len(log.Lines))
	}
	if !strings.HasPrefix(log.Lines[0], "+1.5s") {
		t.Errorf("Lines[0] = %q, want +1.5s prefix", log.Lines[0])
	}

	log.MaxLines = 2
	out := log.Render()
	if strings.Contains(out, "fetch_started") {
		t.Error("oldest line should be truncated")
	}
	if !strings.Contains(out, "1 earlier events") {
		t.Errorf("missing truncation note:\n%s", out)
	}
}

func TestRunner_Success(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(RunnerConfig{
		Title:     "Login",
		Command:   "navdemo demo",
		StepNames: []string{"Sign in", "Fetch data sets"},
		Output:    &buf,
		Width:     80,
	})
	log := NewEventLog("Events")
	log.Addf("logged_in")
	r.AttachEventLog(log)

	err := r.Run(context.Background(), func(ctx context.Context, onStep StepCallback) ([]Param, error) {
		onStep(1, "", StepRunning, "")
		onStep(1, "", StepComplete, "")
		onStep(2, "Fetch", StepComplete, "4 records")
		return []Param{{Key: "Records", Value: "4"}}, nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"LOGIN", "Sign in", "Fetch", "(4 records)", "100%", "[2/2]", "Login complete", "Records:", "Duration:", "logged_in"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if r.Progress().Percent != 1 {
		t.Errorf("Percent = %v, want 1", r.Progress().Percent)
	}
}

func TestRunner_Failure(t *testing.T) {
	var buf bytes.Buffer
	wantErr := errors.New("login: canceled")
	r := NewRunner(RunnerConfig{
		Title:           "Login",
		StepNames:       []string{"Sign in"},
		Troubleshooting: []string{"Increase --timeout"},
		Output:          &buf,
		Width:           80,
	})

	err := r.Run(context.Background(), func(ctx context.Context, onStep StepCallback) ([]Param, error) {
		onStep(1, "", StepFailed, "canceled")
		onStep(5, "", StepFailed, "out of range")
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Run() error = %v, want %v", err, wantErr)
	}
	out := buf.String()
	for _, want := range []string{"Login failed", "login: canceled", "Increase --timeout"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			got := Confirm(strings.NewReader(tt.input), &out, "Overwrite", []string{"config exists"}, "Overwrite it?")
			if got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.Contains(out.String(), "Overwrite it? [y/N]") {
				t.Errorf("prompt missing:\n%s", out.String())
			}
		})
	}
}

func TestRenderRecordTree(t *testing.T) {
	if got := RenderRecordTree(nil, false); !strings.Contains(got, "(no records)") {
		t.Errorf("empty tree = %q", got)
	}

	r := model.NewRecord("Record 1")
	r.Insert(model.NewDetail(7, "Detail number 1"))
	r.Insert(model.NewDetail(0, "Detail number 2"))

	out := RenderRecordTree([]*model.Record{r}, true)
	for _, want := range []string{"Record 1", "├─ Detail number 1", "└─ Detail number 2", r.ID().Short()} {
		if !strings.Contains(out, want) {
			t.Errorf("tree missing %q:\n%s", want, out)
		}
	}
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).SetWidth(80)
	p.PrintHeader("Config", "navdemo config init")
	p.PrintSuccess("Saved", Param{Key: "Path", Value: "/tmp/x"})
	p.PrintWarning("Left unchanged")
	p.Newline()
	p.PrintError("Write failed", errors.New("read-only file system"), "Pass --config")

	out := buf.String()
	for _, want := range []string{"CONFIG", "navdemo config init", "SUCCESS", "Saved", "/tmp/x", "WARNING", "Left unchanged", "FAILED", "read-only file system", "Pass --config"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
