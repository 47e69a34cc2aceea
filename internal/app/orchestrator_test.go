package app_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/gtmscan/internal/app"
	"github.com/example/gtmscan/internal/model"
	"github.com/example/gtmscan/internal/runner"
	"github.com/example/gtmscan/internal/testutil"
)

func newTargetServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<script src="https://www.googletagmanager.com/gtm.js?id=GTM-TEST01"></script>
			<a href="/contact">contact</a> mail us: team@target.example`)
	})
	mux.HandleFunc("/plain", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html><body>no tags here</body></html>")
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newOrchestrator(t *testing.T) *app.Orchestrator {
	t.Helper()
	cfg := app.DefaultConfig()
	cfg.RunnerCfg = runner.Config{Delay: time.Millisecond}
	o, err := app.NewOrchestrator(cfg, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	t.Cleanup(o.Close)
	return o
}

func TestOrchestrator_StartScanJob_CompletesWithResults(t *testing.T) {
	t.Parallel()
	ts := newTargetServer(t)
	o := newOrchestrator(t)

	urls := []string{ts.URL, ts.URL + "/plain"}
	job, err := o.StartScanJob(urls, model.ScanConfig{MaxConcurrency: 2, TimeoutSeconds: 5})
	if err != nil {
		t.Fatalf("StartScanJob: %v", err)
	}
	if job.ID == "" {
		t.Fatal("expected a job id")
	}

	events := o.Events(job.ID)
	if events == nil {
		t.Fatal("expected a live event channel")
	}

	sawProgress := false
	var lastStatus app.JobStatus
	for ev := range events {
		switch ev.Type {
		case app.JobEventProgress:
			sawProgress = true
			if ev.Total != 2 {
				t.Errorf("progress total = %d, want 2", ev.Total)
			}
		case app.JobEventStatus:
			lastStatus = ev.Status
		}
	}

	if !sawProgress {
		t.Error("expected at least one progress event")
	}
	if lastStatus != app.JobDone {
		t.Errorf("final status event = %q, want %q", lastStatus, app.JobDone)
	}

	final := o.GetJob(job.ID)
	if final == nil {
		t.Fatal("job vanished")
	}
	if final.Status != app.JobDone {
		t.Errorf("job status = %q", final.Status)
	}
	if len(final.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(final.Results))
	}
	if final.Summary == nil || final.Summary.GTMFound != 1 {
		t.Errorf("summary = %+v, want 1 GTM hit", final.Summary)
	}
	if final.EndedAt == nil {
		t.Error("expected EndedAt to be set")
	}
}

func TestOrchestrator_StartScanJob_ValidatesUpFront(t *testing.T) {
	t.Parallel()
	o := newOrchestrator(t)

	if _, err := o.StartScanJob([]string{"example.com"}, model.ScanConfig{MaxConcurrency: 0, TimeoutSeconds: 15}); err == nil {
		t.Error("expected error for invalid config")
	}
	if _, err := o.StartScanJob(nil, model.DefaultScanConfig()); err == nil {
		t.Error("expected error for empty url list")
	}
	if len(o.ListJobs()) != 0 {
		t.Error("rejected batches must not create jobs")
	}
}

func TestOrchestrator_GetJob_Unknown(t *testing.T) {
	t.Parallel()
	o := newOrchestrator(t)
	if o.GetJob("nope") != nil {
		t.Error("expected nil for unknown job")
	}
	if o.CancelJob("nope") {
		t.Error("expected false for unknown job")
	}
}

func TestOrchestrator_RunScan_Synchronous(t *testing.T) {
	t.Parallel()
	ts := newTargetServer(t)
	o := newOrchestrator(t)

	results, err := o.RunScan(context.Background(),[]string{ts.URL}, model.ScanConfig{MaxConcurrency: 1, TimeoutSeconds: 5}, nil)
	if err != nil {
		t.Fatalf("RunScan: %v", err)
	}
	if len(results) != 1 || !results[0].GTMFound {
		t.Errorf("unexpected results %+v", results)
	}
}
