package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/gtmscan/internal/fetcher"
	"github.com/example/gtmscan/internal/logging"
	"github.com/example/gtmscan/internal/model"
	"github.com/example/gtmscan/internal/runner"
	"github.com/example/gtmscan/internal/scanner"
	"github.com/example/gtmscan/internal/webclient"
)

type JobEventType string

const (
	JobEventStatus   JobEventType = "status"
	JobEventProgress JobEventType = "progress"
	JobEventResult   JobEventType = "result"
)

type JobEvent struct {
	JobID string       `json:"job_id"`
	Type  JobEventType `json:"type"`

	// For status changes
	Status JobStatus `json:"status,omitempty"`
	Error  string    `json:"error,omitempty"`

	// For progress
	Completed int `json:"completed,omitempty"`
	Total     int `json:"total,omitempty"`
}

type JobStatus string

const (
	JobPending  JobStatus = "pending"
	JobRunning  JobStatus = "running"
	JobDone     JobStatus = "done"
	JobCanceled JobStatus = "canceled"
)

// Job is one batch scan run. Results and Summary are set once the job is
// done; Events carries status/progress updates for a single watcher.
type Job struct {
	ID        string           `json:"id"`
	Status    JobStatus        `json:"status"`
	Error     string           `json:"error,omitempty"`
	URLCount  int              `json:"url_count"`
	Config    model.ScanConfig `json:"config"`
	StartedAt time.Time        `json:"started_at"`
	EndedAt   *time.Time       `json:"ended_at,omitempty"`
	Results   model.ResultSet  `json:"results,omitempty"`
	Summary   *model.Summary   `json:"summary,omitempty"`
	Events    chan JobEvent    `json:"-"`

	urls []string
}

// Orchestrator wires webclient → fetcher → scanner → runner and tracks scan
// jobs in memory for the lifetime of the process. Nothing is persisted
// across runs.
type Orchestrator struct {
	cfg    *Config
	runner *runner.Runner
	wc     webclient.WebClient
	logger logging.Logger

	jobsMu     sync.Mutex
	jobs       map[string]*Job
	jobCancels map[string]context.CancelFunc
}

// NewOrchestrator builds the full scan pipeline from cfg.
func NewOrchestrator(cfg *Config, logger logging.Logger) (*Orchestrator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	wc, err := webclient.NewNetHTTPClient(cfg.WebClientCfg, logger, nil)
	if err != nil {
		return nil, fmt.Errorf("creating webclient: %w", err)
	}
	f, err := fetcher.New(cfg.FetcherCfg, wc, logger)
	if err != nil {
		return nil, fmt.Errorf("creating fetcher: %w", err)
	}
	sc, err := scanner.New(f, logger)
	if err != nil {
		return nil, fmt.Errorf("creating scanner: %w", err)
	}
	run, err := runner.New(cfg.RunnerCfg, sc, logger)
	if err != nil {
		return nil, fmt.Errorf("creating runner: %w", err)
	}

	return &Orchestrator{
		cfg:        cfg,
		runner:     run,
		wc:         wc,
		logger:     logger.With(logging.Field{Key: "component", Value: "orchestrator"}),
		jobs:       make(map[string]*Job),
		jobCancels: make(map[string]context.CancelFunc),
	}, nil
}

// ScanDefaults returns the batch defaults applied to unset config fields.
func (o *Orchestrator) ScanDefaults() model.ScanConfig {
	return o.cfg.ScanCfg
}

// RunScan runs a batch synchronously. This is the CLI path; the server goes
// through jobs instead.
func (o *Orchestrator) RunScan(ctx context.Context, urls []string, scanCfg model.ScanConfig, progress runner.Progress) (model.ResultSet, error) {
	return o.runner.Run(ctx, urls, scanCfg, progress)
}

// StartScanJob validates the batch and launches it in the background.
// Validation failures are the only hard errors; once a job starts, every
// per-URL failure lands in its result record.
func (o *Orchestrator) StartScanJob(urls []string, scanCfg model.ScanConfig) (*Job, error) {
	if err := scanCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scan config: %w", err)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("no urls to scan")
	}

	job := &Job{
		ID:        uuid.NewString(),
		Status:    JobPending,
		URLCount:  len(urls),
		Config:    scanCfg,
		StartedAt: time.Now(),
		Events:    make(chan JobEvent, 64),
		urls:      urls,
	}

	// Jobs outlive the request that started them.
	runCtx, cancel := context.WithCancel(context.Background())

	o.jobsMu.Lock()
	o.jobs[job.ID] = job
	o.jobCancels[job.ID] = cancel
	o.jobsMu.Unlock()

	o.logger.Info("starting scan job",
		logging.Field{Key: "job_id", Value: job.ID},
		logging.Field{Key: "urls", Value: len(urls)})

	go o.runJob(runCtx, job)

	return o.snapshot(job.ID), nil
}

func (o *Orchestrator) runJob(ctx context.Context, job *Job) {
	o.setStatus(job.ID, JobRunning, "")
	o.emit(job.ID, JobEvent{JobID: job.ID, Type: JobEventStatus, Status: JobRunning})

	progress := func(completed, total int) {
		o.emit(job.ID, JobEvent{
			JobID:     job.ID,
			Type:      JobEventProgress,
			Completed: completed,
			Total:     total,
		})
	}

	results, err := o.runner.Run(ctx, job.urls, job.Config, progress)

	ended := time.Now()
	final := JobDone
	errMsg := ""
	switch {
	case err != nil:
		// Config was validated up front, so this is unexpected; record it
		// rather than dropping the job on the floor.
		final = JobCanceled
		errMsg = err.Error()
	case ctx.Err() != nil:
		final = JobCanceled
	}

	o.jobsMu.Lock()
	if j, ok := o.jobs[job.ID]; ok {
		j.Status = final
		j.Error = errMsg
		j.EndedAt = &ended
		j.Results = results
		if results != nil {
			sum := results.Summary()
			j.Summary = &sum
		}
	}
	delete(o.jobCancels, job.ID)
	o.jobsMu.Unlock()

	o.emit(job.ID, JobEvent{JobID: job.ID, Type: JobEventStatus, Status: final, Error: errMsg})
	o.emit(job.ID, JobEvent{JobID: job.ID, Type: JobEventResult, Status: final})
	close(job.Events)

	o.logger.Info("scan job finished",
		logging.Field{Key: "job_id", Value: job.ID},
		logging.Field{Key: "status", Value: string(final)})
}

func (o *Orchestrator) setStatus(jobID string, status JobStatus, errMsg string) {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	if job, ok := o.jobs[jobID]; ok {
		job.Status = status
		job.Error = errMsg
	}
}

// emit sends without blocking; events are dropped when the watcher lags.
func (o *Orchestrator) emit(jobID string, ev JobEvent) {
	o.jobsMu.Lock()
	job, ok := o.jobs[jobID]
	o.jobsMu.Unlock()
	if !ok || job.Events == nil {
		return
	}
	select {
	case job.Events <- ev:
	default:
	}
}

// snapshot returns a copy of the job safe to serialize while the run
// goroutine keeps mutating the original.
func (o *Orchestrator) snapshot(jobID string) *Job {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	job, ok := o.jobs[jobID]
	if !ok {
		return nil
	}
	cp := *job
	return &cp
}

// GetJob returns a snapshot of the job, or nil when unknown.
func (o *Orchestrator) GetJob(jobID string) *Job {
	return o.snapshot(jobID)
}

// ListJobs returns snapshots of all known jobs.
func (o *Orchestrator) ListJobs() []*Job {
	o.jobsMu.Lock()
	ids := make([]string, 0, len(o.jobs))
	for id := range o.jobs {
		ids = append(ids, id)
	}
	o.jobsMu.Unlock()

	jobs := make([]*Job, 0, len(ids))
	for _, id := range ids {
		if j := o.snapshot(id); j != nil {
			jobs = append(jobs, j)
		}
	}
	return jobs
}

// Events returns the live event channel for a job, for a single watcher.
func (o *Orchestrator) Events(jobID string) chan JobEvent {
	o.jobsMu.Lock()
	defer o.jobsMu.Unlock()
	if job, ok := o.jobs[jobID]; ok {
		return job.Events
	}
	return nil
}

// CancelJob stops dispatching new URLs for the job. In-flight fetches finish
// or time out; already-queued URLs get canceled records.
func (o *Orchestrator) CancelJob(jobID string) bool {
	o.jobsMu.Lock()
	cancel, ok := o.jobCancels[jobID]
	o.jobsMu.Unlock()
	if !ok {
		return false
	}
	o.logger.Info("canceling scan job", logging.Field{Key: "job_id", Value: jobID})
	cancel()
	return true
}

// Close cancels every running job and releases the HTTP backend.
func (o *Orchestrator) Close() {
	o.jobsMu.Lock()
	cancels := make([]context.CancelFunc, 0, len(o.jobCancels))
	for _, cancel := range o.jobCancels {
		cancels = append(cancels, cancel)
	}
	o.jobsMu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	if o.wc != nil {
		_ = o.wc.Close()
	}
}
