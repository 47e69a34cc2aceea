package server

// StartScanRequest is the body of POST /scans. Unset tuning fields fall
// back to the orchestrator defaults.
type StartScanRequest struct {
	URLs           []string `json:"urls"`
	MaxConcurrency int      `json:"max_concurrency,omitempty"`
	TimeoutSeconds int      `json:"timeout_seconds,omitempty"`
}
