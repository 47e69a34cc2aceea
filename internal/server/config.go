package server

import (
	"github.com/example/gtmscan/internal/app"
	"github.com/example/gtmscan/internal/logging"
)

type Config struct {
	// ListenAddr is the HTTP listen address for the API server (the CLI
	// uses the orchestrator in-process and does not require the network).
	ListenAddr string

	AppConfig *app.Config
	Logger    logging.Logger
}
