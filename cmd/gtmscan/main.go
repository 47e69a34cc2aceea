// Command gtmscan scans websites for Google Tag Manager and contact details.
//
// One-shot batch:
//
//	gtmscan -workers 5 -o results.csv example.com https://other.org
//	gtmscan -input urls.txt -xlsx results.xlsx
//
// API server:
//
//	gtmscan -serve -addr :8080
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/gtmscan/internal/app"
	"github.com/example/gtmscan/internal/cli"
	"github.com/example/gtmscan/internal/input"
	"github.com/example/gtmscan/internal/logging"
	"github.com/example/gtmscan/internal/model"
	"github.com/example/gtmscan/internal/output"
	"github.com/example/gtmscan/internal/server"
)

func main() {
	args, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("parsing arguments: %v", err)
	}

	if args.Serve {
		runServer(args)
		return
	}
	runBatch(args)
}

func runServer(args *cli.CLIArgs) {
	cfg := server.Config{ListenAddr: args.Addr}
	s, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("creating server: %v", err)
	}
	defer s.Close()

	srv := s.HTTPServer()
	fmt.Printf("API server listening on %s\n", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runBatch(args *cli.CLIArgs) {
	urls, err := collectURLs(args)
	if err != nil {
		log.Fatalf("reading targets: %v", err)
	}

	appCfg := app.DefaultConfig()
	orch, err := app.NewOrchestrator(appCfg, logging.NewStdoutLogger("CLI"))
	if err != nil {
		log.Fatalf("creating orchestrator: %v", err)
	}
	defer orch.Close()

	scanCfg := orch.ScanDefaults()
	if args.Workers != 0 {
		scanCfg.MaxConcurrency = args.Workers
	}
	if args.Timeout != 0 {
		scanCfg.TimeoutSeconds = args.Timeout
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	progress := func(completed, total int) {
		fmt.Fprintf(os.Stderr, "\rScanning %d/%d", completed, total)
		if completed == total {
			fmt.Fprintln(os.Stderr)
		}
	}

	results, err := orch.RunScan(ctx, urls, scanCfg, progress)
	if err != nil {
		log.Fatalf("scan failed: %v", err)
	}

	if err := writeOutputs(args, results); err != nil {
		log.Fatalf("writing results: %v", err)
	}
	if err := output.WriteReport(os.Stdout, results); err != nil {
		log.Fatalf("writing report: %v", err)
	}
}

func collectURLs(args *cli.CLIArgs) ([]string, error) {
	switch {
	case args.InputFile != "":
		f, err := os.Open(args.InputFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return input.FromReader(f)
	case args.CSVFile != "":
		f, err := os.Open(args.CSVFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return input.FromCSV(f)
	default:
		return args.URLs, nil
	}
}

func writeOutputs(args *cli.CLIArgs, results model.ResultSet) error {
	if args.Output != "" {
		f, err := os.Create(args.Output)
		if err != nil {
			return err
		}
		if err := output.WriteCSV(f, results); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("Results written to %s\n", args.Output)
	}
	if args.XLSX != "" {
		f, err := os.Create(args.XLSX)
		if err != nil {
			return err
		}
		if err := output.WriteXLSX(f, results); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("Results written to %s\n", args.XLSX)
	}
	return nil
}
