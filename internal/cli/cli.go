package cli

import (
	"flag"
	"fmt"
	"strings"
)

// CLIArgs are the command-line arguments that control a batch scan or the
// API server. Keep this small for now — add fields as modules need them.
type CLIArgs struct {
	// URLs are the positional scan targets. Empty when -input/-csv is used.
	URLs []string

	// InputFile is a newline-separated URL list file; CSVFile a CSV whose
	// first column holds the URLs.
	InputFile string
	CSVFile   string

	// Workers overrides the batch concurrency for this run; 0 means "use
	// config default". Timeout likewise, in seconds.
	Workers int
	Timeout int

	// Output is the CSV results path; XLSX an optional spreadsheet path.
	Output string
	XLSX   string

	// Serve switches to API-server mode listening on Addr.
	Serve bool
	Addr  string

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// ParseArgs parses a slice of args and returns CLIArgs. Use in tests by passing
// arbitrary slices. The function is deterministic and does not read os.Args.
func ParseArgs(args []string) (*CLIArgs, error) {
	fs := flag.NewFlagSet("gtmscan", flag.ContinueOnError)
	var (
		input   = fs.String("input", "", "File with one URL per line")
		csvFile = fs.String("csv", "", "CSV file whose first column holds the URLs")
		workers = fs.Int("workers", 0, "Concurrent scan workers for this run (0=use default)")
		timeout = fs.Int("timeout", 0, "Per-URL timeout in seconds (0=use default)")
		output  = fs.String("o", "", "Write results as CSV to this path")
		xlsx    = fs.String("xlsx", "", "Write results as XLSX to this path")
		serve   = fs.Bool("serve", false, "Run the HTTP API server instead of a one-shot scan")
		addr    = fs.String("addr", "", "API server listen address (with -serve)")
	)

	// Ensure Parse doesn't write to stdout/stderr in tests
	fs.SetOutput(nil)

	if err := fs.Parse(args); err != nil {
		// Flag parsing errors are useful to return to caller
		return nil, err
	}

	var urls []string
	for _, a := range fs.Args() {
		if a = strings.TrimSpace(a); a != "" {
			urls = append(urls, a)
		}
	}

	parsed := &CLIArgs{
		URLs:      urls,
		InputFile: *input,
		CSVFile:   *csvFile,
		Workers:   *workers,
		Timeout:   *timeout,
		Output:    *output,
		XLSX:      *xlsx,
		Serve:     *serve,
		Addr:      *addr,
		RawArgs:   args,
	}

	if !parsed.Serve && len(parsed.URLs) == 0 && parsed.InputFile == "" && parsed.CSVFile == "" {
		return nil, fmt.Errorf("no targets: pass URLs, -input or -csv (or -serve)")
	}
	if parsed.InputFile != "" && parsed.CSVFile != "" {
		return nil, fmt.Errorf("-input and -csv are mutually exclusive")
	}

	return parsed, nil
}
