package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/phoenixborealis/bimagent/internal/chatprobe"
)

// Default configuration constants.
const (
	defaultRounds       = 1
	defaultWorkers      = 2
	defaultTimeout      = 90 * time.Second
	defaultProbeTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8080", "Base URL of the service")
		scenario = flag.String("scenario", "", "Active scenario id to ask about (default: baseline)")
		rounds   = flag.Int("rounds", defaultRounds, "How many times to cycle through the question set")
		workers  = flag.Int("workers", defaultWorkers, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile  = flag.String("log", "", "Log file for probe output (default: probe_log_TIMESTAMP.log)")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		chatprobe.ShowHelp()
		return
	}

	// Setup logging
	if err := chatprobe.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultProbeTimeout)
	defer cancel()

	// Create probe configuration
	config := &chatprobe.Config{
		BaseURL:    *baseURL,
		ScenarioID: *scenario,
		Rounds:     *rounds,
		Workers:    *workers,
		Timeout:    *timeout,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	// Run the probe
	if err := chatprobe.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Probe failed: " + err.Error() + "\n")
		return
	}
}
