package chatprobe

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/phoenixborealis/bimagent/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "probe_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the chat probe tool.
func ShowHelp() {
	os.Stdout.WriteString(`BIM Carbon Agent Chat Probe
===========================

Sends the canned question set at a running carbon agent instance and
reports reply health and latency. Requires a real engine key behind
the target service.

Usage:
  go run cmd/chat-probe/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -scenario string
        Active scenario id to ask about (default: baseline)
  -rounds int
        How many times to cycle through the question set (default 1)
  -workers int
        Number of concurrent workers (default 2)
  -timeout duration
        HTTP request timeout (default 90s)
  -log string
        Log file for probe output (default: probe_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Probe a local instance
  go run cmd/chat-probe/main.go

  # Probe the low-clinker scenario with three rounds
  go run cmd/chat-probe/main.go -scenario low_clinker_concrete -rounds 3
`)
}
