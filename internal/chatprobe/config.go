package chatprobe

import "time"

// Config holds configuration for the chat probe run
type Config struct {
	BaseURL    string        // Base URL of the service
	ScenarioID string        // Active scenario to ask about ("" = baseline)
	Rounds     int           // How many times to cycle through the question set
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	LogFile    string        // Log file for probe output
	Verbose    bool          // Enable verbose logging
}

// Question is one canned probe question
type Question struct {
	Text     string // The question, Portuguese like real users ask
	Category string // Optional category focus hint
}

// ChatRequest mirrors the service chat contract
type ChatRequest struct {
	Message          string `json:"message"`
	ActiveScenarioID string `json:"activeScenarioId,omitempty"`
	CategoryID       string `json:"categoryId,omitempty"`
}

// ChatResponse is the reply envelope from the service
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Result records the outcome of one question round-trip
type Result struct {
	Question  string
	RequestID string
	Reply     string
	Latency   time.Duration
	Failed    bool
}

// Stats holds probe statistics
type Stats struct {
	QuestionsSent   int
	RepliesReceived int
	ErrorReplies    int
	Failed          int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
	TotalLatency    time.Duration
	MaxLatency      time.Duration
}
