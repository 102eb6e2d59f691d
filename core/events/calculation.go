package events

import (
	"time"

	"github.com/kilianp07/gigwage/core/model"
)

// Source names the transport a calculation came through.
type Source string

const (
	SourceHTTP  Source = "http"
	SourceMQTT  Source = "mqtt"
	SourceCLI   Source = "cli"
	SourceBatch Source = "batch"
)

// CalculationEvent is published after every successful computation.
type CalculationEvent struct {
	ID      string
	Source  Source
	Inputs  model.Inputs
	Results model.Results
	Time    time.Time
}

// RejectedEvent is published when inputs fail validation.
type RejectedEvent struct {
	Source Source
	Fields []string
	Time   time.Time
}
