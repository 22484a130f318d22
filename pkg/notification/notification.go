package notification

import (
	"time"
)

// Sender delivers an end-of-run summary to an external sink.
type Sender interface {
	CanSend() bool
	Send(title string, description string, runTime time.Duration, fields []Field, dryRun bool) error
	Name() string
}

type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
