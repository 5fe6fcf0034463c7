package job

import (
	"context"
	"encoding/json"
	"time"
)

// JobType represents the kind of job
type JobType string

const (
	JobSubtitle JobType = "subtitle"
)

// JobStatus represents the current state of a job
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusCancelled JobStatus = "cancelled"
)

// Job represents one queued subtitle run
type Job struct {
	ID          string          `json:"id"`
	Type        JobType         `json:"type"`
	Status      JobStatus       `json:"status"`
	FilePath    string          `json:"file_path"`
	Params      json.RawMessage `json:"params"`
	Progress    float64         `json:"progress"`
	MaxProgress float64         `json:"max_progress"`
	Message     string          `json:"message,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// SubtitleParams are parameters for a subtitle generation job
type SubtitleParams struct {
	TargetLang     string `json:"target_lang"`               // e.g. "ta-IN", "en-US"
	SegmentSeconds int    `json:"segment_seconds,omitempty"` // 0 means the configured default
	OutputPath     string `json:"output_path,omitempty"`     // derived from the source when empty
	SpeechEngine   string `json:"speech_engine,omitempty"`   // "" means the configured default
}

// Reporter carries run feedback back onto the job record.
type Reporter struct {
	Progress    func(current float64)
	MaxProgress func(total float64)
	Message     func(text string)
}

// JobHandler processes a job. Implementations are provided by the pipeline service.
type JobHandler func(ctx context.Context, job *Job, report Reporter) error
