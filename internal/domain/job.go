package domain

import (
	"encoding/json"
	"time"
)

// Flow selects how the hero image for a job is acquired.
type Flow string

const (
	FlowText        Flow = "text"
	FlowInspiration Flow = "inspiration"
)

// State enumerates the job pipeline states. Transitions move forward only,
// except for the explicit approval-gate branches (regenerate/reject).
type State string

const (
	StateParsing         State = "parsing"
	StateAnalyzing       State = "analyzing"
	StateGeneratingHero  State = "generating_hero"
	StateInspirationHero State = "generating_inspiration_hero"
	StateRegenerating    State = "regenerating_hero"
	StateAwaitingApprov  State = "awaiting_approval"
	StateGenerating      State = "generating"
	StateVerifying       State = "verifying"
	StateComplete        State = "complete"
	StateRejected        State = "rejected"
	StateError           State = "error"
)

// Terminal reports whether no further mutation of the job may occur.
func (s State) Terminal() bool {
	switch s {
	case StateComplete, StateRejected, StateError:
		return true
	default:
		return false
	}
}

// TaskType enumerates the units of work the worker claims from the registry.
type TaskType string

const (
	TaskTextShowcase     TaskType = "TEXT_SHOWCASE"
	TaskInspirationHero  TaskType = "INSPIRATION_HERO"
	TaskHeroRegenerate   TaskType = "HERO_REGENERATE"
	TaskResumeShowcase   TaskType = "RESUME_SHOWCASE"
	TaskRegenerateSingle TaskType = "REGENERATE_SINGLE"
)

// TaskStatus enumerates registry row lifecycle states.
type TaskStatus string

const (
	TaskStatusQueued    TaskStatus = "QUEUED"
	TaskStatusRunning   TaskStatus = "RUNNING"
	TaskStatusSucceeded TaskStatus = "SUCCEEDED"
	TaskStatusFailed    TaskStatus = "FAILED"
)

// Task is one claimable row in the job registry. A showcase job produces one
// task at creation and may produce follow-up tasks from the approval gate
// (regenerate hero, resume after approval) or from single-image regeneration.
type Task struct {
	ID           int64
	JobID        string
	Type         TaskType
	Status       TaskStatus
	Payload      json.RawMessage
	ErrorMessage string
	LeaseUntil   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TaskPayload carries everything the worker needs to run a task. Fields are
// optional depending on the task type.
type TaskPayload struct {
	Brief           string `json:"brief,omitempty"`
	InspirationPath string `json:"inspiration_path,omitempty"`
	ProjectType     string `json:"project_type,omitempty"`
	Suburb          string `json:"suburb,omitempty"`
	Feedback        string `json:"feedback,omitempty"`
	FromHero        string `json:"from_hero,omitempty"`
	VariationName   string `json:"variation_name,omitempty"`
}
