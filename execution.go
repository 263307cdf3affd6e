package testhub

import (
	"encoding/json"
	"time"
)

// ExecutionStatus describes where a test execution is in its lifecycle.
type ExecutionStatus string

const (
	ExecutionStatusPending ExecutionStatus = "pending"
	ExecutionStatusRunning ExecutionStatus = "running"
	ExecutionStatusPassed  ExecutionStatus = "passed"
	ExecutionStatusFailed  ExecutionStatus = "failed"
)

// Execution is one run of a project's test cases against an environment.
// The run itself happens server-side; the client only observes it. Result
// is an arbitrary blob produced by the execution engine and is carried
// opaquely.
type Execution struct {
	ID            int             `json:"id"`
	ProjectID     int             `json:"project_id"`
	EnvironmentID int             `json:"environment_id"`
	Status        ExecutionStatus `json:"status"`
	StartTime     *time.Time      `json:"start_time,omitempty"`
	EndTime       *time.Time      `json:"end_time,omitempty"`
	Result        json.RawMessage `json:"result,omitempty"`
	ReportPath    string          `json:"report_path,omitempty"`
	CreatedBy     int             `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ExecutionSpec describes a requested execution: which environment to run
// against and, optionally, which subset of the project's test cases to run.
type ExecutionSpec struct {
	EnvironmentID int   `json:"environment_id"`
	TestCaseIDs   []int `json:"test_case_ids,omitempty"`
}
