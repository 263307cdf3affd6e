package testhub

import (
	"encoding/json"
	"time"
)

// TestCaseType distinguishes API-level from UI-level test cases.
type TestCaseType string

const (
	TestCaseTypeAPI TestCaseType = "api"
	TestCaseTypeUI  TestCaseType = "ui"
)

// TestCase is a single test definition belonging to a project. TestData is
// an arbitrary blob interpreted only by the server's execution engine, so
// the client carries it opaquely.
type TestCase struct {
	ID          int             `json:"id"`
	ProjectID   int             `json:"project_id"`
	Name        string          `json:"name"`
	Type        TestCaseType    `json:"type"`
	Description string          `json:"description,omitempty"`
	TestData    json.RawMessage `json:"test_data,omitempty"`
	CreatedBy   int             `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TestCaseSpec is the client-supplied portion of a TestCase, used for
// create and update operations.
type TestCaseSpec struct {
	Name        string          `json:"name"`
	Type        TestCaseType    `json:"type"`
	Description string          `json:"description,omitempty"`
	TestData    json.RawMessage `json:"test_data,omitempty"`
}
