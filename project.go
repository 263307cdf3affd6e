package testhub

import "time"

// Project is a container for test cases, environments, and executions.
type Project struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	RepositoryURL string    `json:"repository_url,omitempty"`
	CreatedBy     int       `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProjectSpec is the client-supplied portion of a Project, used for create
// and update operations.
type ProjectSpec struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	RepositoryURL string `json:"repository_url,omitempty"`
}
