package domain

import "time"

// Application records a seeker's interest in a job. It is immutable once
// submitted.
type Application struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	SeekerID  string    `json:"seeker_id"`
	Message   string    `json:"message,omitempty"`
	AppliedAt time.Time `json:"applied_at"`
}

// ApplicationView is an application joined with its job for the seeker's
// own listing. JobDeleted is set when the job has since been removed.
type ApplicationView struct {
	Application
	JobTitle   string `json:"job_title,omitempty"`
	JobDeleted bool   `json:"job_deleted,omitempty"`
}
