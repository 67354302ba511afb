package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobType enumerates the kinds of engagement a posting can offer.
type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

// Valid reports whether t is a recognized job type.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	}
	return false
}

// PayPeriod is the interval a structured compensation amount refers to.
type PayPeriod string

const (
	PayPerHour  PayPeriod = "hour"
	PayPerDay   PayPeriod = "day"
	PayPerWeek  PayPeriod = "week"
	PayPerMonth PayPeriod = "month"
	PayPerYear  PayPeriod = "year"
)

// Valid reports whether p is a recognized pay period.
func (p PayPeriod) Valid() bool {
	switch p {
	case PayPerHour, PayPerDay, PayPerWeek, PayPerMonth, PayPerYear:
		return true
	}
	return false
}

// Compensation is either free-form text, a structured amount per period, or
// both. Amount is nil when no structured figure was given.
type Compensation struct {
	Text     string           `json:"text,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Currency string           `json:"currency,omitempty"`
	Period   PayPeriod        `json:"period,omitempty"`
}

// Structured reports whether an amount was supplied.
func (c Compensation) Structured() bool {
	return c.Amount != nil
}

// Job is a posting owned by a single poster.
type Job struct {
	ID           string       `json:"id"`
	PosterID     string       `json:"poster_id"`
	Title        string       `json:"title"`
	Company      string       `json:"company,omitempty"`
	Location     string       `json:"location,omitempty"`
	Type         JobType      `json:"job_type,omitempty"`
	Compensation Compensation `json:"compensation"`
	Contact      string       `json:"contact"`
	Description  string       `json:"description"`
	CreatedAt    time.Time    `json:"created_at"`
}

// OwnedBy reports whether userID is the job's owning poster.
func (j *Job) OwnedBy(userID string) bool {
	return j.PosterID == userID
}
