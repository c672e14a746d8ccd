package models

import "time"

// PayrollJob is the persistence shape of a queue entry. Data and Result are stored as
// JSONB; the mapping layer owns (de)serialization so repositories stay byte-oriented.
type PayrollJob struct {
	JobID        string     `json:"jobID"`
	JobKey       string     `json:"jobKey"`
	State        string     `json:"state"`
	Progress     int        `json:"progress"`
	Data         []byte     `json:"data"`
	Result       []byte     `json:"result"`
	FailedReason *string    `json:"failedReason"`
	StartedAt    *time.Time `json:"startedAt"`
	FinishedAt   *time.Time `json:"finishedAt"`
	AuditFields
}
