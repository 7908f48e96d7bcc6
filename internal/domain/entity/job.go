package entity

import (
	"fmt"
	"time"
)

// JobStatus is the lifecycle status of a contracted Job.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobCancelled JobStatus = "cancelled"
)

var jobStatusLabels = map[JobStatus]string{
	JobPending:   "Pending",
	JobRunning:   "Running",
	JobCompleted: "Completed",
	JobCancelled: "Cancelled",
}

func (s JobStatus) String() string { return string(s) }

// IsValid checks if the JobStatus is a valid value.
func (s JobStatus) IsValid() bool {
	_, ok := jobStatusLabels[s]

	return ok
}

// Label returns the display label for the JobStatus.
func (s JobStatus) Label() string {
	if label, ok := jobStatusLabels[s]; ok {
		return label
	}

	return string(s)
}

// Terminal reports whether no further transition, automatic or explicit, is
// ever attempted from this status.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobCancelled
}

// Job is the contracted work instance created once an Application is accepted.
// It tracks in-progress/completion independently of the JobOffer.
type Job struct {
	ID            int64
	JobOfferID    int64
	WorkerID      int64
	ApplicationID int64
	Title         string // Denormalized copy of the offer title.
	Status        JobStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DeriveStatus computes the status the job should have at the given instant,
// relative to the offer's scheduled [start, end] window:
//
//	pending            -> running    while now is within the window
//	pending or running -> completed  once now is past the end
//
// Terminal statuses are never re-derived. The result equals the current status
// when no transition applies.
func (j *Job) DeriveStatus(start, end, now time.Time) JobStatus {
	if j.Status.Terminal() {
		return j.Status
	}

	switch {
	case now.After(end):
		if j.Status == JobPending || j.Status == JobRunning {
			return JobCompleted
		}
	case !now.Before(start):
		if j.Status == JobPending {
			return JobRunning
		}
	}

	return j.Status
}

// ReconcileKey identifies one observed (id, status, window) tuple. The
// lifecycle deriver processes each key at most once per client session so
// repeated evaluation of an already-reconciled tuple stays a no-op.
func (j *Job) ReconcileKey(start, end time.Time) string {
	return fmt.Sprintf("%d|%s|%d|%d", j.ID, j.Status, start.Unix(), end.Unix())
}
