package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage enqueues background jobs. Backends that support transactions
// insert the job atomically with the surrounding transaction, so a job that
// refers to freshly stored rows only becomes visible once they are committed.
type JobStorage interface {
	// AddJob enqueues a job and reports whether it was inserted. A job skipped
	// as a duplicate of a unique job reports false without an error.
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
