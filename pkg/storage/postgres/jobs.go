package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"
)

// AddJob enqueues a river job. Inside a transaction the job is inserted with
// InsertTx and becomes visible on commit; otherwise it is visible at once.
func (p *PgSQL) AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error) {
	if tx, ok := p.DB.(*sql.Tx); ok {
		job, err := p.jobs.InsertTx(ctx, tx, args, opts)
		if err != nil {
			return false, fmt.Errorf("could not insert %s job: %w", args.Kind(), err)
		}

		return !job.UniqueSkippedAsDuplicate, nil
	}

	job, err := p.jobs.Insert(ctx, args, opts)
	if err != nil {
		return false, fmt.Errorf("could not insert %s job: %w", args.Kind(), err)
	}

	return !job.UniqueSkippedAsDuplicate, nil
}
