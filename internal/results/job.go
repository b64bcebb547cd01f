package results

import (
	"time"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// DefaultStatsDelay is how long a player stats job waits before it runs.
const DefaultStatsDelay = 2 * time.Second

// PlayerStatsArgs asks a worker to recompute the stats row of one player.
type PlayerStatsArgs struct {
	// PlayerName is unique so bursts of races collapse into one job.
	PlayerName string `json:"playerName" river:"unique"`

	maxAttempts int
	delay       time.Duration
}

// Kind implements river.JobArgs.
func (PlayerStatsArgs) Kind() string { return "player_stats" }

// InsertOpts keeps at most one unfinished job per player. River requires the
// running state in ByState, so a race stored while a refresh runs may not get
// its own job. The job is scheduled delay in the future, which lets races
// finishing within that window share one refresh that sees all of them.
func (args PlayerStatsArgs) InsertOpts() river.InsertOpts {
	opts := river.InsertOpts{
		MaxAttempts: args.maxAttempts,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRetryable,
				rivertype.JobStateRunning,
				rivertype.JobStateScheduled,
			},
		},
	}
	if args.delay > 0 {
		opts.ScheduledAt = time.Now().Add(args.delay)
	}

	return opts
}
