// meta/meta.go
package meta

import "time"

// MAX_TURNS caps a game played by the local engine. No supported game lasts this long.
const MAX_TURNS = 300

// SEARCH_DURATION is the default thinking time per move.
const SEARCH_DURATION = time.Second

// PROGRESS_INTERVAL is how often a running search reports its size.
const PROGRESS_INTERVAL = 250 * time.Millisecond

// EXPERIMENT_ITERATIONS is the per-move budget of the preset experiments.
const EXPERIMENT_ITERATIONS = 500

// EXPERIMENTS_DIR is where experiment CSV files and charts are written.
const EXPERIMENTS_DIR = "experiments"

// INSPECTOR_ADDR is the default listen address of the inspector.
const INSPECTOR_ADDR = "localhost:8080"
