package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Duration     time.Duration
	Episodes     int
	Expansions   int
	TerminalHits int // Episodes that reached a decided node and skipped the rollout
	RolloutPlies int
	Nodes        int
}

// AveragePlies is the mean rollout length over episodes that ran a rollout.
func (m SearchMetric) AveragePlies() float64 {
	rollouts := m.Episodes - m.TerminalHits
	if rollouts <= 0 {
		return 0
	}
	return float64(m.RolloutPlies) / float64(rollouts)
}

type MoveMetric struct {
	Step   int
	Player int // Player ID
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int // Player ID
	Winner         int // Player ID, 0 for a draw, -1 when stopped undecided
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start()
	AddEpisode()
	AddExpansion()
	AddTerminalHit()
	AddRollout(plies int)
	Complete() SearchMetric
}

type collector struct {
	startTime    atomic.Int64
	episodes     atomic.Int32
	expansions   atomic.Int32
	terminalHits atomic.Int32
	rolloutPlies atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime.Store(time.Now().UnixNano())
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *collector) AddTerminalHit() {
	m.terminalHits.Add(1)
}

func (m *collector) AddRollout(plies int) {
	m.rolloutPlies.Add(int64(plies))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:     time.Since(time.Unix(0, m.startTime.Load())),
		Episodes:     int(m.episodes.Load()),
		Expansions:   int(m.expansions.Load()),
		TerminalHits: int(m.terminalHits.Load()),
		RolloutPlies: int(m.rolloutPlies.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                 {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) AddExpansion()          {}
func (m *dummyCollector) AddTerminalHit()        {}
func (m *dummyCollector) AddRollout(plies int)   {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
