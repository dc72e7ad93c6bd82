package metrics

import "time"

// AgentConfig describes how an agent searches before each move.
type AgentConfig struct {
	ID          int
	Duration    time.Duration // Search time per move
	Iterations  int           // Search steps per move, used when Duration is 0
	Exploration float64       // UCT constant C, 0 for the default
	Temperature float64       // 0 plays the most visited move, otherwise samples
	Seed        uint64        // 0 seeds from the clock
}
