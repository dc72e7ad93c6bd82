package searcher

import "errors"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant squared (C = sqrt(2))

const Win = 1.0  // Reward for a rollout won by the node's mover
const Loss = 0.0 // Reward for a rollout lost by the node's mover

// ErrNoMoves is returned when a position that should have moves offers none.
var ErrNoMoves = errors.New("no legal moves")
