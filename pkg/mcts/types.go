package mcts

// Core type definitions shared by the node, the single-tree search
// and the root-parallel driver.

import "cmp"

// Result of a finished game from some player's perspective.
// The orientation is inverted on purpose: 1 means the asked-about player
// LOST, 0 that they won, 0.5 a draw. Backpropagation relies on this,
// a node reached by player P's move accumulates scores from P's point
// of view. See ComputeTree.
type Result float64

// Move values must be copyable, comparable and ordered; the ordering is
// used as the merge key when combining root statistics across workers.
type MoveLike interface {
	cmp.Ordered
}

// Side to move, either Player1 or Player2.
type Player int

const (
	Player1 Player = 1
	Player2 Player = 2
)

// Get the opponent of this player
func (p Player) Other() Player {
	return 3 - p
}

// Valid reports whether p is one of the two supported players.
func (p Player) Valid() bool {
	return p == Player1 || p == Player2
}
