package mcts

import "github.com/pkg/errors"

// The engine fails loudly: it either returns a move or an error, there
// are no retries and no partial results.
var (
	// Precondition broken by the caller or by a misbehaving game:
	// terminal root state, player outside {1, 2}, no search bound at
	// all, an illegal move handed to a game. Matchable with errors.Is.
	ErrInvalidArgument = errors.New("mcts: invalid argument")

	// A defect inside the engine or a game implementation, detected by
	// an internal check. Never recoverable, raised as a panic value.
	ErrInternalInvariant = errors.New("mcts: internal invariant violated")
)
