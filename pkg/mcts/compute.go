package mcts

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"
)

// Worker seeds follow a fixed affine schedule over the worker index,
// which keeps every ComputeMove call reproducible for equal options.
const (
	seedMul uint64 = 982451653
	seedAdd uint64 = 12345
)

// ComputeMove is the public entry point of the engine: it searches the
// given position with NumThreads independent worker trees, merges
// their root statistics per move and returns the move with the best
// Laplace-smoothed success rate
//
//	(wins + 1) / (visits + 2)
//
// the posterior mean under a Beta(1,1) prior. Raw win rates are noisy
// for rarely visited moves and raw visit counts ignore the win rate;
// the smoothed estimate is bounded and subsumes both.
//
// Workers share no state: each gets its own clone of rootState, its
// own RNG seeded from the worker index, and builds its own tree. Any
// worker error is returned to the caller unmasked.
func ComputeMove[M MoveLike, S State[M, S]](rootState S, opts ComputeOptions) (M, error) {
	noMove := rootState.NoMove()

	if err := opts.validate(); err != nil {
		return noMove, err
	}
	if p := rootState.PlayerToMove(); !p.Valid() {
		return noMove, errors.Wrapf(ErrInvalidArgument, "player to move must be 1 or 2, got %d", p)
	}

	moves := rootState.Moves()
	if len(moves) == 0 {
		return noMove, errors.Wrap(ErrInvalidArgument, "root state has no legal moves")
	}
	if len(moves) == 1 {
		// No point searching a forced move.
		return moves[0], nil
	}

	// The driver owns reporting, workers search silently.
	wopts := opts
	wopts.Verbose = false

	roots := make([]*Node[M], opts.NumThreads)
	done := make(chan error, opts.NumThreads)
	for t := range roots {
		go func(t int) {
			root, err := ComputeTree[M](rootState.Clone(), wopts, seedMul*uint64(t)+seedAdd)
			roots[t] = root
			done <- err
		}(t)
	}

	var firstErr error
	for range roots {
		if err := <-done; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return noMove, firstErr
	}

	// Merge the root children by move. Every worker saw the same set of
	// legal moves, only the statistics differ. Merging in worker order
	// keeps the floating point sums reproducible.
	visits := make(map[M]uint64)
	wins := make(map[M]float64)
	for _, root := range roots {
		for _, child := range root.Children {
			visits[child.Move] += child.Visits
			wins[child.Move] += child.Wins
		}
	}

	keys := make([]M, 0, len(visits))
	for move := range visits {
		keys = append(keys, move)
	}
	slices.Sort(keys)

	var totalVisits uint64
	for _, move := range keys {
		totalVisits += visits[move]
	}

	best := keys[0]
	bestScore := -1.0
	for _, move := range keys {
		score := (wins[move] + 1) / (float64(visits[move]) + 2)
		if opts.Verbose {
			fmt.Fprintf(opts.log(), "Move: %v  (%2.0f%% visits)  (%2.0f%% wins)\n", move,
				100.0*float64(visits[move])/float64(totalVisits),
				100.0*wins[move]/float64(visits[move]))
		}
		if score > bestScore {
			bestScore = score
			best = move
		}
	}

	if opts.Verbose {
		fmt.Fprintf(opts.log(), "Best: %v  (%.2f%% visits)  (%.2f%% wins)\n", best,
			100.0*float64(visits[best])/float64(totalVisits),
			100.0*wins[best]/float64(visits[best]))
	}

	return best, nil
}
