package mcts

import (
	"math/rand"

	"github.com/pkg/errors"
)

// ComputeTree runs one complete single-tree search from rootState and
// returns the root node with its populated subtree. Each iteration
// does the usual four MCTS steps:
//
//  1. selection - descend by UCT while the node is fully expanded
//  2. expansion - add one child for a random untried move
//  3. simulation - play uniformly random moves until the game ends
//  4. backpropagation - update every node on the path with the result
//     seen from that node's own perspective
//
// The loop stops when the iteration bound is exhausted or the time
// budget runs out, whichever comes first. For a fixed (rootState,
// opts, seed) the resulting tree is identical across runs; the driver
// seeds every worker differently so their trees diverge.
func ComputeTree[M MoveLike, S State[M, S]](rootState S, opts ComputeOptions, seed uint64) (*Node[M], error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if p := rootState.PlayerToMove(); !p.Valid() {
		return nil, errors.Wrapf(ErrInvalidArgument, "player to move must be 1 or 2, got %d", p)
	}

	rng := rand.New(rand.NewSource(int64(seed)))
	timer := _NewTimer(opts.MaxTime)
	root := NewNode(rootState, rootState.NoMove(), nil)

	for iter := 1; ; iter++ {
		if opts.MaxIterations >= 0 && iter > opts.MaxIterations {
			break
		}
		if timer.IsEnd() {
			break
		}

		node := root
		state := rootState.Clone()

		// Selection
		for !node.HasUntried() && node.HasChildren() {
			node = node.SelectUCT()
			state.DoMove(node.Move)
		}

		// Expansion
		if node.HasUntried() {
			move := node.PickUntried(rng)
			state.DoMove(move)
			node = AddChild(node, move, state)
		}

		// Simulation
		for state.HasMoves() {
			state.DoRandomMove(rng)
		}

		// Backpropagation
		for n := node; n != nil; n = n.Parent {
			n.Update(state.Result(n.PlayerToMove))
		}
	}

	return root, nil
}
