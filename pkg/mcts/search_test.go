package mcts

import (
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A tiny two-turn fixture game. Player 1 has two options:
//
//	1: immediate draw
//	2: nothing happens, player 2 moves
//
// Player 2 then has five options: move 1 makes player 1 win, moves
// 2-5 make player X win. With X == 1 every reply hands player 1 the
// win, so the best first move is 2; with X == 2 playing on almost
// always loses and the best first move is the immediate draw.
type testGame struct {
	x      int
	winner int // -1 in progress, 0 draw, otherwise the winning player
	turn   Player
}

func newTestGame(x int) *testGame {
	return &testGame{x: x, winner: -1, turn: Player1}
}

func (g *testGame) PlayerToMove() Player { return g.turn }
func (g *testGame) NoMove() int          { return -1 }
func (g *testGame) HasMoves() bool       { return g.winner < 0 }

func (g *testGame) Moves() []int {
	if g.winner >= 0 {
		return nil
	}
	if g.turn == Player1 {
		return []int{1, 2}
	}
	return []int{1, 2, 3, 4, 5}
}

func (g *testGame) DoMove(move int) {
	if g.turn == Player1 {
		if move == 1 {
			g.winner = 0
		}
	} else {
		if move == 1 {
			g.winner = 1
		} else {
			g.winner = g.x
		}
	}
	g.turn = g.turn.Other()
}

func (g *testGame) DoRandomMove(rng *rand.Rand) {
	moves := g.Moves()
	g.DoMove(moves[rng.Intn(len(moves))])
}

func (g *testGame) Result(perspective Player) Result {
	if g.winner == 0 {
		return 0.5
	}
	if g.winner == int(perspective) {
		return 0.0
	}
	return 1.0
}

func (g *testGame) Clone() *testGame {
	clone := *g
	return &clone
}

// Walks the whole tree replaying the game and checks the structural
// invariants every reachable node has to satisfy.
func checkTreeInvariants(t *testing.T, node *Node[int], state *testGame) {
	t.Helper()

	legal := state.Moves()
	require.Equal(t, len(legal), len(node.Children)+len(node.Untried),
		"children + untried must cover the legal moves")

	assert.GreaterOrEqual(t, node.Wins, 0.0)
	assert.LessOrEqual(t, node.Wins, float64(node.Visits))

	var childVisits uint64
	seen := make(map[int]bool)
	for _, child := range node.Children {
		require.False(t, seen[child.Move], "duplicate child move %v", child.Move)
		seen[child.Move] = true
		require.Contains(t, legal, child.Move)
		require.Same(t, node, child.Parent)
		require.Equal(t, state.PlayerToMove().Other(), child.PlayerToMove)
		childVisits += child.Visits

		childState := state.Clone()
		childState.DoMove(child.Move)
		checkTreeInvariants(t, child, childState)
	}
	assert.LessOrEqual(t, childVisits, node.Visits)
}

func TestComputeTreeInvariants(t *testing.T) {
	state := newTestGame(1)
	opts := DefaultOptions().WithIterations(500)

	root, err := ComputeTree[int](state, opts, 42)
	require.NoError(t, err)

	// Every iteration backpropagates through the root exactly once.
	assert.EqualValues(t, 500, root.Visits)
	checkTreeInvariants(t, root, state)
}

func deepCompare[M MoveLike](t *testing.T, a, b *Node[M]) {
	t.Helper()
	require.Equal(t, a.Move, b.Move)
	require.Equal(t, a.PlayerToMove, b.PlayerToMove)
	require.Equal(t, a.Visits, b.Visits)
	require.Equal(t, a.Wins, b.Wins)
	require.Equal(t, a.Untried, b.Untried)
	require.Equal(t, len(a.Children), len(b.Children))
	for i := range a.Children {
		deepCompare(t, a.Children[i], b.Children[i])
	}
}

func TestComputeTreeDeterminism(t *testing.T) {
	opts := DefaultOptions().WithIterations(2000)

	first, err := ComputeTree[int](newTestGame(1), opts, 7)
	require.NoError(t, err)
	second, err := ComputeTree[int](newTestGame(1), opts, 7)
	require.NoError(t, err)
	deepCompare(t, first, second)

	// A different seed must diverge somewhere. The root visit counts do
	// not show it: with X == 1 every playout result is fixed by the moves
	// already made, so the UCT split at the root is the same for any
	// seed. The order in which random expansion added the children is
	// what the seed decides.
	other, err := ComputeTree[int](newTestGame(1), opts, 8)
	require.NoError(t, err)
	assert.NotEqual(t, expansionOrder(first), expansionOrder(other))
}

// Moves of the whole tree in preorder, each node's children in the
// order they were expanded.
func expansionOrder[M MoveLike](node *Node[M]) []M {
	var moves []M
	for _, child := range node.Children {
		moves = append(moves, child.Move)
		moves = append(moves, expansionOrder(child)...)
	}
	return moves
}

func TestComputeTreeRejectsUnboundedSearch(t *testing.T) {
	opts := DefaultOptions().WithIterations(-1).WithMovetime(-1)
	_, err := ComputeTree[int](newTestGame(1), opts, 1)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestComputeTreeRejectsBadPlayer(t *testing.T) {
	state := newTestGame(1)
	state.turn = 3
	_, err := ComputeTree[int](state, DefaultOptions(), 1)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestComputeTreeTimeBudget(t *testing.T) {
	opts := DefaultOptions().WithIterations(-1).WithMovetime(0.1)

	start := time.Now()
	root, err := ComputeTree[int](newTestGame(1), opts, 3)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Positive(t, root.Visits)
	// One playout of the fixture is microseconds, the overshoot past
	// the budget is at most one iteration.
	assert.Less(t, elapsed, time.Second)
}

func TestComputeTreeTerminalExpansion(t *testing.T) {
	// Every line of the fixture ends within two plies, so expansion
	// regularly lands on terminal children; backpropagation must still
	// run for them.
	state := newTestGame(2)
	root, err := ComputeTree[int](state, DefaultOptions().WithIterations(100), 11)
	require.NoError(t, err)

	moves := make([]int, 0, len(root.Children))
	for _, child := range root.Children {
		moves = append(moves, child.Move)
		if child.Move == 1 {
			// The draw child is terminal.
			assert.False(t, child.HasUntried())
			assert.False(t, child.HasChildren())
			assert.Positive(t, child.Visits)
		}
	}
	slices.Sort(moves)
	assert.Equal(t, []int{1, 2}, moves)
}
