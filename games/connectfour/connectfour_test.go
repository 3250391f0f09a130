package connectfour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-uct/pkg/mcts"
)

func TestDropAndWinnerDetection(t *testing.T) {
	state := New()

	// Player 1 stacks column 3, player 2 wanders off.
	for _, col := range []Move{3, 0, 3, 1, 3, 2} {
		state.DoMove(col)
	}
	require.Equal(t, mcts.Player(0), state.Winner())
	require.True(t, state.HasMoves())

	state.DoMove(3) // fourth in a row vertically
	assert.Equal(t, mcts.Player1, state.Winner())
	assert.False(t, state.HasMoves())
	assert.Empty(t, state.Moves())
	assert.Equal(t, mcts.Result(0.0), state.Result(mcts.Player1))
	assert.Equal(t, mcts.Result(1.0), state.Result(mcts.Player2))
}

func TestDiagonalWinner(t *testing.T) {
	state := New()

	// Player 1 builds the rising diagonal (5,0) (4,1) (3,2) (2,3).
	for _, col := range []Move{0, 1, 1, 2, 3, 3, 2, 3, 2, 6} {
		state.DoMove(col)
	}
	require.Equal(t, mcts.Player(0), state.Winner())

	state.DoMove(3) // tops column 3 and completes the diagonal
	assert.Equal(t, mcts.Player1, state.Winner())
}

func TestFullColumnIsIllegal(t *testing.T) {
	state := New()
	for i := 0; i < 6; i++ {
		state.DoMove(0)
	}
	assert.NotContains(t, state.Moves(), Move(0))
	assert.Panics(t, func() { state.DoMove(0) })
}

func TestDrawOnFullBoard(t *testing.T) {
	// A 4x4 board filled column by column in a pattern with no four in
	// a row: columns 0 and 1 get 1122 bottom-up, columns 2 and 3 get
	// 2211.
	state, err := Parse([]string{
		"2211",
		"2211",
		"1122",
		"1122",
	}, mcts.Player1)
	require.NoError(t, err)

	assert.False(t, state.HasMoves())
	assert.Equal(t, mcts.Result(0.5), state.Result(mcts.Player1))
	assert.Equal(t, mcts.Result(0.5), state.Result(mcts.Player2))
}

// Exactly one column wins on the spot; every other move lets player 2
// finish an open-ended three. The engine has to find the win.
func TestEngineFindsForcedWin(t *testing.T) {
	state, err := Parse([]string{
		".......",
		".......",
		".......",
		"......1",
		"......1",
		"..222.1",
	}, mcts.Player1)
	require.NoError(t, err)

	move, err := mcts.ComputeMove[Move](state, mcts.DefaultOptions().WithIterations(10000))
	require.NoError(t, err)
	assert.Equal(t, Move(6), move)
}
