// Package nim implements the take-away game of Nim: players alternate
// removing 1 to 3 chips from a single heap, whoever takes the last
// chip wins. The optimal strategy is to always leave a multiple of 4,
// which makes the game a handy correctness probe for the engine.
package nim

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/IlikeChooros/go-uct/pkg/mcts"
)

// Number of chips to take.
type Move int

const NoMove Move = -1

type State struct {
	chips int
	turn  mcts.Player
}

func New(chips int) *State {
	if chips < 0 {
		panic(errors.Wrapf(mcts.ErrInvalidArgument, "nim: negative chip count %d", chips))
	}
	return &State{chips: chips, turn: mcts.Player1}
}

func (s *State) Chips() int {
	return s.chips
}

func (s *State) PlayerToMove() mcts.Player {
	return s.turn
}

func (s *State) NoMove() Move {
	return NoMove
}

func (s *State) HasMoves() bool {
	return s.chips > 0
}

func (s *State) Moves() []Move {
	moves := make([]Move, 0, 3)
	for m := Move(1); m <= Move(min(3, s.chips)); m++ {
		moves = append(moves, m)
	}
	return moves
}

func (s *State) DoMove(move Move) {
	if move < 1 || move > 3 || int(move) > s.chips {
		panic(errors.Wrapf(mcts.ErrInvalidArgument, "nim: illegal move %d with %d chips left", move, s.chips))
	}
	s.chips -= int(move)
	s.turn = s.turn.Other()
}

func (s *State) DoRandomMove(rng *rand.Rand) {
	if s.chips <= 0 {
		panic(errors.Wrap(mcts.ErrInvalidArgument, "nim: random move on a finished game"))
	}
	s.DoMove(Move(1 + rng.Intn(min(3, s.chips))))
}

func (s *State) Result(perspective mcts.Player) mcts.Result {
	if s.chips != 0 {
		panic(errors.Wrap(mcts.ErrInvalidArgument, "nim: result of an unfinished game"))
	}
	// The opponent took the last chip, so the side to move lost.
	if s.turn == perspective {
		return 1.0
	}
	return 0.0
}

func (s *State) Clone() *State {
	clone := *s
	return &clone
}

func (s *State) String() string {
	return fmt.Sprintf("nim: %d chips, player %d to move", s.chips, s.turn)
}
