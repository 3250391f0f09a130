// Package kalaha implements Kalaha (Mancala): players sow seeds from
// their bins counter-clockwise, capture opposite seeds when the last
// seed lands in an own empty bin, and get an extra turn when it lands
// in their store. The extra turn is modeled as a forced pass by the
// opponent so that DoMove always flips the side to move.
package kalaha

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/pkg/errors"

	"github.com/IlikeChooros/go-uct/pkg/mcts"
)

// Bin index to sow from, or PassMove.
type Move int

const (
	NoMove   Move = -100
	PassMove Move = -1
)

type State struct {
	bins       int
	startSeeds int
	p1Bins     []int
	p2Bins     []int
	p1Store    int
	p2Store    int
	mustPass   bool
	turn       mcts.Player
}

// New makes a start position with the given number of bins per side
// and seeds per bin. The classic game is New(6, 3) or New(6, 4).
func New(bins, startSeeds int) *State {
	if bins < 1 || startSeeds < 1 {
		panic(errors.Wrapf(mcts.ErrInvalidArgument, "kalaha: bad setup %d bins x %d seeds", bins, startSeeds))
	}
	s := &State{
		bins:       bins,
		startSeeds: startSeeds,
		p1Bins:     make([]int, bins),
		p2Bins:     make([]int, bins),
		turn:       mcts.Player1,
	}
	for i := range s.p1Bins {
		s.p1Bins[i] = startSeeds
		s.p2Bins[i] = startSeeds
	}
	return s
}

func (s *State) PlayerToMove() mcts.Player {
	return s.turn
}

func (s *State) NoMove() Move {
	return NoMove
}

// Store returns the given player's store count.
func (s *State) Store(player mcts.Player) int {
	if player == mcts.Player1 {
		return s.p1Store
	}
	return s.p2Store
}

// Seeds returns the total seeds on the given player's side, store
// included.
func (s *State) Seeds(player mcts.Player) int {
	bins, store := s.p1Bins, s.p1Store
	if player == mcts.Player2 {
		bins, store = s.p2Bins, s.p2Store
	}
	sum := store
	for _, seeds := range bins {
		sum += seeds
	}
	return sum
}

func (s *State) sides() (lower, upper []int, lowerStore *int) {
	if s.turn == mcts.Player1 {
		return s.p1Bins, s.p2Bins, &s.p1Store
	}
	return s.p2Bins, s.p1Bins, &s.p2Store
}

func (s *State) HasMoves() bool {
	if s.mustPass {
		return true
	}
	lower, _, _ := s.sides()
	for _, seeds := range lower {
		if seeds > 0 {
			return true
		}
	}
	return false
}

func (s *State) Moves() []Move {
	if s.mustPass {
		return []Move{PassMove}
	}
	lower, _, _ := s.sides()
	var moves []Move
	for i, seeds := range lower {
		if seeds > 0 {
			moves = append(moves, Move(i))
		}
	}
	return moves
}

func (s *State) DoMove(move Move) {
	if s.mustPass {
		if move != PassMove {
			panic(errors.Wrapf(mcts.ErrInvalidArgument, "kalaha: must pass, got move %d", move))
		}
		s.mustPass = false
		s.turn = s.turn.Other()
		return
	}

	if move < 0 || int(move) >= s.bins {
		panic(errors.Wrapf(mcts.ErrInvalidArgument, "kalaha: illegal move %d", move))
	}
	lower, upper, lowerStore := s.sides()
	if lower[move] == 0 {
		panic(errors.Wrapf(mcts.ErrInvalidArgument, "kalaha: bin %d is empty", move))
	}

	seeds := lower[move]
	lower[move] = 0
	pos := int(move)

	for seeds > 0 {
		// Sow along the own row.
		for m := pos + 1; m < s.bins && seeds > 0; m++ {
			lower[m]++
			seeds--

			if seeds == 0 {
				// Landed in an own bin that was empty: capture it and
				// everything opposite.
				opposite := s.bins - 1 - m
				if lower[m] == 1 {
					*lowerStore += lower[m] + upper[opposite]
					lower[m] = 0
					upper[opposite] = 0
				}
			}
		}
		if seeds == 0 {
			break
		}

		// One seed into the own store.
		*lowerStore++
		seeds--
		if seeds == 0 {
			// Last seed in the store earns an extra turn.
			s.mustPass = true
			break
		}

		// Sow along the opponent's row, skipping their store.
		for m := 0; m < s.bins && seeds > 0; m++ {
			upper[m]++
			seeds--
		}
		pos = -1
	}

	s.turn = s.turn.Other()
}

func (s *State) DoRandomMove(rng *rand.Rand) {
	if s.mustPass {
		s.DoMove(PassMove)
		return
	}
	lower, _, _ := s.sides()

	for {
		move := rng.Intn(s.bins)
		if lower[move] > 0 {
			s.DoMove(Move(move))
			return
		}
	}
}

func (s *State) Result(perspective mcts.Player) mcts.Result {
	sum1 := s.Seeds(mcts.Player1)
	sum2 := s.Seeds(mcts.Player2)

	if sum1 == sum2 {
		return 0.5
	}

	winner := mcts.Player1
	if sum2 > sum1 {
		winner = mcts.Player2
	}
	if winner == perspective {
		return 0.0
	}
	return 1.0
}

func (s *State) Clone() *State {
	clone := *s
	clone.p1Bins = make([]int, len(s.p1Bins))
	copy(clone.p1Bins, s.p1Bins)
	clone.p2Bins = make([]int, len(s.p2Bins))
	copy(clone.p2Bins, s.p2Bins)
	return &clone
}

func (s *State) String() string {
	builder := strings.Builder{}
	fmt.Fprintf(&builder, "player %d to move\n", s.turn)
	for i := s.bins - 1; i >= 0; i-- {
		fmt.Fprintf(&builder, "%4d", s.p2Bins[i])
	}
	builder.WriteByte('\n')
	fmt.Fprintf(&builder, "%d%*s%d\n", s.p2Store, 4*s.bins, "", s.p1Store)
	for i := 0; i < s.bins; i++ {
		fmt.Fprintf(&builder, "%4d", s.p1Bins[i])
	}
	builder.WriteByte('\n')
	return builder.String()
}
