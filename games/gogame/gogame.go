// Package gogame implements Go on a small MxN board: group capture,
// suicide prohibition, positional superko via a running set of board
// hashes, and a pass move forced when only the opponent can play. The
// game ends when neither side has a stone move; scoring counts stones
// plus own eyes.
package gogame

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/pkg/errors"

	"github.com/IlikeChooros/go-uct/pkg/mcts"
)

// Board index N*i + j, or Pass.
type Move int

const (
	NoMove Move = -2
	Pass   Move = -1
)

const (
	empty uint8 = iota
	stone1
	stone2
)

// Games longer than this are cut off and scored as they stand; random
// playouts on tiny boards cannot cycle forever thanks to superko, but
// the guard keeps a buggy game implementation from hanging the search.
const maxDepth = 1000

type State struct {
	rows, cols int
	board      []uint8
	prevHash   uint32
	hashes     map[uint32]struct{}
	depth      int
	turn       mcts.Player
}

func New(rows, cols int) *State {
	if rows < 1 || cols < 1 {
		panic(errors.Wrapf(mcts.ErrInvalidArgument, "gogame: bad board size %dx%d", rows, cols))
	}
	s := &State{
		rows:   rows,
		cols:   cols,
		board:  make([]uint8, rows*cols),
		hashes: make(map[uint32]struct{}),
		turn:   mcts.Player1,
	}
	s.hashes[s.hash()] = struct{}{}
	return s
}

// Parse builds a position from row strings of '1', '2' and '.', with
// player 1 to move.
func Parse(rows []string) (*State, error) {
	if len(rows) == 0 {
		return nil, errors.Wrap(mcts.ErrInvalidArgument, "gogame: no rows")
	}
	s := New(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != s.cols {
			return nil, errors.Wrapf(mcts.ErrInvalidArgument, "gogame: row %d has %d cells, want %d", i, len(row), s.cols)
		}
		for j := 0; j < s.cols; j++ {
			switch row[j] {
			case '1':
				s.board[s.ind(i, j)] = stone1
			case '2':
				s.board[s.ind(i, j)] = stone2
			case '.':
			default:
				return nil, errors.Wrapf(mcts.ErrInvalidArgument, "gogame: bad cell %q", row[j])
			}
		}
	}
	return s, nil
}

func (s *State) ind(i, j int) int {
	return s.cols*i + j
}

// Ind converts board coordinates to a move.
func (s *State) Ind(i, j int) Move {
	if i < 0 || j < 0 || i >= s.rows || j >= s.cols {
		panic(errors.Wrapf(mcts.ErrInvalidArgument, "gogame: position (%d, %d) off the board", i, j))
	}
	return Move(s.ind(i, j))
}

// IJ converts a stone move back to board coordinates.
func (s *State) IJ(move Move) (int, int) {
	if move < 0 || int(move) >= len(s.board) {
		panic(errors.Wrapf(mcts.ErrInvalidArgument, "gogame: move %d off the board", move))
	}
	return int(move) / s.cols, int(move) % s.cols
}

func (s *State) at(i, j int) uint8 {
	return s.board[s.ind(i, j)]
}

func (s *State) hash() uint32 {
	value := uint32(0)
	for _, cell := range s.board {
		value = 65537*value + uint32(cell)
	}
	return value
}

// SetPlayerToMove overrides whose turn it is, for setting up test
// positions.
func (s *State) SetPlayerToMove(p mcts.Player) {
	if !p.Valid() {
		panic(errors.Wrapf(mcts.ErrInvalidArgument, "gogame: player must be 1 or 2, got %d", p))
	}
	s.turn = p
}

func (s *State) PlayerToMove() mcts.Player {
	return s.turn
}

func (s *State) NoMove() Move {
	return NoMove
}

// neighbors calls fn for every on-board neighbor of (i, j).
func (s *State) neighbors(i, j int, fn func(i, j int)) {
	if i > 0 {
		fn(i-1, j)
	}
	if i < s.rows-1 {
		fn(i+1, j)
	}
	if j > 0 {
		fn(i, j-1)
	}
	if j < s.cols-1 {
		fn(i, j+1)
	}
}

// isAlive reports whether the group at (i, j) has a liberty. The
// visited group cells are appended to pieces when it is dead, so the
// caller can remove them.
func (s *State) isAlive(i, j int) (bool, []int) {
	if s.at(i, j) == empty {
		return true, nil
	}

	player := s.at(i, j)
	seen := make(map[int]struct{})
	stack := []int{s.ind(i, j)}
	alive := false

	for len(stack) > 0 && !alive {
		ind := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[ind]; ok {
			continue
		}

		ci, cj := ind/s.cols, ind%s.cols
		switch s.board[ind] {
		case player:
			seen[ind] = struct{}{}
			s.neighbors(ci, cj, func(ni, nj int) {
				stack = append(stack, s.ind(ni, nj))
			})
		case empty:
			alive = true
		}
	}

	if alive {
		return true, nil
	}
	pieces := make([]int, 0, len(seen))
	for ind := range seen {
		pieces = append(pieces, ind)
	}
	return false, pieces
}

// isEye reports whether the empty point (i, j) is surrounded entirely
// by the given player's stones.
func (s *State) isEye(i, j int, player uint8) bool {
	eye := true
	s.neighbors(i, j, func(ni, nj int) {
		if s.at(ni, nj) != player {
			eye = false
		}
	})
	return eye
}

// isMovePossible checks legality of a stone move for the given player:
// the point must be empty, the stone must end up with a liberty (its
// own or by capturing), the position must not repeat (superko), and
// playing into one's own eye is forbidden.
func (s *State) isMovePossible(i, j int, player uint8) bool {
	if i < 0 || j < 0 || i >= s.rows || j >= s.cols || s.at(i, j) != empty {
		return false
	}

	opponent := uint8(3) - player

	// Place the stone tentatively, restore before returning.
	s.board[s.ind(i, j)] = player
	defer func() { s.board[s.ind(i, j)] = empty }()

	possible, _ := s.isAlive(i, j)
	if !possible {
		// The stone may still capture an adjacent opponent group and
		// gain its liberties.
		s.neighbors(i, j, func(ni, nj int) {
			if !possible && s.at(ni, nj) == opponent {
				if alive, _ := s.isAlive(ni, nj); !alive {
					possible = true
				}
			}
		})
	}

	if possible {
		// Ko and superko tests on the pre-capture hash, same as the
		// history recorded by DoMove.
		h := s.hash()
		if h == s.prevHash {
			possible = false
		} else if _, ok := s.hashes[h]; ok {
			possible = false
		}
	}

	if possible && s.isEye(i, j, player) {
		possible = false
	}

	return possible
}

func (s *State) DoMove(move Move) {
	s.depth++

	opponent := s.turn.Other()
	if move == Pass {
		s.turn = opponent
		return
	}

	i, j := s.IJ(move)
	if !s.isMovePossible(i, j, uint8(s.turn)) {
		panic(errors.Wrapf(mcts.ErrInvalidArgument, "gogame: illegal move (%d, %d) for player %d", i, j, s.turn))
	}

	s.board[s.ind(i, j)] = uint8(s.turn)

	// History records the position before captures, which is exactly
	// what isMovePossible hashes when testing for repeats.
	s.prevHash = s.hash()
	s.hashes[s.prevHash] = struct{}{}

	// Remove any adjacent opponent group left without liberties.
	s.neighbors(i, j, func(ni, nj int) {
		if s.at(ni, nj) == uint8(opponent) {
			if alive, pieces := s.isAlive(ni, nj); !alive {
				for _, ind := range pieces {
					s.board[ind] = empty
				}
			}
		}
	})

	s.turn = opponent
}

func (s *State) DoRandomMove(rng *rand.Rand) {
	moves := s.Moves()
	if len(moves) == 0 {
		panic(errors.Wrap(mcts.ErrInvalidArgument, "gogame: random move on a finished game"))
	}
	s.DoMove(moves[rng.Intn(len(moves))])
}

func (s *State) HasMoves() bool {
	return len(s.Moves()) > 0
}

func (s *State) Moves() []Move {
	if s.depth > maxDepth {
		return nil
	}

	var moves []Move
	opponentHasMove := false
	opponent := uint8(3) - uint8(s.turn)

	for i := 0; i < s.rows; i++ {
		for j := 0; j < s.cols; j++ {
			if s.isMovePossible(i, j, uint8(s.turn)) {
				moves = append(moves, s.Ind(i, j))
			}
			if !opponentHasMove && s.isMovePossible(i, j, opponent) {
				opponentHasMove = true
			}
		}
	}

	// Passing is only legal (and forced) while the opponent can still
	// play; otherwise the game is over.
	if len(moves) == 0 && opponentHasMove {
		moves = append(moves, Pass)
	}

	return moves
}

// Score counts the player's stones plus empty points that are the
// player's eyes.
func (s *State) Score(player mcts.Player) int {
	score := 0
	for i := 0; i < s.rows; i++ {
		for j := 0; j < s.cols; j++ {
			switch s.at(i, j) {
			case uint8(player):
				score++
			case empty:
				if s.isEye(i, j, uint8(player)) {
					score++
				}
			}
		}
	}
	return score
}

func (s *State) Result(perspective mcts.Player) mcts.Result {
	score1 := s.Score(mcts.Player1)
	score2 := s.Score(mcts.Player2)

	if score1 == score2 {
		return 0.5
	}

	winner := mcts.Player1
	if score2 > score1 {
		winner = mcts.Player2
	}
	if winner == perspective {
		return 0.0
	}
	return 1.0
}

func (s *State) Clone() *State {
	clone := *s
	clone.board = make([]uint8, len(s.board))
	copy(clone.board, s.board)
	clone.hashes = make(map[uint32]struct{}, len(s.hashes))
	for h := range s.hashes {
		clone.hashes[h] = struct{}{}
	}
	return &clone
}

func (s *State) String() string {
	builder := strings.Builder{}
	for i := 0; i < s.rows; i++ {
		for j := 0; j < s.cols; j++ {
			switch s.at(i, j) {
			case stone1:
				builder.WriteByte('1')
			case stone2:
				builder.WriteByte('2')
			default:
				builder.WriteByte('.')
			}
		}
		builder.WriteByte('\n')
	}
	builder.WriteString(fmt.Sprintf("player %d to move\n", s.turn))
	return builder.String()
}
