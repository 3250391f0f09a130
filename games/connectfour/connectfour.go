// Package connectfour implements Connect Four on a configurable board
// (6x7 by default): pieces drop to the lowest free row of a column and
// four in a row in any direction wins.
package connectfour

import (
	"math/rand"
	"strings"

	"github.com/pkg/errors"

	"github.com/IlikeChooros/go-uct/pkg/mcts"
)

// Column to drop a piece into.
type Move int

const NoMove Move = -1

const (
	empty uint8 = iota
	piece1
	piece2
)

var markers = [3]byte{'.', '1', '2'}

type State struct {
	rows, cols       int
	board            []uint8 // row-major, row 0 is the top
	lastRow, lastCol int
	turn             mcts.Player
}

// New makes an empty board with the standard 6 rows and 7 columns.
func New() *State {
	return NewSized(6, 7)
}

func NewSized(rows, cols int) *State {
	if rows < 4 || cols < 4 {
		panic(errors.Wrapf(mcts.ErrInvalidArgument, "connectfour: board %dx%d is too small", rows, cols))
	}
	return &State{
		rows:    rows,
		cols:    cols,
		board:   make([]uint8, rows*cols),
		lastRow: -1,
		lastCol: -1,
		turn:    mcts.Player1,
	}
}

// Parse builds a position from row strings of '1', '2' and '.', top
// row first. Winner detection only scans around the last played move,
// so the parsed position must not already contain four in a row.
func Parse(rows []string, toMove mcts.Player) (*State, error) {
	if len(rows) == 0 {
		return nil, errors.Wrap(mcts.ErrInvalidArgument, "connectfour: no rows")
	}
	if !toMove.Valid() {
		return nil, errors.Wrapf(mcts.ErrInvalidArgument, "connectfour: player to move must be 1 or 2, got %d", toMove)
	}

	s := NewSized(len(rows), len(rows[0]))
	s.turn = toMove
	for i, row := range rows {
		if len(row) != s.cols {
			return nil, errors.Wrapf(mcts.ErrInvalidArgument, "connectfour: row %d has %d cells, want %d", i, len(row), s.cols)
		}
		for j := 0; j < s.cols; j++ {
			switch row[j] {
			case '1':
				s.board[i*s.cols+j] = piece1
			case '2':
				s.board[i*s.cols+j] = piece2
			case '.':
			default:
				return nil, errors.Wrapf(mcts.ErrInvalidArgument, "connectfour: bad cell %q", row[j])
			}
		}
	}
	return s, nil
}

func (s *State) at(row, col int) uint8 {
	return s.board[row*s.cols+col]
}

func (s *State) PlayerToMove() mcts.Player {
	return s.turn
}

func (s *State) NoMove() Move {
	return NoMove
}

// Winner returns the player with four in a row, or 0. Only the lines
// through the last played piece are checked.
func (s *State) Winner() mcts.Player {
	if s.lastCol < 0 {
		return 0
	}

	piece := s.at(s.lastRow, s.lastCol)
	dirs := [4][2]int{
		{0, 1},  // horizontal
		{1, 0},  // vertical
		{1, 1},  // diagonal down-right
		{1, -1}, // diagonal down-left
	}

	for _, d := range dirs {
		count := 1
		for _, sign := range [2]int{-1, 1} {
			row, col := s.lastRow+sign*d[0], s.lastCol+sign*d[1]
			for row >= 0 && row < s.rows && col >= 0 && col < s.cols && s.at(row, col) == piece {
				count++
				row += sign * d[0]
				col += sign * d[1]
			}
		}
		if count >= 4 {
			return mcts.Player(piece)
		}
	}
	return 0
}

func (s *State) HasMoves() bool {
	if s.Winner() != 0 {
		return false
	}
	for col := 0; col < s.cols; col++ {
		if s.at(0, col) == empty {
			return true
		}
	}
	return false
}

func (s *State) Moves() []Move {
	if s.Winner() != 0 {
		return nil
	}
	moves := make([]Move, 0, s.cols)
	for col := 0; col < s.cols; col++ {
		if s.at(0, col) == empty {
			moves = append(moves, Move(col))
		}
	}
	return moves
}

func (s *State) DoMove(move Move) {
	col := int(move)
	if col < 0 || col >= s.cols || s.at(0, col) != empty {
		panic(errors.Wrapf(mcts.ErrInvalidArgument, "connectfour: illegal move %d", move))
	}

	row := s.rows - 1
	for s.at(row, col) != empty {
		row--
	}
	s.board[row*s.cols+col] = uint8(s.turn)
	s.lastRow, s.lastCol = row, col
	s.turn = s.turn.Other()
}

func (s *State) DoRandomMove(rng *rand.Rand) {
	if !s.HasMoves() {
		panic(errors.Wrap(mcts.ErrInvalidArgument, "connectfour: random move on a finished game"))
	}
	// Rejection sampling, open columns are dense enough in practice.
	for {
		col := rng.Intn(s.cols)
		if s.at(0, col) == empty {
			s.DoMove(Move(col))
			return
		}
	}
}

func (s *State) Result(perspective mcts.Player) mcts.Result {
	if s.HasMoves() {
		panic(errors.Wrap(mcts.ErrInvalidArgument, "connectfour: result of an unfinished game"))
	}
	winner := s.Winner()
	if winner == 0 {
		return 0.5
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
	return &clone
}

func (s *State) String() string {
	builder := strings.Builder{}
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			builder.WriteByte(markers[s.at(row, col)])
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}
