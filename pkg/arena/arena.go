// Package arena plays complete games between two engine
// configurations, for measuring search quality end to end. Since the
// engine is deterministic for fixed options, a pairing is fully
// described by one game per color assignment; Match plays both.
package arena

import (
	"github.com/IlikeChooros/go-uct/pkg/mcts"
)

type Outcome int

const (
	Draw Outcome = iota
	Player1Win
	Player2Win
)

func (o Outcome) String() string {
	switch o {
	case Player1Win:
		return "player 1 wins"
	case Player2Win:
		return "player 2 wins"
	default:
		return "draw"
	}
}

// Winner of the game, or 0 on a draw.
func (o Outcome) Winner() mcts.Player {
	switch o {
	case Player1Win:
		return mcts.Player1
	case Player2Win:
		return mcts.Player2
	}
	return 0
}

// Play runs one game from the given position to the end, with the
// player-1 side searching under p1 and the player-2 side under p2.
func Play[M mcts.MoveLike, S mcts.State[M, S]](start S, p1, p2 mcts.ComputeOptions) (Outcome, error) {
	state := start.Clone()

	for state.HasMoves() {
		opts := p1
		if state.PlayerToMove() == mcts.Player2 {
			opts = p2
		}

		move, err := mcts.ComputeMove[M](state, opts)
		if err != nil {
			return Draw, err
		}
		state.DoMove(move)
	}

	// Result is inverted: 1 means the asked-about player lost.
	switch state.Result(mcts.Player1) {
	case 0.5:
		return Draw, nil
	case 1.0:
		return Player2Win, nil
	default:
		return Player1Win, nil
	}
}

type MatchResult struct {
	// Outcome of the game where configuration a was player 1.
	AsPlayer1 Outcome
	// Outcome of the game where configuration a was player 2.
	AsPlayer2 Outcome
}

// Wins counts how many of the two games configuration a won.
func (r MatchResult) Wins() int {
	wins := 0
	if r.AsPlayer1 == Player1Win {
		wins++
	}
	if r.AsPlayer2 == Player2Win {
		wins++
	}
	return wins
}

// Match plays the pairing twice, once with each configuration as
// player 1, and reports both outcomes from a's point of view.
func Match[M mcts.MoveLike, S mcts.State[M, S]](start S, a, b mcts.ComputeOptions) (MatchResult, error) {
	asFirst, err := Play[M](start, a, b)
	if err != nil {
		return MatchResult{}, err
	}
	asSecond, err := Play[M](start, b, a)
	if err != nil {
		return MatchResult{}, err
	}
	return MatchResult{AsPlayer1: asFirst, AsPlayer2: asSecond}, nil
}
