package mcts

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pkg/errors"
)

// Node of a single worker's game tree. Nodes are owned by their parent
// through Children; Parent is a back reference only, used to walk the
// backpropagation path.
type Node[M MoveLike] struct {
	// Move that led from the parent's state to this node's state, the
	// game's NoMove sentinel at the root.
	Move M

	// Nil at the root.
	Parent *Node[M]

	// Side to move in the state this node represents, captured at
	// construction. Scores backpropagated through this node are taken
	// from this player's perspective, which, with the inverted Result
	// orientation, credits the player whose move produced the node.
	PlayerToMove Player

	// Accumulated backpropagated scores, 0 <= Wins <= Visits.
	Wins float64

	// Number of times this node was on a backpropagated path.
	Visits uint64

	// Legal moves from this node's state no child explores yet.
	// Shrinks as children are added, never grows.
	Untried []M

	// Append-only, one entry per explored move.
	Children []*Node[M]
}

// NewNode makes a fresh node for the given state. Pass the game's
// NoMove value and a nil parent for the root.
func NewNode[M MoveLike, S State[M, S]](state S, move M, parent *Node[M]) *Node[M] {
	return &Node[M]{
		Move:         move,
		Parent:       parent,
		PlayerToMove: state.PlayerToMove(),
		Untried:      state.Moves(),
	}
}

func (node *Node[M]) HasUntried() bool {
	return len(node.Untried) > 0
}

func (node *Node[M]) HasChildren() bool {
	return len(node.Children) > 0
}

// Draw one untried move uniformly at random, without removing it.
func (node *Node[M]) PickUntried(rng *rand.Rand) M {
	if len(node.Untried) == 0 {
		panic(errors.Wrap(ErrInternalInvariant, "PickUntried on a node with no untried moves"))
	}
	return node.Untried[rng.Intn(len(node.Untried))]
}

// AddChild makes a new child for the given move and the state reached
// by playing it, appends it to parent.Children and removes the move
// from parent.Untried. Returns the new child.
func AddChild[M MoveLike, S State[M, S]](parent *Node[M], move M, childState S) *Node[M] {
	found := -1
	for i, m := range parent.Untried {
		if m == move {
			found = i
			break
		}
	}
	if found < 0 {
		panic(errors.Wrapf(ErrInternalInvariant, "AddChild: move %v is not untried", move))
	}

	// Unordered swap-remove, the untried set has no meaningful order.
	last := len(parent.Untried) - 1
	parent.Untried[found] = parent.Untried[last]
	parent.Untried = parent.Untried[:last]

	child := NewNode(childState, move, parent)
	parent.Children = append(parent.Children, child)
	return child
}

// Update adds one playout outcome to this node.
func (node *Node[M]) Update(score Result) {
	node.Visits++
	node.Wins += float64(score)
}

// SelectUCT returns the child maximizing
//
//	wins/visits + sqrt(2*ln(parent visits)/visits)
//
// Ties are broken by first-seen order. Every child has at least one
// visit by construction (expansion backpropagates through the new
// child before it can be selected), so the formula never divides by
// zero.
func (node *Node[M]) SelectUCT() *Node[M] {
	if len(node.Children) == 0 {
		panic(errors.Wrap(ErrInternalInvariant, "SelectUCT on a node with no children"))
	}

	lnParentVisits := math.Log(float64(node.Visits))
	best := node.Children[0]
	bestScore := math.Inf(-1)

	for _, child := range node.Children {
		visits := float64(child.Visits)
		uct := child.Wins/visits + math.Sqrt(2.0*lnParentVisits/visits)
		if uct > bestScore {
			bestScore = uct
			best = child
		}
	}

	return best
}

// BestChild returns the most visited child, ties broken by first-seen
// order.
func (node *Node[M]) BestChild() *Node[M] {
	if len(node.Children) == 0 {
		panic(errors.Wrap(ErrInternalInvariant, "BestChild on a node with no children"))
	}

	best := node.Children[0]
	for _, child := range node.Children {
		if child.Visits > best.Visits {
			best = child
		}
	}
	return best
}

func (node *Node[M]) String() string {
	return fmt.Sprintf("[M:%v W/V:%.1f/%d U:%d C:%d]",
		node.Move, node.Wins, node.Visits, len(node.Untried), len(node.Children))
}
