package mcts

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ComputeOptions configure both the single-tree search and the
// root-parallel driver.
type ComputeOptions struct {
	// Number of independent worker trees spawned by ComputeMove.
	NumThreads int

	// Iteration bound per worker, negative means no iteration bound;
	// in that case MaxTime must be set.
	MaxIterations int

	// Wall-clock bound per worker in seconds, negative means no time
	// bound.
	MaxTime float64

	// If set, ComputeMove writes merged per-move statistics and a
	// summary line to Log.
	Verbose bool

	// Destination of the diagnostic stream, defaults to os.Stderr.
	Log io.Writer `json:"-"`
}

const (
	DefaultNumThreads    = 8
	DefaultMaxIterations = 10000
	DefaultMaxTime       = -1.0
)

func DefaultOptions() ComputeOptions {
	return ComputeOptions{
		NumThreads:    DefaultNumThreads,
		MaxIterations: DefaultMaxIterations,
		MaxTime:       DefaultMaxTime,
	}
}

func (o ComputeOptions) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(o)
	return builder.String()
}

// Set the number of parallel workers
func (o ComputeOptions) WithThreads(threads int) ComputeOptions {
	o.NumThreads = threads
	return o
}

// Set the number of search iterations per worker, negative disables
// the iteration bound
func (o ComputeOptions) WithIterations(iterations int) ComputeOptions {
	o.MaxIterations = iterations
	return o
}

// Set the maximum time for a worker to think, in seconds, negative
// disables the time bound
func (o ComputeOptions) WithMovetime(seconds float64) ComputeOptions {
	o.MaxTime = seconds
	return o
}

func (o ComputeOptions) WithVerbose(verbose bool) ComputeOptions {
	o.Verbose = verbose
	return o
}

func (o ComputeOptions) WithLog(w io.Writer) ComputeOptions {
	o.Log = w
	return o
}

func (o ComputeOptions) log() io.Writer {
	if o.Log == nil {
		return os.Stderr
	}
	return o.Log
}

func (o ComputeOptions) validate() error {
	if o.NumThreads < 1 {
		return errors.Wrapf(ErrInvalidArgument, "NumThreads must be positive, got %d", o.NumThreads)
	}
	if o.MaxIterations < 0 && o.MaxTime < 0 {
		return errors.Wrap(ErrInvalidArgument, "search needs an iteration bound or a time bound")
	}
	return nil
}
