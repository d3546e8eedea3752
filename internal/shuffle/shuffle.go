package shuffle

import (
	"fmt"

	"github.com/SeanMoon1/Phoenix-sub001/internal/content"
)

// MaxSeed is the largest accepted seed (2^31 - 1).
const MaxSeed = 2147483647

// Options controls a shuffle.
type Options struct {
	UseSeed             bool
	Seed                int64
	PreserveCorrectness bool
}

// DefaultOptions returns seeded, correctness-preserving options.
func DefaultOptions(seed int64) Options {
	return Options{
		UseSeed:             true,
		Seed:                seed,
		PreserveCorrectness: true,
	}
}

// ShuffledOption is an option in its new position.
type ShuffledOption struct {
	content.Option
	OriginalIndex int  `json:"originalIndex"`
	IsCorrect     bool `json:"isCorrect"`
}

// ShuffleOptions returns options in a new order.
//
// With PreserveCorrectness the correct and incorrect options are shuffled
// as separate groups (seed and seed+1) and then interleaved by a third
// stream (seed+2). Otherwise the whole list is shuffled as one pool.
func ShuffleOptions(options []content.Option, opts Options) []ShuffledOption {
	tagged := make([]ShuffledOption, len(options))
	for i, o := range options {
		tagged[i] = ShuffledOption{
			Option:        o,
			OriginalIndex: i,
			IsCorrect:     o.IsCorrect(),
		}
	}

	if !opts.PreserveCorrectness {
		fisherYates(tagged, newSource(opts, 0))
		return tagged
	}

	var correct, incorrect []ShuffledOption
	for _, o := range tagged {
		if o.IsCorrect {
			correct = append(correct, o)
		} else {
			incorrect = append(incorrect, o)
		}
	}

	fisherYates(correct, newSource(opts, 0))
	fisherYates(incorrect, newSource(opts, 1))

	return interleave(correct, incorrect, newSource(opts, 2))
}

// interleave merges two lists, flipping a coin while both have items left.
func interleave(correct, incorrect []ShuffledOption, src Source) []ShuffledOption {
	out := make([]ShuffledOption, 0, len(correct)+len(incorrect))
	ci, ii := 0, 0
	for ci < len(correct) || ii < len(incorrect) {
		switch {
		case ci >= len(correct):
			out = append(out, incorrect[ii])
			ii++
		case ii >= len(incorrect):
			out = append(out, correct[ci])
			ci++
		case src.Float64() < 0.5:
			out = append(out, correct[ci])
			ci++
		default:
			out = append(out, incorrect[ii])
			ii++
		}
	}
	return out
}

// ShuffleScenarioOptions shuffles the options of every event.
// Other event fields are untouched, events without options pass through,
// and the input slice is not modified.
func ShuffleScenarioOptions(events []content.Event, opts Options) []content.Event {
	out := make([]content.Event, len(events))
	for i, e := range events {
		if e.Options != nil {
			shuffled := ShuffleOptions(e.Options, opts)
			options := make([]content.Option, len(shuffled))
			for j, s := range shuffled {
				options[j] = s.Option
			}
			e.Options = options
		}
		out[i] = e
	}
	return out
}

// Statistics summarizes where correct options landed after a shuffle.
type Statistics struct {
	TotalOptions           int     `json:"totalOptions"`
	CorrectOptions         int     `json:"correctOptions"`
	IncorrectOptions       int     `json:"incorrectOptions"`
	CorrectPositions       []int   `json:"correctPositions"`
	AverageCorrectPosition float64 `json:"averageCorrectPosition"`
}

// GenerateShuffleStatistics reports counts from the original list and
// 0-based positions of correct options in the shuffled list.
func GenerateShuffleStatistics(original []content.Option, shuffled []ShuffledOption) Statistics {
	stats := Statistics{
		TotalOptions:     len(original),
		CorrectPositions: []int{},
	}
	for _, o := range original {
		if o.IsCorrect() {
			stats.CorrectOptions++
		}
	}
	stats.IncorrectOptions = stats.TotalOptions - stats.CorrectOptions

	sum := 0
	for i, o := range shuffled {
		if o.IsCorrect {
			stats.CorrectPositions = append(stats.CorrectPositions, i)
			sum += i
		}
	}
	if n := len(stats.CorrectPositions); n > 0 {
		stats.AverageCorrectPosition = float64(sum) / float64(n)
	}
	return stats
}

// ValidateOptions checks shuffle options and returns every problem found.
// An empty result means the options are usable.
func ValidateOptions(opts Options) []string {
	var errs []string
	if opts.UseSeed && (opts.Seed < 0 || opts.Seed > MaxSeed) {
		errs = append(errs, fmt.Sprintf("seed must be between 0 and %d, got %d", MaxSeed, opts.Seed))
	}
	return errs
}
