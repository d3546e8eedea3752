package convert

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Disaster type defaults and code prefixes.
const (
	DefaultDisasterType = "fire"
	DefaultRiskLevel    = "MEDIUM"
	DefaultDifficulty   = "easy"
	DefaultPrefix       = "GEN"
)

var disasterPrefixes = map[string]string{
	"fire":       "FIR",
	"earthquake": "EAR",
	"emergency":  "EME",
	"traffic":    "TRA",
	"flood":      "FLO",
	"complex":    "COM",
}

// PrefixFor returns the three-letter scenario code prefix for a disaster type.
func PrefixFor(disasterType string) string {
	if p, ok := disasterPrefixes[strings.ToLower(disasterType)]; ok {
		return p
	}
	return DefaultPrefix
}

// codeSpace is the number of distinct numeric suffixes (six digits).
const codeSpace = 1_000_000

// CodeGenerator synthesizes scenario codes for events that carry none.
type CodeGenerator interface {
	Generate(disasterType string) string
}

// SequentialCodes issues "<prefix><6 digits>" codes from a monotonic
// counter that starts at the last six digits of a timestamp.
//
// A code is never issued twice by the same generator, so two groups
// converted within the same millisecond still get distinct codes.
//
// Thread-safety: SequentialCodes is safe for concurrent use.
type SequentialCodes struct {
	mu     sync.Mutex
	next   int64
	issued map[string]bool
}

// NewSequentialCodes creates a generator whose first suffix is the last
// six digits of start in milliseconds.
func NewSequentialCodes(start time.Time) *SequentialCodes {
	return NewSequentialCodesAt(start.UnixMilli() % codeSpace)
}

// NewSequentialCodesAt creates a generator starting at a fixed suffix.
// Used by tests for reproducible codes.
func NewSequentialCodesAt(suffix int64) *SequentialCodes {
	suffix %= codeSpace
	if suffix < 0 {
		suffix += codeSpace
	}
	return &SequentialCodes{next: suffix, issued: make(map[string]bool)}
}

// Generate returns the next unused code for the disaster type.
func (g *SequentialCodes) Generate(disasterType string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	prefix := PrefixFor(disasterType)
	for {
		code := fmt.Sprintf("%s%06d", prefix, g.next)
		g.next = (g.next + 1) % codeSpace
		if !g.issued[code] {
			g.issued[code] = true
			return code
		}
	}
}
