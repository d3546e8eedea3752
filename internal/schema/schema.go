// Package schema checks the shape of raw event files against an embedded
// CUE schema.
//
// The check is advisory. Conversion never runs it and never rejects a file
// for shape problems; it exists so authors can lint content before a run.
package schema

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cuejson "cuelang.org/go/encoding/json"
	cueyaml "cuelang.org/go/encoding/yaml"

	"github.com/SeanMoon1/Phoenix-sub001/internal/content"
)

//go:embed events.cue
var eventsSchema string

// Violation is one shape problem found in an event file.
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

func (v Violation) String() string {
	if v.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", v.Line, v.Path, v.Message)
	}
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Checker validates event files. A Checker compiles the schema once and
// may be reused for many files.
type Checker struct {
	ctx    *cue.Context
	events cue.Value
}

// NewChecker compiles the embedded schema.
func NewChecker() (*Checker, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(eventsSchema, cue.Filename("events.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile event schema: %w", err)
	}
	return &Checker{
		ctx:    ctx,
		events: schema.LookupPath(cue.ParsePath("#Events")),
	}, nil
}

// Check validates raw file content. A non-nil error means the data could
// not be parsed at all; shape problems are returned as violations.
func (c *Checker) Check(filename string, data []byte, format content.Format) ([]Violation, error) {
	value, err := c.build(filename, data, format)
	if err != nil {
		return nil, err
	}

	unified := c.events.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return toViolations(filename, err), nil
	}
	return nil, nil
}

func (c *Checker) build(filename string, data []byte, format content.Format) (cue.Value, error) {
	var value cue.Value
	switch format {
	case content.FormatYAML:
		f, err := cueyaml.Extract(filename, data)
		if err != nil {
			return cue.Value{}, fmt.Errorf("parse %s: %w", filename, err)
		}
		value = c.ctx.BuildFile(f)
	default:
		expr, err := cuejson.Extract(filename, data)
		if err != nil {
			return cue.Value{}, fmt.Errorf("parse %s: %w", filename, err)
		}
		value = c.ctx.BuildExpr(expr)
	}
	if err := value.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("build %s: %w", filename, err)
	}
	return value, nil
}

// toViolations flattens a CUE error list. Positions inside the schema
// are skipped in favour of the data file's position.
func toViolations(filename string, err error) []Violation {
	var out []Violation
	for _, e := range errors.Errors(err) {
		format, args := e.Msg()
		out = append(out, Violation{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
			Line:    dataLine(filename, e),
		})
	}
	return out
}

func dataLine(filename string, e errors.Error) int {
	positions := append([]token.Pos{e.Position()}, e.InputPositions()...)
	for _, p := range positions {
		if p.IsValid() && p.Filename() == filename {
			return p.Line()
		}
	}
	return 0
}

// sceneGroup mirrors the converter's grouping: authored code, else one
// synthesized scenario per disaster type.
func sceneGroup(e content.Event) string {
	if e.ScenarioCode != "" {
		return e.ScenarioCode
	}
	dt := e.DisasterType
	if dt == "" {
		dt = "fire"
	}
	return "<" + dt + ">"
}

// CheckEvents reports structural problems that the schema cannot see:
// a scene id used twice within one scenario would make the generated
// script ambiguous.
func CheckEvents(events []content.Event) []Violation {
	var out []Violation
	seen := make(map[string]int)
	for i, e := range events {
		key := sceneGroup(e) + "\x00" + e.SceneID
		if first, dup := seen[key]; dup {
			out = append(out, Violation{
				Path:    fmt.Sprintf("%d.sceneId", i),
				Message: fmt.Sprintf("duplicate sceneId %q in scenario %s (first at index %d)", e.SceneID, sceneGroup(e), first),
			})
			continue
		}
		seen[key] = i
	}
	return out
}
