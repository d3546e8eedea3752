package convert

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SeanMoon1/Phoenix-sub001/internal/content"
	"github.com/SeanMoon1/Phoenix-sub001/internal/ir"
	"github.com/SeanMoon1/Phoenix-sub001/internal/shuffle"
)

// Config configures a Converter.
type Config struct {
	TeamID    int64
	CreatedBy int64

	// Shuffle enables option shuffling for every run of this converter.
	Shuffle bool
	// ShuffleOptions is used when a run does not override it.
	// Nil means correctness-preserving shuffling seeded from the clock.
	// UseSeed false draws from an unseeded source.
	ShuffleOptions *shuffle.Options

	// Codes synthesizes scenario codes. Defaults to SequentialCodes
	// started at the first run's clock.
	Codes CodeGenerator
	// Now defaults to time.Now.
	Now    func() time.Time
	Logger *zap.Logger
}

// RunOptions overrides converter settings for a single run.
type RunOptions struct {
	// Shuffle disables shuffling for this run when set to false.
	// It cannot enable shuffling on a converter configured without it.
	Shuffle *bool
	// ShuffleOptions replaces the converter's shuffle options.
	ShuffleOptions *shuffle.Options
}

// Converter turns events into records.
type Converter struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a Converter.
func New(cfg Config) *Converter {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Codes == nil {
		cfg.Codes = NewSequentialCodes(cfg.Now())
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{cfg: cfg, logger: logger}
}

// ErrInvalidShuffleOptions is returned when the run's shuffle options fail
// validation. The wrapped message lists every problem.
var ErrInvalidShuffleOptions = errors.New("invalid shuffle options")

// Convert compiles events into a Result.
func (c *Converter) Convert(events []content.Event, opts RunOptions) (*ir.Result, error) {
	if c.shuffleEnabled(opts) {
		shuffleOpts := c.runShuffleOptions(opts)
		if problems := shuffle.ValidateOptions(shuffleOpts); len(problems) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidShuffleOptions, strings.Join(problems, "; "))
		}
		c.logger.Debug("Shuffling options",
			zap.Bool("seeded", shuffleOpts.UseSeed),
			zap.Int64("seed", shuffleOpts.Seed),
			zap.Bool("preserveCorrectness", shuffleOpts.PreserveCorrectness))
		events = shuffle.ShuffleScenarioOptions(events, shuffleOpts)
	}

	groups := c.groupByScenario(events)

	result := &ir.Result{
		Scenarios: make([]ir.ScenarioRecord, 0, len(groups)),
	}
	for _, g := range groups {
		result.Scenarios = append(result.Scenarios, c.scenarioRecord(g))
		for i, e := range g.events {
			result.Scenes = append(result.Scenes, c.sceneRecord(g.code, i, e))
			for _, o := range e.Options {
				result.Options = append(result.Options, c.optionRecord(g.code, e.SceneID, o))
			}
		}
		c.logger.Debug("Converted scenario",
			zap.String("scenarioCode", g.code),
			zap.Int("scenes", len(g.events)))
	}

	return result, nil
}

func (c *Converter) shuffleEnabled(opts RunOptions) bool {
	if !c.cfg.Shuffle {
		return false
	}
	return opts.Shuffle == nil || *opts.Shuffle
}

// runShuffleOptions resolves the options for one run. Explicit options are
// used as given, including UseSeed false. Without any, the run is seeded
// from the clock so every scene shares one seed.
func (c *Converter) runShuffleOptions(opts RunOptions) shuffle.Options {
	switch {
	case opts.ShuffleOptions != nil:
		return *opts.ShuffleOptions
	case c.cfg.ShuffleOptions != nil:
		return *c.cfg.ShuffleOptions
	default:
		return shuffle.DefaultOptions(c.cfg.Now().UnixMilli() % (shuffle.MaxSeed + 1))
	}
}

// group is the events of one scenario, in input order.
type group struct {
	code   string
	events []content.Event
}

// groupByScenario assigns every event to a scenario code.
// Groups are returned in order of first appearance.
func (c *Converter) groupByScenario(events []content.Event) []*group {
	explicit := make(map[string]bool)
	for _, e := range events {
		if e.ScenarioCode != "" {
			explicit[e.ScenarioCode] = true
		}
	}

	// Events without a code share one synthesized code per disaster type.
	synthesized := make(map[string]string)

	var groups []*group
	byCode := make(map[string]*group)
	for _, e := range events {
		code := e.ScenarioCode
		if code == "" {
			dt := disasterTypeOf(e)
			var ok bool
			if code, ok = synthesized[dt]; !ok {
				code = c.generateCode(dt, explicit)
				synthesized[dt] = code
			}
		}

		g, ok := byCode[code]
		if !ok {
			g = &group{code: code}
			byCode[code] = g
			groups = append(groups, g)
		}
		g.events = append(g.events, e)
	}
	return groups
}

// generateCode draws codes until one does not clash with an authored code.
func (c *Converter) generateCode(disasterType string, reserved map[string]bool) string {
	for {
		code := c.cfg.Codes.Generate(disasterType)
		if !reserved[code] {
			return code
		}
	}
}

// scenarioRecord derives scenario metadata from the group's first event.
// The input format has no scenario-level record, so the first scene's
// title and content stand in for the scenario's.
func (c *Converter) scenarioRecord(g *group) ir.ScenarioRecord {
	first := g.events[0]
	return ir.ScenarioRecord{
		ScenarioCode: g.code,
		TeamID:       c.cfg.TeamID,
		Title:        first.Title,
		Description:  first.Content,
		DisasterType: disasterTypeOf(first),
		RiskLevel:    orDefault(first.RiskLevel, DefaultRiskLevel),
		Difficulty:   orDefault(first.Difficulty, DefaultDifficulty),
		Status:       ir.StatusActive,
		CreatedBy:    c.cfg.CreatedBy,
	}
}

func (c *Converter) sceneRecord(scenarioCode string, index int, e content.Event) ir.SceneRecord {
	order := index + 1
	if e.Order != nil {
		order = *e.Order
	}
	return ir.SceneRecord{
		ScenarioCode: scenarioCode,
		SceneCode:    e.SceneID,
		SceneOrder:   order,
		Title:        e.Title,
		Content:      e.Content,
		SceneScript:  e.SceneScript,
		CreatedBy:    c.cfg.CreatedBy,
	}
}

func (c *Converter) optionRecord(scenarioCode, sceneCode string, o content.Option) ir.OptionRecord {
	var next *string
	if o.NextID != "" {
		n := o.NextID
		next = &n
	}
	return ir.OptionRecord{
		ScenarioCode:   scenarioCode,
		SceneCode:      sceneCode,
		OptionCode:     o.AnswerID,
		OptionText:     o.Answer,
		ReactionText:   o.Reaction,
		NextSceneCode:  next,
		SpeedPoints:    o.SpeedPoints(),
		AccuracyPoints: o.AccuracyPoints(),
		ExpPoints:      o.Exp,
		IsCorrect:      o.IsCorrect(),
		CreatedBy:      c.cfg.CreatedBy,
	}
}

func disasterTypeOf(e content.Event) string {
	return orDefault(e.DisasterType, DefaultDisasterType)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
