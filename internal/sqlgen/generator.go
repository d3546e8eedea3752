package sqlgen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/SeanMoon1/Phoenix-sub001/internal/ir"
)

// Target table names.
const (
	TableScenario = "scenario"
	TableScene    = "scenario_scene"
	TableOption   = "choice_option"
)

var (
	scenarioColumns = []string{"team_id", "scenario_code", "title", "description", "disaster_type", "risk_level", "difficulty", "status", "created_by"}
	sceneColumns    = []string{"scenario_id", "scene_code", "scene_order", "title", "content", "scene_script", "created_by"}
	optionColumns   = []string{"scenario_id", "scene_id", "choice_code", "choice_text", "reaction_text", "next_scene_code", "speed_points", "accuracy_points", "exp_points", "is_correct", "created_by"}
)

// Config configures a Generator.
type Config struct {
	// Dialect defaults to DialectMySQL.
	Dialect Dialect
	// IDs supplies primary keys for DialectPortable.
	// Defaults to UUIDv7Generator.
	IDs IDGenerator
}

// Generator renders records as SQL. A Generator holds no state between
// calls except its ID source.
type Generator struct {
	dialect Dialect
	ids     IDGenerator
}

// New creates a Generator.
func New(cfg Config) *Generator {
	if cfg.Dialect == "" {
		cfg.Dialect = DialectMySQL
	}
	if cfg.IDs == nil {
		cfg.IDs = UUIDv7Generator{}
	}
	return &Generator{dialect: cfg.Dialect, ids: cfg.IDs}
}

// Dialect returns the generator's dialect.
func (g *Generator) Dialect() Dialect {
	return g.dialect
}

// GenerateSQL renders the insert script without a transaction.
func (g *Generator) GenerateSQL(r *ir.Result) (string, error) {
	var b strings.Builder
	if err := g.writeScript(&b, r, false); err != nil {
		return "", err
	}
	return b.String(), nil
}

// GenerateBatchSQL renders the insert script inside exactly one
// transaction, so a run is applied all or nothing.
func (g *Generator) GenerateBatchSQL(r *ir.Result) (string, error) {
	var b strings.Builder
	if err := g.writeScript(&b, r, true); err != nil {
		return "", err
	}
	return b.String(), nil
}

// GenerateRollbackSQL renders deletes that undo a run, in reverse
// dependency order, inside one transaction.
func (g *Generator) GenerateRollbackSQL(scenarioCodes []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "-- Rollback for %d scenario(s)\n", len(scenarioCodes))
	g.writeEscapeNote(&b)
	b.WriteString("\n")
	b.WriteString(g.dialect.beginStatement())
	b.WriteString("\n")

	for _, code := range scenarioCodes {
		quoted := g.dialect.Quote(code)
		owner := fmt.Sprintf("(SELECT scenario_id FROM %s WHERE scenario_code = %s)", TableScenario, quoted)

		fmt.Fprintf(&b, "\n-- %s\n", sanitizeComment(code))
		fmt.Fprintf(&b, "DELETE FROM %s WHERE scenario_id IN %s;\n", TableOption, owner)
		fmt.Fprintf(&b, "DELETE FROM %s WHERE scenario_id IN %s;\n", TableScene, owner)
		fmt.Fprintf(&b, "DELETE FROM %s WHERE scenario_code = %s;\n", TableScenario, quoted)
	}

	b.WriteString("\nCOMMIT;\n")
	return b.String()
}

// keyRefs maps records to the SQL expression that yields their key:
// a session variable for mysql, a quoted UUID for portable.
type keyRefs struct {
	scenarios map[string]string
	scenes    map[ir.SceneKey]string
}

func (g *Generator) writeScript(b *strings.Builder, r *ir.Result, transactional bool) error {
	if r == nil {
		return fmt.Errorf("generate sql: nil result")
	}

	g.writeHeader(b, r)
	if transactional {
		b.WriteString(g.dialect.beginStatement())
		b.WriteString("\n\n")
	}

	refs := keyRefs{
		scenarios: make(map[string]string, len(r.Scenarios)),
		scenes:    make(map[ir.SceneKey]string, len(r.Scenes)),
	}
	vars := newVarNamer()

	b.WriteString("-- Scenarios\n")
	for _, s := range r.Scenarios {
		if _, dup := refs.scenarios[s.ScenarioCode]; dup {
			return fmt.Errorf("generate sql: duplicate scenario code %q", s.ScenarioCode)
		}
		values := []string{
			strconv.FormatInt(s.TeamID, 10),
			g.dialect.Quote(s.ScenarioCode),
			g.dialect.Quote(s.Title),
			g.dialect.Quote(s.Description),
			g.dialect.Quote(s.DisasterType),
			g.dialect.Quote(s.RiskLevel),
			g.dialect.Quote(s.Difficulty),
			g.dialect.Quote(s.Status),
			strconv.FormatInt(s.CreatedBy, 10),
		}
		ref := g.writeInsert(b, TableScenario, "scenario_id", scenarioColumns, values,
			vars.name("scenario_id", s.ScenarioCode))
		refs.scenarios[s.ScenarioCode] = ref
	}

	b.WriteString("\n-- Scenes\n")
	for _, s := range r.Scenes {
		scenarioRef, ok := refs.scenarios[s.ScenarioCode]
		if !ok {
			return fmt.Errorf("generate sql: scene %q references unknown scenario %q", s.SceneCode, s.ScenarioCode)
		}
		if _, dup := refs.scenes[s.Key()]; dup {
			return fmt.Errorf("generate sql: duplicate scene %q in scenario %q", s.SceneCode, s.ScenarioCode)
		}
		values := []string{
			scenarioRef,
			g.dialect.Quote(s.SceneCode),
			strconv.Itoa(s.SceneOrder),
			g.dialect.Quote(s.Title),
			g.dialect.Quote(s.Content),
			g.dialect.Quote(s.SceneScript),
			strconv.FormatInt(s.CreatedBy, 10),
		}
		ref := g.writeInsert(b, TableScene, "scene_id", sceneColumns, values,
			vars.name("scene_id", s.ScenarioCode+"_"+s.SceneCode))
		refs.scenes[s.Key()] = ref
	}

	b.WriteString("\n-- Options\n")
	for _, o := range r.Options {
		sceneRef, ok := refs.scenes[o.SceneKey()]
		if !ok {
			return fmt.Errorf("generate sql: option %q references unknown scene %q in scenario %q",
				o.OptionCode, o.SceneCode, o.ScenarioCode)
		}
		values := []string{
			refs.scenarios[o.ScenarioCode],
			sceneRef,
			g.dialect.Quote(o.OptionCode),
			g.dialect.Quote(o.OptionText),
			g.dialect.Quote(o.ReactionText),
			g.nullableString(o.NextSceneCode),
			formatNumber(o.SpeedPoints),
			formatNumber(o.AccuracyPoints),
			formatNumber(o.ExpPoints),
			sqlBool(o.IsCorrect),
			strconv.FormatInt(o.CreatedBy, 10),
		}
		g.writeInsert(b, TableOption, "choice_id", optionColumns, values, "")
	}

	if transactional {
		b.WriteString("\nCOMMIT;\n")
	}
	return nil
}

// writeInsert emits one INSERT and returns the expression other rows use
// to reference the new row's key. For mysql the key is captured into
// variable (skipped when variable is empty).
func (g *Generator) writeInsert(b *strings.Builder, table, keyColumn string, columns, values []string, variable string) string {
	if g.dialect == DialectPortable {
		key := g.dialect.Quote(g.ids.Generate())
		columns = append([]string{keyColumn}, columns...)
		values = append([]string{key}, values...)
		writeValues(b, table, columns, values)
		return key
	}

	writeValues(b, table, columns, values)
	if variable == "" {
		return ""
	}
	ref := "@" + variable
	fmt.Fprintf(b, "SET %s = LAST_INSERT_ID();\n", ref)
	return ref
}

func writeValues(b *strings.Builder, table string, columns, values []string) {
	fmt.Fprintf(b, "INSERT INTO %s (%s) VALUES (%s);\n",
		table, strings.Join(columns, ", "), strings.Join(values, ", "))
}

func (g *Generator) writeHeader(b *strings.Builder, r *ir.Result) {
	fmt.Fprintf(b, "-- Phoenix scenario content (compiler %s, dialect %s)\n", ir.CompilerVersion, g.dialect)
	fmt.Fprintf(b, "-- Scenarios: %d, Scenes: %d, Options: %d\n", len(r.Scenarios), len(r.Scenes), len(r.Options))
	fmt.Fprintf(b, "-- Fingerprint: %s\n", ir.MustFingerprint(r))
	if g.dialect == DialectMySQL {
		b.WriteString("-- Keys are carried in session variables: run every statement in order on one connection.\n")
	}
	g.writeEscapeNote(b)
	b.WriteString("\n")
}

// writeEscapeNote states the sql_mode the mysql string literals assume.
func (g *Generator) writeEscapeNote(b *strings.Builder) {
	if g.dialect == DialectMySQL {
		b.WriteString("-- Backslashes are escaped: sql_mode must not include NO_BACKSLASH_ESCAPES.\n")
	}
}

func (g *Generator) nullableString(s *string) string {
	if s == nil {
		return "NULL"
	}
	return g.dialect.Quote(*s)
}

// formatNumber renders a score as the shortest exact decimal literal,
// so whole scores stay integers ("10", not "10.0").
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sqlBool(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

var commentUnsafe = regexp.MustCompile(`[\r\n]+`)

// sanitizeComment keeps a value on a single comment line.
func sanitizeComment(s string) string {
	return commentUnsafe.ReplaceAllString(s, " ")
}

var identUnsafe = regexp.MustCompile(`[^A-Za-z0-9_]`)

// varNamer derives session variable names from record codes.
// Codes may contain characters that are not legal in identifiers, and
// sanitizing can make two codes collide, so every name is checked
// against those already issued.
type varNamer struct {
	used map[string]bool
}

func newVarNamer() *varNamer {
	return &varNamer{used: make(map[string]bool)}
}

func (n *varNamer) name(prefix, code string) string {
	base := prefix + "_" + identUnsafe.ReplaceAllString(code, "_")
	name := base
	for i := 2; n.used[name]; i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	n.used[name] = true
	return name
}
