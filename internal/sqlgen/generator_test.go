package sqlgen

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeanMoon1/Phoenix-sub001/internal/convert"
	"github.com/SeanMoon1/Phoenix-sub001/internal/ir"
	"github.com/SeanMoon1/Phoenix-sub001/internal/testutil"
)

// fireResult converts the fire fixture without shuffling.
func fireResult(t *testing.T) *ir.Result {
	t.Helper()
	c := convert.New(convert.Config{
		TeamID:    7,
		CreatedBy: 42,
		Codes:     convert.NewSequentialCodesAt(0),
	})
	result, err := c.Convert(testutil.FireEvents(), convert.RunOptions{})
	require.NoError(t, err)
	return result
}

// twoScenarioResult has two scenarios that both use scene code "#1".
func twoScenarioResult(t *testing.T) *ir.Result {
	t.Helper()
	c := convert.New(convert.Config{TeamID: 1, CreatedBy: 1, Codes: convert.NewSequentialCodesAt(5)})
	result, err := c.Convert(testutil.UncodedEvents(), convert.RunOptions{})
	require.NoError(t, err)
	return result
}

var uuidV7Pattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}`)

func lines(sql string) []string {
	return strings.Split(strings.TrimRight(sql, "\n"), "\n")
}

// indexOfPrefix returns the indexes of lines starting with prefix.
func indexOfPrefix(all []string, prefix string) []int {
	var idx []int
	for i, l := range all {
		if strings.HasPrefix(l, prefix) {
			idx = append(idx, i)
		}
	}
	return idx
}

func TestGenerateSQL_DependencyOrder(t *testing.T) {
	sql, err := New(Config{}).GenerateSQL(twoScenarioResult(t))
	require.NoError(t, err)

	all := lines(sql)
	scenarios := indexOfPrefix(all, "INSERT INTO scenario (")
	scenes := indexOfPrefix(all, "INSERT INTO scenario_scene (")
	options := indexOfPrefix(all, "INSERT INTO choice_option (")

	require.Len(t, scenarios, 2)
	require.Len(t, scenes, 3)
	require.Len(t, options, 3)
	assert.Less(t, scenarios[len(scenarios)-1], scenes[0])
	assert.Less(t, scenes[len(scenes)-1], options[0])

	assert.NotContains(t, sql, "START TRANSACTION;")
	assert.NotContains(t, sql, "COMMIT;")
}

func TestGenerateSQL_SessionVariables(t *testing.T) {
	sql, err := New(Config{Dialect: DialectMySQL}).GenerateSQL(twoScenarioResult(t))
	require.NoError(t, err)

	assert.Contains(t, sql, "SET @scenario_id_EAR000005 = LAST_INSERT_ID();")
	assert.Contains(t, sql, "SET @scenario_id_TRA000006 = LAST_INSERT_ID();")
	assert.Contains(t, sql, "SET @scene_id_EAR000005__1 = LAST_INSERT_ID();")
	assert.Contains(t, sql, "SET @scene_id_TRA000006__1 = LAST_INSERT_ID();")
	assert.Contains(t, sql, "VALUES (@scenario_id_EAR000005, '#1', 1, ")
	assert.Contains(t, sql, "VALUES (@scenario_id_EAR000005, @scene_id_EAR000005__2, '2', 'Run outside', '', '#1', ")
	assert.Contains(t, sql, "run every statement in order on one connection")
}

func TestGenerateSQL_BackslashEscapeNote(t *testing.T) {
	const note = "-- Backslashes are escaped: sql_mode must not include NO_BACKSLASH_ESCAPES."

	mysql := New(Config{Dialect: DialectMySQL})
	sql, err := mysql.GenerateSQL(fireResult(t))
	require.NoError(t, err)
	assert.Contains(t, sql, note)
	assert.Contains(t, mysql.GenerateRollbackSQL([]string{"FIRE001"}), note)

	portable := New(Config{Dialect: DialectPortable})
	sql, err = portable.GenerateSQL(fireResult(t))
	require.NoError(t, err)
	assert.NotContains(t, sql, "NO_BACKSLASH_ESCAPES")
	assert.NotContains(t, portable.GenerateRollbackSQL([]string{"FIRE001"}), "NO_BACKSLASH_ESCAPES")
}

func TestGenerateSQL_NullNextScene(t *testing.T) {
	sql, err := New(Config{}).GenerateSQL(twoScenarioResult(t))
	require.NoError(t, err)
	assert.Contains(t, sql, "'1', 'Stay put', '', NULL, 0, 0, 0, FALSE, 1);")
}

func TestGenerateBatchSQL_SingleTransaction(t *testing.T) {
	for _, dialect := range ValidDialects {
		t.Run(string(dialect), func(t *testing.T) {
			g := New(Config{Dialect: dialect, IDs: NewSequentialIDGenerator()})
			sql, err := g.GenerateBatchSQL(twoScenarioResult(t))
			require.NoError(t, err)

			begin := dialect.beginStatement()
			assert.Equal(t, 1, strings.Count(sql, begin))
			assert.Equal(t, 1, strings.Count(sql, "COMMIT;"))

			all := lines(sql)
			beginAt := indexOfPrefix(all, begin)
			commitAt := indexOfPrefix(all, "COMMIT;")
			inserts := indexOfPrefix(all, "INSERT INTO ")
			require.NotEmpty(t, inserts)
			assert.Less(t, beginAt[0], inserts[0])
			assert.Greater(t, commitAt[0], inserts[len(inserts)-1])
			assert.Equal(t, len(all)-1, commitAt[0])
		})
	}
}

func TestGenerateSQL_PortableKeys(t *testing.T) {
	g := New(Config{Dialect: DialectPortable, IDs: NewSequentialIDGenerator()})
	sql, err := g.GenerateSQL(fireResult(t))
	require.NoError(t, err)

	assert.NotContains(t, sql, "LAST_INSERT_ID")
	assert.NotContains(t, sql, "@")
	assert.Contains(t, sql, "INSERT INTO scenario (scenario_id, team_id, ")
	assert.Contains(t, sql, "VALUES ('00000000-0000-7000-8000-000000000001', 7, 'FIRE001', ")
	assert.Contains(t, sql, "INSERT INTO scenario_scene (scene_id, scenario_id, ")
	assert.Contains(t, sql, "VALUES ('00000000-0000-7000-8000-000000000002', '00000000-0000-7000-8000-000000000001', '#1', ")
	assert.Contains(t, sql, "INSERT INTO choice_option (choice_id, scenario_id, scene_id, ")
}

func TestGenerateSQL_PortableDefaultsToUUIDv7(t *testing.T) {
	sql, err := New(Config{Dialect: DialectPortable}).GenerateSQL(fireResult(t))
	require.NoError(t, err)
	keys := make(map[string]bool)
	for _, k := range uuidV7Pattern.FindAllString(sql, -1) {
		keys[k] = true
	}
	// 1 scenario + 2 scenes + 4 options, each with its own key.
	assert.Len(t, keys, 7)
}

func TestGenerateSQL_EscapesQuotes(t *testing.T) {
	sql, err := New(Config{}).GenerateSQL(fireResult(t))
	require.NoError(t, err)

	assert.Contains(t, sql, "'Wait for O''Brien'")
	assert.NotContains(t, sql, "O'Brien")
}

func TestGenerateSQL_FractionalScores(t *testing.T) {
	r := fireResult(t)
	r.Options[0].SpeedPoints = 2.5
	r.Options[0].ExpPoints = 0.25

	sql, err := New(Config{}).GenerateSQL(r)
	require.NoError(t, err)

	assert.Contains(t, sql, "'#2', 2.5, 10, 0.25, TRUE, 42);")
	assert.Contains(t, sql, "'#2', 0, 0, 5, FALSE, 42);")
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "10", formatNumber(10))
	assert.Equal(t, "0", formatNumber(0))
	assert.Equal(t, "2.5", formatNumber(2.5))
	assert.Equal(t, "-1.75", formatNumber(-1.75))
}

func TestGenerateSQL_DuplicateScene(t *testing.T) {
	r := fireResult(t)
	r.Scenes[1].SceneCode = r.Scenes[0].SceneCode

	_, err := New(Config{}).GenerateSQL(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate scene "#1" in scenario "FIRE001"`)
}

func TestGenerateSQL_UnknownScene(t *testing.T) {
	r := fireResult(t)
	r.Options[0].SceneCode = "#404"

	_, err := New(Config{}).GenerateSQL(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown scene "#404"`)
}

func TestGenerateSQL_UnknownScenario(t *testing.T) {
	r := fireResult(t)
	r.Scenes[0].ScenarioCode = "NOPE"

	_, err := New(Config{}).GenerateSQL(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown scenario "NOPE"`)
}

func TestGenerateSQL_DuplicateScenario(t *testing.T) {
	r := fireResult(t)
	r.Scenarios = append(r.Scenarios, r.Scenarios[0])

	_, err := New(Config{}).GenerateSQL(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate scenario code")
}

func TestGenerateSQL_NilResult(t *testing.T) {
	_, err := New(Config{}).GenerateSQL(nil)
	require.Error(t, err)
}

func TestGenerateRollbackSQL_ReverseOrder(t *testing.T) {
	sql := New(Config{}).GenerateRollbackSQL([]string{"codeA"})
	all := lines(sql)

	option := indexOfPrefix(all, "DELETE FROM choice_option ")
	scene := indexOfPrefix(all, "DELETE FROM scenario_scene ")
	scenario := indexOfPrefix(all, "DELETE FROM scenario ")

	require.Len(t, option, 1)
	require.Len(t, scene, 1)
	require.Len(t, scenario, 1)
	assert.Less(t, option[0], scene[0])
	assert.Less(t, scene[0], scenario[0])
	for _, i := range []int{option[0], scene[0], scenario[0]} {
		assert.Contains(t, all[i], "scenario_code = 'codeA'")
	}

	assert.Equal(t, 1, strings.Count(sql, "START TRANSACTION;"))
	assert.Equal(t, 1, strings.Count(sql, "COMMIT;"))
}

func TestGenerateRollbackSQL_MultipleCodes(t *testing.T) {
	sql := New(Config{Dialect: DialectPortable}).GenerateRollbackSQL([]string{"A", "B'C"})

	assert.Equal(t, 1, strings.Count(sql, "BEGIN;"))
	assert.Equal(t, 3, strings.Count(sql, "'A'"))
	assert.Equal(t, 3, strings.Count(sql, "'B''C'"))
	assert.Less(t, strings.Index(sql, "'A'"), strings.Index(sql, "'B''C'"))
}

func TestGenerateRollbackSQL_Empty(t *testing.T) {
	sql := New(Config{}).GenerateRollbackSQL(nil)
	assert.NotContains(t, sql, "DELETE")
	assert.Contains(t, sql, "COMMIT;")
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "O''Brien", DialectMySQL.Escape("O'Brien"))
	assert.Equal(t, "O''Brien", DialectPortable.Escape("O'Brien"))
	assert.Equal(t, `C:\\temp`, DialectMySQL.Escape(`C:\temp`))
	assert.Equal(t, `C:\temp`, DialectPortable.Escape(`C:\temp`))
	assert.Equal(t, "''''", DialectMySQL.Escape("''"))
	assert.Equal(t, "'화재'", DialectMySQL.Quote("화재"))
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect(" MySQL ")
	require.NoError(t, err)
	assert.Equal(t, DialectMySQL, d)

	d, err = ParseDialect("portable")
	require.NoError(t, err)
	assert.Equal(t, DialectPortable, d)

	_, err = ParseDialect("oracle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid dialect")
}

func TestVarNamer_Collisions(t *testing.T) {
	n := newVarNamer()
	assert.Equal(t, "scene_id_A_1", n.name("scene_id", "A-1"))
	assert.Equal(t, "scene_id_A_1_2", n.name("scene_id", "A_1"))
	assert.Equal(t, "scene_id_A_1_3", n.name("scene_id", "A 1"))
}

func TestSequentialIDGenerator(t *testing.T) {
	g := NewSequentialIDGenerator()
	assert.Equal(t, "00000000-0000-7000-8000-000000000001", g.Generate())
	assert.Equal(t, "00000000-0000-7000-8000-000000000002", g.Generate())
}

func TestUUIDv7Generator(t *testing.T) {
	id := UUIDv7Generator{}.Generate()
	assert.Len(t, id, 36)
	assert.Equal(t, byte('7'), id[14])
}
