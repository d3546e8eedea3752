package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SeanMoon1/Phoenix-sub001/internal/convert"
	"github.com/SeanMoon1/Phoenix-sub001/internal/sqlgen"
	"github.com/SeanMoon1/Phoenix-sub001/internal/testutil"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}
}

func TestOpen_ForeignKeysEnabled(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	defer s.Close()

	if err := s.verifyPragma("foreign_keys", "1"); err != nil {
		t.Error(err)
	}
}

func TestCountRows_RejectsUnknownTable(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	defer s.Close()

	if _, err := s.CountRows(context.Background(), "sqlite_master; DROP TABLE scenario"); err == nil {
		t.Error("expected error for unknown table")
	}
}

func TestApply_ForeignKeyViolation(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() failed: %v", err)
	}
	defer s.Close()

	script := `INSERT INTO scenario_scene (scene_id, scenario_id, scene_code, scene_order, title, content, scene_script, created_by)
VALUES ('s1', 'missing', '#1', 1, 't', 'c', 'x', 1);`
	if err := s.Apply(context.Background(), script); err == nil {
		t.Error("expected foreign key violation")
	}
}

func portableScripts(t *testing.T) (string, string) {
	t.Helper()

	clock := testutil.NewDeterministicClock(testutil.FixedTime, 0)
	conv := convert.New(convert.Config{
		TeamID:    7,
		CreatedBy: 42,
		Codes:     convert.NewSequentialCodesAt(100),
		Now:       clock.Now,
	})
	events := append(testutil.FireEvents(), testutil.UncodedEvents()...)
	result, err := conv.Convert(events, convert.RunOptions{})
	if err != nil {
		t.Fatalf("Convert() failed: %v", err)
	}

	gen := sqlgen.New(sqlgen.Config{Dialect: sqlgen.DialectPortable, IDs: sqlgen.NewSequentialIDGenerator()})
	load, err := gen.GenerateBatchSQL(result)
	if err != nil {
		t.Fatalf("GenerateBatchSQL() failed: %v", err)
	}
	return load, gen.GenerateRollbackSQL(result.ScenarioCodes())
}

func TestDryRun_LoadsAndRollsBack(t *testing.T) {
	load, rollback := portableScripts(t)

	report, err := DryRun(context.Background(), load, rollback)
	if err != nil {
		t.Fatalf("DryRun() failed: %v", err)
	}

	want := map[string]int{"scenario": 3, "scenario_scene": 5, "choice_option": 7}
	for table, n := range want {
		if report.Loaded[table] != n {
			t.Errorf("Loaded[%s] = %d, want %d", table, report.Loaded[table], n)
		}
	}
	if !report.Clean() {
		t.Errorf("rollback left rows behind: %v", report.Remaining)
	}
}

func TestDryRun_RollbackOfOtherCodesLeavesRows(t *testing.T) {
	load, _ := portableScripts(t)
	gen := sqlgen.New(sqlgen.Config{Dialect: sqlgen.DialectPortable})

	report, err := DryRun(context.Background(), load, gen.GenerateRollbackSQL([]string{"NOPE"}))
	if err != nil {
		t.Fatalf("DryRun() failed: %v", err)
	}
	if report.Clean() {
		t.Error("expected rows to remain")
	}
	if report.Remaining["scenario"] != 3 {
		t.Errorf("Remaining[scenario] = %d, want 3", report.Remaining["scenario"])
	}
}

func TestDryRun_BadScript(t *testing.T) {
	_, err := DryRun(context.Background(), "INSERT INTO nowhere VALUES (1);", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "load:") {
		t.Errorf("error = %q, want load prefix", err)
	}
}
