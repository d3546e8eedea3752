package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/SeanMoon1/Phoenix-sub001/internal/config"
)

var (
	scenariosDir = filepath.Join("..", "..", "testdata", "scenarios")
	invalidDir   = filepath.Join("..", "..", "testdata", "invalid")
	fireFile     = filepath.Join(scenariosDir, "fire_training_scenario.json")
	quakeFile    = filepath.Join(scenariosDir, "earthquake_training_scenario.json")
	floodFile    = filepath.Join(scenariosDir, "flood_disaster_scenario.yaml")
	manifestFile = filepath.Join("..", "..", "testdata", "manifest.yaml")
)

// testRoot returns root options whose output directory is a fresh temp dir.
func testRoot(t *testing.T, format string) (*RootOptions, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.OutputDir = dir
	return &RootOptions{Format: format, Config: cfg}, dir
}

// execute runs cmd with args and returns stdout.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func decodeResponse(t *testing.T, out string) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	return resp
}
