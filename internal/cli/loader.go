package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/SeanMoon1/Phoenix-sub001/internal/content"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No event files found
	ErrCodeParseFailed = "E004" // Event file could not be decoded
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeInvalidFlag = "E006" // Invalid flag value
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeManifest    = "E008" // Batch manifest error

	// Conversion errors
	ErrCodeConvertFailed  = "E101" // Conversion rejected the events
	ErrCodeGenerateFailed = "E102" // SQL generation failed
	ErrCodeBatchFailed    = "E103" // Some or all batch files failed

	// Content validation errors
	ErrCodeSchema         = "E111" // Event shape violates the schema
	ErrCodeDuplicateScene = "E112" // Scene id reused within a scenario

	// Dry-run errors
	ErrCodeDryRunFailed     = "E121" // Script failed to apply
	ErrCodeRowCountMismatch = "E122" // Loaded rows differ from the records
	ErrCodeRollbackDirty    = "E123" // Rollback left rows behind
)

// LoadError represents an error that occurred while loading an event file.
type LoadError struct {
	Code    string
	Message string
	File    string
	Line    int // 0 if unknown
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", e.File, e.Line, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Details returns the error's location for CLI error output, or nil.
func (e *LoadError) Details() interface{} {
	if e.File == "" {
		return nil
	}
	d := map[string]interface{}{"file": e.File}
	if e.Line > 0 {
		d["line"] = e.Line
	}
	return d
}

// LoadEvents reads and decodes one event file.
func LoadEvents(path string) ([]content.Event, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("input not found: %s", path), File: path}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing input: %v", err), File: path}
	}
	if info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("input is a directory: %s", path), File: path}
	}

	events, err := content.LoadFile(path)
	if err != nil {
		var parseErr *content.ParseError
		if errors.As(err, &parseErr) {
			return nil, &LoadError{Code: ErrCodeParseFailed, Message: parseErr.Error(), File: path, Line: parseErr.Line}
		}
		return nil, &LoadError{Code: ErrCodeGeneric, Message: err.Error(), File: path}
	}
	return events, nil
}

// asLoadError converts any load failure into a LoadError.
func asLoadError(err error) *LoadError {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr
	}
	return &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
}

// FindEventFiles returns the event files directly inside dir, sorted.
func FindEventFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
