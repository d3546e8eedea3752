package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of an event file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseError reports an event file that could not be decoded.
// It is fatal for the file it belongs to.
type ParseError struct {
	File string // file name, empty for in-memory input
	Line int    // 1-based line of the syntax error, 0 if unknown
	Err  error
}

func (e *ParseError) Error() string {
	name := e.File
	if name == "" {
		name = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: parse events: %v", name, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: parse events: %v", name, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatForPath picks the decoder from a file extension.
// Unknown extensions are treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile reads and decodes an event file.
func LoadFile(path string) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events file: %w", err)
	}
	events, err := Decode(data, FormatForPath(path))
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErr.File = path
		}
		return nil, err
	}
	return events, nil
}

// Decode parses an array of events and normalizes their text.
func Decode(data []byte, format Format) ([]Event, error) {
	var events []Event

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &events); err != nil {
			return nil, &ParseError{Err: err}
		}
	case FormatJSON:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) == 0 || trimmed[0] != '[' {
			return nil, &ParseError{Err: errors.New("expected a JSON array of events")}
		}
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, &ParseError{Line: jsonErrorLine(trimmed, err), Err: err}
		}
	default:
		return nil, fmt.Errorf("unsupported events format %q", format)
	}

	for i := range events {
		events[i] = NormalizeEvent(events[i])
	}
	return events, nil
}

// jsonErrorLine maps a decoder byte offset to a 1-based line number.
func jsonErrorLine(data []byte, err error) int {
	var offset int64
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}
