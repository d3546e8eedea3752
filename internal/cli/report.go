package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/SeanMoon1/Phoenix-sub001/internal/convert"
	"github.com/SeanMoon1/Phoenix-sub001/internal/ir"
)

// FileResult is the outcome of converting one input file.
type FileResult struct {
	File          string   `json:"file"`
	Success       bool     `json:"success"`
	Error         string   `json:"error,omitempty"`
	ErrorCode     string   `json:"errorCode,omitempty"`
	Scenarios     int      `json:"scenarios"`
	Scenes        int      `json:"scenes"`
	Options       int      `json:"options"`
	ScenarioCodes []string `json:"scenarioCodes,omitempty"`
}

// RunReport is the statistics file written next to the SQL output.
type RunReport struct {
	Timestamp       time.Time    `json:"timestamp"`
	Compiler        string       `json:"compiler"`
	RecordVersion   string       `json:"recordVersion"`
	TotalFiles      int          `json:"totalFiles"`
	SuccessfulFiles int          `json:"successfulFiles"`
	FailedFiles     int          `json:"failedFiles"`
	TotalScenarios  int          `json:"totalScenarios"`
	TotalScenes     int          `json:"totalScenes"`
	TotalOptions    int          `json:"totalOptions"`
	DisasterTypes   []string     `json:"disasterTypes"`
	Difficulties    []string     `json:"difficulties"`
	RiskLevels      []string     `json:"riskLevels"`
	Seed            *int64       `json:"seed,omitempty"`
	Fingerprint     string       `json:"fingerprint,omitempty"`
	Results         []FileResult `json:"results"`
}

// newRunReport summarizes the merged result of a run.
func newRunReport(now time.Time, merged *ir.Result, results []FileResult) *RunReport {
	stats := convert.GenerateStatistics(merged)
	report := &RunReport{
		Timestamp:      now.UTC(),
		Compiler:       ir.CompilerVersion,
		RecordVersion:  ir.IRVersion,
		TotalFiles:     len(results),
		TotalScenarios: stats.ScenarioCount,
		TotalScenes:    stats.SceneCount,
		TotalOptions:   stats.OptionCount,
		DisasterTypes:  stats.DisasterTypes,
		Difficulties:   stats.Difficulties,
		RiskLevels:     stats.RiskLevels,
		Results:        results,
	}
	for _, r := range results {
		if r.Success {
			report.SuccessfulFiles++
		} else {
			report.FailedFiles++
		}
	}
	if stats.ScenarioCount > 0 {
		report.Fingerprint = ir.MustFingerprint(merged)
	}
	return report
}

// succeeded returns a FileResult for a converted file.
func succeeded(file string, r *ir.Result) FileResult {
	return FileResult{
		File:          file,
		Success:       true,
		Scenarios:     len(r.Scenarios),
		Scenes:        len(r.Scenes),
		Options:       len(r.Options),
		ScenarioCodes: r.ScenarioCodes(),
	}
}

// failed returns a FileResult for a file that could not be converted.
func failed(file, code, message string) FileResult {
	return FileResult{File: file, ErrorCode: code, Error: message}
}

func writeReport(path string, report *RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling statistics: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
