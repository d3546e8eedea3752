package convert

import (
	"sort"

	"github.com/SeanMoon1/Phoenix-sub001/internal/ir"
)

// GenerateStatistics summarizes a result for run reports.
// Distinct value lists are sorted so reports are stable.
func GenerateStatistics(r *ir.Result) ir.Stats {
	stats := ir.Stats{
		ScenarioCount: len(r.Scenarios),
		SceneCount:    len(r.Scenes),
		OptionCount:   len(r.Options),
	}

	disasterTypes := make(map[string]bool)
	difficulties := make(map[string]bool)
	riskLevels := make(map[string]bool)
	for _, s := range r.Scenarios {
		disasterTypes[s.DisasterType] = true
		difficulties[s.Difficulty] = true
		riskLevels[s.RiskLevel] = true
	}

	stats.DisasterTypes = sortedKeys(disasterTypes)
	stats.Difficulties = sortedKeys(difficulties)
	stats.RiskLevels = sortedKeys(riskLevels)
	return stats
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
