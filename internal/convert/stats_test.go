package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeanMoon1/Phoenix-sub001/internal/testutil"
)

func TestGenerateStatistics(t *testing.T) {
	events := append(testutil.FireEvents(), testutil.UncodedEvents()...)
	result, err := newTestConverter(false).Convert(events, RunOptions{})
	require.NoError(t, err)

	stats := GenerateStatistics(result)

	assert.Equal(t, 3, stats.ScenarioCount)
	assert.Equal(t, 5, stats.SceneCount)
	assert.Equal(t, 7, stats.OptionCount)
	assert.Equal(t, []string{"earthquake", "fire", "traffic"}, stats.DisasterTypes)
	assert.Equal(t, []string{"easy", "medium"}, stats.Difficulties)
	assert.Equal(t, []string{"HIGH", "MEDIUM"}, stats.RiskLevels)
}
