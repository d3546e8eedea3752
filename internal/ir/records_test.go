package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultScenarioCodes(t *testing.T) {
	r := &Result{Scenarios: []ScenarioRecord{{ScenarioCode: "B"}, {ScenarioCode: "A"}}}
	assert.Equal(t, []string{"B", "A"}, r.ScenarioCodes())
}

func TestResultMerge(t *testing.T) {
	r := sampleResult()
	r.Merge(&Result{
		Scenarios: []ScenarioRecord{{ScenarioCode: "EARTH001"}},
		Scenes:    []SceneRecord{{ScenarioCode: "EARTH001", SceneCode: "#1"}},
	})
	r.Merge(nil)

	assert.Equal(t, []string{"FIRE001", "EARTH001"}, r.ScenarioCodes())
	assert.Len(t, r.Scenes, 3)
	assert.Len(t, r.Options, 1)
}

func TestSceneKeysMatch(t *testing.T) {
	r := sampleResult()
	assert.Equal(t, r.Scenes[0].Key(), r.Options[0].SceneKey())
	assert.NotEqual(t, r.Scenes[1].Key(), r.Options[0].SceneKey())
}

func TestOptionRecordJSONNullNextScene(t *testing.T) {
	data, err := json.Marshal(OptionRecord{OptionCode: "1"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"next_scene_code":null`)
	assert.Contains(t, string(data), `"is_correct":false`)
}
