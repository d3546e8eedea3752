package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *Result {
	next := "#2"
	return &Result{
		Scenarios: []ScenarioRecord{{ScenarioCode: "FIRE001", TeamID: 1, Title: "Fire", Status: StatusActive, CreatedBy: 1}},
		Scenes: []SceneRecord{
			{ScenarioCode: "FIRE001", SceneCode: "#1", SceneOrder: 1},
			{ScenarioCode: "FIRE001", SceneCode: "#2", SceneOrder: 2},
		},
		Options: []OptionRecord{{ScenarioCode: "FIRE001", SceneCode: "#1", OptionCode: "1", NextSceneCode: &next, IsCorrect: true}},
	}
}

func TestFingerprintDeterminism(t *testing.T) {
	a, err := Fingerprint(sampleResult())
	require.NoError(t, err)
	b, err := Fingerprint(sampleResult())
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestFingerprintChangesWithContent(t *testing.T) {
	base := MustFingerprint(sampleResult())

	changed := sampleResult()
	changed.Options[0].IsCorrect = false

	assert.NotEqual(t, base, MustFingerprint(changed))
}

func TestHashWithDomainSeparatesDomains(t *testing.T) {
	data := []byte(`{"a":1}`)
	assert.NotEqual(t, hashWithDomain("phoenix/a/v1", data), hashWithDomain("phoenix/b/v1", data))
}
