package ir

// Scenario status values.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// ScenarioRecord is one row of the scenario table.
type ScenarioRecord struct {
	ScenarioCode string `json:"scenario_code"`
	TeamID       int64  `json:"team_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	DisasterType string `json:"disaster_type"`
	RiskLevel    string `json:"risk_level"`
	Difficulty   string `json:"difficulty"`
	Status       string `json:"status"`
	CreatedBy    int64  `json:"created_by"`
}

// SceneRecord is one row of the scenario_scene table.
type SceneRecord struct {
	ScenarioCode string `json:"scenario_code"`
	SceneCode    string `json:"scene_code"`
	SceneOrder   int    `json:"scene_order"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	SceneScript  string `json:"scene_script"`
	CreatedBy    int64  `json:"created_by"`
}

// OptionRecord is one row of the choice_option table.
type OptionRecord struct {
	ScenarioCode   string  `json:"scenario_code"`
	SceneCode      string  `json:"scene_code"`
	OptionCode     string  `json:"option_code"`
	OptionText     string  `json:"option_text"`
	ReactionText   string  `json:"reaction_text"`
	NextSceneCode  *string `json:"next_scene_code"`
	SpeedPoints    float64 `json:"speed_points"`
	AccuracyPoints float64 `json:"accuracy_points"`
	ExpPoints      float64 `json:"exp_points"`
	IsCorrect      bool    `json:"is_correct"`
	CreatedBy      int64   `json:"created_by"`
}

// SceneKey identifies a scene within a run.
// Scene codes are only unique inside their scenario.
type SceneKey struct {
	ScenarioCode string
	SceneCode    string
}

// Key returns the scene's run-wide identity.
func (s SceneRecord) Key() SceneKey {
	return SceneKey{ScenarioCode: s.ScenarioCode, SceneCode: s.SceneCode}
}

// SceneKey returns the identity of the scene that owns the option.
func (o OptionRecord) SceneKey() SceneKey {
	return SceneKey{ScenarioCode: o.ScenarioCode, SceneCode: o.SceneCode}
}

// Result is the output of one conversion run.
type Result struct {
	Scenarios []ScenarioRecord `json:"scenarios"`
	Scenes    []SceneRecord    `json:"scenes"`
	Options   []OptionRecord   `json:"options"`
}

// ScenarioCodes returns the scenario codes in emission order.
func (r *Result) ScenarioCodes() []string {
	codes := make([]string, len(r.Scenarios))
	for i, s := range r.Scenarios {
		codes[i] = s.ScenarioCode
	}
	return codes
}

// Merge appends other's records to r.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Scenarios = append(r.Scenarios, other.Scenarios...)
	r.Scenes = append(r.Scenes, other.Scenes...)
	r.Options = append(r.Options, other.Options...)
}

// Stats summarizes a Result for run reports.
type Stats struct {
	ScenarioCount int      `json:"scenario_count"`
	SceneCount    int      `json:"scene_count"`
	OptionCount   int      `json:"option_count"`
	DisasterTypes []string `json:"disaster_types"`
	Difficulties  []string `json:"difficulties"`
	RiskLevels    []string `json:"risk_levels"`
}
