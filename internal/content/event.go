package content

// Event is one authored narrative unit: a scene with its answer options.
type Event struct {
	SceneID      string   `json:"sceneId" yaml:"sceneId"`
	ScenarioCode string   `json:"scenarioCode,omitempty" yaml:"scenarioCode,omitempty"`
	Title        string   `json:"title" yaml:"title"`
	Content      string   `json:"content" yaml:"content"`
	SceneScript  string   `json:"sceneScript" yaml:"sceneScript"`
	Order        *int     `json:"order,omitempty" yaml:"order,omitempty"`
	DisasterType string   `json:"disasterType,omitempty" yaml:"disasterType,omitempty"`
	RiskLevel    string   `json:"riskLevel,omitempty" yaml:"riskLevel,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`

	// Options is nil when the event carries no options array at all.
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// Option is one answer a trainee can select within a scene.
type Option struct {
	AnswerID string  `json:"answerId" yaml:"answerId"`
	Answer   string  `json:"answer" yaml:"answer"`
	Reaction string  `json:"reaction" yaml:"reaction"`
	NextID   string  `json:"nextId,omitempty" yaml:"nextId,omitempty"`
	Points   *Points `json:"points,omitempty" yaml:"points,omitempty"`
	Exp      float64 `json:"exp,omitempty" yaml:"exp,omitempty"`
}

// Points is the score an option awards. Authored scores may be fractional.
type Points struct {
	Speed    float64 `json:"speed" yaml:"speed"`
	Accuracy float64 `json:"accuracy" yaml:"accuracy"`
}

// IsCorrect reports whether the option counts as a correct answer.
// An option is correct iff both speed and accuracy are positive.
func (o Option) IsCorrect() bool {
	return o.Points != nil && o.Points.Speed > 0 && o.Points.Accuracy > 0
}

// SpeedPoints returns the speed score, or 0 when points are absent.
func (o Option) SpeedPoints() float64 {
	if o.Points == nil {
		return 0
	}
	return o.Points.Speed
}

// AccuracyPoints returns the accuracy score, or 0 when points are absent.
func (o Option) AccuracyPoints() float64 {
	if o.Points == nil {
		return 0
	}
	return o.Points.Accuracy
}

// CloneOptions returns a shallow copy of the options slice.
// A nil input stays nil so "no options array" survives the copy.
func CloneOptions(options []Option) []Option {
	if options == nil {
		return nil
	}
	out := make([]Option, len(options))
	copy(out, options)
	return out
}
