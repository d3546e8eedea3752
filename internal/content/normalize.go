package content

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText returns s in Unicode NFC form.
// Hangul typed on macOS arrives decomposed (NFD); composing it keeps the
// generated SQL byte-identical across authoring machines.
func NormalizeText(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// NormalizeEvent NFC-normalizes every text field of an event and its
// options. Identifier fields are also trimmed of surrounding whitespace.
func NormalizeEvent(e Event) Event {
	e.SceneID = strings.TrimSpace(NormalizeText(e.SceneID))
	e.ScenarioCode = strings.TrimSpace(NormalizeText(e.ScenarioCode))
	e.Title = NormalizeText(e.Title)
	e.Content = NormalizeText(e.Content)
	e.SceneScript = NormalizeText(e.SceneScript)
	e.DisasterType = strings.TrimSpace(e.DisasterType)
	e.RiskLevel = strings.TrimSpace(e.RiskLevel)
	e.Difficulty = strings.TrimSpace(e.Difficulty)

	if e.Options != nil {
		options := make([]Option, len(e.Options))
		for i, o := range e.Options {
			o.AnswerID = strings.TrimSpace(NormalizeText(o.AnswerID))
			o.Answer = NormalizeText(o.Answer)
			o.Reaction = NormalizeText(o.Reaction)
			o.NextID = strings.TrimSpace(NormalizeText(o.NextID))
			if o.Points != nil {
				p := *o.Points
				o.Points = &p
			}
			options[i] = o
		}
		e.Options = options
	}
	return e
}
