package testutil

import "github.com/SeanMoon1/Phoenix-sub001/internal/content"

// Points builds a points object.
func Points(speed, accuracy float64) *content.Points {
	return &content.Points{Speed: speed, Accuracy: accuracy}
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}

// FireEvents is a two-scene fire scenario with an explicit scenario code.
// Scene #1 has one correct option out of three; scene #2 ends the run.
func FireEvents() []content.Event {
	return []content.Event{
		{
			SceneID:      "#1",
			ScenarioCode: "FIRE001",
			Title:        "Smoke in the hallway",
			Content:      "You smell smoke coming from the office next door.",
			SceneScript:  "Narrator: the fire alarm starts ringing.",
			DisasterType: "fire",
			RiskLevel:    "HIGH",
			Difficulty:   "medium",
			Options: []content.Option{
				{AnswerID: "1", Answer: "Pull the alarm and evacuate", Reaction: "Correct. Alert others first.", NextID: "#2", Points: Points(10, 10), Exp: 20},
				{AnswerID: "2", Answer: "Open the door to check", Reaction: "Dangerous. Heat can burst through.", NextID: "#2", Points: Points(0, 0), Exp: 5},
				{AnswerID: "3", Answer: "Take the elevator", Reaction: "Never use elevators in a fire.", NextID: "#2", Points: Points(2, 0)},
			},
		},
		{
			SceneID:      "#2",
			ScenarioCode: "FIRE001",
			Title:        "Evacuation",
			Content:      "You reach the stairwell.",
			SceneScript:  "Narrator: keep low and move fast.",
			DisasterType: "fire",
			Options: []content.Option{
				{AnswerID: "1", Answer: "Wait for O'Brien", Reaction: "Stay together.", NextID: "#END", Points: Points(3, 4), Exp: 10},
			},
		},
	}
}

// UncodedEvents returns events without scenario codes across two disaster
// types, plus one event with no options array at all.
func UncodedEvents() []content.Event {
	return []content.Event{
		{SceneID: "#1", Title: "Shaking", Content: "The ground shakes.", DisasterType: "earthquake",
			Options: []content.Option{{AnswerID: "1", Answer: "Drop, cover, hold on", Points: Points(5, 5)}}},
		{SceneID: "#1", Title: "Crash", Content: "A car crashed ahead.", DisasterType: "traffic", Order: IntPtr(3)},
		{SceneID: "#2", Title: "Aftershock", Content: "Another tremor.", DisasterType: "earthquake",
			Options: []content.Option{{AnswerID: "1", Answer: "Stay put"}, {AnswerID: "2", Answer: "Run outside", NextID: "#1"}}},
	}
}
