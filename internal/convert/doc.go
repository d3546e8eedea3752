// Package convert compiles authored events into scenario, scene and option
// records.
//
// A run optionally shuffles every event's options, groups events into
// scenarios by scenario code, and emits one SceneRecord per event and one
// OptionRecord per option. Missing optional fields are defaulted rather
// than rejected; authoring mistakes surface when the generated SQL is
// applied or when the runtime loads the content.
package convert
