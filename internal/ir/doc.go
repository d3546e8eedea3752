// Package ir provides the compiled record model for scenario content.
//
// A conversion run turns authored events into three record sets that
// mirror the target tables:
//
//	ScenarioRecord  -> scenario
//	SceneRecord     -> scenario_scene
//	OptionRecord    -> choice_option
//
// Records reference their owners by code, never by database id. Every
// OptionRecord carries both its scenario and scene code so that no owner
// has to be recovered by parsing identifiers.
//
// This package contains type definitions only. It imports nothing
// internal, so convert, sqlgen and cli can all depend on it.
//
// All JSON tags use snake_case, matching the column names.
package ir
