// Package store provides an SQLite scratch database for dry-running
// generated scenario scripts.
//
// The schema mirrors the production tables (scenario, scenario_scene,
// choice_option) with text primary keys, so scripts in the portable
// dialect apply unchanged. Foreign keys are enforced: a rollback that
// deletes a scenario before its scenes and options fails here exactly as
// it would in production.
//
// # Database Configuration
//
//   - One connection: an in-memory database lives only as long as its
//     connection, and scripts assume a single session
//   - foreign_keys=ON: enforce referential integrity
//   - busy_timeout=5000: wait for locks up to 5 seconds (file databases)
//
// The store never connects to a production database.
package store
